package main

import (
	"context"
	"log/slog"
	"os"

	"spendtrack/config"
	"spendtrack/internal/delivery"
	"spendtrack/internal/delivery/http"
	"spendtrack/internal/delivery/http/middleware"
	"spendtrack/internal/delivery/http/router/handler"
	"spendtrack/internal/infra/auth"
	logs "spendtrack/internal/infra/log"
	"spendtrack/internal/infra/persistence/postgres"
	"spendtrack/internal/usecase/impl"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			runMigrations,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewCategoryRepository,
			postgres.NewExpenseRepository,
			postgres.NewSessionRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewCategoryService,
			impl.NewExpenseService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewCategoryHandler,
			handler.NewExpenseHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func runMigrations(ctx context.Context, db *gorm.DB) error {
	return postgres.Migrate(ctx, db)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
