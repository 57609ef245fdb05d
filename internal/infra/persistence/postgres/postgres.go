// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"spendtrack/config"
	"spendtrack/internal/domain/lifecycle"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates PostgreSQL client mapping
func New(params Params) (*gorm.DB, error) {
	cfg := params.Config.Postgres
	if cfg == nil {
		return nil, errors.New("postgres configuration must be provided")
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.UserName, cfg.Password, cfg.Database, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		// Disable GORM's per-statement implicit transaction.
		// Explicit transactions go through txManager.Execute for multi-step atomic operations.
		SkipDefaultTransaction: true,
		// Map driver constraint errors onto gorm.ErrDuplicatedKey and friends.
		TranslateError: true,
		Logger:         newGormSlogLogger(params.Logger, params.Config),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	// Add lifecycle management
	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}

			return nil
		},
		OnStop: func(_ context.Context) error {
			return sqlDB.Close()
		},
	})

	return db, nil
}
