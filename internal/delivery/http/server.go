// Package http assembles the Echo server for the HTTP delivery.
package http

import (
	"context"
	"log/slog"
	"net"
	"strconv"

	"spendtrack/config"
	"spendtrack/internal/delivery"
	"spendtrack/internal/delivery/http/middleware"
	"spendtrack/internal/delivery/http/router"
	"spendtrack/internal/delivery/http/validator"
	"spendtrack/internal/domain/lifecycle"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	slogecho "github.com/samber/slog-echo"
	"go.uber.org/fx"
)

type HTTPParams struct {
	fx.In
	fx.Lifecycle

	Config              *config.Config
	Logger              *slog.Logger
	RouterParams        router.RouterParams
	ErrorMiddleware     *middleware.ErrorMiddleware
	RequestIDMiddleware *middleware.RequestIDMiddleware
}

type httpServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

func NewServer(params HTTPParams) (delivery.Delivery, error) {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.Use(params.RequestIDMiddleware.Process)
	echoServer.Use(slogecho.New(params.Logger))
	echoServer.Validator = validator.New()
	echoServer.HTTPErrorHandler = params.ErrorMiddleware.HandleHTTPError
	echoServer.Use(echomiddleware.Recover())
	echoServer.Use(echomiddleware.CORS())

	if t := params.Config.HTTP.Timeouts; t.ReadTimeout > 0 {
		echoServer.Server.ReadTimeout = t.ReadTimeout
		echoServer.Server.ReadHeaderTimeout = t.ReadHeaderTimeout
		echoServer.Server.WriteTimeout = t.WriteTimeout
		echoServer.Server.IdleTimeout = t.IdleTimeout
	}

	router := router.NewRouter(params.RouterParams)
	router.RegisterRoutes(echoServer)

	delivery := &httpServer{
		cfg:    params.Config,
		logger: params.Logger,
		server: echoServer,
	}

	params.Append(fx.Hook{
		OnStop: delivery.stop,
	})

	return delivery, nil
}

func (s *httpServer) Serve(ctx context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.HTTP.Port))
	s.logger.Info("Starting HTTP server", slog.String("hostPort", hostPort))
	if err := s.server.Start(hostPort); err != nil {
		return errors.Wrap(err, "failed to serve http")
	}

	return nil
}

func (s *httpServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down HTTP server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
