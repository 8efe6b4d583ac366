package main

import (
	"context"
	"net/http"
	"time"

	v1 "github.com/finvoice/finvoice/internal/api/v1"
	"github.com/finvoice/finvoice/internal/auth"
	"github.com/finvoice/finvoice/internal/cache"
	"github.com/finvoice/finvoice/internal/config"
	"github.com/finvoice/finvoice/internal/logger"
	"github.com/finvoice/finvoice/internal/postgres"
	"github.com/finvoice/finvoice/internal/repository"
	"github.com/finvoice/finvoice/internal/router"
	"github.com/finvoice/finvoice/internal/sentry"
	"github.com/finvoice/finvoice/internal/service"
	"github.com/finvoice/finvoice/internal/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	fx.New(
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			newCache,

			// Postgres
			postgres.NewDB,

			// Repositories
			repository.NewInvoiceRepository,
			repository.NewCustomerRepository,
			repository.NewUserRepository,

			// Auth provider
			auth.NewProvider,

			// Services
			service.NewServiceParams,
			service.NewInvoiceService,
			service.NewCustomerService,
			service.NewAuthService,

			// Handlers
			v1.NewHealthHandler,
			v1.NewAuthHandler,
			v1.NewInvoiceHandler,
			v1.NewCustomerHandler,
			router.NewHandlers,

			// Router
			router.SetupRouter,
		),
		sentry.Module(),
		fx.Invoke(startServer),
	).Run()
}

func newCache(cfg *config.Configuration, log *logger.Logger) cache.Cache {
	return cache.Initialize(cfg, log)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	engine *gin.Engine,
	db *postgres.DB,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting server", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Errorw("server shutdown failed", "error", err)
			}
			db.Close()
			return nil
		},
	})
}
