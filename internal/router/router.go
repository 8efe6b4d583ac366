package router

import (
	v1 "github.com/finvoice/finvoice/internal/api/v1"
	"github.com/finvoice/finvoice/internal/auth"
	"github.com/finvoice/finvoice/internal/config"
	"github.com/finvoice/finvoice/internal/logger"
	"github.com/finvoice/finvoice/internal/rest/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers bundles the route handlers for the engine
type Handlers struct {
	Health   *v1.HealthHandler
	Auth     *v1.AuthHandler
	Invoice  *v1.InvoiceHandler
	Customer *v1.CustomerHandler
}

func NewHandlers(
	health *v1.HealthHandler,
	authHandler *v1.AuthHandler,
	invoice *v1.InvoiceHandler,
	customer *v1.CustomerHandler,
) Handlers {
	return Handlers{
		Health:   health,
		Auth:     authHandler,
		Invoice:  invoice,
		Customer: customer,
	}
}

// SetupRouter wires the gin engine. The route paths mirror the dashboard
// paths so the path-prefix authorization rule applies to them literally.
func SetupRouter(
	handlers Handlers,
	provider auth.Provider,
	cfg *config.Configuration,
	logger *logger.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.SentryMiddleware(cfg),
		middleware.ErrorHandler(logger),
		middleware.SessionMiddleware(provider, logger),
		middleware.AuthorizeMiddleware(cfg),
	)

	router.GET("/health", handlers.Health.Health)
	router.POST(middleware.LoginRoute, handlers.Auth.Login)

	dashboard := router.Group(cfg.Auth.DashboardPrefix)
	{
		dashboard.GET("/invoices", handlers.Invoice.ListInvoices)
		dashboard.POST("/invoices", handlers.Invoice.CreateInvoice)
		dashboard.GET("/invoices/:id", handlers.Invoice.GetInvoice)
		dashboard.POST("/invoices/:id", handlers.Invoice.UpdateInvoice)
		dashboard.DELETE("/invoices/:id", handlers.Invoice.DeleteInvoice)

		dashboard.GET("/customers", handlers.Customer.ListCustomers)
	}

	return router
}
