package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/soldoshop/upn-nalog/internal/config"
	"github.com/soldoshop/upn-nalog/internal/presentation/http/handler"
	"github.com/soldoshop/upn-nalog/internal/presentation/http/middleware"
	"github.com/soldoshop/upn-nalog/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Slip    *handler.SlipHandler
	Printer *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager  *utils.JWTManager
	Cfg         *config.Config
	RateLimiter *middleware.ClientRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "ok",
			"service":    deps.Cfg.App.Name,
			"rate_limit": deps.RateLimiter.Stats(),
		})
	})

	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		auth.Use(deps.RateLimiter.Middleware())
		auth.POST("/token", h.Auth.Token)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(deps.RateLimiter.Middleware())

		registerSlipRoutes(protected, h)
		registerPrinterRoutes(protected, h)
	}

	return router
}

func registerSlipRoutes(protected *gin.RouterGroup, h *Handlers) {
	orders := protected.Group("/orders/:number/upn")
	{
		orders.GET("", h.Slip.GetSlip)
		orders.GET("/qr.png", h.Slip.GetQR)
		orders.GET("/slip.pdf", h.Slip.GetPDF)
		orders.POST("/print", h.Printer.PrintSlip)
	}

	protected.GET("/accounts", h.Slip.ListAccounts)
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printer := protected.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/test", h.Printer.TestPrint)
	}
}
