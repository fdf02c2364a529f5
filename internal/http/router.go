// Package httpapi wires the ops HTTP transport (Gin) to the order service and
// the shared middleware stack. The surface is deliberately small: health,
// Prometheus metrics, and a read-only view over the day's orders. All chat
// interaction goes through the Telegram long-poll loop, not this server.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/gdgvda/tech-pizza-delivery-waiter-bot/internal/config"
	"github.com/gdgvda/tech-pizza-delivery-waiter-bot/internal/http/handlers"
	"github.com/gdgvda/tech-pizza-delivery-waiter-bot/internal/http/middleware"
	"github.com/gdgvda/tech-pizza-delivery-waiter-bot/internal/services"
)

// RegisterRoutes attaches middleware and endpoints to the given Gin engine.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs
//  4. Recovery: capture panics after logger
//  5. Metrics
//  6. Gzip and CORS
func RegisterRoutes(r *gin.Engine, orders *services.OrderService, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.Metrics())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// The ops API is internal and read-only, so a permissive CORS posture
	// is acceptable.
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:   []string{"X-Request-ID", "Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	r.NoRoute(func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusNotFound, handlers.ErrorResponse{
			Code: "not_found", Message: "route not found",
		})
	})
	r.NoMethod(func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusMethodNotAllowed, handlers.ErrorResponse{
			Code: "method_not_allowed", Message: "method not allowed",
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", handlers.Health(orders.RDB))

	api := r.Group("/api/v1")
	{
		api.GET("/orders/:date", handlers.OrdersForDay(orders))
	}
}
