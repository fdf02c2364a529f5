package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/gdgvda/tech-pizza-delivery-waiter-bot/internal/http/middleware"
)

// healthPingTimeout caps the store round-trip so a hung Redis never stalls
// the probe.
const healthPingTimeout = 2 * time.Second

// Health reports liveness of the process and reachability of the backing
// store. A failed ping degrades the response to 503 so orchestrators can
// restart or route around the instance.
func Health(rdb redis.Cmdable) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
		defer cancel()

		if err := rdb.Ping(ctx).Err(); err != nil {
			middleware.LoggerFrom(c).Error().Err(err).Msg("health: store ping failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "degraded",
				"store":  "unreachable",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"store":  "ok",
		})
	}
}
