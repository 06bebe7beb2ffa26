package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	apiMaxRequests    = 100 // por minuto, por IP
	cartMaxAdds       = 20  // por minuto, por usuario
	searchMaxRequests = 30  // por minuto, por IP
	window            = 1 * time.Minute
)

// RateLimiter cuenta requests en Redis con ventanas de un minuto.
type RateLimiter struct {
	Redis *redis.Client
}

func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{Redis: client}
}

// API limita las requests generales por IP.
func (rl *RateLimiter) API() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		key := "api_requests:" + c.ClientIP()

		requests, _ := rl.Redis.Get(ctx, key).Int()
		if requests >= apiMaxRequests {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Demasiadas requests. Probá de nuevo en 1 minuto",
				"retry_after": 60,
			})
			c.Abort()
			return
		}

		pipe := rl.Redis.Pipeline()
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, window)
		pipe.Exec(ctx)

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", apiMaxRequests))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", apiMaxRequests-requests-1))

		c.Next()
	}
}

// Cart limita los agregados al carrito por usuario (anti-spam).
func (rl *RateLimiter) Cart() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.Next()
			return
		}

		ctx := context.Background()
		key := "cart_add:" + userID

		requests, _ := rl.Redis.Get(ctx, key).Int()
		if requests >= cartMaxAdds {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Demasiados agregados al carrito. Bajá un cambio",
				"retry_after": 60,
			})
			c.Abort()
			return
		}

		pipe := rl.Redis.Pipeline()
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, window)
		pipe.Exec(ctx)

		c.Next()
	}
}

// Search limita las búsquedas por IP.
func (rl *RateLimiter) Search() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		key := "search_requests:" + c.ClientIP()

		requests, _ := rl.Redis.Get(ctx, key).Int()
		if requests >= searchMaxRequests {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Demasiadas búsquedas. Probá de nuevo en 1 minuto",
				"retry_after": 60,
			})
			c.Abort()
			return
		}

		pipe := rl.Redis.Pipeline()
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, window)
		pipe.Exec(ctx)

		c.Next()
	}
}
