package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type RateLimiter interface {
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, window time.Duration) error
}

type RedisRateLimiter struct {
	client *redis.Client
}

func NewRedisRateLimiter(client *redis.Client) *RedisRateLimiter {
	return &RedisRateLimiter{client: client}
}

func (rl *RedisRateLimiter) Incr(ctx context.Context, key string) (int64, error) {
	return rl.client.Incr(ctx, key).Result()
}

func (rl *RedisRateLimiter) Expire(ctx context.Context, key string, window time.Duration) error {
	return rl.client.Expire(ctx, key, window).Err()
}

func RateLimiterMiddleware(limiter RateLimiter, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		key := fmt.Sprintf("rate:ip:%s", ip)

		count, err := limiter.Incr(c, key)
		if err != nil {
			// limiter outage must not take the service down with it
			c.Next()
			return
		}

		if count == 1 {
			if err = limiter.Expire(c, key, window); err != nil {
				log.Println("could not set expiration for rate limiting")
			}
		}

		if count > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Please try again later",
			})
			return
		}

		c.Next()
	}
}
