package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/simp-lee/jwt"
	"gorm.io/gorm"

	"github.com/zharkyn/carmarket/internal/middleware"
	"github.com/zharkyn/carmarket/internal/pkg"
)

// RouteDeps holds all dependencies needed to register routes.
type RouteDeps struct {
	Modules []Module
	DB      *gorm.DB
	Redis   *redis.Client // nil when Redis is not configured
	JWT     jwt.Service

	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// RegisterRoutes registers all application routes on the given gin.Engine.
func RegisterRoutes(r *gin.Engine, deps *RouteDeps) error {
	if r == nil {
		return errors.New("router is nil")
	}
	if deps == nil {
		return errors.New("route dependencies are nil")
	}
	if len(deps.Modules) == 0 {
		return errors.New("at least one module is required")
	}
	if deps.JWT == nil {
		return errors.New("jwt service is required")
	}

	// Health check
	r.GET("/health", healthHandler(deps.DB, deps.Redis))

	// API routes. Auth runs on every request so handlers can distinguish
	// anonymous from signed-in callers; RequireAuth gates the protected routes.
	api := r.Group("/api/v1")
	api.Use(middleware.Auth(deps.JWT))
	if deps.RateLimitEnabled && deps.Redis != nil {
		api.Use(middleware.RateLimit(deps.Redis, deps.RateLimitRequests, deps.RateLimitWindow))
	}

	// Register module routes
	for i, m := range deps.Modules {
		if m == nil {
			return fmt.Errorf("module at index %d is nil", i)
		}
		m.RegisterRoutes(api)
	}

	r.NoRoute(noRouteHandler())

	return nil
}

// healthHandler returns a handler that pings the database and Redis and
// reports per-component status.
func healthHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "ok"
		code := http.StatusOK
		components := gin.H{}

		dbStatus := "ok"
		if db == nil {
			dbStatus = "error"
		} else if sqlDB, err := db.DB(); err != nil {
			dbStatus = "error"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
			defer cancel()
			if err := sqlDB.PingContext(ctx); err != nil {
				dbStatus = "error"
			}
		}
		components["database"] = dbStatus
		if dbStatus != "ok" {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		// Redis is optional; report it only when configured.
		if rdb != nil {
			redisStatus := "ok"
			ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
			defer cancel()
			if err := rdb.Ping(ctx).Err(); err != nil {
				redisStatus = "error"
				status = "degraded"
				code = http.StatusServiceUnavailable
			}
			components["redis"] = redisStatus
		}

		c.JSON(code, gin.H{
			"status":     status,
			"components": components,
		})
	}
}

// noRouteHandler returns a JSON 404 for unmatched paths.
func noRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, pkg.Response{Code: http.StatusNotFound, Message: "not found"})
	}
}
