package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/simp-lee/jwt"
	"github.com/simp-lee/logger"
	"gorm.io/gorm"

	"github.com/zharkyn/carmarket/internal/config"
	"github.com/zharkyn/carmarket/internal/domain"
	"github.com/zharkyn/carmarket/internal/middleware"
	"github.com/zharkyn/carmarket/internal/module/auth"
	"github.com/zharkyn/carmarket/internal/module/blog"
	"github.com/zharkyn/carmarket/internal/module/car"
	"github.com/zharkyn/carmarket/internal/module/listing"
	"github.com/zharkyn/carmarket/internal/module/review"
	"github.com/zharkyn/carmarket/internal/module/upload"
	"github.com/zharkyn/carmarket/internal/module/user"
)

// App holds the core application dependencies and the HTTP server.
type App struct {
	engine *gin.Engine
	db     *gorm.DB
	rdb    *redis.Client
	jwtSvc jwt.Service
	logger *logger.Logger
	cfg    *config.Config
}

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

var newHTTPServer = func(addr string, handler http.Handler) httpServer {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

var notifyContext = func(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, signals...)
}

// New creates and wires a fully configured App from the given Config.
//
// It sets up logging, database, Redis, object storage, token auth, domain
// repositories, services, handlers, middleware, and routes.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	success := false

	// 1. Setup logger.
	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	if cfg.Server.Mode == gin.DebugMode && cfg.Server.Host == "0.0.0.0" {
		log.Warn("insecure server config: debug mode on 0.0.0.0 may expose debug behavior and permissive CORS")
	}
	defer func() {
		if success {
			return
		}
		if err := log.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}()

	// 2. Setup database.
	db, err := config.SetupDatabase(&cfg.Database, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}
	defer func() {
		if success {
			return
		}
		sqlDB, err := db.DB()
		if err != nil {
			return
		}
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", slog.Any("error", err))
		}
	}()

	// 3. AutoMigrate in debug mode only.
	if cfg.Server.Mode == gin.DebugMode {
		if err := db.AutoMigrate(
			&domain.User{},
			&domain.Car{},
			&domain.Listing{},
			&domain.Blog{},
			&domain.Comment{},
			&domain.BlogLike{},
			&domain.Review{},
		); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		log.Info("auto migration completed")
	}

	// 4. Setup Redis. Optional: rate limiting, search caching, and moderation
	// events are skipped without it.
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = config.SetupRedis(&cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("setup redis: %w", err)
		}
	}
	defer func() {
		if success || rdb == nil {
			return
		}
		if err := rdb.Close(); err != nil {
			slog.Error("redis close error", slog.Any("error", err))
		}
	}()

	// 5. Setup object storage and token auth.
	storageClient, err := config.SetupStorage(&cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("setup storage: %w", err)
	}

	jwtSvc, tokenExpiry, err := config.SetupJWT(&cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("setup jwt: %w", err)
	}
	defer func() {
		if success {
			return
		}
		jwtSvc.Close()
	}()

	var cacheTTL time.Duration
	if cfg.Server.Cache.Enabled {
		// Validated in config.Load.
		cacheTTL, _ = time.ParseDuration(cfg.Server.Cache.TTL)
	}

	// 6. Manual dependency injection: repository → service → handler → module.
	userRepo := user.NewRepository(db)
	carRepo := car.NewRepository(db)
	listingRepo := listing.NewRepository(db)
	blogRepo := blog.NewRepository(db)
	reviewRepo := review.NewRepository(db)

	authSvc := auth.NewService(jwtSvc, userRepo, tokenExpiry)
	userSvc := user.NewService(userRepo, carRepo)
	carSvc := car.NewService(carRepo, rdb, cacheTTL)
	listingSvc := listing.NewService(db, listingRepo, rdb)
	blogSvc := blog.NewService(blogRepo)
	reviewSvc := review.NewService(reviewRepo, carRepo)
	uploadSvc := upload.NewService(storageClient, cfg.Storage)

	modules := []Module{
		auth.NewModule(auth.NewHandler(authSvc)),
		user.NewModule(user.NewHandler(userSvc)),
		car.NewModule(car.NewHandler(carSvc)),
		listing.NewModule(listing.NewHandler(listingSvc)),
		blog.NewModule(blog.NewHandler(blogSvc)),
		review.NewModule(review.NewHandler(reviewSvc)),
		upload.NewModule(upload.NewHandler(uploadSvc)),
	}

	// 7. Create Gin engine with custom middleware (not gin.Default()).
	if err := validateGinMode(cfg.Server.Mode); err != nil {
		return nil, err
	}
	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()

	// Build CORS config from application settings.
	// In release mode, when no allowlist is configured, default to deny cross-origin requests.
	corsConfig := resolveCORSConfig(cfg.Server.Mode, cfg.Server.CORS.AllowOrigins)

	engine.Use(
		middleware.Recovery(log.Logger),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			TrustUpstream: false,
		}),
		middleware.Logger(log.Logger),
		middleware.CORSWithConfig(corsConfig),
	)

	// 8. Register all routes.
	var rateLimitWindow time.Duration
	if cfg.Server.RateLimit.Enabled {
		rateLimitWindow, _ = time.ParseDuration(cfg.Server.RateLimit.Window)
	}
	if err := RegisterRoutes(engine, &RouteDeps{
		Modules:           modules,
		DB:                db,
		Redis:             rdb,
		JWT:               jwtSvc,
		RateLimitEnabled:  cfg.Server.RateLimit.Enabled,
		RateLimitRequests: cfg.Server.RateLimit.Requests,
		RateLimitWindow:   rateLimitWindow,
	}); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	success = true
	return &App{
		engine: engine,
		db:     db,
		rdb:    rdb,
		jwtSvc: jwtSvc,
		logger: log,
		cfg:    cfg,
	}, nil
}

func resolveCORSConfig(mode string, configuredAllowOrigins []string) middleware.CORSConfig {
	corsConfig := middleware.DefaultCORSConfig()

	if len(configuredAllowOrigins) > 0 {
		corsConfig.AllowOrigins = configuredAllowOrigins
		return corsConfig
	}

	if mode == gin.ReleaseMode {
		corsConfig.AllowOrigins = []string{}
	}

	return corsConfig
}

func validateGinMode(mode string) error {
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		return nil
	default:
		return fmt.Errorf("invalid server.mode %q: must be one of %q, %q, %q", mode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
	}
}

// Run starts the HTTP server and blocks until a shutdown signal is received.
// It performs graceful shutdown with a 5-second timeout and closes the
// database, Redis, and token service.
func (a *App) Run() error {
	if a == nil {
		return errors.New("app is nil")
	}
	if a.cfg == nil {
		return errors.New("app config is nil")
	}
	if a.engine == nil {
		return errors.New("app engine is nil")
	}

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	srv := newHTTPServer(addr, a.engine)

	// Listen for SIGINT / SIGTERM.
	ctx, stop := notifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server in a goroutine.
	errCh := make(chan error, 1)
	go func() {
		a.logInfo("server started", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error

	// Wait for shutdown signal or server error.
	select {
	case <-ctx.Done():
		a.logInfo("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("server error: %w", err)
	}

	if runErr == nil {
		// Graceful shutdown with 5-second deadline.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logError("server shutdown error", slog.Any("error", err))
		}
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logError("redis close error", slog.Any("error", err))
		}
	}

	if a.jwtSvc != nil {
		a.jwtSvc.Close()
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				a.logError("database close error", slog.Any("error", err))
			} else {
				a.logInfo("database connection closed")
			}
		}
	}

	a.logInfo("server stopped")
	if a.logger != nil {
		if err := a.logger.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}

	return runErr
}

func (a *App) logInfo(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Info(msg, args...)
		return
	}
	slog.Info(msg, args...)
}

func (a *App) logError(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Error(msg, args...)
		return
	}
	slog.Error(msg, args...)
}
