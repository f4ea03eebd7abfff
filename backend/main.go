package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learngenie/backend/config"
	"learngenie/backend/coursera"
	"learngenie/backend/middleware"
	"learngenie/backend/routes"
	"learngenie/backend/utils"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error loading config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	// Initialize logger
	logger := utils.InitLogger(utils.LoggerConfig{Level: cfg.LogLevel, Format: cfg.LogFormat})

	// Initialize store
	store, err := utils.InitStore(cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("error initializing store")
	}

	var rdb *redis.Client
	var cache coursera.Cache = coursera.NewMemoryCache()
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis not reachable at startup")
		}
		cancel()
		cache = coursera.NewRedisCache(rdb)
	}

	courseraClient := coursera.NewClient(coursera.Config{
		BaseURL:  cfg.CourseraBaseURL,
		Timeout:  cfg.CourseraTimeout,
		CacheTTL: cfg.CourseraCacheTTL,
		Retry:    coursera.DefaultRetryConfig(),
	}, cache)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "learngenie",
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: middleware.ErrorHandler,
		UnescapePath: true,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))
	app.Use(middleware.MetricsMiddleware())

	// Setup routes
	routes.SetupRoutes(app, store, cfg, routes.Deps{Redis: rdb, Coursera: courseraClient})

	go func() {
		if err := app.Listen(":" + cfg.ServerPort); err != nil {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()
	logger.Info().Str("port", cfg.ServerPort).Str("driver", cfg.DBDriver).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Error().Err(err).Msg("closing redis")
		}
	}
}
