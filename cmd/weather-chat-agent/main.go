package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	httpapi "github.com/i474232898/weather-chat-agent/internal/api/http"
	"github.com/i474232898/weather-chat-agent/internal/config"
	"github.com/i474232898/weather-chat-agent/internal/router"
	"github.com/i474232898/weather-chat-agent/internal/scheduler"
	"github.com/i474232898/weather-chat-agent/internal/store"
	"github.com/i474232898/weather-chat-agent/internal/users"
	"github.com/i474232898/weather-chat-agent/internal/weather"
	"github.com/i474232898/weather-chat-agent/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Document store: MongoDB when configured, in-memory otherwise. The
	// client lifecycle is owned here and handles are passed down.
	var weatherStore weather.Store
	var userStore users.Store

	if cfg.MongoURI != "" {
		connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			cancel()
			log.Fatalf("failed to connect to mongodb: %v", err)
		}
		if err := client.Ping(connectCtx, nil); err != nil {
			cancel()
			log.Fatalf("failed to ping mongodb: %v", err)
		}
		cancel()
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				log.Printf("error disconnecting from mongodb: %v", err)
			}
		}()

		mongoStore := store.NewMongoStore(client.Database(cfg.MongoDatabase))
		weatherStore, userStore = mongoStore, mongoStore
	} else {
		log.Println("INFO: MONGODB_URI not set; using in-memory store")
		memStore := store.NewMemoryStore()
		weatherStore, userStore = memStore, memStore
	}

	// Provider gateway and the core service.
	provider := providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey)
	service := weather.NewService(weatherStore, provider, cfg.MaxDataAge)

	// Dispatch table, built once.
	rt := router.New()
	rt.Register(router.HandlerWeather, weather.NewHandler(service))
	rt.Register(router.HandlerUsers, users.NewHandler(userStore))

	// Scheduler that periodically refreshes stored cities.
	sched := scheduler.New(cfg.RefreshInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-chat-agent",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-chat-agent",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, rt)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
