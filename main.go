package main

import (
	"context"
	"log"
	"os"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"

	"mailprobe/config"
	"mailprobe/middleware"
	"mailprobe/routes"
	"mailprobe/verifier"
	"mailprobe/worker"
)

func main() {
	// Initialize logger
	logger := log.New(os.Stdout, "MAILPROBE: ", log.Ldate|log.Ltime|log.Lshortfile)

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Sentry error reporting when a DSN is configured
	if config.AppConfig.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         config.AppConfig.SentryDSN,
			Environment: config.AppConfig.Environment,
		}); err != nil {
			logger.Printf("Sentry initialization failed: %v", err)
		}
	}

	// Initialize database connection
	if err := config.ConnectDB(); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Create Fiber app
	app := fiber.New()

	// Add CORS middleware
	app.Use(middleware.CORS())

	// Build the verification engine from config
	engine := verifier.NewVerifier(config.AppConfig.Probe.HelloName, config.AppConfig.Probe.FromEmail)
	engine.ProbeGap = config.AppConfig.Probe.CatchAllGap
	if prober, ok := engine.Prober.(*verifier.SMTPProber); ok {
		prober.Timeout = config.AppConfig.Probe.Timeout
	}

	// Start background re-verification of inconclusive results
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if config.AppConfig.ReverifyEnabled {
		reverifyWorker := worker.NewReverifyWorker(
			config.DB, engine,
			log.New(os.Stdout, "REVERIFY: ", log.LstdFlags),
			config.AppConfig.ReverifyEvery,
			config.AppConfig.ReverifyMaxAge,
		)
		go reverifyWorker.Start(ctx)
	}

	// Setup routes
	routes.SetupRoutes(app, config.DB, engine)

	// Health check endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "running",
			"version": "1.0.0",
		})
	})

	// Start server
	logger.Printf("🚀 Server starting on port %s", config.AppConfig.ServerPort)
	if err := app.Listen(":" + config.AppConfig.ServerPort); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
