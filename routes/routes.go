package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"mailprobe/config"
	controller "mailprobe/controllers"
	"mailprobe/middleware"
	"mailprobe/verifier"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, engine *verifier.Verifier) {
	// Initialize controllers with their respective loggers
	authLogger := log.New(os.Stdout, "AUTH: ", log.Ldate|log.Ltime|log.Lshortfile)
	verifyLogger := log.New(os.Stdout, "VERIFY: ", log.Ldate|log.Ltime|log.Lshortfile)

	authController := controller.NewAuthController(db, authLogger)
	verificationController := controller.NewVerificationController(
		db, engine, config.AppConfig.BulkWorkerCount, verifyLogger)

	// Public auth endpoints (no token required)
	auth := app.Group("/auth", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	auth.Post("/token", authController.IssueToken)

	// API group with versioning and protection
	api := app.Group("/api/v1", middleware.Protected(), logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Verification routes; probing remote MX hosts is rate limited
	verify := api.Group("/verify", middleware.VerifyRateLimiter())
	verify.Get("/", verificationController.VerifyEmail)
	verify.Post("/bulk", verificationController.BulkVerify)
	verify.Post("/import", verificationController.ImportAndVerify)
	verify.Get("/:id", verificationController.GetVerificationResults)

	authLogger.Println("Routes initialized successfully")
}
