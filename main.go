// main.go
package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"finhabit/database"
	"finhabit/handlers"
	"finhabit/middleware"
	"finhabit/services"
	"finhabit/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Validate critical environment variables
	validateEnvironment()

	// Initialize database
	database.InitDB()
	defer database.CloseDB()

	// Wire the engine: one store, one lock table, services layered on top
	st := database.NewGormStore(database.GetDB())
	locks := utils.NewKeyedMutex()

	reminderService := services.NewReminderService(st)
	streakService := services.NewStreakService(st, reminderService, locks)
	achievementService := services.NewAchievementService(st, locks)
	pointsService := services.NewPointsService(st, streakService, achievementService, locks)
	recoveryService := services.NewRecoveryService(st, achievementService, reminderService, locks)
	microWinService := services.NewMicroWinService(st, nil)

	handlers.InitGamificationHandlers(
		pointsService,
		streakService,
		recoveryService,
		achievementService,
		microWinService,
		reminderService,
	)

	// Background delivery of due reminders over the live event feed
	dispatchInterval := time.Duration(getEnvInt("REMINDER_DISPATCH_SECONDS", 60)) * time.Second
	services.InitReminderDispatcher(st, handlers.GetEventHub(), dispatchInterval)
	defer func() {
		if d := services.GetReminderDispatcher(); d != nil {
			d.Stop()
		}
	}()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    1 * 1024 * 1024, // 1MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// Apply rate limiting to all routes
	app.Use(middleware.FiberRateLimitMiddleware())

	// API Routes
	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.FiberAuthRateLimitMiddleware())
	authGroup.Post("/guest", handlers.GuestLogin)
	authGroup.Post("/login", handlers.Login)
	authGroup.Post("/register", handlers.Register)

	// Gamification routes (require authentication)
	game := api.Group("/gamification")
	game.Use(middleware.AuthMiddleware)

	game.Post("/points/award", handlers.AwardPoints)
	game.Get("/profile", handlers.GetProfile)
	game.Get("/points/history", handlers.GetPointsHistory)

	game.Post("/streaks/:type/checkin", handlers.CheckInStreak)
	game.Get("/streaks", handlers.GetStreaks)
	game.Get("/streaks/risks", handlers.GetStreakRisks)

	game.Post("/recovery/initiate", handlers.InitiateRecovery)
	game.Post("/recovery/:id/action", handlers.ProcessRecoveryAction)
	game.Post("/recovery/:id/abandon", handlers.AbandonRecovery)
	game.Get("/recovery", handlers.GetRecoveries)

	game.Get("/achievements", handlers.GetAchievements)
	game.Post("/achievements/:type/unlock", handlers.UnlockAchievement)

	game.Get("/microwins", handlers.GetMicroWins)

	game.Get("/reminders", handlers.GetReminders)
	game.Post("/reminders/:id/ack", handlers.AcknowledgeReminder)

	// Live event feed (celebrations and reminder pushes)
	app.Get("/ws/events", middleware.WebSocketAuthMiddleware, handlers.EventsUpgrade, handlers.EventsSocket)

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	// Start HTTP server
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("🚀 HTTP server starting on port %s", port)
	log.Printf("📊 Environment: %s", getEnv("APP_ENV", "development"))
	log.Printf("🔐 JWT Secret configured: %v", os.Getenv("JWT_SECRET") != "")
	log.Printf("🌐 Event feed available at ws://localhost:%s/ws/events", port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "production" {
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:3000" {
			log.Println("WARNING: CORS_ORIGINS not properly configured for production")
		}
	}

	if err := services.ValidateTables(); err != nil {
		log.Fatalf("FATAL: engine tables inconsistent: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}
