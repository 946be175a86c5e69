package main

import (
	"log"

	"github.com/Sandvich/runnersbackend/app/config"
	"github.com/Sandvich/runnersbackend/app/database"
	"github.com/Sandvich/runnersbackend/app/routes/auth"
	"github.com/Sandvich/runnersbackend/app/routes/contacts"
	"github.com/Sandvich/runnersbackend/app/routes/npc"
	"github.com/Sandvich/runnersbackend/app/routes/pc"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// jsonErrorHandler renders uncaught errors as the same {"message": ...}
// shape the handlers use
func jsonErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{"message": err.Error()})
}

func main() {
	// Initialize database
	config.InitDB()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: jsonErrorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())
	app.Use(recover.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"response": "Welcome!"})
	})

	// Setup routes
	auth.SetupAuthRoutes(app)
	pc.SetupPCRoutes(app)
	npc.SetupNPCRoutes(app)
	contacts.SetupContactRoutes(app)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Page not found")
	})

	// Start server
	addr := config.ListenAddr()
	log.Println("Server starting on", addr)
	log.Fatal(app.Listen(addr))
}
