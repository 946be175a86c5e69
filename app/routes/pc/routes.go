package pc

import (
	"github.com/Sandvich/runnersbackend/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupPCRoutes sets up player character routes
func SetupPCRoutes(app *fiber.App) {
	app.Get("/api/pcs", auth.AuthMiddleware, GetPCsAPI)
	app.Post("/api/pcs", auth.AuthMiddleware, CreatePCAPI)
	app.Get("/api/pc/:id", auth.AuthMiddleware, GetPCAPI)
	app.Put("/api/pc/:id", auth.AuthMiddleware, UpdatePCAPI)
	app.Delete("/api/pc/:id", auth.AuthMiddleware, DeletePCAPI)
}
