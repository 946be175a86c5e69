package npc

import (
	"github.com/Sandvich/runnersbackend/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupNPCRoutes sets up non-player character routes
func SetupNPCRoutes(app *fiber.App) {
	app.Get("/api/npcs", auth.AuthMiddleware, GetNPCsAPI)
	app.Post("/api/npcs", auth.AuthMiddleware, CreateNPCAPI)
	app.Get("/api/npc/:id", auth.AuthMiddleware, GetNPCAPI)
	app.Put("/api/npc/:id", auth.AuthMiddleware, UpdateNPCAPI)
	app.Delete("/api/npc/:id", auth.AuthMiddleware, DeleteNPCAPI)
}
