package contacts

import (
	"github.com/Sandvich/runnersbackend/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupContactRoutes sets up contact routes. Contacts have no GET of their
// own; they are read through the owning PC.
func SetupContactRoutes(app *fiber.App) {
	app.Post("/api/contacts", auth.AuthMiddleware, CreateContactAPI)
	app.Put("/api/contact/:id", auth.AuthMiddleware, UpdateContactAPI)
	app.Delete("/api/contact/:id", auth.AuthMiddleware, DeleteContactAPI)
}
