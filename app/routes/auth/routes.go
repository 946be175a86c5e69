package auth

import (
	"strings"

	"github.com/Sandvich/runnersbackend/app/security"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	app.Post("/api/login", LoginAPI)
}

// AuthMiddleware validates the bearer token and stores the caller's identity
// and clearance on the request context. The token is read from the
// Authorization header ("Bearer <token>") or, for older clients, a bare Auth
// header.
func AuthMiddleware(c *fiber.Ctx) error {
	var tokenString string

	if auth := c.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		tokenString = strings.TrimPrefix(auth, "Bearer ")
	}
	if tokenString == "" {
		tokenString = c.Get("Auth")
	}

	if tokenString == "" {
		return c.Status(401).JSON(fiber.Map{"message": "No token found"})
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"message": "Invalid token"})
	}

	clearance, err := security.Clearance(claims.Roles)
	if err != nil {
		return c.Status(403).JSON(fiber.Map{"message": "Your account holds no recognised roles"})
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("user_email", claims.Email)
	c.Locals("user_roles", claims.Roles)
	c.Locals("clearance", clearance)

	return c.Next()
}

// UserID returns the authenticated caller's id.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

// Roles returns the authenticated caller's role names.
func Roles(c *fiber.Ctx) []string {
	roles, _ := c.Locals("user_roles").([]string)
	return roles
}

// Clearance returns the caller's clearance as computed by AuthMiddleware.
func Clearance(c *fiber.Ctx) int {
	clearance, _ := c.Locals("clearance").(int)
	return clearance
}

// HasRole reports whether the caller holds the named role. The one-active-PC
// rule cares about exact roles held, not just the clearance ceiling.
func HasRole(c *fiber.Ctx, name string) bool {
	for _, role := range Roles(c) {
		if role == name {
			return true
		}
	}
	return false
}
