package auth

import (
	"errors"

	"github.com/Sandvich/runnersbackend/app/config"
	"github.com/Sandvich/runnersbackend/app/database"

	"github.com/gofiber/fiber/v2"
)

// LoginAPI exchanges email and password for a bearer token. User-not-found
// and wrong-password are both 403 but keep distinct messages, matching the
// behaviour the API has always had.
func LoginAPI(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    *string `json:"email"`
		Password *string `json:"password"`
	}

	var req LoginRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"message": "Invalid request"})
		}
	}

	missing := fiber.Map{}
	if req.Email == nil {
		missing["email"] = "Email required!"
	}
	if req.Password == nil {
		missing["password"] = "Password required!"
	}
	if len(missing) > 0 {
		return c.Status(400).JSON(fiber.Map{"message": missing})
	}

	user, err := config.GetStore().GetUserByEmail(*req.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(403).JSON(fiber.Map{"message": "User not found"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Database error"})
	}

	if !CheckPasswordHash(*req.Password, user.Password) {
		return c.Status(403).JSON(fiber.Map{"message": "Wrong password"})
	}

	token, err := GenerateJWT(user.ID, user.Email, user.RoleNames())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to generate token"})
	}

	return c.JSON(fiber.Map{"auth": token})
}
