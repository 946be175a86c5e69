package pc

import (
	"errors"

	"github.com/Sandvich/runnersbackend/app/config"
	"github.com/Sandvich/runnersbackend/app/database"
	"github.com/Sandvich/runnersbackend/app/models"
	"github.com/Sandvich/runnersbackend/app/routes/auth"
	"github.com/Sandvich/runnersbackend/app/security"

	"github.com/gofiber/fiber/v2"
)

type pcRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Karma       *int    `json:"karma"`
	Nuyen       *int    `json:"nuyen"`
}

func pcURI(id string) string {
	return "/api/pc/" + id
}

// GetPCsAPI lists all player characters as name/URI pairs
func GetPCsAPI(c *fiber.Ctx) error {
	pcs, err := config.GetStore().ListPCs()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to fetch characters"})
	}

	list := make([]fiber.Map, 0, len(pcs))
	for _, char := range pcs {
		list = append(list, fiber.Map{"name": char.Name, "URI": pcURI(char.ID)})
	}
	return c.JSON(list)
}

// CreatePCAPI creates a player character owned by the caller. Callers whose
// only role is Player may hold one Active character at a time.
func CreatePCAPI(c *fiber.Ctx) error {
	var req pcRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"message": "Invalid request"})
		}
	}

	missing := fiber.Map{}
	if req.Name == nil {
		missing["name"] = "Character name is required"
	}
	if req.Description == nil {
		missing["description"] = "Description required"
	}
	if req.Karma == nil {
		missing["karma"] = "Karma level is required"
	}
	if req.Nuyen == nil {
		missing["nuyen"] = "Nuyen is required"
	}
	if len(missing) > 0 {
		return c.Status(400).JSON(fiber.Map{"message": missing})
	}

	status := string(models.StatusActive)
	if req.Status != nil {
		if !models.ValidCharacterStatus(*req.Status) {
			return c.Status(400).JSON(fiber.Map{"message": models.StatusMessage})
		}
		status = *req.Status
	}

	// The one-active rule only binds callers who are Players without GM
	// access, and only when the new character would be Active.
	enforce := auth.HasRole(c, "Player") && !auth.HasRole(c, "GM") && status == string(models.StatusActive)

	char := &models.PC{
		Name:        *req.Name,
		Description: *req.Description,
		Status:      status,
		Owner:       auth.UserID(c),
		Karma:       *req.Karma,
		Nuyen:       *req.Nuyen,
	}
	if err := config.GetStore().CreatePC(char, enforce); err != nil {
		if errors.Is(err, database.ErrActiveCharacterExists) {
			return c.Status(403).JSON(fiber.Map{"message": "Players may only make one active character"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Failed to create character"})
	}

	return c.Status(201).JSON(fiber.Map{"URI": pcURI(char.ID)})
}

// GetPCAPI returns one character along with its contact list
func GetPCAPI(c *fiber.Ctx) error {
	char, err := config.GetStore().GetPC(c.Params("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "The requested character does not exist"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Failed to fetch character"})
	}

	details, err := config.GetStore().ListContactsForPC(char.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to fetch contacts"})
	}
	contacts := make([]fiber.Map, 0, len(details))
	for _, d := range details {
		contacts = append(contacts, fiber.Map{
			"name":       d.Name,
			"connection": d.Connection,
			"loyalty":    d.Loyalty,
			"chips":      d.Chips,
			"URI":        "/api/contact/" + d.ContactID,
		})
	}

	return c.JSON(fiber.Map{
		"name":        char.Name,
		"description": char.Description,
		"URI":         pcURI(char.ID),
		"status":      char.Status,
		"karma":       char.Karma,
		"nuyen":       char.Nuyen,
		"contacts":    contacts,
	})
}

// UpdatePCAPI applies a partial update; only fields present in the body and
// differing from the stored value are written.
func UpdatePCAPI(c *fiber.Ctx) error {
	store := config.GetStore()
	char, err := store.GetPC(c.Params("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "The requested character does not exist"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Failed to fetch character"})
	}

	if char.Owner != auth.UserID(c) && auth.Clearance(c) < security.RankGM {
		return c.Status(403).JSON(fiber.Map{"message": "You may only edit your own characters"})
	}

	var req pcRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"message": "Invalid request"})
		}
	}

	if req.Status != nil && !models.ValidCharacterStatus(*req.Status) {
		return c.Status(400).JSON(fiber.Map{"message": models.StatusMessage})
	}

	changed := make([]string, 0, 5)
	if req.Name != nil && *req.Name != char.Name {
		char.Name = *req.Name
		changed = append(changed, "name")
	}
	if req.Description != nil && *req.Description != char.Description {
		char.Description = *req.Description
		changed = append(changed, "description")
	}
	if req.Status != nil && *req.Status != char.Status {
		char.Status = *req.Status
		changed = append(changed, "status")
	}
	if req.Karma != nil && *req.Karma != char.Karma {
		char.Karma = *req.Karma
		changed = append(changed, "karma")
	}
	if req.Nuyen != nil && *req.Nuyen != char.Nuyen {
		char.Nuyen = *req.Nuyen
		changed = append(changed, "nuyen")
	}

	if len(changed) > 0 {
		if err := store.UpdatePC(char); err != nil {
			return c.Status(500).JSON(fiber.Map{"message": "Failed to update character"})
		}
	}

	return c.JSON(fiber.Map{"URI": pcURI(char.ID), "changed": changed})
}

// DeletePCAPI removes a character; its contacts go with it
func DeletePCAPI(c *fiber.Ctx) error {
	store := config.GetStore()
	char, err := store.GetPC(c.Params("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "The requested character does not exist"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Failed to fetch character"})
	}

	if char.Owner != auth.UserID(c) && auth.Clearance(c) < security.RankGM {
		return c.Status(403).JSON(fiber.Map{"message": "You may only delete your own characters"})
	}

	if err := store.DeletePC(char.ID); err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to delete character"})
	}
	return c.JSON(fiber.Map{"message": "Success"})
}
