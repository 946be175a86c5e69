package npc

import (
	"errors"
	"fmt"

	"github.com/Sandvich/runnersbackend/app/config"
	"github.com/Sandvich/runnersbackend/app/database"
	"github.com/Sandvich/runnersbackend/app/models"
	"github.com/Sandvich/runnersbackend/app/routes/auth"
	"github.com/Sandvich/runnersbackend/app/security"

	"github.com/gofiber/fiber/v2"
)

type npcRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Security    *string `json:"security"`
	Connection  *int    `json:"connection"`
}

func npcURI(id string) string {
	return "/api/npc/" + id
}

// GetNPCsAPI lists NPCs the caller is cleared to view
func GetNPCsAPI(c *fiber.Ctx) error {
	npcs, err := config.GetStore().ListNPCs()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to fetch NPCs"})
	}

	clearance := auth.Clearance(c)
	list := make([]fiber.Map, 0, len(npcs))
	for _, char := range npcs {
		rank, err := security.Rank(char.Security)
		if err != nil || clearance < rank {
			continue
		}
		list = append(list, fiber.Map{"name": char.Name, "URI": npcURI(char.ID)})
	}
	return c.JSON(list)
}

// CreateNPCAPI creates an NPC. The caller needs clearance at least equal to
// the security level the record is being given.
func CreateNPCAPI(c *fiber.Ctx) error {
	var req npcRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"message": "Invalid request"})
		}
	}

	missing := fiber.Map{}
	if req.Name == nil {
		missing["name"] = "NPC name is required"
	}
	if req.Description == nil {
		missing["description"] = "Description required"
	}
	if req.Security == nil {
		missing["security"] = "Security level is required"
	}
	if req.Connection == nil {
		missing["connection"] = "Connection rating is required"
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

	action := fmt.Sprintf("create a new NPC with security %s", *req.Security)
	if err := security.Authorize(auth.Clearance(c), *req.Security, action); err != nil {
		return c.Status(security.HTTPStatus(err)).JSON(fiber.Map{"message": err.Error()})
	}

	char := &models.NPC{
		Name:        *req.Name,
		Description: *req.Description,
		Status:      status,
		Security:    *req.Security,
		Connection:  *req.Connection,
	}
	if err := config.GetStore().CreateNPC(char); err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to create NPC"})
	}

	return c.Status(201).JSON(fiber.Map{"URI": npcURI(char.ID)})
}

// GetNPCAPI returns one NPC, provided the caller clears its security level
func GetNPCAPI(c *fiber.Ctx) error {
	char, err := config.GetStore().GetNPC(c.Params("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "NPC does not exist"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Failed to fetch NPC"})
	}

	if err := security.Authorize(auth.Clearance(c), char.Security, "view this NPC"); err != nil {
		return c.Status(security.HTTPStatus(err)).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(fiber.Map{
		"name":        char.Name,
		"description": char.Description,
		"status":      char.Status,
		"security":    char.Security,
		"connection":  char.Connection,
	})
}

// UpdateNPCAPI applies a partial update. Raising or lowering the security
// level requires clearance for both the old and the new value.
func UpdateNPCAPI(c *fiber.Ctx) error {
	store := config.GetStore()
	char, err := store.GetNPC(c.Params("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "NPC does not exist"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Failed to fetch NPC"})
	}

	clearance := auth.Clearance(c)
	if err := security.Authorize(clearance, char.Security, "edit this NPC"); err != nil {
		return c.Status(security.HTTPStatus(err)).JSON(fiber.Map{"message": err.Error()})
	}

	var req npcRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"message": "Invalid request"})
		}
	}

	if req.Security != nil {
		action := fmt.Sprintf("change an NPCs security to %s", *req.Security)
		if err := security.Authorize(clearance, *req.Security, action); err != nil {
			return c.Status(security.HTTPStatus(err)).JSON(fiber.Map{"message": err.Error()})
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
	if req.Security != nil && *req.Security != char.Security {
		char.Security = *req.Security
		changed = append(changed, "security")
	}
	if req.Connection != nil && *req.Connection != char.Connection {
		char.Connection = *req.Connection
		changed = append(changed, "connection")
	}

	if len(changed) > 0 {
		if err := store.UpdateNPC(char); err != nil {
			return c.Status(500).JSON(fiber.Map{"message": "Failed to update NPC"})
		}
	}

	return c.JSON(fiber.Map{"URI": npcURI(char.ID), "changed": changed})
}

// DeleteNPCAPI removes an NPC and cascades to its contacts
func DeleteNPCAPI(c *fiber.Ctx) error {
	store := config.GetStore()
	char, err := store.GetNPC(c.Params("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "NPC does not exist"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Failed to fetch NPC"})
	}

	if err := security.Authorize(auth.Clearance(c), char.Security, "delete this NPC"); err != nil {
		return c.Status(security.HTTPStatus(err)).JSON(fiber.Map{"message": err.Error()})
	}

	if err := store.DeleteNPC(char.ID); err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to delete NPC"})
	}
	return c.JSON(fiber.Map{"message": "Success"})
}
