package contacts

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

func contactURI(id string) string {
	return "/api/contact/" + id
}

// CreateContactAPI links a PC to an NPC. Creation is a GM-and-above action
// regardless of the security level the link is given.
func CreateContactAPI(c *fiber.Ctx) error {
	type createRequest struct {
		Character  *string `json:"character"`
		Contact    *string `json:"contact"`
		Security   *string `json:"security"`
		Connection *int    `json:"connection"`
		Loyalty    *int    `json:"loyalty"`
		Chips      *int    `json:"chips"`
	}

	var req createRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"message": "Invalid request"})
		}
	}

	missing := fiber.Map{}
	if req.Character == nil {
		missing["character"] = "Character (PC) id is required"
	}
	if req.Contact == nil {
		missing["contact"] = "Contact (NPC) id is required"
	}
	if req.Security == nil {
		missing["security"] = "Security level is required"
	}
	if req.Loyalty == nil {
		missing["loyalty"] = "Loyalty rating is required"
	}
	if req.Chips == nil {
		missing["chips"] = "Chips are required"
	}
	if len(missing) > 0 {
		return c.Status(400).JSON(fiber.Map{"message": missing})
	}

	clearance := auth.Clearance(c)
	if err := security.Authorize(clearance, "GM", "create contacts"); err != nil {
		return c.Status(security.HTTPStatus(err)).JSON(fiber.Map{"message": err.Error()})
	}
	action := fmt.Sprintf("create a contact with security %s", *req.Security)
	if err := security.Authorize(clearance, *req.Security, action); err != nil {
		return c.Status(security.HTTPStatus(err)).JSON(fiber.Map{"message": err.Error()})
	}

	connection := 1
	if req.Connection != nil {
		connection = *req.Connection
	}

	contact := &models.Contact{
		Character:  *req.Character,
		Contact:    *req.Contact,
		Security:   *req.Security,
		Connection: connection,
		Loyalty:    *req.Loyalty,
		Chips:      *req.Chips,
	}
	if err := config.GetStore().CreateContact(contact); err != nil {
		switch {
		case errors.Is(err, database.ErrNoSuchPC):
			return c.Status(404).JSON(fiber.Map{"message": "The requested PC does not exist"})
		case errors.Is(err, database.ErrNoSuchNPC):
			return c.Status(404).JSON(fiber.Map{"message": "The requested NPC does not exist"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Failed to create contact"})
	}

	return c.Status(201).JSON(fiber.Map{"URI": contactURI(contact.ID)})
}

// UpdateContactAPI applies a partial update to the relationship scores or
// security level of a contact.
func UpdateContactAPI(c *fiber.Ctx) error {
	type updateRequest struct {
		Security   *string `json:"security"`
		Connection *int    `json:"connection"`
		Loyalty    *int    `json:"loyalty"`
		Chips      *int    `json:"chips"`
	}

	store := config.GetStore()
	contact, err := store.GetContact(c.Params("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "The requested contact does not exist"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Failed to fetch contact"})
	}

	clearance := auth.Clearance(c)
	if err := security.Authorize(clearance, contact.Security, "edit this contact"); err != nil {
		return c.Status(security.HTTPStatus(err)).JSON(fiber.Map{"message": err.Error()})
	}

	var req updateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"message": "Invalid request"})
		}
	}

	if req.Security != nil {
		action := fmt.Sprintf("change a contacts security to %s", *req.Security)
		if err := security.Authorize(clearance, *req.Security, action); err != nil {
			return c.Status(security.HTTPStatus(err)).JSON(fiber.Map{"message": err.Error()})
		}
	}

	changed := make([]string, 0, 4)
	if req.Security != nil && *req.Security != contact.Security {
		contact.Security = *req.Security
		changed = append(changed, "security")
	}
	if req.Connection != nil && *req.Connection != contact.Connection {
		contact.Connection = *req.Connection
		changed = append(changed, "connection")
	}
	if req.Loyalty != nil && *req.Loyalty != contact.Loyalty {
		contact.Loyalty = *req.Loyalty
		changed = append(changed, "loyalty")
	}
	if req.Chips != nil && *req.Chips != contact.Chips {
		contact.Chips = *req.Chips
		changed = append(changed, "chips")
	}

	if len(changed) > 0 {
		if err := store.UpdateContact(contact); err != nil {
			return c.Status(500).JSON(fiber.Map{"message": "Failed to update contact"})
		}
	}

	return c.JSON(fiber.Map{"URI": contactURI(contact.ID), "changed": changed})
}

// DeleteContactAPI removes a contact
func DeleteContactAPI(c *fiber.Ctx) error {
	store := config.GetStore()
	contact, err := store.GetContact(c.Params("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "The requested contact does not exist"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Failed to fetch contact"})
	}

	if err := security.Authorize(auth.Clearance(c), contact.Security, "delete this contact"); err != nil {
		return c.Status(security.HTTPStatus(err)).JSON(fiber.Map{"message": err.Error()})
	}

	if err := store.DeleteContact(contact.ID); err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to delete contact"})
	}
	return c.JSON(fiber.Map{"message": "Success"})
}
