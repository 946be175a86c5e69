package database

import "github.com/Sandvich/runnersbackend/app/models"

// Store is the persistence surface the handlers work against. SQLStore backs
// it with postgres; MemoryStore stands in for tests. Every mutation is a
// single atomic commit: either all field changes land or none do.
type Store interface {
	// Users
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	CreateUser(user *models.User, roleNames []string) error

	// PCs. enforceSingleActive makes CreatePC fail with
	// ErrActiveCharacterExists if the owner already has an Active PC; the
	// check and the insert share one transaction.
	CreatePC(pc *models.PC, enforceSingleActive bool) error
	GetPC(id string) (*models.PC, error)
	ListPCs() ([]*models.PC, error)
	UpdatePC(pc *models.PC) error
	DeletePC(id string) error

	// NPCs
	CreateNPC(npc *models.NPC) error
	GetNPC(id string) (*models.NPC, error)
	ListNPCs() ([]*models.NPC, error)
	UpdateNPC(npc *models.NPC) error
	DeleteNPC(id string) error

	// Contacts. CreateContact verifies both parents and fails with
	// ErrNoSuchPC or ErrNoSuchNPC. Deleting a PC or NPC cascades to its
	// contacts.
	CreateContact(contact *models.Contact) error
	GetContact(id string) (*models.Contact, error)
	UpdateContact(contact *models.Contact) error
	DeleteContact(id string) error
	ListContactsForPC(pcID string) ([]*models.ContactDetail, error)
}
