package database

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrNoSuchPC and ErrNoSuchNPC indicate a contact referenced a missing parent.
	ErrNoSuchPC  = errors.New("PC not found")
	ErrNoSuchNPC = errors.New("NPC not found")

	// ErrActiveCharacterExists indicates the owner already has an Active PC.
	ErrActiveCharacterExists = errors.New("owner already has an active character")

	// ErrEmailTaken indicates a user with that email already exists.
	ErrEmailTaken = errors.New("email already registered")

	// ErrUnknownRole indicates a role name with no row in the roles table.
	ErrUnknownRole = errors.New("unknown role")
)
