package models

// CharacterStatus defines the possible status values for a character.
type CharacterStatus string

const (
	StatusActive  CharacterStatus = "Active"
	StatusRetired CharacterStatus = "Retired"
	StatusDead    CharacterStatus = "Dead"
	StatusMIA     CharacterStatus = "MIA"
	StatusAWOL    CharacterStatus = "AWOL"
	StatusOther   CharacterStatus = "Other"
)

// StatusMessage is returned whenever a request carries an unknown status.
const StatusMessage = "Status must be one of: Active, Retired, Dead, MIA, AWOL or Other"

// ValidCharacterStatus reports whether s is part of the status vocabulary.
func ValidCharacterStatus(s string) bool {
	switch CharacterStatus(s) {
	case StatusActive, StatusRetired, StatusDead, StatusMIA, StatusAWOL, StatusOther:
		return true
	}
	return false
}
