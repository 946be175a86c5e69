package models

import "time"

// Contact links one PC to one NPC with the relationship scores attached.
// Security gates who may edit or delete the link.
type Contact struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid" validate:"required,uuid"`
	Character  string    `json:"character" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Contact    string    `json:"contact" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Security   string    `json:"security" gorm:"not null" validate:"required"`
	Connection int       `json:"connection" gorm:"not null;default:1"`
	Loyalty    int       `json:"loyalty" gorm:"not null"`
	Chips      int       `json:"chips" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// ContactDetail is a contact joined with its NPC, as embedded in a PC response.
type ContactDetail struct {
	ContactID  string `json:"-"`
	Name       string `json:"name"`
	Connection int    `json:"connection"`
	Loyalty    int    `json:"loyalty"`
	Chips      int    `json:"chips"`
}
