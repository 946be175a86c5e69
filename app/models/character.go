package models

import "time"

// PC is a player character. PCs are owned by the user who created them and
// can only be edited by that owner or a GM-and-above caller.
type PC struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid" validate:"required,uuid"`
	Name        string    `json:"name" gorm:"not null" validate:"required"`
	Description string    `json:"description"`
	Status      string    `json:"status" gorm:"not null;default:'Active'"`
	Owner       string    `json:"owner" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Karma       int       `json:"karma" gorm:"not null"`
	Nuyen       int       `json:"nuyen" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// NPC is a world character. Security holds the name of the minimum role
// required to view or edit the record.
type NPC struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid" validate:"required,uuid"`
	Name        string    `json:"name" gorm:"not null" validate:"required"`
	Description string    `json:"description"`
	Status      string    `json:"status" gorm:"not null;default:'Active'"`
	Security    string    `json:"security" gorm:"not null" validate:"required"`
	Connection  int       `json:"connection" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
