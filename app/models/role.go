package models

// Role represents an access level a user holds (e.g. Player, GM)
type Role struct {
	ID          string  `json:"id" gorm:"primaryKey;type:uuid" validate:"required,uuid"`
	Name        string  `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	Description string  `json:"description,omitempty"`
	Users       []*User `json:"users,omitempty" gorm:"many2many:user_roles;"`
}
