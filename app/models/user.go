package models

import "time"

type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid" validate:"required,uuid"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null" validate:"required,email"`
	Password  string    `json:"-" gorm:"not null" validate:"required,min=8"`
	Active    bool      `json:"active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
	Roles     []*Role   `json:"roles,omitempty" gorm:"many2many:user_roles;"`
}

// RoleNames flattens the user's roles for token claims and clearance checks.
func (u *User) RoleNames() []string {
	names := make([]string, len(u.Roles))
	for i, role := range u.Roles {
		names[i] = role.Name
	}
	return names
}
