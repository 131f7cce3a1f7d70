package models

import (
	"fmt"
	"time"
)

// Role is the closed set of roles a User may hold.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole converts a raw string into a Role. An empty string maps to RoleUser.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case "", RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a registered account in the database.
// Deleting a user removes every ShortURL it owns.
type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Email          string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Username       string     `gorm:"uniqueIndex;size:64;not null" json:"username"`
	FirstName      string     `gorm:"size:100" json:"firstname"`
	LastName       string     `gorm:"size:100" json:"lastname"`
	HashedPassword string     `gorm:"not null" json:"-"`
	Role           Role       `gorm:"type:varchar(16);not null" json:"role"`
	IsActive       bool       `gorm:"not null" json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	URLs           []ShortURL `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
}
