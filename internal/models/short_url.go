package models

import "time"

// ShortURL représente un lien raccourci dans la base de données.
// ShortCode is unique across every owner; AccessCount only grows on resolution.
type ShortURL struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	URL         string    `gorm:"type:text;not null" json:"url"`
	ShortCode   string    `gorm:"uniqueIndex;size:64;not null" json:"short_code"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	AccessCount int64     `gorm:"not null;default:0" json:"access_count"`
	OwnerID     uint      `gorm:"index;not null" json:"owner_id"`
}
