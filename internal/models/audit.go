package models

import "time"

// SlugField carries the URL-safe identifier derived from a display name.
// The slug is recomputed from the current name on every persisted write
// and is never accepted from client input.
type SlugField struct {
	Slug string `gorm:"type:varchar(255);index" json:"slug"`
}

// AuditField stamps a record with its first persistence time.
type AuditField struct {
	CreatedAt time.Time `json:"created_at"`
}

// SoftDeleteField marks a record as logically retired. The regular delete
// path flips the flag instead of removing the row; list queries exclude
// flagged rows.
type SoftDeleteField struct {
	IsDeleted bool `gorm:"not null;default:false" json:"is_deleted"`
}
