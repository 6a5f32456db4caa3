package models

import "time"

// FileMeta describes a stored upload. Only metadata is kept on records; the bytes live in the
// file store under Path.
type FileMeta struct {
	Name     string `gorm:"column:name" json:"name"`
	Size     int64  `gorm:"column:size" json:"size"`
	Path     string `gorm:"column:path" json:"path"`
	MimeType string `gorm:"column:mime_type" json:"mime_type"`
}

// Audit holds the bookkeeping columns shared by every collection.
type Audit struct {
	Version   int64     `gorm:"column:version;not null;default:1" json:"version"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// EnsureVersion sets the initial version on a record about to be created.
func (a *Audit) EnsureVersion() {
	if a.Version == 0 {
		a.Version = 1
	}
}
