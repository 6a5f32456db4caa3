package models

import "time"

// PaperStatus is the review state of a paper.
type PaperStatus string

const (
	PaperStatusSubmitted        PaperStatus = "submitted"
	PaperStatusUnderReview      PaperStatus = "under_review"
	PaperStatusAccepted         PaperStatus = "accepted"
	PaperStatusRejected         PaperStatus = "rejected"
	PaperStatusRevisionRequired PaperStatus = "revision_required"
)

// PaperStatuses lists every paper status in workflow order.
var PaperStatuses = []PaperStatus{
	PaperStatusSubmitted,
	PaperStatusUnderReview,
	PaperStatusAccepted,
	PaperStatusRejected,
	PaperStatusRevisionRequired,
}

// Valid reports whether s is a known paper status.
func (s PaperStatus) Valid() bool {
	for _, known := range PaperStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Paper represents the papers collection.
type Paper struct {
	ID               string      `gorm:"primaryKey;column:id;size:36" json:"id"`
	Title            string      `gorm:"column:title;size:255" json:"title"`
	Abstract         string      `gorm:"column:abstract;type:text" json:"abstract"`
	Keywords         []string    `gorm:"column:keywords;type:text;serializer:json" json:"keywords"`
	OwnerID          string      `gorm:"column:owner_id;size:36;index" json:"owner_id"`
	File             FileMeta    `gorm:"embedded;embeddedPrefix:file_" json:"file"`
	Status           PaperStatus `gorm:"column:status;size:32;index" json:"status"`
	ReviewerComments *string     `gorm:"column:reviewer_comments;type:text" json:"reviewer_comments,omitempty"`
	ReviewedBy       *string     `gorm:"column:reviewed_by;size:36" json:"reviewed_by,omitempty"`
	SubmittedAt      time.Time   `gorm:"column:submitted_at;index" json:"submitted_at"`
	ReviewedAt       *time.Time  `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	Audit            `gorm:"embedded"`
}

func (Paper) TableName() string { return "papers" }

// PaperReview is one entry of a paper's review trail.
type PaperReview struct {
	ID           string      `gorm:"primaryKey;column:id;size:36" json:"id"`
	PaperID      string      `gorm:"column:paper_id;size:36;index" json:"paper_id"`
	OldStatus    PaperStatus `gorm:"column:old_status;size:32" json:"old_status"`
	NewStatus    PaperStatus `gorm:"column:new_status;size:32" json:"new_status"`
	Comment      *string     `gorm:"column:comment;type:text" json:"comment,omitempty"`
	ReviewerID   string      `gorm:"column:reviewer_id;size:36" json:"reviewer_id"`
	ReviewerName string      `gorm:"column:reviewer_name" json:"reviewer_name"`
	CreatedAt    time.Time   `gorm:"column:created_at" json:"created_at"`
	Audit        `gorm:"embedded"`
}

func (PaperReview) TableName() string { return "paper_reviews" }
