package models

import "time"

// Priority of a contact inquiry.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

func (p Priority) Valid() bool {
	for _, known := range Priorities {
		if p == known {
			return true
		}
	}
	return false
}

// DefaultMessageCategory is used when an inquiry arrives without a category.
const DefaultMessageCategory = "general"

// Message represents the messages collection (contact-form inquiries).
type Message struct {
	ID            string     `gorm:"primaryKey;column:id;size:36" json:"id"`
	Name          string     `gorm:"column:name" json:"name"`
	Email         string     `gorm:"column:email;index" json:"email"`
	Subject       string     `gorm:"column:subject" json:"subject"`
	Body          string     `gorm:"column:body;type:text" json:"body"`
	IsRead        bool       `gorm:"column:is_read;index" json:"is_read"`
	Priority      Priority   `gorm:"column:priority;size:16" json:"priority"`
	Category      string     `gorm:"column:category;size:64" json:"category"`
	AdminResponse *string    `gorm:"column:admin_response;type:text" json:"admin_response,omitempty"`
	RespondedAt   *time.Time `gorm:"column:responded_at" json:"responded_at,omitempty"`
	RespondedBy   *string    `gorm:"column:responded_by" json:"responded_by,omitempty"`
	CreatedAt     time.Time  `gorm:"column:created_at;index" json:"created_at"`
	Audit         `gorm:"embedded"`
}

func (Message) TableName() string { return "messages" }

// Responded reports whether an admin has answered the inquiry.
func (m Message) Responded() bool {
	return m.AdminResponse != nil
}
