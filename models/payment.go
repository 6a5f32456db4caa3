package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the processing state of a registration payment.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

var PaymentStatuses = []PaymentStatus{
	PaymentStatusPending,
	PaymentStatusCompleted,
	PaymentStatusFailed,
	PaymentStatusRefunded,
}

func (s PaymentStatus) Valid() bool {
	for _, known := range PaymentStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Payment represents the payments collection.
type Payment struct {
	ID            string          `gorm:"primaryKey;column:id;size:36" json:"id"`
	OwnerID       string          `gorm:"column:owner_id;size:36;index" json:"owner_id"`
	Amount        decimal.Decimal `gorm:"column:amount;type:decimal(12,2)" json:"amount"`
	Currency      string          `gorm:"column:currency;size:3" json:"currency"`
	Status        PaymentStatus   `gorm:"column:status;size:16;index" json:"status"`
	PaymentMethod string          `gorm:"column:payment_method;size:64" json:"payment_method"`
	TransactionID string          `gorm:"column:transaction_id;size:64;uniqueIndex" json:"transaction_id"`
	Notes         *string         `gorm:"column:notes;type:text" json:"notes,omitempty"`
	Slip          FileMeta        `gorm:"embedded;embeddedPrefix:slip_" json:"slip"`
	CreatedAt     time.Time       `gorm:"column:created_at;index" json:"created_at"`
	ProcessedAt   *time.Time      `gorm:"column:processed_at" json:"processed_at,omitempty"`
	ProcessedBy   *string         `gorm:"column:processed_by;size:36" json:"processed_by,omitempty"`
	Audit         `gorm:"embedded"`
}

func (Payment) TableName() string { return "payments" }
