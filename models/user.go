package models

import (
	"time"
)

// Role is the authorization role of a principal.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

type User struct {
	ID          string    `gorm:"primaryKey;column:id;size:36" json:"id"`
	Email       string    `gorm:"column:email;unique" json:"email"`
	DisplayName string    `gorm:"column:display_name" json:"display_name"`
	Password    string    `gorm:"column:password" json:"-"`
	Role        Role      `gorm:"column:role;size:16" json:"role"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	Audit       `gorm:"embedded"`
}

// TableName overrides
func (User) TableName() string {
	return "users"
}
