package models

import "time"

// UserProfile holds free-form contact and academic details, one per user.
type UserProfile struct {
	ID          string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	OwnerID     string    `gorm:"column:owner_id;size:36;uniqueIndex:uq_user_profiles_owner" json:"owner_id"`
	FullName    string    `gorm:"column:full_name" json:"full_name"`
	Email       string    `gorm:"column:email" json:"email"`
	Phone       string    `gorm:"column:phone" json:"phone"`
	Affiliation string    `gorm:"column:affiliation" json:"affiliation"`
	Position    string    `gorm:"column:position" json:"position"`
	Country     string    `gorm:"column:country" json:"country"`
	Bio         string    `gorm:"column:bio;type:text" json:"bio"`
	ORCID       string    `gorm:"column:orcid;size:32" json:"orcid"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	Audit       `gorm:"embedded"`
}

func (UserProfile) TableName() string { return "user_profiles" }
