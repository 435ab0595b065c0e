// Package model defines database models
package model

import "time"

type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	// Accounts start inactive and flip to active only after the
	// verification link from the confirmation mail is opened
	IsActive bool `gorm:"default:false" json:"is_active"`

	// Live confirmation token. Cleared on successful confirmation so a
	// captured link can't re-activate anything later
	VerificationToken *string `gorm:"index" json:"-"`

	Phone     *string   `json:"phone,omitempty"`
	Country   *string   `json:"country,omitempty"`
	AvatarRef *string   `json:"avatar_ref,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	ResendRequest *ResendRequest `gorm:"foreignKey:UserID" json:"-"`
}
