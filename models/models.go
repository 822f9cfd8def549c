package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a regular user in the system
type User struct {
	gorm.Model
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Password     string    `json:"-"`
	Phone        string    `json:"phone"`
	IsBlocked    bool      `json:"is_blocked"`
	IsVerified   bool      `json:"is_verified" gorm:"default:false"`
	IsAdmin      bool      `json:"is_admin" gorm:"default:false"`
	OTP          string    `json:"-"`
	OTPExpiresAt time.Time `json:"-"`
	LastLoginAt  time.Time `json:"last_login_at"`

	// ReferralCode is generated once at registration and shared by the user
	// to sponsor new signups.
	ReferralCode string `gorm:"uniqueIndex" json:"referral_code"`
	// SponsorID links to the user whose referral code was used at signup.
	// Nil means the user joined without a sponsor. Immutable once set.
	SponsorID *uint `gorm:"index" json:"sponsor_id,omitempty"`
	Sponsor   *User `gorm:"foreignKey:SponsorID" json:"-"`
}

// Admin represents an administrator in the system
type Admin struct {
	gorm.Model
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	LastLogin time.Time `json:"last_login"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
}
