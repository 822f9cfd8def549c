package models

import (
	"time"

	"gorm.io/gorm"
)

// Investment status constants
const (
	InvestmentStatusPending   = "pending"
	InvestmentStatusActive    = "active"
	InvestmentStatusExpired   = "expired"
	InvestmentStatusCancelled = "cancelled"
)

// Investment represents a user's purchase of a Plan
type Investment struct {
	gorm.Model
	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`
	PlanID uint `gorm:"not null;index" json:"plan_id"`
	Plan   Plan `gorm:"foreignKey:PlanID" json:"-"`
	// Amount is the price paid, stored independently of the plan so that
	// later catalog price changes do not rewrite history.
	Amount       float64   `gorm:"not null" json:"amount"`
	PurchaseDate time.Time `json:"purchase_date"`
	ExpiryDate   time.Time `json:"expiry_date"`
	Status       string    `gorm:"default:'pending';index" json:"status"`
	// LastAccrualDate is the last calendar day profit was settled for.
	// Nil means no day has been settled yet. It never moves past
	// min(today, ExpiryDate) and only advances one day at a time.
	LastAccrualDate *time.Time `json:"last_accrual_date,omitempty"`
	// ReferralPaid guards against double-paying sponsor commissions when
	// an activation is retried.
	ReferralPaid bool `gorm:"default:false" json:"referral_paid"`
}
