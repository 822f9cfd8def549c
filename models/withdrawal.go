package models

import (
	"time"

	"gorm.io/gorm"
)

// Withdrawal status constants
const (
	WithdrawalStatusPending   = "pending"
	WithdrawalStatusCompleted = "completed"
	WithdrawalStatusRejected  = "rejected"
)

// Withdrawal method constants
const (
	WithdrawalMethodUPI  = "upi"
	WithdrawalMethodBank = "bank"
)

// Withdrawal is an outbound payout request. Approval debits the ledger only
// if the user's balance covers the amount at approval time; otherwise the
// request stays pending for the admin to reject or retry later.
type Withdrawal struct {
	gorm.Model
	UserID uint    `gorm:"not null;index" json:"user_id"`
	User   User    `gorm:"foreignKey:UserID" json:"-"`
	Amount float64 `gorm:"not null" json:"amount"`
	Method string  `gorm:"not null" json:"method"`
	// Details holds the payout destination (UPI ID or bank account fields)
	// as a JSON payload supplied by the user.
	Details         string     `json:"details"`
	Status          string     `gorm:"default:'pending';index" json:"status"`
	ProcessedAt     *time.Time `json:"processed_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
}
