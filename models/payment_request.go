package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentRequest status constants
const (
	PaymentRequestStatusPending  = "pending"
	PaymentRequestStatusApproved = "approved"
	PaymentRequestStatusRejected = "rejected"
)

// PaymentRequest is a user-submitted claim of having paid, awaiting manual
// admin verification against the supplied transaction reference. A nil
// PlanID means wallet recharge; a set PlanID means plan purchase.
type PaymentRequest struct {
	gorm.Model
	UserID uint    `gorm:"not null;index" json:"user_id"`
	User   User    `gorm:"foreignKey:UserID" json:"-"`
	PlanID *uint   `gorm:"index" json:"plan_id,omitempty"`
	Plan   *Plan   `gorm:"foreignKey:PlanID" json:"-"`
	Amount float64 `gorm:"not null" json:"amount"`
	// TransactionID is the free-text UTR/reference the user copied from
	// their payment app. Verified by eye, not by machine.
	TransactionID   string     `gorm:"not null" json:"transaction_id"`
	PaymentMethod   string     `json:"payment_method"`
	Status          string     `gorm:"default:'pending';index" json:"status"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	// InvestmentID is set when approval of a plan purchase created an
	// investment, so retried approvals find the existing record.
	InvestmentID *uint `json:"investment_id,omitempty"`
}
