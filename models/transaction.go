package models

import (
	"gorm.io/gorm"
)

// Transaction type constants
const (
	TransactionTypeInvestment = "investment"
	TransactionTypeEarning    = "earning"
	TransactionTypeReferral   = "referral"
	TransactionTypeWithdrawal = "withdrawal"
	TransactionTypeRecharge   = "recharge"
)

// Transaction status constants
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusRejected  = "rejected"
)

// Transaction is an append-only ledger entry. A user's balance is the fold
// over their completed entries, signed by type: earning, referral and
// recharge credit the balance; investment and withdrawal debit it. Rows are
// never deleted; the only permitted update is the one-way status transition
// pending -> completed/rejected.
type Transaction struct {
	gorm.Model
	UserID      uint    `gorm:"not null;index" json:"user_id"`
	User        User    `gorm:"foreignKey:UserID" json:"-"`
	Type        string  `gorm:"not null;index" json:"type"`
	Amount      float64 `gorm:"not null" json:"amount"`
	Status      string  `gorm:"default:'pending';index" json:"status"`
	Reference   string  `gorm:"uniqueIndex" json:"reference"`
	Description string  `json:"description"`
}

// IsCredit reports whether the transaction type adds to the balance
func (t *Transaction) IsCredit() bool {
	switch t.Type {
	case TransactionTypeEarning, TransactionTypeReferral, TransactionTypeRecharge:
		return true
	}
	return false
}

// SignedAmount returns the amount with the sign implied by the type
func (t *Transaction) SignedAmount() float64 {
	if t.IsCredit() {
		return t.Amount
	}
	return -t.Amount
}
