package services

import (
	"errors"
	"fmt"

	"github.com/arvind-722/ProfitNest/models"
	"github.com/arvind-722/ProfitNest/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var validTransactionTypes = map[string]bool{
	models.TransactionTypeInvestment: true,
	models.TransactionTypeEarning:    true,
	models.TransactionTypeReferral:   true,
	models.TransactionTypeWithdrawal: true,
	models.TransactionTypeRecharge:   true,
}

// AppendTransaction adds a new ledger entry for the user. The ledger is
// append-only; entries are never deleted, and the only later mutation
// allowed is the one-way pending -> completed/rejected status transition.
func AppendTransaction(db *gorm.DB, userID uint, txType string, amount float64, status, description string) (*models.Transaction, error) {
	if !validTransactionTypes[txType] {
		return nil, fmt.Errorf("%w: unknown transaction type %q", ErrValidation, txType)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than 0", ErrValidation)
	}
	if status != models.TransactionStatusPending && status != models.TransactionStatusCompleted {
		return nil, fmt.Errorf("%w: new transactions must be pending or completed", ErrValidation)
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return nil, err
	}

	transaction := models.Transaction{
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Status:      status,
		Reference:   fmt.Sprintf("TXN-%s", uuid.New().String()),
		Description: description,
	}
	if err := db.Create(&transaction).Error; err != nil {
		return nil, err
	}
	utils.LogDebug("Appended %s transaction %s for user %d: %.2f (%s)",
		txType, transaction.Reference, userID, amount, status)
	return &transaction, nil
}

// CompleteTransaction moves a pending transaction to completed. Completing
// an already-completed transaction is a no-op; a rejected transaction can
// never be completed.
func CompleteTransaction(db *gorm.DB, id uint) error {
	return transitionTransaction(db, id, models.TransactionStatusCompleted)
}

// RejectTransaction moves a pending transaction to rejected. Rejecting an
// already-rejected transaction is a no-op; a completed transaction can
// never be rejected.
func RejectTransaction(db *gorm.DB, id uint) error {
	return transitionTransaction(db, id, models.TransactionStatusRejected)
}

func transitionTransaction(db *gorm.DB, id uint, target string) error {
	var transaction models.Transaction
	if err := db.First(&transaction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("transaction %d: %w", id, ErrNotFound)
		}
		return err
	}

	if transaction.Status == target {
		// Re-applying the same transition is a no-op, not an error
		return nil
	}
	if transaction.Status != models.TransactionStatusPending {
		return fmt.Errorf("transaction %d is %s: %w", id, transaction.Status, ErrInvalidStateTransition)
	}

	// Guarded update so two racing callers cannot both win
	result := db.Model(&models.Transaction{}).
		Where("id = ? AND status = ?", id, models.TransactionStatusPending).
		Update("status", target)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("transaction %d: %w", id, ErrConcurrencyConflict)
	}
	utils.LogDebug("Transaction %d moved to %s", id, target)
	return nil
}

// GetBalance folds the user's completed ledger entries into a balance.
// Pending and rejected entries never count.
func GetBalance(db *gorm.DB, userID uint) (float64, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return 0, err
	}

	var balance float64
	err := db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(CASE WHEN type IN (?, ?, ?) THEN amount ELSE -amount END), 0)",
			models.TransactionTypeEarning, models.TransactionTypeReferral, models.TransactionTypeRecharge).
		Where("user_id = ? AND status = ?", userID, models.TransactionStatusCompleted).
		Scan(&balance).Error
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// GetTransactionHistory returns the user's ledger entries, newest first
func GetTransactionHistory(db *gorm.DB, userID uint, limit, offset int) ([]models.Transaction, int64, error) {
	var total int64
	if err := db.Model(&models.Transaction{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var transactions []models.Transaction
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&transactions).Error
	if err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}
