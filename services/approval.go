package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/arvind-722/ProfitNest/models"
	"github.com/arvind-722/ProfitNest/utils"
	"gorm.io/gorm"
)

// ApprovePaymentRequest transitions a pending payment request to approved
// and applies its side effects in one database transaction: a recharge
// request credits the ledger; a plan purchase activates an investment and
// pays sponsor commissions. Approving an already-approved request is a
// no-op success so a double-clicked admin button does no harm; approving a
// rejected request fails.
func ApprovePaymentRequest(db *gorm.DB, id uint, now time.Time) (*models.PaymentRequest, error) {
	var request models.PaymentRequest
	if err := db.First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("payment request %d: %w", id, ErrNotFound)
		}
		return nil, err
	}

	switch request.Status {
	case models.PaymentRequestStatusApproved:
		return &request, nil
	case models.PaymentRequestStatusRejected:
		return nil, fmt.Errorf("payment request %d is rejected: %w", id, ErrInvalidStateTransition)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		// Claim the request first; a racing approval loses here and the
		// winner's side effects stand alone
		result := tx.Model(&models.PaymentRequest{}).
			Where("id = ? AND status = ?", id, models.PaymentRequestStatusPending).
			Updates(map[string]interface{}{
				"status":      models.PaymentRequestStatusApproved,
				"approved_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("payment request %d: %w", id, ErrConcurrencyConflict)
		}

		if request.PlanID == nil {
			// Wallet recharge
			description := fmt.Sprintf("Wallet recharge via %s (ref %s)", request.PaymentMethod, request.TransactionID)
			if _, err := AppendTransaction(tx, request.UserID, models.TransactionTypeRecharge,
				request.Amount, models.TransactionStatusCompleted, description); err != nil {
				return err
			}
		} else {
			// Plan purchase paid outside the wallet: activate the
			// investment and pay commissions, no ledger movement for the
			// purchase itself
			investment, err := activateInvestment(tx, &request, now)
			if err != nil {
				return err
			}
			if err := tx.Model(&models.PaymentRequest{}).Where("id = ?", id).
				Update("investment_id", investment.ID).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := db.First(&request, id).Error; err != nil {
		return nil, err
	}
	utils.LogInfo("Approved payment request %d for user %d (amount %.2f)", id, request.UserID, request.Amount)
	return &request, nil
}

func activateInvestment(tx *gorm.DB, request *models.PaymentRequest, now time.Time) (*models.Investment, error) {
	plan, err := GetPlan(tx, *request.PlanID)
	if err != nil {
		return nil, err
	}

	investment := models.Investment{
		UserID:       request.UserID,
		PlanID:       plan.ID,
		Amount:       request.Amount,
		PurchaseDate: now,
		ExpiryDate:   now.AddDate(0, 0, plan.ValidityDays),
		Status:       models.InvestmentStatusActive,
	}
	if err := tx.Create(&investment).Error; err != nil {
		return nil, err
	}

	if err := PayReferralCommissions(tx, &investment); err != nil {
		return nil, err
	}
	utils.LogInfo("Activated investment %d (plan %s) for user %d", investment.ID, plan.Name, request.UserID)
	return &investment, nil
}

// RejectPaymentRequest transitions a pending payment request to rejected.
// Rejection is terminal and has no ledger side effects. Re-rejecting is a
// no-op; rejecting an approved request fails.
func RejectPaymentRequest(db *gorm.DB, id uint, reason string) (*models.PaymentRequest, error) {
	var request models.PaymentRequest
	if err := db.First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("payment request %d: %w", id, ErrNotFound)
		}
		return nil, err
	}

	switch request.Status {
	case models.PaymentRequestStatusRejected:
		return &request, nil
	case models.PaymentRequestStatusApproved:
		return nil, fmt.Errorf("payment request %d is approved: %w", id, ErrInvalidStateTransition)
	}

	result := db.Model(&models.PaymentRequest{}).
		Where("id = ? AND status = ?", id, models.PaymentRequestStatusPending).
		Updates(map[string]interface{}{
			"status":           models.PaymentRequestStatusRejected,
			"rejection_reason": reason,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("payment request %d: %w", id, ErrConcurrencyConflict)
	}

	if err := db.First(&request, id).Error; err != nil {
		return nil, err
	}
	utils.LogInfo("Rejected payment request %d: %s", id, reason)
	return &request, nil
}

// ApproveWithdrawal pays out a pending withdrawal if the user's ledger
// balance covers it. An insufficient balance leaves the request pending so
// the admin can reject it or retry after the balance changes. Re-approving
// a completed withdrawal is a no-op success.
func ApproveWithdrawal(db *gorm.DB, id uint, now time.Time) (*models.Withdrawal, error) {
	var withdrawal models.Withdrawal
	if err := db.First(&withdrawal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("withdrawal %d: %w", id, ErrNotFound)
		}
		return nil, err
	}

	switch withdrawal.Status {
	case models.WithdrawalStatusCompleted:
		return &withdrawal, nil
	case models.WithdrawalStatusRejected:
		return nil, fmt.Errorf("withdrawal %d is rejected: %w", id, ErrInvalidStateTransition)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		balance, err := GetBalance(tx, withdrawal.UserID)
		if err != nil {
			return err
		}
		if balance < withdrawal.Amount {
			return fmt.Errorf("balance %.2f is below withdrawal amount %.2f: %w",
				balance, withdrawal.Amount, ErrInsufficientBalance)
		}

		result := tx.Model(&models.Withdrawal{}).
			Where("id = ? AND status = ?", id, models.WithdrawalStatusPending).
			Updates(map[string]interface{}{
				"status":       models.WithdrawalStatusCompleted,
				"processed_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("withdrawal %d: %w", id, ErrConcurrencyConflict)
		}

		description := fmt.Sprintf("Withdrawal via %s", withdrawal.Method)
		_, err = AppendTransaction(tx, withdrawal.UserID, models.TransactionTypeWithdrawal,
			withdrawal.Amount, models.TransactionStatusCompleted, description)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := db.First(&withdrawal, id).Error; err != nil {
		return nil, err
	}
	utils.LogInfo("Approved withdrawal %d for user %d (amount %.2f)", id, withdrawal.UserID, withdrawal.Amount)
	return &withdrawal, nil
}

// RejectWithdrawal transitions a pending withdrawal to rejected. No ledger
// movement; the requested funds were never held.
func RejectWithdrawal(db *gorm.DB, id uint, reason string) (*models.Withdrawal, error) {
	var withdrawal models.Withdrawal
	if err := db.First(&withdrawal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("withdrawal %d: %w", id, ErrNotFound)
		}
		return nil, err
	}

	switch withdrawal.Status {
	case models.WithdrawalStatusRejected:
		return &withdrawal, nil
	case models.WithdrawalStatusCompleted:
		return nil, fmt.Errorf("withdrawal %d is completed: %w", id, ErrInvalidStateTransition)
	}

	result := db.Model(&models.Withdrawal{}).
		Where("id = ? AND status = ?", id, models.WithdrawalStatusPending).
		Updates(map[string]interface{}{
			"status":           models.WithdrawalStatusRejected,
			"rejection_reason": reason,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("withdrawal %d: %w", id, ErrConcurrencyConflict)
	}

	if err := db.First(&withdrawal, id).Error; err != nil {
		return nil, err
	}
	utils.LogInfo("Rejected withdrawal %d: %s", id, reason)
	return &withdrawal, nil
}
