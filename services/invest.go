package services

import (
	"fmt"
	"time"

	"github.com/arvind-722/ProfitNest/models"
	"github.com/arvind-722/ProfitNest/utils"
	"gorm.io/gorm"
)

// PurchaseWithBalance buys a plan directly from the user's wallet balance:
// an investment-type debit is appended, the investment activates
// immediately, and sponsor commissions are paid, all in one database
// transaction. No admin approval is involved because the funds are already
// verified ledger money.
func PurchaseWithBalance(db *gorm.DB, userID, planID uint, now time.Time) (*models.Investment, error) {
	var investment *models.Investment

	err := db.Transaction(func(tx *gorm.DB) error {
		plan, err := GetPlan(tx, planID)
		if err != nil {
			return err
		}
		if !plan.IsActive {
			return fmt.Errorf("%w: plan %q is not open for investment", ErrValidation, plan.Name)
		}

		balance, err := GetBalance(tx, userID)
		if err != nil {
			return err
		}
		if balance < plan.Price {
			return fmt.Errorf("balance %.2f is below plan price %.2f: %w",
				balance, plan.Price, ErrInsufficientBalance)
		}

		description := fmt.Sprintf("Purchase of plan %s from wallet balance", plan.Name)
		if _, err := AppendTransaction(tx, userID, models.TransactionTypeInvestment,
			plan.Price, models.TransactionStatusCompleted, description); err != nil {
			return err
		}

		investment = &models.Investment{
			UserID:       userID,
			PlanID:       plan.ID,
			Amount:       plan.Price,
			PurchaseDate: now,
			ExpiryDate:   now.AddDate(0, 0, plan.ValidityDays),
			Status:       models.InvestmentStatusActive,
		}
		if err := tx.Create(investment).Error; err != nil {
			return err
		}

		return PayReferralCommissions(tx, investment)
	})
	if err != nil {
		return nil, err
	}

	utils.LogInfo("User %d purchased plan %d from balance (investment %d)", userID, planID, investment.ID)
	return investment, nil
}

// ListUserInvestments returns a user's investments, newest first
func ListUserInvestments(db *gorm.DB, userID uint) ([]models.Investment, error) {
	var investments []models.Investment
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&investments).Error
	if err != nil {
		return nil, err
	}
	return investments, nil
}
