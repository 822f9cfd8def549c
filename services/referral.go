package services

import (
	"errors"
	"fmt"

	"github.com/arvind-722/ProfitNest/models"
	"github.com/arvind-722/ProfitNest/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Commission rates per sponsor level: 10% for the direct sponsor, 5% for
// the sponsor's sponsor, 2% for the third level up.
var referralLevelRates = []decimal.Decimal{
	decimal.NewFromFloat(0.10),
	decimal.NewFromFloat(0.05),
	decimal.NewFromFloat(0.02),
}

// CommissionForLevel returns the commission on amount for a sponsor level
// (0-based), rounded to 2 decimal places.
func CommissionForLevel(amount float64, level int) float64 {
	if level < 0 || level >= len(referralLevelRates) {
		return 0
	}
	commission := decimal.NewFromFloat(amount).Mul(referralLevelRates[level]).Round(2)
	value, _ := commission.Float64()
	return value
}

// PayReferralCommissions walks the investor's sponsor chain and credits
// each level's commission as a completed referral transaction. Must run
// inside the same database transaction as the investment activation: the
// ReferralPaid flag is set alongside the payouts so a retried activation
// never pays twice, and a failed payout rolls everything back together.
//
// The walk stops at a missing sponsor. A blocked sponsor forfeits their
// commission but does not break the chain for levels above them.
func PayReferralCommissions(tx *gorm.DB, investment *models.Investment) error {
	if investment.ReferralPaid {
		return nil
	}

	var investor models.User
	if err := tx.First(&investor, investment.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %d: %w", investment.UserID, ErrNotFound)
		}
		return err
	}

	sponsorID := investor.SponsorID
	for level := 0; level < len(referralLevelRates) && sponsorID != nil; level++ {
		var sponsor models.User
		if err := tx.First(&sponsor, *sponsorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Dangling sponsor link; never fabricate a payee
				utils.LogError("Sponsor %d not found while paying commissions for investment %d", *sponsorID, investment.ID)
				break
			}
			return err
		}

		if !sponsor.IsBlocked {
			commission := CommissionForLevel(investment.Amount, level)
			description := fmt.Sprintf("Level %d referral commission on investment #%d by %s",
				level+1, investment.ID, investor.Username)
			if _, err := AppendTransaction(tx, sponsor.ID, models.TransactionTypeReferral,
				commission, models.TransactionStatusCompleted, description); err != nil {
				return fmt.Errorf("failed to pay level %d commission: %w", level+1, err)
			}
			utils.LogInfo("Paid %.2f level %d commission to user %d for investment %d",
				commission, level+1, sponsor.ID, investment.ID)
		}

		sponsorID = sponsor.SponsorID
	}

	result := tx.Model(&models.Investment{}).
		Where("id = ? AND referral_paid = ?", investment.ID, false).
		Update("referral_paid", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Another activation attempt got here first; roll back our payouts
		return fmt.Errorf("investment %d referral payout: %w", investment.ID, ErrConcurrencyConflict)
	}
	investment.ReferralPaid = true
	return nil
}

// ReferralSummary aggregates a user's referral standing
type ReferralSummary struct {
	ReferralCode    string  `json:"referral_code"`
	DirectReferrals int64   `json:"direct_referrals"`
	TotalCommission float64 `json:"total_commission"`
}

// GetReferralSummary returns the user's referral code, direct referral
// count, and lifetime commission earnings.
func GetReferralSummary(db *gorm.DB, userID uint) (*ReferralSummary, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return nil, err
	}

	summary := &ReferralSummary{ReferralCode: user.ReferralCode}

	if err := db.Model(&models.User{}).Where("sponsor_id = ?", userID).
		Count(&summary.DirectReferrals).Error; err != nil {
		return nil, err
	}

	err := db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND type = ? AND status = ?",
			userID, models.TransactionTypeReferral, models.TransactionStatusCompleted).
		Scan(&summary.TotalCommission).Error
	if err != nil {
		return nil, err
	}
	return summary, nil
}
