package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/arvind-722/ProfitNest/models"
	"github.com/arvind-722/ProfitNest/utils"
	"gorm.io/gorm"
)

// SweepResult summarizes one accrual sweep run
type SweepResult struct {
	Investments int `json:"investments"`
	SettledDays int `json:"settled_days"`
	Expired     int `json:"expired"`
	Skipped     int `json:"skipped"`
	Errors      int `json:"errors"`
}

// dateOnly truncates a time to its UTC calendar day. All accrual
// arithmetic happens on these day boundaries.
func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// RunAccrualSweep settles due daily profit for every active investment up
// to asOf. Safe to invoke repeatedly: settlement is guarded by each
// investment's accrual checkpoint, so a second run over the same date
// credits nothing. Investments that lose a checkpoint race are skipped and
// self-heal on the next run.
func RunAccrualSweep(db *gorm.DB, asOf time.Time) (*SweepResult, error) {
	start := time.Now()
	result := &SweepResult{}

	var ids []uint
	err := db.Model(&models.Investment{}).
		Where("status = ?", models.InvestmentStatusActive).
		Order("id ASC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active investments: %w", err)
	}
	result.Investments = len(ids)

	for _, id := range ids {
		settled, expired, err := SettleInvestment(db, id, asOf)
		result.SettledDays += settled
		if expired {
			result.Expired++
		}
		if err != nil {
			if errors.Is(err, ErrConcurrencyConflict) {
				// Another writer holds this investment's checkpoint;
				// the next sweep resumes from wherever it left off
				utils.LogDebug("Sweep skipped investment %d: checkpoint contention", id)
				result.Skipped++
				continue
			}
			utils.LogError("Sweep failed for investment %d: %v", id, err)
			result.Errors++
		}
	}

	utils.LogSweep(asOf, result.SettledDays, result.Expired, result.Skipped, time.Since(start))
	return result, nil
}

// SettleInvestment settles all due days for one investment, in
// chronological order, one day per database transaction. Returns the
// number of days settled and whether the investment expired.
func SettleInvestment(db *gorm.DB, investmentID uint, asOf time.Time) (int, bool, error) {
	settled := 0
	for {
		advanced, expired, err := settleNextDay(db, investmentID, asOf)
		if err != nil {
			return settled, false, err
		}
		if !advanced {
			return settled, false, nil
		}
		settled++
		if expired {
			return settled, true, nil
		}
	}
}

// settleNextDay credits exactly one day's profit and advances the accrual
// checkpoint, or does nothing if no day is due. The checkpoint update is a
// compare-and-swap on last_accrual_date: if another writer advanced it
// first, the whole day's settlement rolls back with ErrConcurrencyConflict.
func settleNextDay(db *gorm.DB, investmentID uint, asOf time.Time) (bool, bool, error) {
	advanced := false
	expired := false

	err := db.Transaction(func(tx *gorm.DB) error {
		var investment models.Investment
		if err := tx.First(&investment, investmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("investment %d: %w", investmentID, ErrNotFound)
			}
			return err
		}
		if investment.Status != models.InvestmentStatusActive {
			return nil
		}

		plan, err := GetPlan(tx, investment.PlanID)
		if err != nil {
			return err
		}

		// The purchase day itself earns nothing; day one is the first
		// profitable day
		checkpoint := dateOnly(investment.PurchaseDate)
		if investment.LastAccrualDate != nil {
			checkpoint = dateOnly(*investment.LastAccrualDate)
		}

		expiry := dateOnly(investment.ExpiryDate)
		limit := dateOnly(asOf)
		if expiry.Before(limit) {
			limit = expiry
		}

		next := checkpoint.AddDate(0, 0, 1)
		if next.After(limit) {
			return nil
		}

		description := fmt.Sprintf("Daily profit for %s (%s)", next.Format("2006-01-02"), plan.Name)
		if _, err := AppendTransaction(tx, investment.UserID, models.TransactionTypeEarning,
			plan.DailyProfit, models.TransactionStatusCompleted, description); err != nil {
			return err
		}

		updates := map[string]interface{}{"last_accrual_date": next}
		willExpire := !next.Before(expiry)
		if willExpire {
			updates["status"] = models.InvestmentStatusExpired
		}

		query := tx.Model(&models.Investment{}).
			Where("id = ? AND status = ?", investmentID, models.InvestmentStatusActive)
		if investment.LastAccrualDate == nil {
			query = query.Where("last_accrual_date IS NULL")
		} else {
			query = query.Where("last_accrual_date = ?", *investment.LastAccrualDate)
		}

		result := query.Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Lost the race; roll back this day's credit
			return fmt.Errorf("investment %d: %w", investmentID, ErrConcurrencyConflict)
		}

		advanced = true
		expired = willExpire
		if willExpire {
			utils.LogInfo("Investment %d completed its term and expired", investmentID)
		}
		return nil
	})

	return advanced, expired, err
}
