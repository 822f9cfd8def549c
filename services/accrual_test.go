package services

import (
	"testing"
	"time"

	"github.com/arvind-722/ProfitNest/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// day0 is the purchase day in all accrual tests; profit starts on day 1
var day0 = time.Date(2026, 1, 1, 10, 30, 0, 0, time.UTC)

type accrualFixture struct {
	db         *gorm.DB
	user       *models.User
	plan       *models.Plan
	investment *models.Investment
}

func newAccrualFixture(t *testing.T, price, dailyProfit float64, validityDays int) *accrualFixture {
	t.Helper()

	db := openTestDB(t)
	user := createTestUser(t, db, "investor", nil)
	plan := createTestPlan(t, db, "Prime", price, dailyProfit, validityDays)

	investment := &models.Investment{
		UserID:       user.ID,
		PlanID:       plan.ID,
		Amount:       price,
		PurchaseDate: day0,
		ExpiryDate:   day0.AddDate(0, 0, validityDays),
		Status:       models.InvestmentStatusActive,
	}
	require.NoError(t, db.Create(investment).Error)

	return &accrualFixture{db: db, user: user, plan: plan, investment: investment}
}

func (f *accrualFixture) reload(t *testing.T) *models.Investment {
	t.Helper()
	var investment models.Investment
	require.NoError(t, f.db.First(&investment, f.investment.ID).Error)
	return &investment
}

func TestSweepSettlesOneDay(t *testing.T) {
	f := newAccrualFixture(t, 1000, 244, 365)

	result, err := RunAccrualSweep(f.db, day0.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, result.SettledDays)
	assert.Equal(t, 0, result.Expired)

	assert.Equal(t, int64(1), countTransactions(t, f.db, f.user.ID, models.TransactionTypeEarning))
	balance, err := GetBalance(f.db, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 244.0, balance)
}

func TestSweepIsIdempotentWithinADay(t *testing.T) {
	f := newAccrualFixture(t, 1000, 244, 365)
	asOf := day0.AddDate(0, 0, 1)

	_, err := RunAccrualSweep(f.db, asOf)
	require.NoError(t, err)

	result, err := RunAccrualSweep(f.db, asOf)
	require.NoError(t, err)
	assert.Equal(t, 0, result.SettledDays)

	assert.Equal(t, int64(1), countTransactions(t, f.db, f.user.ID, models.TransactionTypeEarning))

	checkpoint := f.reload(t).LastAccrualDate
	require.NotNil(t, checkpoint)
	assert.Equal(t, dateOnly(asOf), dateOnly(*checkpoint))
}

func TestSweepDoesNothingOnPurchaseDay(t *testing.T) {
	f := newAccrualFixture(t, 1000, 244, 365)

	result, err := RunAccrualSweep(f.db, day0)
	require.NoError(t, err)
	assert.Equal(t, 0, result.SettledDays)
	assert.Nil(t, f.reload(t).LastAccrualDate)
}

func TestSweepCatchesUpGapsInChronologicalOrder(t *testing.T) {
	f := newAccrualFixture(t, 1000, 244, 365)

	result, err := RunAccrualSweep(f.db, day0.AddDate(0, 0, 5))
	require.NoError(t, err)
	assert.Equal(t, 5, result.SettledDays)

	var earnings []models.Transaction
	require.NoError(t, f.db.Where("user_id = ? AND type = ?", f.user.ID, models.TransactionTypeEarning).
		Order("id ASC").Find(&earnings).Error)
	require.Len(t, earnings, 5)
	for i, tx := range earnings {
		expected := day0.AddDate(0, 0, i+1)
		assert.Contains(t, tx.Description, expected.Format("2006-01-02"))
	}

	checkpoint := f.reload(t).LastAccrualDate
	require.NotNil(t, checkpoint)
	assert.Equal(t, dateOnly(day0.AddDate(0, 0, 5)), dateOnly(*checkpoint))
}

func TestSweepNeverSettlesPastExpiry(t *testing.T) {
	f := newAccrualFixture(t, 100, 10, 3)

	// Sweep far past expiry: only the 3 validity days settle
	result, err := RunAccrualSweep(f.db, day0.AddDate(0, 0, 30))
	require.NoError(t, err)
	assert.Equal(t, 3, result.SettledDays)
	assert.Equal(t, 1, result.Expired)

	reloaded := f.reload(t)
	assert.Equal(t, models.InvestmentStatusExpired, reloaded.Status)
	require.NotNil(t, reloaded.LastAccrualDate)
	assert.Equal(t, dateOnly(f.investment.ExpiryDate), dateOnly(*reloaded.LastAccrualDate))

	// An expired investment settles nothing more
	result, err = RunAccrualSweep(f.db, day0.AddDate(0, 0, 60))
	require.NoError(t, err)
	assert.Equal(t, 0, result.SettledDays)
	assert.Equal(t, int64(3), countTransactions(t, f.db, f.user.ID, models.TransactionTypeEarning))
}

func TestSweepIgnoresPendingInvestments(t *testing.T) {
	f := newAccrualFixture(t, 1000, 244, 365)
	require.NoError(t, f.db.Model(f.investment).Update("status", models.InvestmentStatusPending).Error)

	result, err := RunAccrualSweep(f.db, day0.AddDate(0, 0, 10))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Investments)
	assert.Equal(t, 0, result.SettledDays)
}

func TestCheckpointNeverExceedsTodayOrExpiry(t *testing.T) {
	f := newAccrualFixture(t, 1000, 244, 365)

	for _, days := range []int{1, 3, 3, 7, 400} {
		asOf := day0.AddDate(0, 0, days)
		_, err := RunAccrualSweep(f.db, asOf)
		require.NoError(t, err)

		reloaded := f.reload(t)
		if reloaded.LastAccrualDate == nil {
			continue
		}
		limit := dateOnly(asOf)
		if expiry := dateOnly(reloaded.ExpiryDate); expiry.Before(limit) {
			limit = expiry
		}
		assert.False(t, dateOnly(*reloaded.LastAccrualDate).After(limit),
			"checkpoint %v past limit %v", *reloaded.LastAccrualDate, limit)
	}
}

// The full catalog scenario: 1000 price, 244/day, 365 days
func TestFullTermScenario(t *testing.T) {
	f := newAccrualFixture(t, 1000, 244, 365)

	// Day 1: exactly one earning of 244
	result, err := RunAccrualSweep(f.db, day0.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, result.SettledDays)

	// Same day again: nothing
	result, err = RunAccrualSweep(f.db, day0.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 0, result.SettledDays)

	// Day 366: settles through day 365 only, then expires
	result, err = RunAccrualSweep(f.db, day0.AddDate(0, 0, 366))
	require.NoError(t, err)
	assert.Equal(t, 364, result.SettledDays)
	assert.Equal(t, 1, result.Expired)

	assert.Equal(t, int64(365), countTransactions(t, f.db, f.user.ID, models.TransactionTypeEarning))
	assert.Equal(t, models.InvestmentStatusExpired, f.reload(t).Status)

	balance, err := GetBalance(f.db, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 244.0*365, balance)
}
