package services

import (
	"testing"
	"time"

	"github.com/arvind-722/ProfitNest/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// buildSponsorChain creates level3 <- level2 <- level1 <- investor
func buildSponsorChain(t *testing.T, db *gorm.DB) (investor, level1, level2, level3 *models.User) {
	t.Helper()

	level3 = createTestUser(t, db, "level3", nil)
	level2 = createTestUser(t, db, "level2", &level3.ID)
	level1 = createTestUser(t, db, "level1", &level2.ID)
	investor = createTestUser(t, db, "investor", &level1.ID)
	return
}

func activeInvestment(t *testing.T, db *gorm.DB, userID, planID uint, amount float64) *models.Investment {
	t.Helper()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	investment := &models.Investment{
		UserID:       userID,
		PlanID:       planID,
		Amount:       amount,
		PurchaseDate: now,
		ExpiryDate:   now.AddDate(0, 0, 365),
		Status:       models.InvestmentStatusActive,
	}
	require.NoError(t, db.Create(investment).Error)
	return investment
}

func TestReferralPayoutThreeLevels(t *testing.T) {
	db := openTestDB(t)
	investor, level1, level2, level3 := buildSponsorChain(t, db)
	plan := createTestPlan(t, db, "Prime", 1000, 244, 365)
	investment := activeInvestment(t, db, investor.ID, plan.ID, 1000)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return PayReferralCommissions(tx, investment)
	}))

	for _, tc := range []struct {
		user   *models.User
		expect float64
	}{
		{level1, 100},
		{level2, 50},
		{level3, 20},
	} {
		balance, err := GetBalance(db, tc.user.ID)
		require.NoError(t, err)
		assert.Equal(t, tc.expect, balance, "user %s", tc.user.Username)
	}

	// The investor earns nothing from their own purchase
	balance, err := GetBalance(db, investor.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, balance)
}

func TestReferralPayoutStopsAtMissingSponsor(t *testing.T) {
	db := openTestDB(t)
	sponsor := createTestUser(t, db, "onlysponsor", nil)
	investor := createTestUser(t, db, "solo", &sponsor.ID)
	plan := createTestPlan(t, db, "Prime", 1000, 244, 365)
	investment := activeInvestment(t, db, investor.ID, plan.ID, 1000)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return PayReferralCommissions(tx, investment)
	}))

	balance, err := GetBalance(db, sponsor.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, balance)

	var total int64
	require.NoError(t, db.Model(&models.Transaction{}).
		Where("type = ?", models.TransactionTypeReferral).Count(&total).Error)
	assert.Equal(t, int64(1), total)
}

func TestReferralPayoutWithoutSponsorIsNoop(t *testing.T) {
	db := openTestDB(t)
	investor := createTestUser(t, db, "rootuser", nil)
	plan := createTestPlan(t, db, "Prime", 1000, 244, 365)
	investment := activeInvestment(t, db, investor.ID, plan.ID, 1000)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return PayReferralCommissions(tx, investment)
	}))

	var total int64
	require.NoError(t, db.Model(&models.Transaction{}).
		Where("type = ?", models.TransactionTypeReferral).Count(&total).Error)
	assert.Equal(t, int64(0), total)
	assert.True(t, investment.ReferralPaid)
}

func TestReferralPayoutIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	investor, level1, _, _ := buildSponsorChain(t, db)
	plan := createTestPlan(t, db, "Prime", 1000, 244, 365)
	investment := activeInvestment(t, db, investor.ID, plan.ID, 1000)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return PayReferralCommissions(tx, investment)
	}))

	// Retried activation pays nothing more, via the in-memory flag
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return PayReferralCommissions(tx, investment)
	}))

	// And via a fresh load of the same row
	var reloaded models.Investment
	require.NoError(t, db.First(&reloaded, investment.ID).Error)
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return PayReferralCommissions(tx, &reloaded)
	}))

	balance, err := GetBalance(db, level1.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, balance)
	assert.Equal(t, int64(1), countTransactions(t, db, level1.ID, models.TransactionTypeReferral))
}

func TestBlockedSponsorForfeitsButChainContinues(t *testing.T) {
	db := openTestDB(t)
	investor, level1, level2, level3 := buildSponsorChain(t, db)
	require.NoError(t, db.Model(level1).Update("is_blocked", true).Error)
	plan := createTestPlan(t, db, "Prime", 1000, 244, 365)
	investment := activeInvestment(t, db, investor.ID, plan.ID, 1000)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return PayReferralCommissions(tx, investment)
	}))

	balance, err := GetBalance(db, level1.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, balance)

	balance, err = GetBalance(db, level2.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, balance)

	balance, err = GetBalance(db, level3.ID)
	require.NoError(t, err)
	assert.Equal(t, 20.0, balance)
}

func TestCommissionForLevelRounding(t *testing.T) {
	assert.Equal(t, 99.9, CommissionForLevel(999, 0))
	assert.Equal(t, 49.95, CommissionForLevel(999, 1))
	assert.Equal(t, 19.98, CommissionForLevel(999, 2))
	assert.Equal(t, 0.0, CommissionForLevel(999, 3))
}

func TestGetReferralSummary(t *testing.T) {
	db := openTestDB(t)
	sponsor := createTestUser(t, db, "teamlead", nil)
	createTestUser(t, db, "member1", &sponsor.ID)
	createTestUser(t, db, "member2", &sponsor.ID)

	_, err := AppendTransaction(db, sponsor.ID, models.TransactionTypeReferral,
		150, models.TransactionStatusCompleted, "")
	require.NoError(t, err)

	summary, err := GetReferralSummary(db, sponsor.ID)
	require.NoError(t, err)
	assert.Equal(t, sponsor.ReferralCode, summary.ReferralCode)
	assert.Equal(t, int64(2), summary.DirectReferrals)
	assert.Equal(t, 150.0, summary.TotalCommission)
}
