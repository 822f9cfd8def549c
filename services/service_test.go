package services

import (
	"testing"

	"github.com/arvind-722/ProfitNest/config"
	"github.com/arvind-722/ProfitNest/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB returns an isolated in-memory database with the full schema
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A second pooled connection would see a different :memory: database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.MigrateModels(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string, sponsorID *uint) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		Password:     "hashed",
		IsVerified:   true,
		ReferralCode: "REF" + username,
		SponsorID:    sponsorID,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPlan(t *testing.T, db *gorm.DB, name string, price, dailyProfit float64, validityDays int) *models.Plan {
	t.Helper()

	plan, err := CreatePlan(db, PlanInput{
		Name:         name,
		Price:        price,
		DailyProfit:  dailyProfit,
		ValidityDays: validityDays,
	})
	require.NoError(t, err)
	return plan
}

// creditBalance gives the user spendable ledger money via a completed recharge
func creditBalance(t *testing.T, db *gorm.DB, userID uint, amount float64) {
	t.Helper()

	_, err := AppendTransaction(db, userID, models.TransactionTypeRecharge,
		amount, models.TransactionStatusCompleted, "test recharge")
	require.NoError(t, err)
}

func countTransactions(t *testing.T, db *gorm.DB, userID uint, txType string) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&models.Transaction{}).
		Where("user_id = ? AND type = ?", userID, txType).
		Count(&count).Error)
	return count
}
