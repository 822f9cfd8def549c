package services

import (
	"testing"

	"github.com/arvind-722/ProfitNest/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBalanceFoldsCompletedEntriesBySign(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db, "alice", nil)

	append := func(txType string, amount float64, status string) {
		_, err := AppendTransaction(db, user.ID, txType, amount, status, "")
		require.NoError(t, err)
	}

	append(models.TransactionTypeRecharge, 100, models.TransactionStatusCompleted)
	append(models.TransactionTypeEarning, 50, models.TransactionStatusCompleted)
	append(models.TransactionTypeReferral, 20, models.TransactionStatusCompleted)
	append(models.TransactionTypeWithdrawal, 30, models.TransactionStatusCompleted)
	append(models.TransactionTypeInvestment, 40, models.TransactionStatusCompleted)
	// Pending entries never affect the balance
	append(models.TransactionTypeRecharge, 999, models.TransactionStatusPending)

	balance, err := GetBalance(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, balance)
}

func TestGetBalanceUnknownUser(t *testing.T) {
	db := openTestDB(t)

	_, err := GetBalance(db, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAppendTransactionValidation(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db, "bob", nil)

	_, err := AppendTransaction(db, user.ID, "bonus", 10, models.TransactionStatusCompleted, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = AppendTransaction(db, user.ID, models.TransactionTypeEarning, 0, models.TransactionStatusCompleted, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = AppendTransaction(db, user.ID, models.TransactionTypeEarning, 10, models.TransactionStatusRejected, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = AppendTransaction(db, 42, models.TransactionTypeEarning, 10, models.TransactionStatusCompleted, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransactionStatusTransitionsAreOneWay(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db, "carol", nil)

	tx, err := AppendTransaction(db, user.ID, models.TransactionTypeRecharge,
		100, models.TransactionStatusPending, "")
	require.NoError(t, err)

	// Pending entries are invisible to the balance
	balance, err := GetBalance(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, balance)

	require.NoError(t, CompleteTransaction(db, tx.ID))
	balance, err = GetBalance(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, balance)

	// Re-applying the same transition is a no-op
	require.NoError(t, CompleteTransaction(db, tx.ID))
	balance, err = GetBalance(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, balance)

	// A completed entry can never become rejected
	err = RejectTransaction(db, tx.ID)
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
}

func TestRejectedTransactionStaysRejected(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db, "dave", nil)

	tx, err := AppendTransaction(db, user.ID, models.TransactionTypeRecharge,
		100, models.TransactionStatusPending, "")
	require.NoError(t, err)

	require.NoError(t, RejectTransaction(db, tx.ID))
	require.NoError(t, RejectTransaction(db, tx.ID)) // idempotent

	err = CompleteTransaction(db, tx.ID)
	assert.ErrorIs(t, err, ErrInvalidStateTransition)

	balance, err := GetBalance(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, balance)
}

func TestGetTransactionHistoryPagination(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db, "erin", nil)

	for i := 0; i < 5; i++ {
		_, err := AppendTransaction(db, user.ID, models.TransactionTypeEarning,
			float64(i+1), models.TransactionStatusCompleted, "")
		require.NoError(t, err)
	}

	page, total, err := GetTransactionHistory(db, user.ID, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page, 2)
	// Newest first
	assert.Equal(t, 5.0, page[0].Amount)
	assert.Equal(t, 4.0, page[1].Amount)
}
