package services

import (
	"testing"
	"time"

	"github.com/arvind-722/ProfitNest/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var approvalNow = time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

func pendingRecharge(t *testing.T, db *gorm.DB, userID uint, amount float64) *models.PaymentRequest {
	t.Helper()

	request := &models.PaymentRequest{
		UserID:        userID,
		Amount:        amount,
		TransactionID: "UTR123456",
		PaymentMethod: "upi",
		Status:        models.PaymentRequestStatusPending,
	}
	require.NoError(t, db.Create(request).Error)
	return request
}

func pendingPurchase(t *testing.T, db *gorm.DB, userID, planID uint, amount float64) *models.PaymentRequest {
	t.Helper()

	request := &models.PaymentRequest{
		UserID:        userID,
		PlanID:        &planID,
		Amount:        amount,
		TransactionID: "UTR654321",
		PaymentMethod: "upi",
		Status:        models.PaymentRequestStatusPending,
	}
	require.NoError(t, db.Create(request).Error)
	return request
}

func TestApproveRechargeCreditsLedger(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db, "alice", nil)
	request := pendingRecharge(t, db, user.ID, 500)

	approved, err := ApprovePaymentRequest(db, request.ID, approvalNow)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentRequestStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedAt)

	balance, err := GetBalance(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 500.0, balance)
}

func TestApprovePaymentRequestIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db, "bob", nil)
	request := pendingRecharge(t, db, user.ID, 500)

	_, err := ApprovePaymentRequest(db, request.ID, approvalNow)
	require.NoError(t, err)

	// Double-clicked approve button: no-op success, no second credit
	again, err := ApprovePaymentRequest(db, request.ID, approvalNow.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, models.PaymentRequestStatusApproved, again.Status)

	balance, err := GetBalance(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 500.0, balance)
	assert.Equal(t, int64(1), countTransactions(t, db, user.ID, models.TransactionTypeRecharge))
}

func TestTerminalStatesAreImmutable(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db, "carol", nil)

	rejected := pendingRecharge(t, db, user.ID, 100)
	_, err := RejectPaymentRequest(db, rejected.ID, "unreadable screenshot")
	require.NoError(t, err)

	// Re-reject: no-op
	again, err := RejectPaymentRequest(db, rejected.ID, "still unreadable")
	require.NoError(t, err)
	assert.Equal(t, "unreadable screenshot", again.RejectionReason)

	// Rejected can never be approved
	_, err = ApprovePaymentRequest(db, rejected.ID, approvalNow)
	assert.ErrorIs(t, err, ErrInvalidStateTransition)

	approved := pendingRecharge(t, db, user.ID, 100)
	_, err = ApprovePaymentRequest(db, approved.ID, approvalNow)
	require.NoError(t, err)

	// Approved can never be rejected
	_, err = RejectPaymentRequest(db, approved.ID, "changed my mind")
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
}

func TestApprovePurchaseActivatesInvestmentAndPaysCommissions(t *testing.T) {
	db := openTestDB(t)
	level3 := createTestUser(t, db, "level3", nil)
	level2 := createTestUser(t, db, "level2", &level3.ID)
	level1 := createTestUser(t, db, "level1", &level2.ID)
	investor := createTestUser(t, db, "investor", &level1.ID)
	plan := createTestPlan(t, db, "Prime", 1000, 244, 365)
	request := pendingPurchase(t, db, investor.ID, plan.ID, 1000)

	approved, err := ApprovePaymentRequest(db, request.ID, approvalNow)
	require.NoError(t, err)
	require.NotNil(t, approved.InvestmentID)

	var investment models.Investment
	require.NoError(t, db.First(&investment, *approved.InvestmentID).Error)
	assert.Equal(t, models.InvestmentStatusActive, investment.Status)
	assert.True(t, investment.ReferralPaid)
	assert.True(t, investment.ExpiryDate.Equal(approvalNow.AddDate(0, 0, 365)))

	// Commission chain 100/50/20
	for _, tc := range []struct {
		userID uint
		expect float64
	}{
		{level1.ID, 100},
		{level2.ID, 50},
		{level3.ID, 20},
	} {
		balance, err := GetBalance(db, tc.userID)
		require.NoError(t, err)
		assert.Equal(t, tc.expect, balance)
	}

	// The purchase was paid outside the wallet; the investor's ledger is untouched
	balance, err := GetBalance(db, investor.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, balance)

	// Retried approval re-pays nothing
	_, err = ApprovePaymentRequest(db, request.ID, approvalNow.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), countTransactions(t, db, level1.ID, models.TransactionTypeReferral))
}

func TestApprovePurchaseUnknownPlanRollsBack(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db, "dave", nil)
	missingPlan := uint(99)
	request := &models.PaymentRequest{
		UserID:        user.ID,
		PlanID:        &missingPlan,
		Amount:        1000,
		TransactionID: "UTR000",
		Status:        models.PaymentRequestStatusPending,
	}
	require.NoError(t, db.Create(request).Error)

	_, err := ApprovePaymentRequest(db, request.ID, approvalNow)
	assert.ErrorIs(t, err, ErrNotFound)

	// The whole approval rolled back; the request can be retried
	var reloaded models.PaymentRequest
	require.NoError(t, db.First(&reloaded, request.ID).Error)
	assert.Equal(t, models.PaymentRequestStatusPending, reloaded.Status)
}

func TestApproveWithdrawalRequiresBalance(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db, "erin", nil)
	creditBalance(t, db, user.ID, 3000)

	withdrawal := &models.Withdrawal{
		UserID: user.ID,
		Amount: 5000,
		Method: models.WithdrawalMethodUPI,
		Status: models.WithdrawalStatusPending,
	}
	require.NoError(t, db.Create(withdrawal).Error)

	_, err := ApproveWithdrawal(db, withdrawal.ID, approvalNow)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	// The request stays pending for the admin to reject or retry
	var reloaded models.Withdrawal
	require.NoError(t, db.First(&reloaded, withdrawal.ID).Error)
	assert.Equal(t, models.WithdrawalStatusPending, reloaded.Status)

	balance, err := GetBalance(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, balance)
}

func TestApproveWithdrawalDebitsLedger(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db, "frank", nil)
	creditBalance(t, db, user.ID, 3000)

	withdrawal := &models.Withdrawal{
		UserID: user.ID,
		Amount: 2000,
		Method: models.WithdrawalMethodBank,
		Status: models.WithdrawalStatusPending,
	}
	require.NoError(t, db.Create(withdrawal).Error)

	approved, err := ApproveWithdrawal(db, withdrawal.ID, approvalNow)
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalStatusCompleted, approved.Status)
	require.NotNil(t, approved.ProcessedAt)

	balance, err := GetBalance(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, balance)

	// Idempotent re-approval
	_, err = ApproveWithdrawal(db, withdrawal.ID, approvalNow.Add(time.Minute))
	require.NoError(t, err)
	balance, err = GetBalance(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, balance)
}

func TestRejectWithdrawalIsTerminal(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db, "grace", nil)
	creditBalance(t, db, user.ID, 3000)

	withdrawal := &models.Withdrawal{
		UserID: user.ID,
		Amount: 1000,
		Method: models.WithdrawalMethodUPI,
		Status: models.WithdrawalStatusPending,
	}
	require.NoError(t, db.Create(withdrawal).Error)

	_, err := RejectWithdrawal(db, withdrawal.ID, "invalid UPI ID")
	require.NoError(t, err)

	_, err = ApproveWithdrawal(db, withdrawal.ID, approvalNow)
	assert.ErrorIs(t, err, ErrInvalidStateTransition)

	balance, err := GetBalance(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, balance)
}

func TestPurchaseWithBalance(t *testing.T) {
	db := openTestDB(t)
	sponsor := createTestUser(t, db, "sponsor", nil)
	user := createTestUser(t, db, "harry", &sponsor.ID)
	plan := createTestPlan(t, db, "Silver", 600, 25, 40)
	creditBalance(t, db, user.ID, 1000)

	investment, err := PurchaseWithBalance(db, user.ID, plan.ID, approvalNow)
	require.NoError(t, err)
	assert.Equal(t, models.InvestmentStatusActive, investment.Status)
	assert.Equal(t, 600.0, investment.Amount)

	balance, err := GetBalance(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 400.0, balance)

	// Sponsor commission on the purchase amount
	balance, err = GetBalance(db, sponsor.ID)
	require.NoError(t, err)
	assert.Equal(t, 60.0, balance)

	// A second purchase exceeding the remaining balance fails atomically
	_, err = PurchaseWithBalance(db, user.ID, plan.ID, approvalNow)
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	balance, err = GetBalance(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 400.0, balance)
}
