package controllers

import (
	"time"

	"github.com/arvind-722/ProfitNest/config"
	"github.com/arvind-722/ProfitNest/models"
	"github.com/arvind-722/ProfitNest/services"
	"github.com/arvind-722/ProfitNest/utils"
	"github.com/gin-gonic/gin"
)

// GetDashboard returns platform-wide counts and ledger totals for the
// admin home screen
func GetDashboard(c *gin.Context) {
	db := config.DB

	var totalUsers, blockedUsers, activeInvestments int64
	var pendingPayments, pendingWithdrawals int64
	if err := db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		utils.LogError("Dashboard user count failed: %v", err)
		utils.InternalServerError(c, "Failed to build dashboard", err.Error())
		return
	}
	db.Model(&models.User{}).Where("is_blocked = ?", true).Count(&blockedUsers)
	db.Model(&models.Investment{}).Where("status = ?", models.InvestmentStatusActive).Count(&activeInvestments)
	db.Model(&models.PaymentRequest{}).Where("status = ?", models.PaymentRequestStatusPending).Count(&pendingPayments)
	db.Model(&models.Withdrawal{}).Where("status = ?", models.WithdrawalStatusPending).Count(&pendingWithdrawals)

	totals := gin.H{}
	for _, txType := range []string{
		models.TransactionTypeEarning,
		models.TransactionTypeReferral,
		models.TransactionTypeRecharge,
		models.TransactionTypeWithdrawal,
		models.TransactionTypeInvestment,
	} {
		var sum float64
		db.Model(&models.Transaction{}).
			Select("COALESCE(SUM(amount), 0)").
			Where("type = ? AND status = ?", txType, models.TransactionStatusCompleted).
			Scan(&sum)
		totals[txType] = sum
	}

	utils.Success(c, "Dashboard retrieved successfully", gin.H{
		"users": gin.H{
			"total":   totalUsers,
			"blocked": blockedUsers,
		},
		"active_investments":  activeInvestments,
		"pending_payments":    pendingPayments,
		"pending_withdrawals": pendingWithdrawals,
		"ledger_totals":       totals,
	})
}

// TriggerAccrualSweep runs the daily profit sweep on demand. The cron
// scheduler covers the normal path; this endpoint exists for catch-up
// after downtime. An optional as_of date (YYYY-MM-DD) settles history up
// to that day instead of today.
func TriggerAccrualSweep(c *gin.Context) {
	asOf := time.Now().UTC()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.BadRequest(c, "Invalid as_of date, expected YYYY-MM-DD", err.Error())
			return
		}
		if parsed.After(asOf) {
			utils.BadRequest(c, "as_of cannot be in the future", nil)
			return
		}
		asOf = parsed
	}

	utils.LogInfo("Manual accrual sweep triggered as of %s", asOf.Format("2006-01-02"))

	result, err := services.RunAccrualSweep(config.DB, asOf)
	if err != nil {
		utils.LogError("Manual accrual sweep failed: %v", err)
		utils.InternalServerError(c, "Sweep failed", err.Error())
		return
	}

	utils.Success(c, "Accrual sweep completed", gin.H{
		"result": result,
	})
}
