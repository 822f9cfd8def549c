package controllers

import (
	"strconv"
	"time"

	"github.com/arvind-722/ProfitNest/config"
	"github.com/arvind-722/ProfitNest/services"
	"github.com/arvind-722/ProfitNest/utils"
	"github.com/gin-gonic/gin"
)

// GetWalletBalance returns the user's current wallet balance
func GetWalletBalance(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	balance, err := services.GetBalance(config.DB, user.ID)
	if err != nil {
		utils.LogError("Failed to compute balance for user %d: %v", user.ID, err)
		handleServiceError(c, err)
		return
	}

	utils.Success(c, "Balance retrieved successfully", gin.H{
		"balance": balance,
	})
}

// GetTransactionHistory returns the user's ledger entries, newest first
func GetTransactionHistory(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	pagination := utils.NewPagination(c)
	transactions, total, err := services.GetTransactionHistory(config.DB, user.ID, pagination.Limit, pagination.Offset)
	if err != nil {
		utils.LogError("Failed to fetch transactions for user %d: %v", user.ID, err)
		handleServiceError(c, err)
		return
	}

	utils.SuccessWithPagination(c, "Transactions retrieved successfully",
		gin.H{"transactions": transactions}, total, pagination.Page, pagination.Limit)
}

// GetMyInvestments lists the user's plan investments
func GetMyInvestments(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	investments, err := services.ListUserInvestments(config.DB, user.ID)
	if err != nil {
		utils.LogError("Failed to fetch investments for user %d: %v", user.ID, err)
		handleServiceError(c, err)
		return
	}

	utils.Success(c, "Investments retrieved successfully", gin.H{
		"investments": investments,
	})
}

// PurchaseWithWallet buys a plan by debiting the user's wallet balance.
// The investment activates immediately and referral commissions pay out
// in the same transaction.
func PurchaseWithWallet(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	planID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid plan ID", nil)
		return
	}

	utils.LogInfo("Wallet purchase attempt: user %d plan %d", user.ID, planID)

	investment, err := services.PurchaseWithBalance(config.DB, user.ID, uint(planID), time.Now().UTC())
	if err != nil {
		utils.LogError("Wallet purchase failed for user %d plan %d: %v", user.ID, planID, err)
		handleServiceError(c, err)
		return
	}

	utils.LogInfo("Wallet purchase completed: user %d investment %d", user.ID, investment.ID)
	utils.Created(c, "Plan purchased successfully", gin.H{
		"investment": investment,
	})
}
