package controllers

import (
	"encoding/json"

	"github.com/arvind-722/ProfitNest/config"
	"github.com/arvind-722/ProfitNest/models"
	"github.com/arvind-722/ProfitNest/utils"
	"github.com/gin-gonic/gin"
)

// SubmitWithdrawalInput represents a payout request
type SubmitWithdrawalInput struct {
	Amount float64 `json:"amount" binding:"required"`
	Method string  `json:"method" binding:"required"`
	// UPI payout
	UPIID string `json:"upi_id"`
	// Bank payout
	AccountNumber string `json:"account_number"`
	IFSC          string `json:"ifsc"`
	AccountHolder string `json:"account_holder"`
}

// SubmitWithdrawal records a pending payout request. The balance check
// happens at admin approval time, not here; the user only receives an
// acknowledgement.
func SubmitWithdrawal(c *gin.Context) {
	utils.LogInfo("SubmitWithdrawal called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req SubmitWithdrawalInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid withdrawal payload: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	if err := utils.ValidateAmount(req.Amount); err != nil {
		utils.BadRequest(c, "Invalid amount", err.Error())
		return
	}

	details := map[string]string{}
	switch req.Method {
	case models.WithdrawalMethodUPI:
		if valid, msg := utils.ValidateUPIID(req.UPIID); !valid {
			utils.BadRequest(c, "Invalid UPI ID", msg)
			return
		}
		details["upi_id"] = req.UPIID
	case models.WithdrawalMethodBank:
		if req.AccountNumber == "" || req.IFSC == "" || req.AccountHolder == "" {
			utils.BadRequest(c, "Bank withdrawals require account number, IFSC, and account holder", nil)
			return
		}
		details["account_number"] = req.AccountNumber
		details["ifsc"] = req.IFSC
		details["account_holder"] = utils.SanitizeString(req.AccountHolder)
	default:
		utils.BadRequest(c, "Unsupported withdrawal method", gin.H{"method": req.Method})
		return
	}

	payload, err := json.Marshal(details)
	if err != nil {
		utils.LogError("Failed to encode withdrawal details: %v", err)
		utils.InternalServerError(c, "Failed to submit withdrawal", nil)
		return
	}

	withdrawal := models.Withdrawal{
		UserID:  user.ID,
		Amount:  req.Amount,
		Method:  req.Method,
		Details: string(payload),
		Status:  models.WithdrawalStatusPending,
	}
	if err := config.DB.Create(&withdrawal).Error; err != nil {
		utils.LogError("Failed to create withdrawal for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to submit withdrawal", nil)
		return
	}

	utils.LogInfo("User %d submitted withdrawal %d (amount %.2f)", user.ID, withdrawal.ID, req.Amount)
	utils.Created(c, "Withdrawal request submitted. It will be processed shortly.", gin.H{
		"withdrawal": gin.H{
			"id":     withdrawal.ID,
			"amount": withdrawal.Amount,
			"status": withdrawal.Status,
		},
	})
}

// GetMyWithdrawals lists the caller's withdrawal requests, newest first
func GetMyWithdrawals(c *gin.Context) {
	utils.LogInfo("GetMyWithdrawals called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	pagination := utils.NewPagination(c)

	var total int64
	if err := config.DB.Model(&models.Withdrawal{}).
		Where("user_id = ?", user.ID).Count(&total).Error; err != nil {
		utils.LogError("Failed to count withdrawals: %v", err)
		utils.InternalServerError(c, "Failed to fetch withdrawals", err.Error())
		return
	}

	var withdrawals []models.Withdrawal
	if err := config.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC, id DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&withdrawals).Error; err != nil {
		utils.LogError("Failed to fetch withdrawals: %v", err)
		utils.InternalServerError(c, "Failed to fetch withdrawals", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Withdrawals retrieved successfully",
		gin.H{"withdrawals": withdrawals}, total, pagination.Page, pagination.Limit)
}
