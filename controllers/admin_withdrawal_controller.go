package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/arvind-722/ProfitNest/config"
	"github.com/arvind-722/ProfitNest/models"
	"github.com/arvind-722/ProfitNest/services"
	"github.com/arvind-722/ProfitNest/utils"
	"github.com/gin-gonic/gin"
)

// GetWithdrawals lists withdrawal requests for admin review, oldest first
// so the queue is processed in submission order
func GetWithdrawals(c *gin.Context) {
	status := c.DefaultQuery("status", models.WithdrawalStatusPending)
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Withdrawal{})
	if status != "all" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count withdrawals: %v", err)
		utils.InternalServerError(c, "Failed to fetch withdrawals", err.Error())
		return
	}

	var withdrawals []models.Withdrawal
	err := query.Preload("User").
		Order("created_at ASC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&withdrawals).Error
	if err != nil {
		utils.LogError("Failed to fetch withdrawals: %v", err)
		utils.InternalServerError(c, "Failed to fetch withdrawals", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Withdrawals retrieved successfully",
		gin.H{"withdrawals": withdrawals}, total, pagination.Page, pagination.Limit)
}

// ApproveWithdrawal marks a withdrawal as completed and debits the
// user's ledger. Approval fails with an explicit error when the user's
// balance no longer covers the amount; the request stays pending.
func ApproveWithdrawal(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid withdrawal ID", nil)
		return
	}

	utils.LogInfo("Admin approving withdrawal %d", id)

	withdrawal, err := services.ApproveWithdrawal(config.DB, uint(id), time.Now().UTC())
	if err != nil {
		if errors.Is(err, services.ErrInsufficientBalance) {
			utils.LogInfo("Withdrawal %d left pending: insufficient balance", id)
		} else {
			utils.LogError("Failed to approve withdrawal %d: %v", id, err)
		}
		handleServiceError(c, err)
		return
	}

	// Notification failure must not undo the approval
	var user models.User
	if err := config.DB.First(&user, withdrawal.UserID).Error; err == nil {
		if err := utils.SendWithdrawalProcessedEmail(user.Email, withdrawal.Amount); err != nil {
			utils.LogError("Failed to send withdrawal email to user %d: %v", user.ID, err)
		}
	}

	utils.LogInfo("Withdrawal %d approved for user %d", withdrawal.ID, withdrawal.UserID)
	utils.Success(c, "Withdrawal approved successfully", gin.H{
		"withdrawal": withdrawal,
	})
}

// RejectWithdrawal marks a withdrawal as rejected with a reason. No
// ledger entry is written; the funds were never debited.
func RejectWithdrawal(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid withdrawal ID", nil)
		return
	}

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Rejection reason is required", err.Error())
		return
	}
	reason := utils.SanitizeString(req.Reason)
	if reason == "" {
		utils.BadRequest(c, "Rejection reason is required", nil)
		return
	}

	withdrawal, err := services.RejectWithdrawal(config.DB, uint(id), reason)
	if err != nil {
		utils.LogError("Failed to reject withdrawal %d: %v", id, err)
		handleServiceError(c, err)
		return
	}

	utils.LogInfo("Withdrawal %d rejected: %s", withdrawal.ID, reason)
	utils.Success(c, "Withdrawal rejected", gin.H{
		"withdrawal": withdrawal,
	})
}
