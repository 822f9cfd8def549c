package controllers

import (
	"strconv"
	"time"

	"github.com/arvind-722/ProfitNest/config"
	"github.com/arvind-722/ProfitNest/models"
	"github.com/arvind-722/ProfitNest/services"
	"github.com/arvind-722/ProfitNest/utils"
	"github.com/gin-gonic/gin"
)

// GetPaymentRequests lists payment requests for review, filterable by
// status, oldest pending first
func GetPaymentRequests(c *gin.Context) {
	utils.LogInfo("GetPaymentRequests called")

	pagination := utils.NewPagination(c)
	status := c.DefaultQuery("status", models.PaymentRequestStatusPending)

	query := config.DB.Model(&models.PaymentRequest{})
	if status != "all" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count payment requests: %v", err)
		utils.InternalServerError(c, "Failed to fetch payment requests", err.Error())
		return
	}

	var requests []models.PaymentRequest
	if err := query.Preload("User").Preload("Plan").
		Order("created_at ASC, id ASC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&requests).Error; err != nil {
		utils.LogError("Failed to fetch payment requests: %v", err)
		utils.InternalServerError(c, "Failed to fetch payment requests", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Payment requests retrieved successfully",
		gin.H{"requests": requests}, total, pagination.Page, pagination.Limit)
}

// ApprovePaymentRequest verifies a payment claim: recharges credit the
// wallet, plan purchases activate an investment and pay referral
// commissions. Safe to retry.
func ApprovePaymentRequest(c *gin.Context) {
	utils.LogInfo("ApprovePaymentRequest called")

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.LogError("Invalid payment request ID format: %v", err)
		utils.BadRequest(c, "Invalid request ID", nil)
		return
	}

	request, err := services.ApprovePaymentRequest(config.DB, uint(requestID), time.Now().UTC())
	if err != nil {
		utils.LogError("Failed to approve payment request %d: %v", requestID, err)
		handleServiceError(c, err)
		return
	}

	utils.LogInfo("Payment request %d approved", requestID)
	utils.Success(c, "Payment request approved", gin.H{"request": request})
}

// RejectPaymentRequest declines a payment claim. Terminal, no side effects.
func RejectPaymentRequest(c *gin.Context) {
	utils.LogInfo("RejectPaymentRequest called")

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.LogError("Invalid payment request ID format: %v", err)
		utils.BadRequest(c, "Invalid request ID", nil)
		return
	}

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Missing rejection reason for request %d: %v", requestID, err)
		utils.BadRequest(c, "Reason is required", nil)
		return
	}

	request, err := services.RejectPaymentRequest(config.DB, uint(requestID), utils.SanitizeString(req.Reason))
	if err != nil {
		utils.LogError("Failed to reject payment request %d: %v", requestID, err)
		handleServiceError(c, err)
		return
	}

	utils.LogInfo("Payment request %d rejected", requestID)
	utils.Success(c, "Payment request rejected", gin.H{"request": request})
}
