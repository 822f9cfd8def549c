package controllers

import (
	"strings"

	"github.com/arvind-722/ProfitNest/config"
	"github.com/arvind-722/ProfitNest/models"
	"github.com/arvind-722/ProfitNest/services"
	"github.com/arvind-722/ProfitNest/utils"
	"github.com/gin-gonic/gin"
)

// SubmitPaymentRequestInput represents a recharge or plan-purchase claim.
// PlanID nil means wallet recharge.
type SubmitPaymentRequestInput struct {
	PlanID        *uint   `json:"plan_id"`
	Amount        float64 `json:"amount"`
	TransactionID string  `json:"transaction_id" binding:"required"`
	PaymentMethod string  `json:"payment_method" binding:"required"`
}

// SubmitPaymentRequest records a user's claim of having paid. Nothing is
// credited here; an admin verifies the reference and approves or rejects.
func SubmitPaymentRequest(c *gin.Context) {
	utils.LogInfo("SubmitPaymentRequest called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req SubmitPaymentRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid payment request payload: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	transactionID := strings.TrimSpace(utils.SanitizeString(req.TransactionID))
	if err := utils.ValidateStringLength(transactionID, 6, 64); err != nil {
		utils.BadRequest(c, "Invalid transaction reference", err.Error())
		return
	}

	amount := req.Amount
	if req.PlanID != nil {
		// Plan purchases are always for the current catalog price
		plan, err := services.GetPlan(config.DB, *req.PlanID)
		if err != nil {
			utils.LogError("Unknown plan %d in payment request: %v", *req.PlanID, err)
			handleServiceError(c, err)
			return
		}
		if !plan.IsActive {
			utils.BadRequest(c, "Plan is not open for investment", nil)
			return
		}
		amount = plan.Price
	} else if err := utils.ValidateAmount(amount); err != nil {
		utils.BadRequest(c, "Invalid amount", err.Error())
		return
	}

	request := models.PaymentRequest{
		UserID:        user.ID,
		PlanID:        req.PlanID,
		Amount:        amount,
		TransactionID: transactionID,
		PaymentMethod: utils.SanitizeString(req.PaymentMethod),
		Status:        models.PaymentRequestStatusPending,
	}
	if err := config.DB.Create(&request).Error; err != nil {
		utils.LogError("Failed to create payment request for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to submit payment request", nil)
		return
	}

	utils.LogInfo("User %d submitted payment request %d (amount %.2f)", user.ID, request.ID, amount)
	utils.Created(c, "Payment request submitted. It will be verified shortly.", gin.H{
		"request": gin.H{
			"id":     request.ID,
			"amount": request.Amount,
			"status": request.Status,
		},
	})
}

// GetMyPaymentRequests lists the caller's payment requests, newest first
func GetMyPaymentRequests(c *gin.Context) {
	utils.LogInfo("GetMyPaymentRequests called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	pagination := utils.NewPagination(c)

	var total int64
	if err := config.DB.Model(&models.PaymentRequest{}).
		Where("user_id = ?", user.ID).Count(&total).Error; err != nil {
		utils.LogError("Failed to count payment requests: %v", err)
		utils.InternalServerError(c, "Failed to fetch payment requests", err.Error())
		return
	}

	var requests []models.PaymentRequest
	if err := config.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC, id DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&requests).Error; err != nil {
		utils.LogError("Failed to fetch payment requests: %v", err)
		utils.InternalServerError(c, "Failed to fetch payment requests", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Payment requests retrieved successfully",
		gin.H{"requests": requests}, total, pagination.Page, pagination.Limit)
}
