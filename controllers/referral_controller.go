package controllers

import (
	"github.com/arvind-722/ProfitNest/config"
	"github.com/arvind-722/ProfitNest/models"
	"github.com/arvind-722/ProfitNest/services"
	"github.com/arvind-722/ProfitNest/utils"
	"github.com/gin-gonic/gin"
)

// GetReferralSummary returns the user's referral code, direct referral
// count, and lifetime commission total
func GetReferralSummary(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	summary, err := services.GetReferralSummary(config.DB, user.ID)
	if err != nil {
		utils.LogError("Failed to build referral summary for user %d: %v", user.ID, err)
		handleServiceError(c, err)
		return
	}

	utils.Success(c, "Referral summary retrieved successfully", gin.H{
		"summary": summary,
	})
}

// GetMyReferrals lists the users who signed up with the caller's referral code
func GetMyReferrals(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	pagination := utils.NewPagination(c)

	var total int64
	if err := config.DB.Model(&models.User{}).Where("sponsor_id = ?", user.ID).Count(&total).Error; err != nil {
		utils.LogError("Failed to count referrals for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch referrals", err.Error())
		return
	}

	var referrals []models.User
	err := config.DB.Where("sponsor_id = ?", user.ID).
		Order("created_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&referrals).Error
	if err != nil {
		utils.LogError("Failed to fetch referrals for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch referrals", err.Error())
		return
	}

	list := make([]gin.H, 0, len(referrals))
	for _, r := range referrals {
		list = append(list, gin.H{
			"id":        r.ID,
			"username":  r.Username,
			"joined_at": r.CreatedAt,
		})
	}

	utils.SuccessWithPagination(c, "Referrals retrieved successfully",
		gin.H{"referrals": list}, total, pagination.Page, pagination.Limit)
}
