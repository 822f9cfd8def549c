package controllers

import (
	"errors"
	"strconv"

	"github.com/arvind-722/ProfitNest/config"
	"github.com/arvind-722/ProfitNest/models"
	"github.com/arvind-722/ProfitNest/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetUsers lists registered users with optional search by username or email
func GetUsers(c *gin.Context) {
	pagination := utils.NewPagination(c)
	search := utils.SanitizeString(c.Query("search"))

	query := config.DB.Model(&models.User{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("username LIKE ? OR email LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count users: %v", err)
		utils.InternalServerError(c, "Failed to fetch users", err.Error())
		return
	}

	var users []models.User
	err := query.Order("created_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&users).Error
	if err != nil {
		utils.LogError("Failed to fetch users: %v", err)
		utils.InternalServerError(c, "Failed to fetch users", err.Error())
		return
	}

	list := make([]gin.H, 0, len(users))
	for _, u := range users {
		list = append(list, gin.H{
			"id":            u.ID,
			"username":      u.Username,
			"email":         u.Email,
			"phone":         u.Phone,
			"referral_code": u.ReferralCode,
			"sponsor_id":    u.SponsorID,
			"is_blocked":    u.IsBlocked,
			"is_verified":   u.IsVerified,
			"created_at":    u.CreatedAt,
		})
	}

	utils.SuccessWithPagination(c, "Users retrieved successfully",
		gin.H{"users": list}, total, pagination.Page, pagination.Limit)
}

// BlockUser prevents a user from logging in and forfeits their future
// referral commissions. Existing investments keep accruing.
func BlockUser(c *gin.Context) {
	setUserBlocked(c, true)
}

// UnblockUser restores a blocked user's access
func UnblockUser(c *gin.Context) {
	setUserBlocked(c, false)
}

func setUserBlocked(c *gin.Context, blocked bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid user ID", nil)
		return
	}

	var user models.User
	if err := config.DB.First(&user, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "User not found")
			return
		}
		utils.LogError("Failed to load user %d: %v", id, err)
		utils.InternalServerError(c, "Failed to load user", err.Error())
		return
	}

	if user.IsBlocked == blocked {
		// Already in the requested state
		utils.Success(c, "User status unchanged", gin.H{"is_blocked": user.IsBlocked})
		return
	}

	if err := config.DB.Model(&user).Update("is_blocked", blocked).Error; err != nil {
		utils.LogError("Failed to update block status for user %d: %v", id, err)
		utils.InternalServerError(c, "Failed to update user", err.Error())
		return
	}

	action := "unblocked"
	if blocked {
		action = "blocked"
	}
	utils.LogInfo("Admin %s user %d (%s)", action, user.ID, user.Username)
	utils.Success(c, "User "+action+" successfully", gin.H{
		"id":         user.ID,
		"is_blocked": blocked,
	})
}
