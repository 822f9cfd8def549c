package controllers

import (
	"strconv"

	"github.com/arvind-722/ProfitNest/config"
	"github.com/arvind-722/ProfitNest/models"
	"github.com/arvind-722/ProfitNest/services"
	"github.com/arvind-722/ProfitNest/utils"
	"github.com/gin-gonic/gin"
)

// CreatePlan adds a plan to the catalog. TotalIncome is always derived
// from daily profit and validity, never taken from the request.
func CreatePlan(c *gin.Context) {
	utils.LogInfo("CreatePlan called")

	var input services.PlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.LogError("Invalid plan payload: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	plan, err := services.CreatePlan(config.DB, input)
	if err != nil {
		utils.LogError("Failed to create plan: %v", err)
		handleServiceError(c, err)
		return
	}

	utils.Created(c, "Plan created successfully", gin.H{"plan": plan})
}

// UpdatePlan edits a catalog entry
func UpdatePlan(c *gin.Context) {
	utils.LogInfo("UpdatePlan called")

	planID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.LogError("Invalid plan ID format: %v", err)
		utils.BadRequest(c, "Invalid plan ID", nil)
		return
	}

	var input services.PlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.LogError("Invalid plan payload: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	plan, err := services.UpdatePlan(config.DB, uint(planID), input)
	if err != nil {
		utils.LogError("Failed to update plan %d: %v", planID, err)
		handleServiceError(c, err)
		return
	}

	utils.Success(c, "Plan updated successfully", gin.H{"plan": plan})
}

// GetAllPlans lists every plan, active or not, for the admin catalog view
func GetAllPlans(c *gin.Context) {
	utils.LogInfo("GetAllPlans called")

	pagination := utils.NewPagination(c)

	var total int64
	if err := config.DB.Model(&models.Plan{}).Count(&total).Error; err != nil {
		utils.LogError("Failed to count plans: %v", err)
		utils.InternalServerError(c, "Failed to fetch plans", err.Error())
		return
	}

	var plans []models.Plan
	if err := config.DB.Order("id ASC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&plans).Error; err != nil {
		utils.LogError("Failed to fetch plans: %v", err)
		utils.InternalServerError(c, "Failed to fetch plans", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Plans retrieved successfully", gin.H{"plans": plans},
		total, pagination.Page, pagination.Limit)
}
