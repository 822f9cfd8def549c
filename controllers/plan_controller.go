package controllers

import (
	"github.com/arvind-722/ProfitNest/config"
	"github.com/arvind-722/ProfitNest/services"
	"github.com/arvind-722/ProfitNest/utils"
	"github.com/gin-gonic/gin"
)

// GetActivePlans lists the plans open for investment, in catalog order
func GetActivePlans(c *gin.Context) {
	utils.LogInfo("GetActivePlans called")

	plans, err := services.ListActivePlans(config.DB)
	if err != nil {
		utils.LogError("Failed to list plans: %v", err)
		handleServiceError(c, err)
		return
	}

	utils.Success(c, "Plans retrieved successfully", gin.H{"plans": plans})
}
