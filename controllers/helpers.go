package controllers

import (
	"errors"
	"net/http"

	"github.com/arvind-722/ProfitNest/models"
	"github.com/arvind-722/ProfitNest/services"
	"github.com/arvind-722/ProfitNest/utils"
	"github.com/gin-gonic/gin"
)

// handleServiceError maps domain errors onto HTTP responses so admins see
// explicit reasons instead of generic failures
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, services.ErrValidation):
		utils.BadRequest(c, "Invalid input", err.Error())
	case errors.Is(err, services.ErrInvalidStateTransition):
		utils.Conflict(c, "Request already processed", err.Error())
	case errors.Is(err, services.ErrInsufficientBalance):
		utils.Error(c, http.StatusUnprocessableEntity, "Insufficient balance", err.Error())
	case errors.Is(err, services.ErrConcurrencyConflict):
		utils.Conflict(c, "Concurrent update, please retry", err.Error())
	default:
		utils.InternalServerError(c, "Something went wrong", err.Error())
	}
}

// currentUser extracts the authenticated user set by AuthMiddleware
func currentUser(c *gin.Context) (models.User, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return models.User{}, false
	}
	user, ok := userVal.(models.User)
	if !ok {
		utils.LogError("Invalid user type in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user type"})
		return models.User{}, false
	}
	return user, true
}
