package services

import (
	"errors"
	"fmt"

	"github.com/arvind-722/ProfitNest/models"
	"github.com/arvind-722/ProfitNest/utils"
	"gorm.io/gorm"
)

// PlanInput carries admin-supplied plan fields. TotalIncome is deliberately
// absent: it is always recomputed from DailyProfit and ValidityDays so the
// catalog can never drift out of internal consistency.
type PlanInput struct {
	Name         string  `json:"name" binding:"required"`
	Price        float64 `json:"price" binding:"required"`
	DailyProfit  float64 `json:"daily_profit" binding:"required"`
	ValidityDays int     `json:"validity_days" binding:"required"`
	IsActive     *bool   `json:"is_active"`
}

func validatePlanInput(input PlanInput) error {
	if input.Name == "" {
		return fmt.Errorf("%w: plan name is required", ErrValidation)
	}
	if input.Price <= 0 {
		return fmt.Errorf("%w: price must be greater than 0", ErrValidation)
	}
	if input.DailyProfit <= 0 {
		return fmt.Errorf("%w: daily profit must be greater than 0", ErrValidation)
	}
	if input.ValidityDays <= 0 {
		return fmt.Errorf("%w: validity days must be greater than 0", ErrValidation)
	}
	return nil
}

// GetPlan retrieves a plan by id
func GetPlan(db *gorm.DB, id uint) (*models.Plan, error) {
	var plan models.Plan
	if err := db.First(&plan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("plan %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &plan, nil
}

// ListActivePlans returns active plans in catalog insertion order
func ListActivePlans(db *gorm.DB) ([]models.Plan, error) {
	var plans []models.Plan
	if err := db.Where("is_active = ?", true).Order("id ASC").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// CreatePlan validates the input and adds a plan to the catalog
func CreatePlan(db *gorm.DB, input PlanInput) (*models.Plan, error) {
	if err := validatePlanInput(input); err != nil {
		return nil, err
	}

	plan := models.Plan{
		Name:         utils.SanitizeString(input.Name),
		Price:        input.Price,
		DailyProfit:  input.DailyProfit,
		ValidityDays: input.ValidityDays,
		TotalIncome:  input.DailyProfit * float64(input.ValidityDays),
		IsActive:     true,
	}
	if input.IsActive != nil {
		plan.IsActive = *input.IsActive
	}

	if err := db.Create(&plan).Error; err != nil {
		return nil, err
	}
	utils.LogInfo("Created plan %d (%s)", plan.ID, plan.Name)
	return &plan, nil
}

// UpdatePlan validates the input and updates an existing plan. TotalIncome
// is recomputed from the new figures.
func UpdatePlan(db *gorm.DB, id uint, input PlanInput) (*models.Plan, error) {
	plan, err := GetPlan(db, id)
	if err != nil {
		return nil, err
	}

	if err := validatePlanInput(input); err != nil {
		return nil, err
	}

	plan.Name = utils.SanitizeString(input.Name)
	plan.Price = input.Price
	plan.DailyProfit = input.DailyProfit
	plan.ValidityDays = input.ValidityDays
	plan.TotalIncome = input.DailyProfit * float64(input.ValidityDays)
	if input.IsActive != nil {
		plan.IsActive = *input.IsActive
	}

	if err := db.Save(plan).Error; err != nil {
		return nil, err
	}
	utils.LogInfo("Updated plan %d (%s)", plan.ID, plan.Name)
	return plan, nil
}
