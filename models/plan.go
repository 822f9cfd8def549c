package models

import (
	"gorm.io/gorm"
)

// Plan represents an investment product in the catalog
type Plan struct {
	gorm.Model
	Name         string  `gorm:"uniqueIndex;not null" json:"name"`
	Price        float64 `gorm:"not null" json:"price"`
	DailyProfit  float64 `gorm:"not null" json:"daily_profit"`
	ValidityDays int     `gorm:"not null" json:"validity_days"`
	// TotalIncome is always recomputed as DailyProfit * ValidityDays.
	// It is stored for display only and never accepted from input.
	TotalIncome float64 `json:"total_income"`
	IsActive    bool    `gorm:"default:true" json:"is_active"`
}
