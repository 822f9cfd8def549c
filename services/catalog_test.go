package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePlanRecomputesTotalIncome(t *testing.T) {
	db := openTestDB(t)

	plan, err := CreatePlan(db, PlanInput{
		Name:         "Starter",
		Price:        1000,
		DailyProfit:  244,
		ValidityDays: 365,
	})
	require.NoError(t, err)
	assert.Equal(t, 244.0*365, plan.TotalIncome)
	assert.True(t, plan.IsActive)
}

func TestCreatePlanValidation(t *testing.T) {
	db := openTestDB(t)

	cases := []PlanInput{
		{Name: "", Price: 100, DailyProfit: 10, ValidityDays: 30},
		{Name: "NoPrice", Price: 0, DailyProfit: 10, ValidityDays: 30},
		{Name: "NoProfit", Price: 100, DailyProfit: 0, ValidityDays: 30},
		{Name: "NoDays", Price: 100, DailyProfit: 10, ValidityDays: 0},
	}
	for _, input := range cases {
		_, err := CreatePlan(db, input)
		assert.ErrorIs(t, err, ErrValidation, "input %+v should be rejected", input)
	}
}

func TestUpdatePlanRecomputesTotalIncome(t *testing.T) {
	db := openTestDB(t)
	plan := createTestPlan(t, db, "Silver", 500, 20, 40)

	updated, err := UpdatePlan(db, plan.ID, PlanInput{
		Name:         "Silver",
		Price:        500,
		DailyProfit:  25,
		ValidityDays: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, 25.0*50, updated.TotalIncome)

	_, err = UpdatePlan(db, 999, PlanInput{Name: "X", Price: 1, DailyProfit: 1, ValidityDays: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListActivePlansInsertionOrder(t *testing.T) {
	db := openTestDB(t)

	createTestPlan(t, db, "Bronze", 100, 5, 30)
	createTestPlan(t, db, "Gold", 2000, 90, 60)
	inactive := false
	_, err := CreatePlan(db, PlanInput{
		Name: "Hidden", Price: 50, DailyProfit: 2, ValidityDays: 10, IsActive: &inactive,
	})
	require.NoError(t, err)

	plans, err := ListActivePlans(db)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "Bronze", plans[0].Name)
	assert.Equal(t, "Gold", plans[1].Name)
}

func TestGetPlanNotFound(t *testing.T) {
	db := openTestDB(t)

	_, err := GetPlan(db, 7)
	assert.ErrorIs(t, err, ErrNotFound)
}
