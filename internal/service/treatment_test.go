package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthassist-server/internal/domain"
)

func TestPlanForKnownCondition(t *testing.T) {
	planner := NewTreatmentPlanner(testLogger())

	plan, err := planner.Plan("Common Cold")
	require.NoError(t, err)

	assert.Equal(t, "Common Cold", plan.Condition)
	assert.Equal(t, "7-10 days", plan.Duration)
	require.Len(t, plan.Medications, 1)
	assert.Equal(t, "Paracetamol", plan.Medications[0].Name)
	assert.NotEmpty(t, plan.Diet)
	assert.NotEmpty(t, plan.Prevention)
	assert.NotEmpty(t, plan.FollowUp)
}

func TestPlanForUnknownConditionFallsBack(t *testing.T) {
	planner := NewTreatmentPlanner(testLogger())

	plan, err := planner.Plan("Migraine")
	require.NoError(t, err)

	assert.Equal(t, "Migraine", plan.Condition)
	assert.Equal(t, "5-7 days", plan.Duration)
	require.Len(t, plan.Medications, 1)
	assert.Equal(t, "Consult doctor for prescription", plan.Medications[0].Name)
}

func TestPlanRejectsEmptyCondition(t *testing.T) {
	planner := NewTreatmentPlanner(testLogger())

	_, err := planner.Plan("")
	assert.ErrorIs(t, err, domain.ErrEmptyCondition)
}

func TestCataloguedPlansDoNotLeakMutations(t *testing.T) {
	planner := NewTreatmentPlanner(testLogger())

	first, err := planner.Plan("Fever")
	require.NoError(t, err)
	first.Duration = "changed"

	second, err := planner.Plan("Fever")
	require.NoError(t, err)
	assert.Equal(t, "3-5 days", second.Duration)
}

func TestConditionsListed(t *testing.T) {
	planner := NewTreatmentPlanner(testLogger())

	conditions := planner.Conditions()
	assert.Len(t, conditions, 10)
	assert.Contains(t, conditions, "Common Cold")
	assert.Contains(t, conditions, "Acid Reflux")
}
