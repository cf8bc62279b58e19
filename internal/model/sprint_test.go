package model_test

import (
	"testing"
	"time"

	"syncboard/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestSprintStatus_CanTransitionTo(t *testing.T) {
	allowed := map[model.SprintStatus][]model.SprintStatus{
		model.SprintPlanned:   {model.SprintActive},
		model.SprintActive:    {model.SprintOnHold, model.SprintCompleted},
		model.SprintOnHold:    {model.SprintActive, model.SprintCompleted},
		model.SprintCompleted: {},
	}
	all := []model.SprintStatus{model.SprintPlanned, model.SprintActive, model.SprintOnHold, model.SprintCompleted}

	for from, targets := range allowed {
		for _, to := range all {
			assert.Equal(t, contains(targets, to), from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func contains(list []model.SprintStatus, s model.SprintStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestSprintStatus_Valid(t *testing.T) {
	assert.True(t, model.SprintOnHold.Valid())
	assert.False(t, model.SprintStatus("ARCHIVED").Valid())
}

func TestSprint_InWindowIsInclusive(t *testing.T) {
	start := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	s := model.Sprint{StartDate: start, EndDate: start.AddDate(0, 0, 14)}

	assert.True(t, s.InWindow(start))
	assert.True(t, s.InWindow(s.EndDate))
	assert.False(t, s.InWindow(start.Add(-time.Second)))
	assert.False(t, s.InWindow(s.EndDate.Add(time.Second)))
}

func TestSprint_BoardLocked(t *testing.T) {
	assert.True(t, (&model.Sprint{Status: model.SprintPlanned}).BoardLocked())
	assert.True(t, (&model.Sprint{Status: model.SprintCompleted}).BoardLocked())
	assert.False(t, (&model.Sprint{Status: model.SprintActive}).BoardLocked())
	assert.False(t, (&model.Sprint{Status: model.SprintOnHold}).BoardLocked())
}

func TestIssueEnums(t *testing.T) {
	assert.True(t, model.StatusInReview.Valid())
	assert.False(t, model.IssueStatus("BACKLOG").Valid())
	assert.True(t, model.PriorityUrgent.Valid())
	assert.False(t, model.IssuePriority("CRITICAL").Valid())
}

func TestProject_IsAdmin(t *testing.T) {
	admin := uuid.New()
	p := model.Project{AdminIDs: datatypes.JSONSlice[string]{admin.String()}}

	assert.True(t, p.IsAdmin(admin))
	assert.False(t, p.IsAdmin(uuid.New()))
}
