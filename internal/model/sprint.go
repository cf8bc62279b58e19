package model

import (
	"time"

	"github.com/google/uuid"
)

type SprintStatus string

const (
	SprintPlanned   SprintStatus = "PLANNED"
	SprintActive    SprintStatus = "ACTIVE"
	SprintOnHold    SprintStatus = "ON_HOLD"
	SprintCompleted SprintStatus = "COMPLETED"
)

// sprintTransitions lists the allowed outbound states for each sprint status.
// COMPLETED is terminal.
var sprintTransitions = map[SprintStatus][]SprintStatus{
	SprintPlanned:   {SprintActive},
	SprintActive:    {SprintOnHold, SprintCompleted},
	SprintOnHold:    {SprintActive, SprintCompleted},
	SprintCompleted: nil,
}

func (s SprintStatus) Valid() bool {
	_, ok := sprintTransitions[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is allowed by the
// sprint lifecycle. Date-window checks are left to the caller.
func (s SprintStatus) CanTransitionTo(next SprintStatus) bool {
	for _, allowed := range sprintTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Sprint struct {
	ID        uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string       `gorm:"not null" json:"name"`
	Status    SprintStatus `gorm:"type:varchar(16);not null;default:PLANNED" json:"status"`
	StartDate time.Time    `gorm:"not null" json:"startDate"`
	EndDate   time.Time    `gorm:"not null" json:"endDate"`
	ProjectID uuid.UUID    `gorm:"type:uuid;not null;index" json:"projectId"`
	CreatedAt time.Time    `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time    `gorm:"autoUpdateTime" json:"updatedAt"`

	Project *Project `gorm:"foreignKey:ProjectID" json:"-"`
}

// InWindow reports whether t falls inside the sprint's start/end dates.
func (s *Sprint) InWindow(t time.Time) bool {
	return !t.Before(s.StartDate) && !t.After(s.EndDate)
}

// BoardLocked reports whether issues on the sprint board may not be moved.
func (s *Sprint) BoardLocked() bool {
	return s.Status == SprintPlanned || s.Status == SprintCompleted
}
