package model

import (
	"time"

	"github.com/google/uuid"
)

type IssueStatus string

const (
	StatusTodo       IssueStatus = "TODO"
	StatusInProgress IssueStatus = "IN_PROGRESS"
	StatusInReview   IssueStatus = "IN_REVIEW"
	StatusDone       IssueStatus = "DONE"
)

// IssueStatuses is the board column order.
var IssueStatuses = []IssueStatus{StatusTodo, StatusInProgress, StatusInReview, StatusDone}

func (s IssueStatus) Valid() bool {
	for _, status := range IssueStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type IssuePriority string

const (
	PriorityLow    IssuePriority = "LOW"
	PriorityMedium IssuePriority = "MEDIUM"
	PriorityHigh   IssuePriority = "HIGH"
	PriorityUrgent IssuePriority = "URGENT"
)

func (p IssuePriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Issue struct {
	ID          uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title       string        `gorm:"not null" json:"title"`
	Description *string       `json:"description"`
	Status      IssueStatus   `gorm:"type:varchar(16);not null;index:idx_issues_project_status" json:"status"`
	Priority    IssuePriority `gorm:"type:varchar(16);not null;default:MEDIUM" json:"priority"`
	Order       int           `gorm:"column:position;not null" json:"order"`
	ProjectID   uuid.UUID     `gorm:"type:uuid;not null;index:idx_issues_project_status" json:"projectId"`
	SprintID    *uuid.UUID    `gorm:"type:uuid;index" json:"sprintId"`
	AssigneeID  *uuid.UUID    `gorm:"type:uuid" json:"assigneeId"`
	ReporterID  uuid.UUID     `gorm:"type:uuid;not null" json:"reporterId"`
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`

	Project  *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Assignee *User    `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Reporter *User    `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
}

// IssueOrder is the narrow write used by batch reordering.
type IssueOrder struct {
	ID     uuid.UUID   `json:"id" binding:"required"`
	Status IssueStatus `json:"status" binding:"required"`
	Order  int         `json:"order" binding:"min=0"`
}

// IssuePatch holds the fields of a partial issue update. Nil fields are left
// untouched. An empty AssigneeID clears the assignee.
type IssuePatch struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Status      *IssueStatus   `json:"status"`
	Priority    *IssuePriority `json:"priority"`
	AssigneeID  *string        `json:"assigneeId"`
}

// IssueFilter narrows board issues for display.
type IssueFilter struct {
	Search      string
	AssigneeIDs []uuid.UUID
	Priority    IssuePriority
}

type StatusCount struct {
	Status IssueStatus `json:"status"`
	Count  int64       `json:"count"`
}

type ProjectMetrics struct {
	StatusCounts        []StatusCount `json:"statusCounts"`
	PercentageCompleted int           `json:"percentageCompleted"`
}
