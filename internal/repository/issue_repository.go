package repository

import (
	"context"
	"errors"

	"syncboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IssueRepositoryInterface interface {
	CreateAppended(ctx context.Context, issue *model.Issue) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Issue, error)
	ListBySprint(ctx context.Context, sprintID uuid.UUID) ([]model.Issue, error)
	ListForUser(ctx context.Context, userID uuid.UUID, orgID string) ([]model.Issue, error)
	Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*model.Issue, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateOrder(ctx context.Context, orders []model.IssueOrder) error
}

var _ IssueRepositoryInterface = (*IssueRepository)(nil)

type IssueRepository struct {
	db *gorm.DB
}

func NewIssueRepository(db *gorm.DB) *IssueRepository {
	return &IssueRepository{db: db}
}

// NextOrder returns the order that puts a new issue at the bottom of its
// (project, status) column: one past the current maximum, or 0.
func NextOrder(tx *gorm.DB, projectID uuid.UUID, status model.IssueStatus) (int, error) {
	var last model.Issue
	err := tx.Select("position").
		Where("project_id = ? AND status = ?", projectID, status).
		Order("position DESC").
		First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return last.Order + 1, nil
}

// CreateAppended assigns the issue's order with NextOrder and inserts it in
// the same transaction.
func (r *IssueRepository) CreateAppended(ctx context.Context, issue *model.Issue) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := NextOrder(tx, issue.ProjectID, issue.Status)
		if err != nil {
			return err
		}
		issue.Order = order
		return tx.Create(issue).Error
	})
}

// GetByID loads the issue with its project.
func (r *IssueRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Issue, error) {
	var issue model.Issue
	result := r.db.WithContext(ctx).Preload("Project").First(&issue, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, result.Error
	}
	return &issue, nil
}

// ListBySprint returns the sprint's issues sorted by status then order.
func (r *IssueRepository) ListBySprint(ctx context.Context, sprintID uuid.UUID) ([]model.Issue, error) {
	var issues []model.Issue
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Assignee").
		Preload("Reporter").
		Where("sprint_id = ?", sprintID).
		Order("status ASC").
		Order("position ASC").
		Find(&issues).Error
	return issues, err
}

// ListForUser returns issues the user reports or is assigned to inside the
// organization, most recently updated first.
func (r *IssueRepository) ListForUser(ctx context.Context, userID uuid.UUID, orgID string) ([]model.Issue, error) {
	var issues []model.Issue
	err := r.db.WithContext(ctx).
		Joins("JOIN projects ON projects.id = issues.project_id").
		Preload("Project").
		Preload("Assignee").
		Preload("Reporter").
		Where("(issues.assignee_id = ? OR issues.reporter_id = ?) AND projects.organization_id = ?", userID, userID, orgID).
		Order("issues.updated_at DESC").
		Find(&issues).Error
	return issues, err
}

// Update writes only the given columns and returns the reloaded issue. An
// issue whose status changes is appended to the bottom of its new column.
func (r *IssueRepository) Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*model.Issue, error) {
	if len(changes) > 0 {
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return updateIssue(tx, id, changes)
		})
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		if err != nil {
			return nil, err
		}
	}

	var issue model.Issue
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Assignee").
		Preload("Reporter").
		First(&issue, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrIssueNotFound
	}
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

func updateIssue(tx *gorm.DB, id uuid.UUID, changes map[string]any) error {
	if status, ok := changes["status"].(model.IssueStatus); ok {
		var current model.Issue
		if err := tx.Select("project_id", "status").First(&current, "id = ?", id).Error; err != nil {
			return err
		}
		if current.Status != status {
			order, err := NextOrder(tx, current.ProjectID, status)
			if err != nil {
				return err
			}
			moved := make(map[string]any, len(changes)+1)
			for k, v := range changes {
				moved[k] = v
			}
			moved["position"] = order
			changes = moved
		}
	}

	result := tx.Model(&model.Issue{}).Where("id = ?", id).Updates(changes)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrIssueNotFound
	}
	return nil
}

func (r *IssueRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Issue{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrIssueNotFound
	}
	return nil
}

// UpdateOrder writes every {status, order} pair in one transaction. A row
// that does not exist aborts the whole batch.
func (r *IssueRepository) UpdateOrder(ctx context.Context, orders []model.IssueOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, o := range orders {
			result := tx.Model(&model.Issue{}).
				Where("id = ?", o.ID).
				Updates(map[string]any{"status": o.Status, "position": o.Order})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrIssueNotFound
			}
		}
		return nil
	})
}
