package repository

import (
	"context"
	"errors"

	"syncboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SprintRepositoryInterface interface {
	Create(ctx context.Context, sprint *model.Sprint) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Sprint, error)
	ListByProject(ctx context.Context, projectID uuid.UUID, orgID string) ([]model.Sprint, error)
	CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.SprintStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ SprintRepositoryInterface = (*SprintRepository)(nil)

type SprintRepository struct {
	db *gorm.DB
}

func NewSprintRepository(db *gorm.DB) *SprintRepository {
	return &SprintRepository{db: db}
}

func (r *SprintRepository) Create(ctx context.Context, sprint *model.Sprint) error {
	return r.db.WithContext(ctx).Create(sprint).Error
}

// GetByID loads the sprint with its project so callers can check the owning
// organization.
func (r *SprintRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Sprint, error) {
	var sprint model.Sprint
	if err := r.db.WithContext(ctx).Preload("Project").Where("id = ?", id).First(&sprint).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSprintNotFound
		}
		return nil, err
	}
	return &sprint, nil
}

// ListByProject returns the project's sprints, newest first, restricted to
// projects of the given organization.
func (r *SprintRepository) ListByProject(ctx context.Context, projectID uuid.UUID, orgID string) ([]model.Sprint, error) {
	var sprints []model.Sprint
	err := r.db.WithContext(ctx).
		Joins("JOIN projects ON projects.id = sprints.project_id").
		Where("sprints.project_id = ? AND projects.organization_id = ?", projectID, orgID).
		Order("sprints.created_at DESC").
		Find(&sprints).Error
	return sprints, err
}

func (r *SprintRepository) CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Sprint{}).Where("project_id = ?", projectID).Count(&count).Error
	return count, err
}

func (r *SprintRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.SprintStatus) error {
	result := r.db.WithContext(ctx).Model(&model.Sprint{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSprintNotFound
	}
	return nil
}

// Delete removes a sprint. Its issues stay in the project with no sprint.
func (r *SprintRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Issue{}).
			Where("sprint_id = ?", id).
			Update("sprint_id", nil).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&model.Sprint{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrSprintNotFound
		}
		return nil
	})
}
