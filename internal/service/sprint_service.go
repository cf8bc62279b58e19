package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"syncboard/internal/auth"
	"syncboard/internal/model"
	"syncboard/internal/repository"

	"github.com/google/uuid"
)

type SprintService struct {
	sprints  repository.SprintRepositoryInterface
	projects repository.ProjectRepositoryInterface
	users    repository.UserRepositoryInterface
	now      func() time.Time
}

func NewSprintService(
	sprints repository.SprintRepositoryInterface,
	projects repository.ProjectRepositoryInterface,
	users repository.UserRepositoryInterface,
) *SprintService {
	return &SprintService{
		sprints:  sprints,
		projects: projects,
		users:    users,
		now:      time.Now,
	}
}

// WithClock replaces the time source used for the sprint date window.
func (s *SprintService) WithClock(now func() time.Time) *SprintService {
	s.now = now
	return s
}

type CreateSprintInput struct {
	Name      string
	StartDate time.Time
	EndDate   time.Time
}

// CreateSprint adds a PLANNED sprint to the project. An empty name defaults
// to <KEY>-<n>.
func (s *SprintService) CreateSprint(ctx context.Context, p auth.Principal, projectID uuid.UUID, in CreateSprintInput) (*model.Sprint, error) {
	if err := requireSession(p); err != nil {
		return nil, err
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return nil, Validation("Start and end dates are required", nil)
	}
	if !in.StartDate.Before(in.EndDate) {
		return nil, Validation("Start date must be before end date", nil)
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, projectError(err)
	}
	if project.OrganizationID != p.OrganizationID {
		return nil, NotFound("Project not found", nil)
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		count, err := s.sprints.CountByProject(ctx, projectID)
		if err != nil {
			return nil, Unknown("Failed to count sprints", err)
		}
		name = fmt.Sprintf("%s-%d", project.Key, count+1)
	}

	sprint := &model.Sprint{
		Name:      name,
		Status:    model.SprintPlanned,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		ProjectID: projectID,
	}
	if err := s.sprints.Create(ctx, sprint); err != nil {
		return nil, Unknown("Failed to create sprint", err)
	}
	return sprint, nil
}

func (s *SprintService) ListSprints(ctx context.Context, p auth.Principal, projectID uuid.UUID) ([]model.Sprint, error) {
	if err := requireSession(p); err != nil {
		return nil, err
	}
	sprints, err := s.sprints.ListByProject(ctx, projectID, p.OrganizationID)
	if err != nil {
		return nil, Unknown("Failed to load sprints", err)
	}
	return sprints, nil
}

// DeleteSprint removes the sprint. Its issues stay in the project without a
// sprint.
func (s *SprintService) DeleteSprint(ctx context.Context, p auth.Principal, sprintID uuid.UUID) error {
	if err := requireSession(p); err != nil {
		return err
	}
	if _, err := sprintInOrg(ctx, s.sprints, p, sprintID); err != nil {
		return err
	}
	if err := s.sprints.Delete(ctx, sprintID); err != nil {
		return sprintError(err)
	}
	return nil
}

// UpdateSprintStatus moves the sprint along its lifecycle. Only organization
// or project admins may change it, and PLANNED sprints start only inside
// their date window.
func (s *SprintService) UpdateSprintStatus(ctx context.Context, p auth.Principal, sprintID uuid.UUID, next model.SprintStatus) (*model.Sprint, error) {
	if err := requireSession(p); err != nil {
		return nil, err
	}
	if !next.Valid() {
		return nil, Validation("Invalid sprint status", nil)
	}

	sprint, err := sprintInOrg(ctx, s.sprints, p, sprintID)
	if err != nil {
		return nil, err
	}
	if !p.IsOrgAdmin() {
		user, err := findLocalUser(ctx, s.users, p.UserID)
		if err != nil {
			return nil, err
		}
		if !sprint.Project.IsAdmin(user.ID) {
			return nil, Forbidden("Only Admin can make this change")
		}
	}

	if !sprint.Status.CanTransitionTo(next) {
		return nil, Validation(fmt.Sprintf("Cannot change sprint status from %s to %s", sprint.Status, next), nil)
	}
	if sprint.Status == model.SprintPlanned && next == model.SprintActive && !sprint.InWindow(s.now()) {
		return nil, Validation("Cannot start sprint outside of its date range", nil)
	}

	if err := s.sprints.UpdateStatus(ctx, sprintID, next); err != nil {
		return nil, sprintError(err)
	}
	sprint.Status = next
	return sprint, nil
}
