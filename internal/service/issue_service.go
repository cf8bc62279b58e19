package service

import (
	"context"
	"errors"
	"strings"

	"syncboard/internal/auth"
	"syncboard/internal/board"
	"syncboard/internal/model"
	"syncboard/internal/repository"

	"github.com/google/uuid"
)

type IssueService struct {
	issues   repository.IssueRepositoryInterface
	sprints  repository.SprintRepositoryInterface
	projects repository.ProjectRepositoryInterface
	users    repository.UserRepositoryInterface
}

func NewIssueService(
	issues repository.IssueRepositoryInterface,
	sprints repository.SprintRepositoryInterface,
	projects repository.ProjectRepositoryInterface,
	users repository.UserRepositoryInterface,
) *IssueService {
	return &IssueService{
		issues:   issues,
		sprints:  sprints,
		projects: projects,
		users:    users,
	}
}

// CreateIssueInput carries the fields accepted when creating an issue.
type CreateIssueInput struct {
	Title       string
	Description *string
	Status      model.IssueStatus
	Priority    model.IssuePriority
	SprintID    *uuid.UUID
	AssigneeID  *uuid.UUID
}

// MoveResult is the board after a move and the writes that persisted it.
type MoveResult struct {
	Issues  []model.Issue      `json:"issues"`
	Changed []model.IssueOrder `json:"changed"`
}

// GetIssuesForSprint returns the sprint's issues sorted by status then order,
// narrowed by f.
func (s *IssueService) GetIssuesForSprint(ctx context.Context, p auth.Principal, sprintID uuid.UUID, f model.IssueFilter) ([]model.Issue, error) {
	if err := requireSession(p); err != nil {
		return nil, err
	}
	if _, err := sprintInOrg(ctx, s.sprints, p, sprintID); err != nil {
		return nil, err
	}

	issues, err := s.issues.ListBySprint(ctx, sprintID)
	if err != nil {
		return nil, Unknown("Failed to load issues", err)
	}
	return board.Filter(issues, f), nil
}

// CreateIssue appends a new issue to the bottom of its status column.
func (s *IssueService) CreateIssue(ctx context.Context, p auth.Principal, projectID uuid.UUID, in CreateIssueInput) (*model.Issue, error) {
	if err := requireSession(p); err != nil {
		return nil, err
	}

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, Validation("Title is required", nil)
	}
	if !in.Status.Valid() {
		return nil, Validation("Invalid status", nil)
	}
	if in.Priority == "" {
		in.Priority = model.PriorityMedium
	}
	if !in.Priority.Valid() {
		return nil, Validation("Invalid priority", nil)
	}

	user, err := s.localUser(ctx, p)
	if err != nil {
		return nil, err
	}
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, projectError(err)
	}
	if project.OrganizationID != p.OrganizationID {
		return nil, NotFound("Project not found", nil)
	}
	if in.SprintID != nil {
		sprint, err := s.sprints.GetByID(ctx, *in.SprintID)
		if err != nil {
			return nil, sprintError(err)
		}
		if sprint.ProjectID != projectID {
			return nil, Validation("Sprint does not belong to project", nil)
		}
	}

	issue := &model.Issue{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		ProjectID:   projectID,
		SprintID:    in.SprintID,
		AssigneeID:  in.AssigneeID,
		ReporterID:  user.ID,
	}
	if err := s.issues.CreateAppended(ctx, issue); err != nil {
		return nil, Unknown("Failed to create issue", err)
	}
	return issue, nil
}

// UpdateIssueOrder persists a batch of {id, status, order} writes atomically.
func (s *IssueService) UpdateIssueOrder(ctx context.Context, p auth.Principal, orders []model.IssueOrder) error {
	if err := requireSession(p); err != nil {
		return err
	}
	for _, o := range orders {
		if !o.Status.Valid() {
			return Validation("Invalid status", nil)
		}
		if o.Order < 0 {
			return Validation("Order must not be negative", nil)
		}
	}
	if len(orders) == 0 {
		return nil
	}

	if err := s.issues.UpdateOrder(ctx, orders); err != nil {
		return issueError(err)
	}
	return nil
}

// UpdateIssue changes only the fields set in patch.
func (s *IssueService) UpdateIssue(ctx context.Context, p auth.Principal, issueID uuid.UUID, patch model.IssuePatch) (*model.Issue, error) {
	issue, err := s.authorizedIssue(ctx, p, issueID, "You don't have permission to update this issue")
	if err != nil {
		return nil, err
	}

	changes := make(map[string]any)
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, Validation("Title is required", nil)
		}
		changes["title"] = title
	}
	if patch.Description != nil {
		changes["description"] = *patch.Description
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, Validation("Invalid status", nil)
		}
		changes["status"] = *patch.Status
	}
	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return nil, Validation("Invalid priority", nil)
		}
		changes["priority"] = *patch.Priority
	}
	if patch.AssigneeID != nil {
		if *patch.AssigneeID == "" {
			changes["assignee_id"] = nil
		} else {
			assigneeID, err := uuid.Parse(*patch.AssigneeID)
			if err != nil {
				return nil, Validation("Invalid assignee ID", err)
			}
			changes["assignee_id"] = assigneeID
		}
	}
	if len(changes) == 0 {
		return issue, nil
	}

	updated, err := s.issues.Update(ctx, issueID, changes)
	if err != nil {
		return nil, issueError(err)
	}
	return updated, nil
}

func (s *IssueService) DeleteIssue(ctx context.Context, p auth.Principal, issueID uuid.UUID) error {
	if _, err := s.authorizedIssue(ctx, p, issueID, "You don't have permission to delete this issue"); err != nil {
		return err
	}
	if err := s.issues.Delete(ctx, issueID); err != nil {
		return issueError(err)
	}
	return nil
}

// MoveOnBoard applies a drag-and-drop move to the sprint board and persists
// the changed issues. When persistence fails the board is rolled back and
// returned next to the error.
func (s *IssueService) MoveOnBoard(ctx context.Context, p auth.Principal, sprintID uuid.UUID, m board.Move) (*MoveResult, error) {
	if err := requireSession(p); err != nil {
		return nil, err
	}
	sprint, err := sprintInOrg(ctx, s.sprints, p, sprintID)
	if err != nil {
		return nil, err
	}
	if sprint.BoardLocked() {
		if sprint.Status == model.SprintPlanned {
			return nil, Validation("Start the sprint to update board", nil)
		}
		return nil, Validation("Cannot update board after sprint end", nil)
	}

	issues, err := s.issues.ListBySprint(ctx, sprintID)
	if err != nil {
		return nil, Unknown("Failed to load issues", err)
	}

	state := board.NewState(sprintID, issues)
	changed, err := state.Move(m)
	if err != nil {
		return nil, Validation(err.Error(), err)
	}
	if len(changed) == 0 {
		return &MoveResult{Issues: state.Issues(), Changed: []model.IssueOrder{}}, nil
	}

	if err := s.issues.UpdateOrder(ctx, changed); err != nil {
		state.Rollback()
		return &MoveResult{Issues: state.Issues(), Changed: []model.IssueOrder{}}, issueError(err)
	}
	state.Commit()
	return &MoveResult{Issues: state.Issues(), Changed: changed}, nil
}

// authorizedIssue loads an issue of the caller's organization that the caller
// reported, administers, or can manage as an organization admin.
func (s *IssueService) authorizedIssue(ctx context.Context, p auth.Principal, issueID uuid.UUID, denied string) (*model.Issue, error) {
	if err := requireSession(p); err != nil {
		return nil, err
	}
	user, err := s.localUser(ctx, p)
	if err != nil {
		return nil, err
	}

	issue, err := s.issues.GetByID(ctx, issueID)
	if err != nil {
		return nil, issueError(err)
	}
	if issue.Project == nil || issue.Project.OrganizationID != p.OrganizationID {
		return nil, NotFound("Issue not found", nil)
	}
	if issue.ReporterID != user.ID && !issue.Project.IsAdmin(user.ID) && !p.IsOrgAdmin() {
		return nil, Forbidden(denied)
	}
	return issue, nil
}

// sprintInOrg loads a sprint with its project, hiding sprints of other
// organizations as not found.
func sprintInOrg(ctx context.Context, sprints repository.SprintRepositoryInterface, p auth.Principal, sprintID uuid.UUID) (*model.Sprint, error) {
	sprint, err := sprints.GetByID(ctx, sprintID)
	if err != nil {
		return nil, sprintError(err)
	}
	if sprint.Project == nil || sprint.Project.OrganizationID != p.OrganizationID {
		return nil, NotFound("Sprint not found", nil)
	}
	return sprint, nil
}

func (s *IssueService) localUser(ctx context.Context, p auth.Principal) (*model.User, error) {
	return findLocalUser(ctx, s.users, p.UserID)
}

func findLocalUser(ctx context.Context, users repository.UserRepositoryInterface, externalID string) (*model.User, error) {
	user, err := users.FindByExternalID(ctx, externalID)
	if err != nil {
		return nil, Unknown("Failed to load user", err)
	}
	if user == nil {
		return nil, NotFound("User not found", repository.ErrUserNotFound)
	}
	return user, nil
}

func issueError(err error) error {
	if errors.Is(err, repository.ErrIssueNotFound) {
		return NotFound("Issue not found", err)
	}
	return Unknown("Failed to save issue", err)
}

func sprintError(err error) error {
	if errors.Is(err, repository.ErrSprintNotFound) {
		return NotFound("Sprint not found", err)
	}
	return Unknown("Failed to load sprint", err)
}

func projectError(err error) error {
	if errors.Is(err, repository.ErrProjectNotFound) {
		return NotFound("Project not found", err)
	}
	return Unknown("Failed to load project", err)
}
