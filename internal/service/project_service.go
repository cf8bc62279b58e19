package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"syncboard/internal/auth"
	"syncboard/internal/model"
	"syncboard/internal/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var projectKeyPattern = regexp.MustCompile(`^[A-Z][A-Z0-9]{1,9}$`)

type ProjectService struct {
	projects repository.ProjectRepositoryInterface
	users    repository.UserRepositoryInterface
}

func NewProjectService(projects repository.ProjectRepositoryInterface, users repository.UserRepositoryInterface) *ProjectService {
	return &ProjectService{projects: projects, users: users}
}

type CreateProjectInput struct {
	Name        string
	Key         string
	Description string
}

// CreateProject creates a project in the caller's organization. The creator
// becomes its first admin when a local user exists for them.
func (s *ProjectService) CreateProject(ctx context.Context, p auth.Principal, in CreateProjectInput) (*model.Project, error) {
	if p.UserID == "" {
		return nil, Unauthorized("Unauthorized")
	}
	if p.OrganizationID == "" {
		return nil, Unauthorized("No Organization Selected")
	}
	if !p.IsOrgAdmin() {
		return nil, Forbidden("Only organization admins can create projects")
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, Validation("Project name is required", nil)
	}
	key := strings.ToUpper(strings.TrimSpace(in.Key))
	if !projectKeyPattern.MatchString(key) {
		return nil, Validation("Project key must be 2-10 letters or digits, starting with a letter", nil)
	}

	project := &model.Project{
		Name:           name,
		Key:            key,
		Description:    strings.TrimSpace(in.Description),
		OrganizationID: p.OrganizationID,
		AdminIDs:       datatypes.JSONSlice[string]{},
	}
	user, err := s.users.FindByExternalID(ctx, p.UserID)
	if err != nil {
		return nil, Unknown("Failed to load user", err)
	}
	if user != nil {
		project.AdminIDs = append(project.AdminIDs, user.ID.String())
	}

	if err := s.projects.Create(ctx, project); err != nil {
		if errors.Is(err, repository.ErrProjectKeyTaken) {
			return nil, Validation("Project key already exists", err)
		}
		return nil, Unknown("Error creating project", err)
	}
	return project, nil
}

// GetProject returns the project with its sprints, newest first.
func (s *ProjectService) GetProject(ctx context.Context, p auth.Principal, projectID uuid.UUID) (*model.Project, error) {
	if err := requireSession(p); err != nil {
		return nil, err
	}
	project, err := s.projects.GetWithSprints(ctx, projectID)
	if err != nil {
		return nil, projectError(err)
	}
	if project.OrganizationID != p.OrganizationID {
		return nil, NotFound("Project not found", nil)
	}
	return project, nil
}

func (s *ProjectService) ListProjects(ctx context.Context, p auth.Principal) ([]model.Project, error) {
	if err := requireSession(p); err != nil {
		return nil, err
	}
	projects, err := s.projects.ListByOrganization(ctx, p.OrganizationID)
	if err != nil {
		return nil, Unknown("Failed to load projects", err)
	}
	return projects, nil
}

// DeleteProject removes a project with its sprints and issues. Organization
// admins only.
func (s *ProjectService) DeleteProject(ctx context.Context, p auth.Principal, projectID uuid.UUID) error {
	if err := requireSession(p); err != nil {
		return err
	}
	if !p.IsOrgAdmin() {
		return Forbidden("Only organization admins can delete projects")
	}
	if _, err := s.projectInOrg(ctx, p, projectID); err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, projectID); err != nil {
		return projectError(err)
	}
	return nil
}

func (s *ProjectService) GetProjectMetrics(ctx context.Context, p auth.Principal, projectID uuid.UUID) (*model.ProjectMetrics, error) {
	if err := requireSession(p); err != nil {
		return nil, err
	}
	if _, err := s.projectInOrg(ctx, p, projectID); err != nil {
		return nil, err
	}

	counts, err := s.projects.CountIssuesByStatus(ctx, projectID)
	if err != nil {
		return nil, Unknown("Failed to count issues", err)
	}
	metrics := ComputeMetrics(counts)
	return &metrics, nil
}

func (s *ProjectService) projectInOrg(ctx context.Context, p auth.Principal, projectID uuid.UUID) (*model.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, projectError(err)
	}
	if project.OrganizationID != p.OrganizationID {
		return nil, NotFound("Project not found", nil)
	}
	return project, nil
}
