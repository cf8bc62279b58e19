package service_test

import (
	"context"

	"syncboard/internal/identity"
	"syncboard/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockIssueRepository struct {
	mock.Mock
}

func (m *MockIssueRepository) CreateAppended(ctx context.Context, issue *model.Issue) error {
	return m.Called(ctx, issue).Error(0)
}

func (m *MockIssueRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Issue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Issue), args.Error(1)
}

func (m *MockIssueRepository) ListBySprint(ctx context.Context, sprintID uuid.UUID) ([]model.Issue, error) {
	args := m.Called(ctx, sprintID)
	issues, _ := args.Get(0).([]model.Issue)
	return issues, args.Error(1)
}

func (m *MockIssueRepository) ListForUser(ctx context.Context, userID uuid.UUID, orgID string) ([]model.Issue, error) {
	args := m.Called(ctx, userID, orgID)
	issues, _ := args.Get(0).([]model.Issue)
	return issues, args.Error(1)
}

func (m *MockIssueRepository) Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*model.Issue, error) {
	args := m.Called(ctx, id, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Issue), args.Error(1)
}

func (m *MockIssueRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockIssueRepository) UpdateOrder(ctx context.Context, orders []model.IssueOrder) error {
	return m.Called(ctx, orders).Error(0)
}

type MockSprintRepository struct {
	mock.Mock
}

func (m *MockSprintRepository) Create(ctx context.Context, sprint *model.Sprint) error {
	return m.Called(ctx, sprint).Error(0)
}

func (m *MockSprintRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Sprint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Sprint), args.Error(1)
}

func (m *MockSprintRepository) ListByProject(ctx context.Context, projectID uuid.UUID, orgID string) ([]model.Sprint, error) {
	args := m.Called(ctx, projectID, orgID)
	sprints, _ := args.Get(0).([]model.Sprint)
	return sprints, args.Error(1)
}

func (m *MockSprintRepository) CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSprintRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.SprintStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockSprintRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, project *model.Project) error {
	return m.Called(ctx, project).Error(0)
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) GetWithSprints(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) ListByOrganization(ctx context.Context, orgID string) ([]model.Project, error) {
	args := m.Called(ctx, orgID)
	projects, _ := args.Get(0).([]model.Project)
	return projects, args.Error(1)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProjectRepository) CountIssuesByStatus(ctx context.Context, projectID uuid.UUID) ([]model.StatusCount, error) {
	args := m.Called(ctx, projectID)
	counts, _ := args.Get(0).([]model.StatusCount)
	return counts, args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) FindByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByExternalIDs(ctx context.Context, externalIDs []string) ([]model.User, error) {
	args := m.Called(ctx, externalIDs)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) GetOrganization(ctx context.Context, slugOrID string) (*identity.Organization, error) {
	args := m.Called(ctx, slugOrID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Organization), args.Error(1)
}

func (m *MockDirectory) ListMemberships(ctx context.Context, orgID string) ([]identity.Membership, error) {
	args := m.Called(ctx, orgID)
	memberships, _ := args.Get(0).([]identity.Membership)
	return memberships, args.Error(1)
}

func (m *MockDirectory) GetUser(ctx context.Context, userID string) (*identity.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockDirectory) ListUsers(ctx context.Context) ([]identity.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]identity.User)
	return users, args.Error(1)
}
