package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"syncboard/internal/auth"
	"syncboard/internal/board"
	"syncboard/internal/handler"
	"syncboard/internal/identity"
	"syncboard/internal/middleware"
	"syncboard/internal/model"
	"syncboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

var testPrincipal = auth.Principal{UserID: "user_ext", OrganizationID: "org_1", Role: auth.RoleMember}

type MockIssueService struct {
	mock.Mock
}

func (m *MockIssueService) GetIssuesForSprint(ctx context.Context, p auth.Principal, sprintID uuid.UUID, f model.IssueFilter) ([]model.Issue, error) {
	args := m.Called(ctx, p, sprintID, f)
	issues, _ := args.Get(0).([]model.Issue)
	return issues, args.Error(1)
}

func (m *MockIssueService) CreateIssue(ctx context.Context, p auth.Principal, projectID uuid.UUID, in service.CreateIssueInput) (*model.Issue, error) {
	args := m.Called(ctx, p, projectID, in)
	issue, _ := args.Get(0).(*model.Issue)
	return issue, args.Error(1)
}

func (m *MockIssueService) UpdateIssueOrder(ctx context.Context, p auth.Principal, orders []model.IssueOrder) error {
	return m.Called(ctx, p, orders).Error(0)
}

func (m *MockIssueService) UpdateIssue(ctx context.Context, p auth.Principal, issueID uuid.UUID, patch model.IssuePatch) (*model.Issue, error) {
	args := m.Called(ctx, p, issueID, patch)
	issue, _ := args.Get(0).(*model.Issue)
	return issue, args.Error(1)
}

func (m *MockIssueService) DeleteIssue(ctx context.Context, p auth.Principal, issueID uuid.UUID) error {
	return m.Called(ctx, p, issueID).Error(0)
}

func (m *MockIssueService) MoveOnBoard(ctx context.Context, p auth.Principal, sprintID uuid.UUID, mv board.Move) (*service.MoveResult, error) {
	args := m.Called(ctx, p, sprintID, mv)
	result, _ := args.Get(0).(*service.MoveResult)
	return result, args.Error(1)
}

type MockSprintService struct {
	mock.Mock
}

func (m *MockSprintService) CreateSprint(ctx context.Context, p auth.Principal, projectID uuid.UUID, in service.CreateSprintInput) (*model.Sprint, error) {
	args := m.Called(ctx, p, projectID, in)
	sprint, _ := args.Get(0).(*model.Sprint)
	return sprint, args.Error(1)
}

func (m *MockSprintService) ListSprints(ctx context.Context, p auth.Principal, projectID uuid.UUID) ([]model.Sprint, error) {
	args := m.Called(ctx, p, projectID)
	sprints, _ := args.Get(0).([]model.Sprint)
	return sprints, args.Error(1)
}

func (m *MockSprintService) DeleteSprint(ctx context.Context, p auth.Principal, sprintID uuid.UUID) error {
	return m.Called(ctx, p, sprintID).Error(0)
}

func (m *MockSprintService) UpdateSprintStatus(ctx context.Context, p auth.Principal, sprintID uuid.UUID, next model.SprintStatus) (*model.Sprint, error) {
	args := m.Called(ctx, p, sprintID, next)
	sprint, _ := args.Get(0).(*model.Sprint)
	return sprint, args.Error(1)
}

type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) CreateProject(ctx context.Context, p auth.Principal, in service.CreateProjectInput) (*model.Project, error) {
	args := m.Called(ctx, p, in)
	project, _ := args.Get(0).(*model.Project)
	return project, args.Error(1)
}

func (m *MockProjectService) GetProject(ctx context.Context, p auth.Principal, projectID uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, p, projectID)
	project, _ := args.Get(0).(*model.Project)
	return project, args.Error(1)
}

func (m *MockProjectService) ListProjects(ctx context.Context, p auth.Principal) ([]model.Project, error) {
	args := m.Called(ctx, p)
	projects, _ := args.Get(0).([]model.Project)
	return projects, args.Error(1)
}

func (m *MockProjectService) DeleteProject(ctx context.Context, p auth.Principal, projectID uuid.UUID) error {
	return m.Called(ctx, p, projectID).Error(0)
}

func (m *MockProjectService) GetProjectMetrics(ctx context.Context, p auth.Principal, projectID uuid.UUID) (*model.ProjectMetrics, error) {
	args := m.Called(ctx, p, projectID)
	metrics, _ := args.Get(0).(*model.ProjectMetrics)
	return metrics, args.Error(1)
}

type MockOrganizationService struct {
	mock.Mock
}

func (m *MockOrganizationService) GetOrganization(ctx context.Context, p auth.Principal, slug string) (*identity.Organization, error) {
	args := m.Called(ctx, p, slug)
	org, _ := args.Get(0).(*identity.Organization)
	return org, args.Error(1)
}

func (m *MockOrganizationService) GetOrganizationUsers(ctx context.Context, p auth.Principal, orgID string) ([]model.User, error) {
	args := m.Called(ctx, p, orgID)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *MockOrganizationService) GetUserIssues(ctx context.Context, p auth.Principal) ([]model.Issue, error) {
	args := m.Called(ctx, p)
	issues, _ := args.Get(0).([]model.Issue)
	return issues, args.Error(1)
}

// setupRouter mounts h on a test engine that authenticates every request as p.
func setupRouter(p auth.Principal, mount func(r gin.IRoutes)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	binding.EnableDecoderDisallowUnknownFields = true
	r := gin.New()
	api := r.Group("/api")
	api.Use(func(c *gin.Context) {
		c.Set(middleware.PrincipalKey, p)
		c.Next()
	})
	mount(api)
	return r
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			json.NewEncoder(&buf).Encode(body)
		}
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decodeError(resp *httptest.ResponseRecorder) string {
	var body handler.ErrorResponse
	json.Unmarshal(resp.Body.Bytes(), &body)
	return body.Error
}
