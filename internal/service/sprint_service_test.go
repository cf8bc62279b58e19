package service_test

import (
	"context"
	"testing"
	"time"

	"syncboard/internal/auth"
	"syncboard/internal/model"
	"syncboard/internal/repository"
	"syncboard/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

var orgAdmin = auth.Principal{UserID: "user_admin", OrganizationID: testOrgID, Role: auth.RoleAdmin}

var sprintStart = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func newSprintFixture(now time.Time) (*service.SprintService, *MockSprintRepository, *MockProjectRepository, *MockUserRepository) {
	sprints := new(MockSprintRepository)
	projects := new(MockProjectRepository)
	users := new(MockUserRepository)
	svc := service.NewSprintService(sprints, projects, users).WithClock(func() time.Time { return now })
	return svc, sprints, projects, users
}

func datedSprint(status model.SprintStatus) *model.Sprint {
	return &model.Sprint{
		ID:        uuid.New(),
		Name:      "SB-1",
		Status:    status,
		StartDate: sprintStart,
		EndDate:   sprintStart.AddDate(0, 0, 14),
		Project:   &model.Project{Key: "SB", OrganizationID: testOrgID},
	}
}

func TestUpdateSprintStatus_CompletedIsTerminal(t *testing.T) {
	svc, sprints, _, _ := newSprintFixture(sprintStart.AddDate(0, 0, 3))
	sprint := datedSprint(model.SprintCompleted)
	sprints.On("GetByID", mock.Anything, sprint.ID).Return(sprint, nil)

	got, err := svc.UpdateSprintStatus(context.Background(), orgAdmin, sprint.ID, model.SprintActive)

	assert.Nil(t, got)
	assert.Equal(t, service.KindValidation, service.KindOf(err))
	assert.Equal(t, model.SprintCompleted, sprint.Status)
	sprints.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateSprintStatus_StartOutsideWindow(t *testing.T) {
	svc, sprints, _, _ := newSprintFixture(sprintStart.Add(-time.Hour))
	sprint := datedSprint(model.SprintPlanned)
	sprints.On("GetByID", mock.Anything, sprint.ID).Return(sprint, nil)

	_, err := svc.UpdateSprintStatus(context.Background(), orgAdmin, sprint.ID, model.SprintActive)

	assert.Equal(t, service.KindValidation, service.KindOf(err))
	sprints.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateSprintStatus_StartInsideWindow(t *testing.T) {
	svc, sprints, _, _ := newSprintFixture(sprintStart.AddDate(0, 0, 1))
	sprint := datedSprint(model.SprintPlanned)
	sprints.On("GetByID", mock.Anything, sprint.ID).Return(sprint, nil)
	sprints.On("UpdateStatus", mock.Anything, sprint.ID, model.SprintActive).Return(nil)

	got, err := svc.UpdateSprintStatus(context.Background(), orgAdmin, sprint.ID, model.SprintActive)

	require.NoError(t, err)
	assert.Equal(t, model.SprintActive, got.Status)
	sprints.AssertExpectations(t)
}

func TestUpdateSprintStatus_AllowedTransitions(t *testing.T) {
	cases := []struct {
		from, to model.SprintStatus
	}{
		{model.SprintActive, model.SprintOnHold},
		{model.SprintActive, model.SprintCompleted},
		{model.SprintOnHold, model.SprintActive},
		{model.SprintOnHold, model.SprintCompleted},
	}
	for _, tc := range cases {
		svc, sprints, _, _ := newSprintFixture(sprintStart.AddDate(1, 0, 0))
		sprint := datedSprint(tc.from)
		sprints.On("GetByID", mock.Anything, sprint.ID).Return(sprint, nil)
		sprints.On("UpdateStatus", mock.Anything, sprint.ID, tc.to).Return(nil)

		got, err := svc.UpdateSprintStatus(context.Background(), orgAdmin, sprint.ID, tc.to)

		require.NoError(t, err, "%s -> %s", tc.from, tc.to)
		assert.Equal(t, tc.to, got.Status)
	}
}

func TestUpdateSprintStatus_MemberNeedsProjectAdmin(t *testing.T) {
	svc, sprints, _, users := newSprintFixture(sprintStart.AddDate(0, 0, 1))
	sprint := datedSprint(model.SprintActive)
	user := &model.User{ID: uuid.New()}
	sprints.On("GetByID", mock.Anything, sprint.ID).Return(sprint, nil)
	users.On("FindByExternalID", mock.Anything, "user_ext").Return(user, nil)

	_, err := svc.UpdateSprintStatus(context.Background(), member, sprint.ID, model.SprintOnHold)
	assert.Equal(t, service.KindForbidden, service.KindOf(err))

	sprint.Project.AdminIDs = datatypes.JSONSlice[string]{user.ID.String()}
	sprints.On("UpdateStatus", mock.Anything, sprint.ID, model.SprintOnHold).Return(nil)

	_, err = svc.UpdateSprintStatus(context.Background(), member, sprint.ID, model.SprintOnHold)
	assert.NoError(t, err)
}

func TestCreateSprint_DefaultName(t *testing.T) {
	svc, sprints, projects, _ := newSprintFixture(sprintStart)
	project := &model.Project{ID: uuid.New(), Key: "SB", OrganizationID: testOrgID}
	projects.On("GetByID", mock.Anything, project.ID).Return(project, nil)
	sprints.On("CountByProject", mock.Anything, project.ID).Return(int64(2), nil)
	sprints.On("Create", mock.Anything, mock.MatchedBy(func(s *model.Sprint) bool {
		return s.Name == "SB-3" && s.Status == model.SprintPlanned && s.ProjectID == project.ID
	})).Return(nil)

	sprint, err := svc.CreateSprint(context.Background(), member, project.ID, service.CreateSprintInput{
		StartDate: sprintStart,
		EndDate:   sprintStart.AddDate(0, 0, 14),
	})

	require.NoError(t, err)
	assert.Equal(t, "SB-3", sprint.Name)
	sprints.AssertExpectations(t)
}

func TestCreateSprint_EndBeforeStart(t *testing.T) {
	svc, _, projects, _ := newSprintFixture(sprintStart)

	_, err := svc.CreateSprint(context.Background(), member, uuid.New(), service.CreateSprintInput{
		Name:      "Broken",
		StartDate: sprintStart,
		EndDate:   sprintStart.Add(-time.Hour),
	})

	assert.Equal(t, service.KindValidation, service.KindOf(err))
	projects.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestDeleteSprint(t *testing.T) {
	svc, sprints, _, _ := newSprintFixture(sprintStart)
	sprint := datedSprint(model.SprintActive)
	sprints.On("GetByID", mock.Anything, sprint.ID).Return(sprint, nil)
	sprints.On("Delete", mock.Anything, sprint.ID).Return(nil)

	assert.NoError(t, svc.DeleteSprint(context.Background(), member, sprint.ID))
	sprints.AssertExpectations(t)
}

func TestDeleteSprint_Missing(t *testing.T) {
	svc, sprints, _, _ := newSprintFixture(sprintStart)
	id := uuid.New()
	sprints.On("GetByID", mock.Anything, id).Return(nil, repository.ErrSprintNotFound)

	err := svc.DeleteSprint(context.Background(), member, id)

	assert.Equal(t, service.KindNotFound, service.KindOf(err))
}

func TestListSprints_RequiresOrganization(t *testing.T) {
	svc, sprints, _, _ := newSprintFixture(sprintStart)

	_, err := svc.ListSprints(context.Background(), auth.Principal{UserID: "user_ext"}, uuid.New())

	assert.Equal(t, service.KindUnauthorized, service.KindOf(err))
	sprints.AssertNotCalled(t, "ListByProject", mock.Anything, mock.Anything, mock.Anything)
}
