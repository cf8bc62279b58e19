package handler

import (
	"context"
	"net/http"
	"time"

	"syncboard/internal/auth"
	"syncboard/internal/middleware"
	"syncboard/internal/model"
	"syncboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SprintService interface {
	CreateSprint(ctx context.Context, p auth.Principal, projectID uuid.UUID, in service.CreateSprintInput) (*model.Sprint, error)
	ListSprints(ctx context.Context, p auth.Principal, projectID uuid.UUID) ([]model.Sprint, error)
	DeleteSprint(ctx context.Context, p auth.Principal, sprintID uuid.UUID) error
	UpdateSprintStatus(ctx context.Context, p auth.Principal, sprintID uuid.UUID, next model.SprintStatus) (*model.Sprint, error)
}

type SprintHandler struct {
	svc SprintService
}

func NewSprintHandler(svc SprintService) *SprintHandler {
	return &SprintHandler{svc: svc}
}

type CreateSprintRequest struct {
	Name      string    `json:"name" binding:"max=100"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

type DeleteSprintRequest struct {
	SprintID string `json:"sprintId" binding:"required,uuid"`
}

type UpdateSprintStatusRequest struct {
	Status model.SprintStatus `json:"status" binding:"required"`
}

type SprintStatusResponse struct {
	Success bool          `json:"success"`
	Sprint  *model.Sprint `json:"sprint"`
}

// List godoc
// @Summary  List the sprints of a project
// @Tags     Sprints
// @Security BearerAuth
// @Produce  json
// @Param    projectId query string true "Project ID"
// @Success  200 {array}  model.Sprint
// @Failure  400 {object} ErrorResponse
// @Failure  401 {object} ErrorResponse
// @Router   /api/sprints [get]
func (h *SprintHandler) List(c *gin.Context) {
	raw := c.Query("projectId")
	if raw == "" {
		badRequest(c, "projectId is required")
		return
	}
	projectID, err := uuid.Parse(raw)
	if err != nil {
		badRequest(c, "Invalid projectId")
		return
	}

	sprints, err := h.svc.ListSprints(c.Request.Context(), middleware.GetPrincipal(c), projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sprints)
}

// Delete godoc
// @Summary  Delete a sprint, keeping its issues in the project
// @Tags     Sprints
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    request body DeleteSprintRequest true "Sprint"
// @Success  200 {object} SuccessResponse
// @Router   /api/sprints [delete]
func (h *SprintHandler) Delete(c *gin.Context) {
	var req DeleteSprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "sprintId is required")
		return
	}

	if err := h.svc.DeleteSprint(c.Request.Context(), middleware.GetPrincipal(c), uuid.MustParse(req.SprintID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// Create godoc
// @Summary  Create a sprint
// @Tags     Sprints
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    projectId path string              true "Project ID"
// @Param    request   body CreateSprintRequest true "Sprint"
// @Success  201 {object} model.Sprint
// @Router   /api/projects/{projectId}/sprints [post]
func (h *SprintHandler) Create(c *gin.Context) {
	projectID, ok := uuidParam(c, "projectId")
	if !ok {
		return
	}

	var req CreateSprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	sprint, err := h.svc.CreateSprint(c.Request.Context(), middleware.GetPrincipal(c), projectID, service.CreateSprintInput{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sprint)
}

// UpdateStatus godoc
// @Summary  Move a sprint along its lifecycle
// @Tags     Sprints
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    sprintId path string                    true "Sprint ID"
// @Param    request  body UpdateSprintStatusRequest true "Status"
// @Success  200 {object} SprintStatusResponse
// @Router   /api/sprints/{sprintId}/status [patch]
func (h *SprintHandler) UpdateStatus(c *gin.Context) {
	sprintID, ok := uuidParam(c, "sprintId")
	if !ok {
		return
	}

	var req UpdateSprintStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	sprint, err := h.svc.UpdateSprintStatus(c.Request.Context(), middleware.GetPrincipal(c), sprintID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SprintStatusResponse{Success: true, Sprint: sprint})
}
