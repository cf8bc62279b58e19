package handler

import (
	"context"
	"net/http"

	"syncboard/internal/auth"
	"syncboard/internal/middleware"
	"syncboard/internal/model"
	"syncboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectService interface {
	CreateProject(ctx context.Context, p auth.Principal, in service.CreateProjectInput) (*model.Project, error)
	GetProject(ctx context.Context, p auth.Principal, projectID uuid.UUID) (*model.Project, error)
	ListProjects(ctx context.Context, p auth.Principal) ([]model.Project, error)
	DeleteProject(ctx context.Context, p auth.Principal, projectID uuid.UUID) error
	GetProjectMetrics(ctx context.Context, p auth.Principal, projectID uuid.UUID) (*model.ProjectMetrics, error)
}

type ProjectHandler struct {
	svc ProjectService
}

func NewProjectHandler(svc ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Key         string `json:"key" binding:"required,min=2,max=10,alphanum"`
	Description string `json:"description" binding:"max=500"`
}

// Create godoc
// @Summary  Create a project in the active organization
// @Tags     Projects
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    request body CreateProjectRequest true "Project"
// @Success  201 {object} model.Project
// @Failure  403 {object} ErrorResponse
// @Router   /api/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	project, err := h.svc.CreateProject(c.Request.Context(), middleware.GetPrincipal(c), service.CreateProjectInput{
		Name:        req.Name,
		Key:         req.Key,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

// List godoc
// @Summary  List the projects of the active organization
// @Tags     Projects
// @Security BearerAuth
// @Produce  json
// @Success  200 {array} model.Project
// @Router   /api/projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.svc.ListProjects(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// Get godoc
// @Summary  Get a project with its sprints
// @Tags     Projects
// @Security BearerAuth
// @Produce  json
// @Param    projectId path string true "Project ID"
// @Success  200 {object} model.Project
// @Router   /api/projects/{projectId} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	projectID, ok := uuidParam(c, "projectId")
	if !ok {
		return
	}

	project, err := h.svc.GetProject(c.Request.Context(), middleware.GetPrincipal(c), projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// Delete godoc
// @Summary  Delete a project with its sprints and issues
// @Tags     Projects
// @Security BearerAuth
// @Produce  json
// @Param    projectId path string true "Project ID"
// @Success  200 {object} SuccessResponse
// @Router   /api/projects/{projectId} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	projectID, ok := uuidParam(c, "projectId")
	if !ok {
		return
	}

	if err := h.svc.DeleteProject(c.Request.Context(), middleware.GetPrincipal(c), projectID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// Metrics godoc
// @Summary  Issue counts per status and completion percentage
// @Tags     Projects
// @Security BearerAuth
// @Produce  json
// @Param    projectId path string true "Project ID"
// @Success  200 {object} model.ProjectMetrics
// @Router   /api/projects/{projectId}/metrics [get]
func (h *ProjectHandler) Metrics(c *gin.Context) {
	projectID, ok := uuidParam(c, "projectId")
	if !ok {
		return
	}

	metrics, err := h.svc.GetProjectMetrics(c.Request.Context(), middleware.GetPrincipal(c), projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}
