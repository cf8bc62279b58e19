package handler

import (
	"context"
	"net/http"

	"syncboard/internal/auth"
	"syncboard/internal/board"
	"syncboard/internal/middleware"
	"syncboard/internal/model"
	"syncboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type IssueService interface {
	GetIssuesForSprint(ctx context.Context, p auth.Principal, sprintID uuid.UUID, f model.IssueFilter) ([]model.Issue, error)
	CreateIssue(ctx context.Context, p auth.Principal, projectID uuid.UUID, in service.CreateIssueInput) (*model.Issue, error)
	UpdateIssueOrder(ctx context.Context, p auth.Principal, orders []model.IssueOrder) error
	UpdateIssue(ctx context.Context, p auth.Principal, issueID uuid.UUID, patch model.IssuePatch) (*model.Issue, error)
	DeleteIssue(ctx context.Context, p auth.Principal, issueID uuid.UUID) error
	MoveOnBoard(ctx context.Context, p auth.Principal, sprintID uuid.UUID, m board.Move) (*service.MoveResult, error)
}

type IssueHandler struct {
	svc IssueService
}

func NewIssueHandler(svc IssueService) *IssueHandler {
	return &IssueHandler{svc: svc}
}

type CreateIssueRequest struct {
	Title       string              `json:"title" binding:"required,max=200"`
	Description *string             `json:"description"`
	Status      model.IssueStatus   `json:"status" binding:"required"`
	Priority    model.IssuePriority `json:"priority"`
	SprintID    *uuid.UUID          `json:"sprintId"`
	AssigneeID  *string             `json:"assigneeId"`
}

type UpdateOrderRequest struct {
	Issues []model.IssueOrder `json:"issues" binding:"required,dive"`
}

// MoveErrorResponse carries the restored board next to the error of a
// failed move.
type MoveErrorResponse struct {
	Error  string        `json:"error"`
	Issues []model.Issue `json:"issues"`
}

// ListBySprint godoc
// @Summary  List the issues of a sprint
// @Tags     Issues
// @Security BearerAuth
// @Produce  json
// @Param    sprintId path  string   true  "Sprint ID"
// @Param    search   query string   false "Title search"
// @Param    assignee query []string false "Assignee IDs"
// @Param    priority query string   false "Priority"
// @Success  200 {array} model.Issue
// @Router   /api/sprints/{sprintId}/issues [get]
func (h *IssueHandler) ListBySprint(c *gin.Context) {
	sprintID, ok := uuidParam(c, "sprintId")
	if !ok {
		return
	}

	filter := model.IssueFilter{
		Search:   c.Query("search"),
		Priority: model.IssuePriority(c.Query("priority")),
	}
	if filter.Priority != "" && !filter.Priority.Valid() {
		badRequest(c, "Invalid priority")
		return
	}
	for _, raw := range c.QueryArray("assignee") {
		id, err := uuid.Parse(raw)
		if err != nil {
			badRequest(c, "Invalid assignee")
			return
		}
		filter.AssigneeIDs = append(filter.AssigneeIDs, id)
	}

	issues, err := h.svc.GetIssuesForSprint(c.Request.Context(), middleware.GetPrincipal(c), sprintID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, issues)
}

// Create godoc
// @Summary  Create an issue at the bottom of its status column
// @Tags     Issues
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    projectId path string             true "Project ID"
// @Param    request   body CreateIssueRequest true "Issue"
// @Success  201 {object} model.Issue
// @Router   /api/projects/{projectId}/issues [post]
func (h *IssueHandler) Create(c *gin.Context) {
	projectID, ok := uuidParam(c, "projectId")
	if !ok {
		return
	}

	var req CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	in := service.CreateIssueInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		SprintID:    req.SprintID,
	}
	if req.AssigneeID != nil && *req.AssigneeID != "" {
		assigneeID, err := uuid.Parse(*req.AssigneeID)
		if err != nil {
			badRequest(c, "Invalid assignee ID")
			return
		}
		in.AssigneeID = &assigneeID
	}

	issue, err := h.svc.CreateIssue(c.Request.Context(), middleware.GetPrincipal(c), projectID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, issue)
}

// UpdateOrder godoc
// @Summary  Persist a batch of issue orders atomically
// @Tags     Issues
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    request body UpdateOrderRequest true "Orders"
// @Success  200 {object} SuccessResponse
// @Router   /api/issues/order [put]
func (h *IssueHandler) UpdateOrder(c *gin.Context) {
	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	if err := h.svc.UpdateIssueOrder(c.Request.Context(), middleware.GetPrincipal(c), req.Issues); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// Update godoc
// @Summary  Update the provided fields of an issue
// @Tags     Issues
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    issueId path string           true "Issue ID"
// @Param    request body model.IssuePatch true "Fields to change"
// @Success  200 {object} model.Issue
// @Router   /api/issues/{issueId} [patch]
func (h *IssueHandler) Update(c *gin.Context) {
	issueID, ok := uuidParam(c, "issueId")
	if !ok {
		return
	}

	var patch model.IssuePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	issue, err := h.svc.UpdateIssue(c.Request.Context(), middleware.GetPrincipal(c), issueID, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// Delete godoc
// @Summary  Delete an issue
// @Tags     Issues
// @Security BearerAuth
// @Produce  json
// @Param    issueId path string true "Issue ID"
// @Success  200 {object} SuccessResponse
// @Router   /api/issues/{issueId} [delete]
func (h *IssueHandler) Delete(c *gin.Context) {
	issueID, ok := uuidParam(c, "issueId")
	if !ok {
		return
	}

	if err := h.svc.DeleteIssue(c.Request.Context(), middleware.GetPrincipal(c), issueID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// Move godoc
// @Summary  Apply a drag and drop move to the sprint board
// @Tags     Board
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    sprintId path string     true "Sprint ID"
// @Param    request  body board.Move true "Move"
// @Success  200 {object} service.MoveResult
// @Failure  500 {object} MoveErrorResponse
// @Router   /api/sprints/{sprintId}/board/move [post]
func (h *IssueHandler) Move(c *gin.Context) {
	sprintID, ok := uuidParam(c, "sprintId")
	if !ok {
		return
	}

	var move board.Move
	if err := c.ShouldBindJSON(&move); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	result, err := h.svc.MoveOnBoard(c.Request.Context(), middleware.GetPrincipal(c), sprintID, move)
	if err != nil && result != nil {
		status, message := logFailure(c, err)
		c.JSON(status, MoveErrorResponse{Error: message, Issues: result.Issues})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
