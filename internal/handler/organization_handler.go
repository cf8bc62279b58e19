package handler

import (
	"context"
	"net/http"

	"syncboard/internal/auth"
	"syncboard/internal/identity"
	"syncboard/internal/middleware"
	"syncboard/internal/model"

	"github.com/gin-gonic/gin"
)

type OrganizationService interface {
	GetOrganization(ctx context.Context, p auth.Principal, slug string) (*identity.Organization, error)
	GetOrganizationUsers(ctx context.Context, p auth.Principal, orgID string) ([]model.User, error)
	GetUserIssues(ctx context.Context, p auth.Principal) ([]model.Issue, error)
}

type OrganizationHandler struct {
	svc OrganizationService
}

func NewOrganizationHandler(svc OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{svc: svc}
}

// GetBySlug godoc
// @Summary  Get an organization the caller belongs to
// @Tags     Organizations
// @Security BearerAuth
// @Produce  json
// @Param    org path string true "Organization slug or ID"
// @Success  200 {object} identity.Organization
// @Failure  404 {object} ErrorResponse
// @Router   /api/organizations/{org} [get]
func (h *OrganizationHandler) GetBySlug(c *gin.Context) {
	org, err := h.svc.GetOrganization(c.Request.Context(), middleware.GetPrincipal(c), c.Param("org"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, org)
}

// Users godoc
// @Summary  List the local users of the organization's members
// @Tags     Organizations
// @Security BearerAuth
// @Produce  json
// @Param    org path string true "Organization ID"
// @Success  200 {array} model.User
// @Router   /api/organizations/{org}/users [get]
func (h *OrganizationHandler) Users(c *gin.Context) {
	users, err := h.svc.GetOrganizationUsers(c.Request.Context(), middleware.GetPrincipal(c), c.Param("org"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// MyIssues godoc
// @Summary  Issues the caller reports or is assigned to
// @Tags     Users
// @Security BearerAuth
// @Produce  json
// @Success  200 {array} model.Issue
// @Router   /api/users/me/issues [get]
func (h *OrganizationHandler) MyIssues(c *gin.Context) {
	issues, err := h.svc.GetUserIssues(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, issues)
}
