package service

import (
	"context"
	"errors"
	"log/slog"

	"syncboard/internal/auth"
	"syncboard/internal/identity"
	"syncboard/internal/model"
	"syncboard/internal/repository"
)

type OrganizationService struct {
	directory identity.Directory
	users     repository.UserRepositoryInterface
	issues    repository.IssueRepositoryInterface
}

func NewOrganizationService(
	directory identity.Directory,
	users repository.UserRepositoryInterface,
	issues repository.IssueRepositoryInterface,
) *OrganizationService {
	return &OrganizationService{
		directory: directory,
		users:     users,
		issues:    issues,
	}
}

// GetOrganization resolves an organization by slug. Organizations the caller
// is not a member of are reported as not found.
func (s *OrganizationService) GetOrganization(ctx context.Context, p auth.Principal, slug string) (*identity.Organization, error) {
	if p.UserID == "" {
		return nil, Unauthorized("Unauthorized")
	}
	if _, err := s.GetOrCreateUser(ctx, p.UserID); err != nil {
		return nil, err
	}

	org, err := s.directory.GetOrganization(ctx, slug)
	if errors.Is(err, identity.ErrNotFound) {
		return nil, NotFound("Organization not found", err)
	}
	if err != nil {
		return nil, Unknown("Failed to load organization", err)
	}

	memberships, err := s.directory.ListMemberships(ctx, org.ID)
	if err != nil {
		return nil, Unknown("Failed to load memberships", err)
	}
	for _, m := range memberships {
		if m.PublicUserData.UserID == p.UserID {
			return org, nil
		}
	}
	return nil, NotFound("Organization not found", nil)
}

// GetOrCreateUser returns the local user for an identity provider account,
// creating it from the directory on first sight.
func (s *OrganizationService) GetOrCreateUser(ctx context.Context, externalID string) (*model.User, error) {
	user, err := s.users.FindByExternalID(ctx, externalID)
	if err != nil {
		return nil, Unknown("Failed to load user", err)
	}
	if user != nil {
		return user, nil
	}

	account, err := s.directory.GetUser(ctx, externalID)
	if errors.Is(err, identity.ErrNotFound) {
		return nil, NotFound("User not found", err)
	}
	if err != nil {
		return nil, Unknown("Failed to load user from identity provider", err)
	}
	if account.PrimaryEmail() == "" {
		return nil, Validation("User has no email address", nil)
	}

	user = localUserFromAccount(account)
	if err := s.users.Create(ctx, user); err != nil {
		return nil, Unknown("Failed to create user", err)
	}
	return user, nil
}

// GetUserIssues lists issues the caller reports or is assigned to in the
// active organization.
func (s *OrganizationService) GetUserIssues(ctx context.Context, p auth.Principal) ([]model.Issue, error) {
	if p.UserID == "" || p.OrganizationID == "" {
		return nil, Unauthorized("No user id or organization id found")
	}
	user, err := findLocalUser(ctx, s.users, p.UserID)
	if err != nil {
		return nil, err
	}

	issues, err := s.issues.ListForUser(ctx, user.ID, p.OrganizationID)
	if err != nil {
		return nil, Unknown("Failed to load issues", err)
	}
	return issues, nil
}

// GetOrganizationUsers maps the organization's memberships to local users.
// Members who never signed in have no local record and are skipped.
func (s *OrganizationService) GetOrganizationUsers(ctx context.Context, p auth.Principal, orgID string) ([]model.User, error) {
	if err := requireSession(p); err != nil {
		return nil, err
	}
	if orgID != p.OrganizationID {
		return nil, NotFound("Organization not found", nil)
	}

	memberships, err := s.directory.ListMemberships(ctx, orgID)
	if errors.Is(err, identity.ErrNotFound) {
		return nil, NotFound("Organization not found", err)
	}
	if err != nil {
		return nil, Unknown("Failed to load memberships", err)
	}

	ids := make([]string, 0, len(memberships))
	for _, m := range memberships {
		if m.PublicUserData.UserID != "" {
			ids = append(ids, m.PublicUserData.UserID)
		}
	}
	users, err := s.users.FindByExternalIDs(ctx, ids)
	if err != nil {
		return nil, Unknown("Failed to load users", err)
	}
	return users, nil
}

// SyncUsers imports every directory account that has no local user yet and
// returns how many were created.
func (s *OrganizationService) SyncUsers(ctx context.Context) (int, error) {
	accounts, err := s.directory.ListUsers(ctx)
	if err != nil {
		return 0, Unknown("Failed to list identity provider users", err)
	}

	created := 0
	for i := range accounts {
		existing, err := s.users.FindByExternalID(ctx, accounts[i].ID)
		if err != nil {
			return created, Unknown("Failed to load user", err)
		}
		if existing != nil {
			continue
		}
		if accounts[i].PrimaryEmail() == "" {
			slog.Warn("skipping user without email", "external_user_id", accounts[i].ID)
			continue
		}
		if err := s.users.Create(ctx, localUserFromAccount(&accounts[i])); err != nil {
			return created, Unknown("Failed to create user", err)
		}
		created++
	}
	return created, nil
}

func localUserFromAccount(account *identity.User) *model.User {
	return &model.User{
		ExternalUserID: account.ID,
		Email:          account.PrimaryEmail(),
		Name:           account.DisplayName(),
		ImageURL:       account.ImageURL,
	}
}
