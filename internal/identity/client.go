package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	DefaultBaseURL = "https://api.clerk.com/v1"
	userAgent      = "syncboard/1.0"
	pageSize       = 100
)

// ErrNotFound is returned when the provider answers 404.
var ErrNotFound = errors.New("identity: not found")

type Organization struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	ImageURL string `json:"image_url"`
}

type PublicUserData struct {
	UserID    string `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	ImageURL  string `json:"image_url"`
	Email     string `json:"identifier"`
}

type Membership struct {
	ID             string         `json:"id"`
	Role           string         `json:"role"`
	PublicUserData PublicUserData `json:"public_user_data"`
}

type EmailAddress struct {
	EmailAddress string `json:"email_address"`
}

type User struct {
	ID             string         `json:"id"`
	FirstName      *string        `json:"first_name"`
	LastName       *string        `json:"last_name"`
	ImageURL       string         `json:"image_url"`
	EmailAddresses []EmailAddress `json:"email_addresses"`
}

// PrimaryEmail returns the first listed address, or "" when there is none.
func (u *User) PrimaryEmail() string {
	if len(u.EmailAddresses) == 0 {
		return ""
	}
	return u.EmailAddresses[0].EmailAddress
}

// DisplayName falls back to "Unnamed" when the provider has no first name.
func (u *User) DisplayName() string {
	if u.FirstName == nil || *u.FirstName == "" {
		return "Unnamed"
	}
	return *u.FirstName
}

// Directory reads organizations and users from the identity provider.
type Directory interface {
	GetOrganization(ctx context.Context, slugOrID string) (*Organization, error)
	ListMemberships(ctx context.Context, orgID string) ([]Membership, error)
	GetUser(ctx context.Context, userID string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
}

type clientImpl struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL, apiKey string) Directory {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return newClientWithBaseURL(apiKey, &http.Client{Timeout: 15 * time.Second}, baseURL)
}

func newClientWithBaseURL(apiKey string, httpClient *http.Client, baseURL string) *clientImpl {
	return &clientImpl{
		apiKey:     apiKey,
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

func (c *clientImpl) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("identity request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("identity request %s: status %d: %s", path, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *clientImpl) GetOrganization(ctx context.Context, slugOrID string) (*Organization, error) {
	var org Organization
	if err := c.get(ctx, "/organizations/"+url.PathEscape(slugOrID), nil, &org); err != nil {
		return nil, err
	}
	return &org, nil
}

type membershipPage struct {
	Data       []Membership `json:"data"`
	TotalCount int          `json:"total_count"`
}

// ListMemberships pages through every membership of the organization.
func (c *clientImpl) ListMemberships(ctx context.Context, orgID string) ([]Membership, error) {
	var all []Membership
	for offset := 0; ; offset += pageSize {
		var page membershipPage
		query := url.Values{
			"limit":  {fmt.Sprint(pageSize)},
			"offset": {fmt.Sprint(offset)},
		}
		if err := c.get(ctx, "/organizations/"+url.PathEscape(orgID)+"/memberships", query, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Data...)
		if len(page.Data) < pageSize || len(all) >= page.TotalCount {
			return all, nil
		}
	}
}

func (c *clientImpl) GetUser(ctx context.Context, userID string) (*User, error) {
	var user User
	if err := c.get(ctx, "/users/"+url.PathEscape(userID), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers pages through every user of the instance.
func (c *clientImpl) ListUsers(ctx context.Context) ([]User, error) {
	var all []User
	for offset := 0; ; offset += pageSize {
		var page []User
		query := url.Values{
			"limit":    {fmt.Sprint(pageSize)},
			"offset":   {fmt.Sprint(offset)},
			"order_by": {"-created_at"},
		}
		if err := c.get(ctx, "/users", query, &page); err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < pageSize {
			return all, nil
		}
	}
}
