package openproject

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

// Client is the HTTP wrapper for the OpenProject v3 REST API.
// All requests pass through a rate limiter so remote calls stay
// sequential and inside the API's limits.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	limiter     *rate.Limiter
}

// Config configures a Client.
type Config struct {
	BaseURL     string
	AccessToken string // apikey basic-auth token

	// Optional OAuth2 client-credentials grant. When ClientID is set
	// the token source replaces apikey auth entirely.
	OAuthClientID     string
	OAuthClientSecret string
	OAuthTokenURL     string

	// RequestsPerSecond caps outbound request rate. Zero means 4 rps.
	RequestsPerSecond float64
}

// NewClient creates a new OpenProject HTTP client.
func NewClient(cfg Config) *Client {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 4
	}

	httpClient := &http.Client{}
	accessToken := cfg.AccessToken
	if cfg.OAuthClientID != "" {
		oauthCfg := clientcredentials.Config{
			ClientID:     cfg.OAuthClientID,
			ClientSecret: cfg.OAuthClientSecret,
			TokenURL:     cfg.OAuthTokenURL,
		}
		httpClient = oauthCfg.Client(context.Background())
		accessToken = "" // bearer token injected by the oauth2 transport
	}

	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		accessToken: accessToken,
		httpClient:  httpClient,
		limiter:     rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// APIError is a non-2xx response from the OpenProject API.
type APIError struct {
	StatusCode int
	Body       string // truncated response body
}

func (e *APIError) Error() string {
	return fmt.Sprintf("openproject API error %d: %s", e.StatusCode, e.Body)
}

const maxErrorBody = 200

// do performs one API request, decoding the JSON response into out when
// out is non-nil.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewBuffer(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/hal+json")
	if c.accessToken != "" {
		cred := base64.StdEncoding.EncodeToString([]byte("apikey:" + c.accessToken))
		req.Header.Set("Authorization", "Basic "+cred)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call openproject API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		text := string(raw)
		if len(text) > maxErrorBody {
			text = text[:maxErrorBody]
		}
		return &APIError{StatusCode: resp.StatusCode, Body: text}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode openproject response: %w", err)
	}
	return nil
}

// GetCurrentUser fetches the authenticated user via GET /api/v3/users/me.
func (c *Client) GetCurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/v3/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetProjects lists the visible projects (first page, capped at 100 —
// matches the review surface's needs).
func (c *Client) GetProjects(ctx context.Context) ([]Project, error) {
	var coll struct {
		Embedded struct {
			Elements []Project `json:"elements"`
		} `json:"_embedded"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v3/projects?pageSize=100", nil, &coll); err != nil {
		return nil, err
	}
	return coll.Embedded.Elements, nil
}

// GetStatuses lists the workflow statuses.
func (c *Client) GetStatuses(ctx context.Context) ([]Status, error) {
	var coll struct {
		Embedded struct {
			Elements []Status `json:"elements"`
		} `json:"_embedded"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v3/statuses", nil, &coll); err != nil {
		return nil, err
	}
	return coll.Embedded.Elements, nil
}

const workPackagePageSize = 100

// FindWorkPackageBySubject walks the project's work packages page by
// page looking for a case-insensitive exact subject match. Returns
// (nil, nil) when no match exists. Partial containment matches are
// reported through onPartial, if set; they never classify.
func (c *Client) FindWorkPackageBySubject(ctx context.Context, projectID int, subject string, onPartial func(wp WorkPackage)) (*WorkPackage, error) {
	normalized := strings.ToLower(strings.TrimSpace(subject))

	for offset := 1; ; offset++ {
		params := url.Values{}
		params.Set("pageSize", fmt.Sprintf("%d", workPackagePageSize))
		params.Set("offset", fmt.Sprintf("%d", offset))
		endpoint := fmt.Sprintf("/api/v3/projects/%d/work_packages?%s", projectID, params.Encode())

		var page struct {
			Total    int `json:"total"`
			Embedded struct {
				Elements []WorkPackage `json:"elements"`
			} `json:"_embedded"`
		}
		if err := c.do(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
			return nil, err
		}

		for _, wp := range page.Embedded.Elements {
			wpSubject := strings.ToLower(strings.TrimSpace(wp.Subject))
			if wpSubject == normalized {
				found := wp
				return &found, nil
			}
			if onPartial != nil && (strings.Contains(wpSubject, normalized) || strings.Contains(normalized, wpSubject)) {
				onPartial(wp)
			}
		}

		seen := (offset-1)*workPackagePageSize + len(page.Embedded.Elements)
		if seen >= page.Total || len(page.Embedded.Elements) == 0 {
			return nil, nil
		}
	}
}

// CreateWorkPackage creates a work package via POST /api/v3/work_packages.
// Callers are expected to have checked for an existing subject first.
func (c *Client) CreateWorkPackage(ctx context.Context, req CreateWorkPackageRequest) (*WorkPackage, error) {
	typeID := defaultTypeID

	body := workPackagePayload{Subject: req.Subject}
	body.Links.Project = halLink{Href: fmt.Sprintf("/api/v3/projects/%d", req.ProjectID)}
	body.Links.Type = &halLink{Href: fmt.Sprintf("/api/v3/types/%d", typeID)}
	if req.StatusID > 0 {
		body.Links.Status = &halLink{Href: fmt.Sprintf("/api/v3/statuses/%d", req.StatusID)}
	}
	if req.AccountableUserID > 0 {
		body.Links.Accountable = &halLink{Href: fmt.Sprintf("/api/v3/users/%d", req.AccountableUserID)}
	}
	if req.AssigneeUserID > 0 {
		body.Links.Assignee = &halLink{Href: fmt.Sprintf("/api/v3/users/%d", req.AssigneeUserID)}
	}
	if req.Description != "" {
		body.Description = &formattable{Raw: req.Description}
	}

	var wp WorkPackage
	if err := c.do(ctx, http.MethodPost, "/api/v3/work_packages", body, &wp); err != nil {
		return nil, err
	}
	return &wp, nil
}

// ListTimeEntries fetches the caller's time entries (first page).
func (c *Client) ListTimeEntries(ctx context.Context) ([]TimeEntry, error) {
	var coll struct {
		Embedded struct {
			Elements []TimeEntry `json:"elements"`
		} `json:"_embedded"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v3/time_entries", nil, &coll); err != nil {
		return nil, err
	}
	return coll.Embedded.Elements, nil
}

// CreateTimeEntry logs hours against a work package via POST /api/v3/time_entries.
func (c *Client) CreateTimeEntry(ctx context.Context, req CreateTimeEntryRequest) (*TimeEntry, error) {
	if req.Hours <= 0 {
		return nil, fmt.Errorf("invalid hours value: %g", req.Hours)
	}

	body := timeEntryPayload{
		SpentOn: req.SpentOn,
		Hours:   FormatHours(req.Hours),
	}
	body.Links.WorkPackage = halLink{Href: fmt.Sprintf("/api/v3/work_packages/%d", req.WorkPackageID)}
	body.Links.Activity = halLink{Href: fmt.Sprintf("/api/v3/time_entries/activities/%d", req.ActivityID)}
	if req.Comment != "" {
		body.Comment = &formattable{Raw: req.Comment}
	}

	var te TimeEntry
	if err := c.do(ctx, http.MethodPost, "/api/v3/time_entries", body, &te); err != nil {
		return nil, err
	}
	return &te, nil
}

// UpdateTimeEntry patches an existing time entry's hours and comment.
func (c *Client) UpdateTimeEntry(ctx context.Context, id int, hours float64, comment string) (*TimeEntry, error) {
	body := timeEntryPatch{Hours: FormatHours(hours)}
	if comment != "" {
		body.Comment = &formattable{Raw: comment}
	}

	var te TimeEntry
	endpoint := fmt.Sprintf("/api/v3/time_entries/%d", id)
	if err := c.do(ctx, http.MethodPatch, endpoint, body, &te); err != nil {
		return nil, err
	}
	return &te, nil
}
