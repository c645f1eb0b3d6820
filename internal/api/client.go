// Package api is the typed facade over the Star Award backend's REST
// surface: one method per endpoint, thin pass-through of payloads, no
// retries beyond the transport's 401 refresh, errors handed back for the
// caller to classify.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Client calls the backend. All methods take a context and return either a
// decoded body or an *Error for non-2xx responses.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client rooted at baseURL, dispatching through hc (which is
// expected to carry the authenticating transport).
func New(baseURL string, hc *http.Client) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}, nil
}

// RefreshURL returns the absolute URL of the token refresh endpoint, for
// wiring into the transport.
func (c *Client) RefreshURL() string {
	return c.endpoint("token/refresh/", nil)
}

// --- auth & profile ---

// Register creates an account. It does not touch the session.
func (c *Client) Register(ctx context.Context, reg Registration) error {
	return c.do(ctx, http.MethodPost, "register/", nil, reg, nil)
}

// Login exchanges credentials for a token pair. Storing the tokens is the
// session's job, not the facade's.
func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.do(ctx, http.MethodPost, "login/", nil, creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetMe fetches the caller's full profile.
func (c *Client) GetMe(ctx context.Context) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "me/", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile patches the caller's own profile.
func (c *Client) UpdateProfile(ctx context.Context, upd ProfileUpdate) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodPatch, "me/", nil, upd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Promote changes another user's role.
func (c *Client) Promote(ctx context.Context, p Promotion) error {
	return c.do(ctx, http.MethodPost, "promote/", nil, p, nil)
}

// PromotableUsers lists users eligible for promotion, optionally filtered
// by a search term.
func (c *Client) PromotableUsers(ctx context.Context, search string) ([]Employee, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	var out []Employee
	if err := c.do(ctx, http.MethodGet, "coordinator/promote-list/", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- nominations ---

// BrowseNominees returns one server-side page of nominee candidates.
// Empty filters are omitted; the page number always goes out.
func (c *Client) BrowseNominees(ctx context.Context, f BrowseFilter) (*EmployeePage, error) {
	page := f.Page
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	setIfPresent(q, "search", f.Search)
	setIfPresent(q, "dept", f.Dept)
	setIfPresent(q, "role", f.Role)
	setIfPresent(q, "location", f.Location)

	var out EmployeePage
	if err := c.do(ctx, http.MethodGet, "nominate/list/", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FilterOptions returns the distinct dept/role/location values for the
// browse filters.
func (c *Client) FilterOptions(ctx context.Context) ([]FilterOption, error) {
	var out []FilterOption
	if err := c.do(ctx, http.MethodGet, "nominate/filter-options/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// NominationCriteria returns the category-to-metrics taxonomy.
func (c *Client) NominationCriteria(ctx context.Context) (Criteria, error) {
	var out Criteria
	if err := c.do(ctx, http.MethodGet, "nominate/options-data/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SubmitNomination submits the caller's nomination.
func (c *Client) SubmitNomination(ctx context.Context, n NominationRequest) error {
	return c.do(ctx, http.MethodPost, "nominate/action/", nil, n, nil)
}

// UpdateNomination replaces the caller's existing nomination.
func (c *Client) UpdateNomination(ctx context.Context, n NominationRequest) error {
	return c.do(ctx, http.MethodPut, "nominate/action/", nil, n, nil)
}

// WithdrawNomination withdraws the caller's nomination.
func (c *Client) WithdrawNomination(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "nominate/action/", nil, nil, nil)
}

// MyNominationStatus reports the caller's own nomination plus received count.
func (c *Client) MyNominationStatus(ctx context.Context) (*NominationStatus, error) {
	var out NominationStatus
	if err := c.do(ctx, http.MethodGet, "nominate/status/", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- notifications ---

// Notifications lists the caller's notifications.
func (c *Client) Notifications(ctx context.Context) ([]Notification, error) {
	var out []Notification
	if err := c.do(ctx, http.MethodGet, "notifications/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id int) error {
	path := fmt.Sprintf("notifications/%d/read/", id)
	return c.do(ctx, http.MethodPost, path, nil, nil, nil)
}

// --- review ---

// ReviewNominations lists nominations for the requested review slice.
// Filtering by status and reviewer scope happens server-side.
func (c *Client) ReviewNominations(ctx context.Context, filter ReviewFilter) ([]Nomination, error) {
	q := url.Values{}
	q.Set("filter", string(filter))
	var out []Nomination
	if err := c.do(ctx, http.MethodGet, "coordinator/nominations/", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReviewNomination requests an APPROVE, REJECT or UNDO transition and
// returns the backend's confirmation message.
func (c *Client) ReviewNomination(ctx context.Context, action ReviewAction) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "coordinator/nominations/", nil, action, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// --- voting ---

// VotingState returns the finalist list and whether the caller has voted.
func (c *Client) VotingState(ctx context.Context) (*VotingState, error) {
	var out VotingState
	if err := c.do(ctx, http.MethodGet, "voting/finalists/", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CastVote votes for a finalist nomination.
func (c *Client) CastVote(ctx context.Context, nominationID int) error {
	body := map[string]int{"nomination_id": nominationID}
	return c.do(ctx, http.MethodPost, "voting/finalists/", nil, body, nil)
}

// --- admin & reporting ---

// VoteResults returns per-finalist vote tallies.
func (c *Client) VoteResults(ctx context.Context) ([]VoteResult, error) {
	var out []VoteResult
	if err := c.do(ctx, http.MethodGet, "admin/results/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Timeline reads the four-phase schedule.
func (c *Client) Timeline(ctx context.Context) (*Timeline, error) {
	var out Timeline
	if err := c.do(ctx, http.MethodGet, "admin/timeline/", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetTimeline writes the four-phase schedule.
func (c *Client) SetTimeline(ctx context.Context, tl Timeline) error {
	return c.do(ctx, http.MethodPost, "admin/timeline/", nil, tl, nil)
}

// Winners returns final, committee and coordinator winners.
func (c *Client) Winners(ctx context.Context) (*Winners, error) {
	var out Winners
	if err := c.do(ctx, http.MethodGet, "admin/winners/", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Analytics returns the admin dashboard KPIs, department stats and trends.
func (c *Client) Analytics(ctx context.Context) (*Analytics, error) {
	var out Analytics
	if err := c.do(ctx, http.MethodGet, "admin/analytics/", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminReport downloads the admin spreadsheet export.
func (c *Client) AdminReport(ctx context.Context) (*Export, error) {
	return c.doBlob(ctx, "admin/report/", "admin_report.xlsx")
}

// ExportStarAwards downloads the coordinator-scope spreadsheet export.
func (c *Client) ExportStarAwards(ctx context.Context) (*Export, error) {
	return c.doBlob(ctx, "nomination/export-star-awards/", "star_award_export.xlsx")
}

// AIAnalysis returns AI-summarized nomination insights.
func (c *Client) AIAnalysis(ctx context.Context) ([]Insight, error) {
	var out []Insight
	if err := c.do(ctx, http.MethodGet, "nominations/ai-analysis/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpsertEmployee creates or updates one employee record.
func (c *Client) UpsertEmployee(ctx context.Context, e EmployeeUpsert) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "admin/manage-users/", nil, e, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// UploadEmployees bulk-upserts employees from a spreadsheet file.
func (c *Client) UploadEmployees(ctx context.Context, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("building upload form: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("reading upload file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("finalizing upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("admin/manage-users/", nil), bytes.NewReader(buf.Bytes()))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out struct {
		Message string `json:"message"`
	}
	if err := c.send(req, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// --- plumbing ---

func (c *Client) endpoint(path string, q url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// do issues one request and decodes the response into out (which may be
// nil to discard the body). Non-2xx responses become an *Error.
func (c *Client) do(ctx context.Context, method, path string, q url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, q), body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// doBlob downloads a binary export, taking the filename from the
// Content-Disposition header when the backend supplies one.
func (c *Client) doBlob(ctx context.Context, path, fallbackName string) (*Export, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, nil), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp.StatusCode, data)
	}

	name := fallbackName
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if fn := params["filename"]; fn != "" {
				name = fn
			}
		}
	}
	return &Export{Filename: name, Data: data}, nil
}

func setIfPresent(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
