package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultAPIBase = "https://api.clickup.com/api/v2"

// ClickUpClient talks to the ClickUp REST API. It implements Client.
type ClickUpClient struct {
	token      string
	apiBase    string
	listID     string
	httpClient *http.Client
}

// ClickUpParams configures a ClickUpClient. Token and ListID are
// required; APIBase and Timeout have sensible defaults.
type ClickUpParams struct {
	Token   string
	ListID  string
	APIBase string
	Timeout time.Duration
}

// NewClickUpClient validates params and builds a client. A missing
// token or list ID is a configuration error surfaced before any
// materialization begins.
func NewClickUpClient(p ClickUpParams) (*ClickUpClient, error) {
	if p.Token == "" {
		return nil, fmt.Errorf("clickup: token not configured")
	}
	if p.ListID == "" {
		return nil, fmt.Errorf("clickup: list ID not configured")
	}
	base := p.APIBase
	if base == "" {
		base = defaultAPIBase
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ClickUpClient{
		token:      p.Token,
		apiBase:    strings.TrimRight(base, "/"),
		listID:     p.ListID,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// CreateTask implements Client.
func (c *ClickUpClient) CreateTask(ctx context.Context, req CreateTaskRequest) (Task, error) {
	listID := req.ListID
	if listID == "" {
		listID = c.listID
	}

	body := map[string]any{
		"name":        req.Name,
		"description": req.Description,
	}
	if len(req.Assignees) > 0 {
		body["assignees"] = req.Assignees
	}
	if req.Priority > 0 {
		body["priority"] = req.Priority
	}
	if req.DueDateMs > 0 {
		body["due_date"] = req.DueDateMs
	}
	if req.TimeEstimate > 0 {
		body["time_estimate"] = req.TimeEstimate
	}
	if len(req.Tags) > 0 {
		body["tags"] = req.Tags
	}

	var resp struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/list/"+listID+"/task", body, &resp); err != nil {
		return Task{}, err
	}
	return Task{ID: resp.ID, Name: req.Name, URL: resp.URL}, nil
}

// AddComment implements Client.
func (c *ClickUpClient) AddComment(ctx context.Context, taskID, text string) error {
	body := map[string]any{"comment_text": text}
	return c.doJSON(ctx, http.MethodPost, "/task/"+taskID+"/comment", body, nil)
}

// TasksForUser implements Client. Open tasks only; list filtering is
// optional.
func (c *ClickUpClient) TasksForUser(ctx context.Context, userID string, listIDs []string) ([]Task, error) {
	q := url.Values{}
	q.Set("assignees[]", userID)
	q.Set("include_closed", "false")
	for _, id := range listIDs {
		q.Add("list_ids[]", id)
	}

	var resp struct {
		Tasks []struct {
			ID           string `json:"id"`
			Name         string `json:"name"`
			URL          string `json:"url"`
			TimeEstimate int64  `json:"time_estimate"`
			DueDate      string `json:"due_date"`
			Status       struct {
				Status string `json:"status"`
			} `json:"status"`
		} `json:"tasks"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/list/"+c.listID+"/task?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	tasks := make([]Task, 0, len(resp.Tasks))
	for _, t := range resp.Tasks {
		tasks = append(tasks, Task{
			ID:            t.ID,
			Name:          t.Name,
			URL:           t.URL,
			Status:        t.Status.Status,
			EstimateHours: float64(t.TimeEstimate) / 3_600_000,
		})
	}
	return tasks, nil
}

// WorkloadHours implements Client: the sum of open-task estimates for
// the user, in hours.
func (c *ClickUpClient) WorkloadHours(ctx context.Context, userID string) (float64, error) {
	tasks, err := c.TasksForUser(ctx, userID, nil)
	if err != nil {
		return 0, err
	}
	var hours float64
	for _, t := range tasks {
		hours += t.EstimateHours
	}
	return hours, nil
}

// doJSON performs one request against the API and decodes the response
// into out (when non-nil). All failures fold into a generic wrapped
// error; retry policy, if ever wanted, belongs here and not in the
// engine.
func (c *ClickUpClient) doJSON(ctx context.Context, method, path string, payload, out any) error {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("clickup: marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiBase+path, reqBody)
	if err != nil {
		return fmt.Errorf("clickup: build request: %w", err)
	}
	req.Header.Set("Authorization", c.token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("clickup: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		slog.Warn("clickup: request rejected", "method", method, "path", path, "status", resp.StatusCode)
		return fmt.Errorf("clickup: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("clickup: decode response: %w", err)
		}
	}
	return nil
}
