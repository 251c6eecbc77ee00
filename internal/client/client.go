package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/taskflow-api/internal/dto"
	apierrors "github.com/yukikurage/taskflow-api/internal/errors"
)

const defaultTimeout = 10 * time.Second

// APIError is returned for any non-2xx response. Code and Message are filled
// in when the body is a TaskFlow error document.
type APIError struct {
	StatusCode int
	Body       string
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("taskflow api: %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("taskflow api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("taskflow api: %d %s", e.StatusCode, body)
}

// Client talks to a TaskFlow server. Every method issues exactly one request.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for baseURL. A nil httpClient gets a default with a timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// ListFilter narrows ListTasks. Empty fields are not sent.
type ListFilter struct {
	Assignee string
	Status   string
	Category string
}

// UpdateTaskParams holds the fields to change. Nil fields are left untouched.
type UpdateTaskParams struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Assignee    *string `json:"assignee,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Category    *string `json:"category,omitempty"`
}

// Health is the body of GET /health
type Health struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// Health calls GET /health
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTasks returns tasks matching filter, newest first
func (c *Client) ListTasks(ctx context.Context, filter ListFilter) ([]dto.TaskDTO, error) {
	query := url.Values{}
	if filter.Assignee != "" {
		query.Set("assignee", filter.Assignee)
	}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}

	path := "/tasks"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var out []dto.TaskDTO
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTasksByAssignee returns every task of one assignee
func (c *Client) ListTasksByAssignee(ctx context.Context, assignee string) ([]dto.TaskDTO, error) {
	var out []dto.TaskDTO
	if err := c.do(ctx, http.MethodGet, "/tasks/by-assignee/"+url.PathEscape(assignee), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTask returns a single task
func (c *Client) GetTask(ctx context.Context, id string) (*dto.TaskDTO, error) {
	var out dto.TaskDTO
	if err := c.do(ctx, http.MethodGet, taskPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateTask creates a task; the server fills in defaults
func (c *Client) CreateTask(ctx context.Context, req dto.CreateTaskRequest) (*dto.TaskDTO, error) {
	var out dto.TaskDTO
	if err := c.do(ctx, http.MethodPost, "/tasks", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTask sends only the non-nil fields of params
func (c *Client) UpdateTask(ctx context.Context, id string, params UpdateTaskParams) (*dto.TaskDTO, error) {
	var out dto.TaskDTO
	if err := c.do(ctx, http.MethodPatch, taskPath(id), params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTask permanently removes a task
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil)
}

// Stats returns task counts per status and assignee
func (c *Client) Stats(ctx context.Context) (*dto.StatsDTO, error) {
	var out dto.StatsDTO
	if err := c.do(ctx, http.MethodGet, "/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func taskPath(id string) string {
	// Canonicalise well-formed ids; anything else is sent as-is and the server answers 404.
	if parsed, err := uuid.Parse(id); err == nil {
		id = parsed.String()
	}
	return "/tasks/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(data)}
		var doc apierrors.APIError
		if json.Unmarshal(data, &doc) == nil {
			apiErr.Code = doc.Code
			apiErr.Message = doc.Message
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
