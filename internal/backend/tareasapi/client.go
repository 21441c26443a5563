// Package tareasapi implements the service.Service interface over the tareas REST API.
package tareasapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tareas/internal/config"
	"tareas/internal/service"
)

const (
	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second

	// maxErrorBody caps how much of an error response is read.
	maxErrorBody = 4 << 10
)

// Client implements service.Service against a running tareas server.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

var (
	_ service.Service       = (*Client)(nil)
	_ service.HealthChecker = (*Client)(nil)
)

// New creates a client for cfg.APIURL.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	return NewWithHTTPClient(cfg.APIURL, &http.Client{})
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url: %s", baseURL)
	}
	return &Client{baseURL: u, httpClient: httpClient}, nil
}

// Health implements service.HealthChecker.
func (c *Client) Health(ctx context.Context) (string, error) {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/health", nil, http.StatusOK, &body); err != nil {
		return "", err
	}
	return body.Status, nil
}

// List implements service.Service.
func (c *Client) List(ctx context.Context) ([]service.Task, error) {
	tasks := []service.Task{}
	if err := c.do(ctx, http.MethodGet, "/api/tareas", nil, http.StatusOK, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	return tasks, nil
}

// Create implements service.Service.
func (c *Client) Create(ctx context.Context, descripcion string) (service.Task, error) {
	var task service.Task
	req := map[string]string{"descripcion": descripcion}
	if err := c.do(ctx, http.MethodPost, "/api/tareas", req, http.StatusCreated, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// UpdateStatus implements service.Service.
func (c *Client) UpdateStatus(ctx context.Context, id int64, completada bool) (service.Task, error) {
	var task service.Task
	req := map[string]bool{"completada": completada}
	path := "/api/tareas/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, http.MethodPatch, path, req, http.StatusOK, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// DeleteAll implements service.Service.
// The API has no bulk delete endpoint; resets go through tareas-server.
func (c *Client) DeleteAll(ctx context.Context) error {
	return fmt.Errorf("delete all is not exposed over http (run: tareas-server reset): %w", service.ErrInvalidInput)
}

// do issues one request and decodes a JSON response with status want into out.
func (c *Client) do(ctx context.Context, method, path string, in any, want int, out any) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.JoinPath(path).String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return wrapError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return statusError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w: %w", service.ErrUnavailable, err)
	}
	return nil
}

// statusError maps an unexpected response back onto the service sentinels.
func statusError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err := json.Unmarshal(data, &body); err != nil || body.Error == "" {
		body.Error = http.StatusText(resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("%s: %w", body.Error, service.ErrInvalidInput)
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", body.Error, service.ErrNotFound)
	default:
		return fmt.Errorf("server returned %d: %s: %w", resp.StatusCode, body.Error, service.ErrUnavailable)
	}
}

// wrapError wraps transport errors with user-friendly messages.
func wrapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", service.ErrUnavailable)
	}
	return fmt.Errorf("%w: %w", service.ErrUnavailable, err)
}
