// Package store talks to the remote task endpoint. The endpoint is an
// opaque CRUD service: GET lists, POST creates, PUT /{id} updates,
// DELETE /{id} removes. No retries and no caching happen here; the
// in-memory collection lives in the lifecycle controller.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"task-tracker/internal/model"
)

// ErrNotConfigured is returned by every operation when the endpoint base
// URL is missing from configuration. No network call is attempted.
var ErrNotConfigured = errors.New("tasks API URL is not configured")

// RequestError reports a failed remote call: either the transport failed
// or the endpoint answered with a non-success status.
type RequestError struct {
	Op     string
	Status int
	Body   string
	Err    error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		if e.Body != "" {
			return fmt.Sprintf("%s tasks: endpoint returned %d: %s", e.Op, e.Status, e.Body)
		}
		return fmt.Sprintf("%s tasks: endpoint returned %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s tasks: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Client performs CRUD calls against the remote task endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// List fetches every task from the store, in store order.
func (c *Client) List(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.do(ctx, http.MethodGet, "list", "", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Create stores a new task and returns it with its assigned id.
func (c *Client) Create(ctx context.Context, fields model.TaskFields) (*model.Task, error) {
	var task model.Task
	if err := c.do(ctx, http.MethodPost, "create", "", fields, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Update replaces the editable fields of an existing task.
func (c *Client) Update(ctx context.Context, id string, fields model.TaskFields) (*model.Task, error) {
	var task model.Task
	if err := c.do(ctx, http.MethodPut, "update", "/"+url.PathEscape(id), fields, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete removes a task from the store.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "delete", "/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, op, path string, payload, out any) error {
	if c.baseURL == "" {
		return ErrNotConfigured
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode %s payload: %w", op, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &RequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Op: op, Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &RequestError{Op: op, Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return &RequestError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}
