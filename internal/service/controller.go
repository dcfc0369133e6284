package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"task-tracker/internal/duedate"
	"task-tracker/internal/model"
)

// State tracks the freshness of the task collection.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateErrored
)

// Permissive email shape check, not full RFC validation.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ErrNotConfirmed reports a delete attempt without the caller's explicit
// confirmation. Nothing was sent to the store.
var ErrNotConfirmed = errors.New("delete was not confirmed")

// ValidationError is a local precondition failure on the draft. It never
// causes a network call.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Msg }

// TaskStore is the remote CRUD surface the controller drives. store.Client
// implements it; tests substitute a mock to count calls.
type TaskStore interface {
	List(ctx context.Context) ([]model.Task, error)
	Create(ctx context.Context, fields model.TaskFields) (*model.Task, error)
	Update(ctx context.Context, id string, fields model.TaskFields) (*model.Task, error)
	Delete(ctx context.Context, id string) error
}

// Controller owns the in-memory task collection, the draft and the edit
// target. The collection is replaced wholesale after every successful
// refresh; no incremental patching, the store stays the source of truth.
// At most one of create mode and edit mode is active at a time.
//
// Methods are safe for concurrent use: the interactive surface renders
// from one goroutine while store operations complete on another. The
// mutex guards the state fields only; network calls run outside it so a
// slow store never stalls a read.
type Controller struct {
	store TaskStore
	zone  string

	mu      sync.Mutex
	state   State
	tasks   []model.Task
	draft   model.Draft
	editing *model.Task
	lastErr string
}

func NewController(store TaskStore, zone string) *Controller {
	return &Controller{store: store, zone: zone}
}

// Zone is the session timezone all entry and edit conversion uses.
func (c *Controller) Zone() string { return c.zone }

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Tasks returns the current collection. The slice is replaced, never
// mutated in place, so callers may iterate it without the lock.
func (c *Controller) Tasks() []model.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tasks
}

func (c *Controller) Draft() model.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *Controller) SetDraft(d model.Draft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = d
}

func (c *Controller) Editing() *model.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editing
}

func (c *Controller) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Refresh replaces the collection from the store. A failed refresh keeps
// the previous collection so a transient error never blanks the view.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.state = StateLoading
	c.mu.Unlock()

	tasks, err := c.store.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateErrored
		c.lastErr = err.Error()
		return fmt.Errorf("refresh tasks: %w", err)
	}

	c.tasks = tasks
	c.state = StateLoaded
	c.lastErr = ""
	return nil
}

// Submit validates the draft, normalizes the due date in the session zone
// and dispatches a create or an update depending on the edit target. On
// success the draft and target are cleared and the collection refreshed.
// A mutation that lands followed by a failed refresh leaves the view
// stale until the next successful refresh.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	fields, err := c.buildFieldsLocked()
	if err != nil {
		c.mu.Unlock()
		return err
	}
	editing := c.editing
	c.mu.Unlock()

	if editing != nil {
		_, err = c.store.Update(ctx, editing.ID, fields)
	} else {
		_, err = c.store.Create(ctx, fields)
	}
	if err != nil {
		return fmt.Errorf("save task: %w", err)
	}

	c.mu.Lock()
	c.draft = model.Draft{}
	c.editing = nil
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// StartEdit sets the edit target and seeds the draft from the task. The
// due date is shown in the session zone, not necessarily the zone the
// task was authored in: editing always happens in the viewer's zone.
func (c *Controller) StartEdit(task model.Task) {
	t := task
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = &t
	c.draft = model.Draft{
		Title:       task.Title,
		Description: task.Description,
		DueDate:     duedate.ToLocalString(task.DueDate, c.zone),
		Email:       task.Email,
	}
}

// CancelEdit drops the draft and edit target without touching the store.
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = model.Draft{}
	c.editing = nil
}

// Remove deletes a task. The confirmed flag carries the caller's explicit
// confirmation; without it nothing is sent to the store.
func (c *Controller) Remove(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	if err := c.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return c.Refresh(ctx)
}

// buildFieldsLocked validates and normalizes the draft. The caller holds
// the mutex.
func (c *Controller) buildFieldsLocked() (model.TaskFields, error) {
	title := strings.TrimSpace(c.draft.Title)
	description := strings.TrimSpace(c.draft.Description)
	due := strings.TrimSpace(c.draft.DueDate)
	email := strings.TrimSpace(c.draft.Email)

	switch {
	case title == "":
		return model.TaskFields{}, &ValidationError{Field: "title", Msg: "title is required"}
	case description == "":
		return model.TaskFields{}, &ValidationError{Field: "description", Msg: "description is required"}
	case due == "":
		return model.TaskFields{}, &ValidationError{Field: "dueDate", Msg: "due date is required"}
	case email == "":
		return model.TaskFields{}, &ValidationError{Field: "email", Msg: "email is required"}
	}

	if !emailShape.MatchString(email) {
		return model.TaskFields{}, &ValidationError{Field: "email", Msg: "email address looks invalid"}
	}

	instant, err := duedate.ToAbsolute(due, c.zone)
	if err != nil {
		return model.TaskFields{}, &ValidationError{Field: "dueDate", Msg: "due date must be a valid YYYY-MM-DD HH:mm"}
	}

	return model.TaskFields{
		Title:       title,
		Description: description,
		DueDate:     instant,
		Email:       email,
		Timezone:    c.zone,
	}, nil
}
