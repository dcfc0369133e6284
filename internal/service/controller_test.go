package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker/internal/model"
)

// mockStore implements TaskStore and counts every call so tests can
// assert that local failures never reach the network.
type mockStore struct {
	listFunc   func(ctx context.Context) ([]model.Task, error)
	createFunc func(ctx context.Context, fields model.TaskFields) (*model.Task, error)
	updateFunc func(ctx context.Context, id string, fields model.TaskFields) (*model.Task, error)
	deleteFunc func(ctx context.Context, id string) error

	listCalls   int
	createCalls int
	updateCalls int
	deleteCalls int
}

func (m *mockStore) List(ctx context.Context) ([]model.Task, error) {
	m.listCalls++
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockStore) Create(ctx context.Context, fields model.TaskFields) (*model.Task, error) {
	m.createCalls++
	if m.createFunc != nil {
		return m.createFunc(ctx, fields)
	}
	return &model.Task{ID: "new"}, nil
}

func (m *mockStore) Update(ctx context.Context, id string, fields model.TaskFields) (*model.Task, error) {
	m.updateCalls++
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, fields)
	}
	return &model.Task{ID: id}, nil
}

func (m *mockStore) Delete(ctx context.Context, id string) error {
	m.deleteCalls++
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockStore) totalCalls() int {
	return m.listCalls + m.createCalls + m.updateCalls + m.deleteCalls
}

func validDraft() model.Draft {
	return model.Draft{
		Title:       "Pay rent",
		Description: "Bank transfer",
		DueDate:     "2024-01-01 10:00",
		Email:       "a@b.co",
	}
}

func TestSubmitRejectsEmptyFieldsWithoutNetwork(t *testing.T) {
	drafts := map[string]model.Draft{
		"title":       {Description: "d", DueDate: "2024-01-01 10:00", Email: "a@b.co"},
		"description": {Title: "t", DueDate: "2024-01-01 10:00", Email: "a@b.co"},
		"dueDate":     {Title: "t", Description: "d", Email: "a@b.co"},
		"email":       {Title: "t", Description: "d", DueDate: "2024-01-01 10:00"},
	}

	for field, draft := range drafts {
		mock := &mockStore{}
		ctrl := NewController(mock, "Asia/Ho_Chi_Minh")
		ctrl.SetDraft(draft)

		err := ctrl.Submit(context.Background())

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr, "field %s", field)
		assert.Equal(t, field, vErr.Field)
		assert.Zero(t, mock.totalCalls(), "field %s must fail before any network call", field)
	}
}

func TestSubmitRejectsMalformedEmailWithoutNetwork(t *testing.T) {
	mock := &mockStore{}
	ctrl := NewController(mock, "Asia/Ho_Chi_Minh")
	draft := validDraft()
	draft.Email = "foo"
	ctrl.SetDraft(draft)

	err := ctrl.Submit(context.Background())

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "email", vErr.Field)
	assert.Zero(t, mock.totalCalls())
}

func TestSubmitRejectsInvalidDateWithoutNetwork(t *testing.T) {
	mock := &mockStore{}
	ctrl := NewController(mock, "Asia/Ho_Chi_Minh")
	draft := validDraft()
	draft.DueDate = "soonish"
	ctrl.SetDraft(draft)

	err := ctrl.Submit(context.Background())

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "dueDate", vErr.Field)
	assert.Zero(t, mock.totalCalls())
}

func TestSubmitCreatesWithNormalizedDueDate(t *testing.T) {
	var got model.TaskFields
	mock := &mockStore{
		createFunc: func(ctx context.Context, fields model.TaskFields) (*model.Task, error) {
			got = fields
			return &model.Task{ID: "abc"}, nil
		},
	}
	ctrl := NewController(mock, "Asia/Ho_Chi_Minh")
	ctrl.SetDraft(validDraft())

	require.NoError(t, ctrl.Submit(context.Background()))

	// 10:00 in UTC+7 is 03:00Z.
	want := time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC)
	assert.True(t, got.DueDate.Equal(want), "expected %s, got %s", want, got.DueDate)
	assert.Equal(t, "Asia/Ho_Chi_Minh", got.Timezone)
	assert.Equal(t, 1, mock.createCalls)
	assert.Zero(t, mock.updateCalls)
	assert.Equal(t, 1, mock.listCalls, "a successful mutation triggers a refresh")
	assert.Equal(t, model.Draft{}, ctrl.Draft())
	assert.Nil(t, ctrl.Editing())
}

func TestSubmitUpdatesWhenEditing(t *testing.T) {
	var gotID string
	mock := &mockStore{
		updateFunc: func(ctx context.Context, id string, fields model.TaskFields) (*model.Task, error) {
			gotID = id
			return &model.Task{ID: id}, nil
		},
	}
	ctrl := NewController(mock, "Asia/Ho_Chi_Minh")
	ctrl.StartEdit(model.Task{
		ID:      "t1",
		Title:   "Pay rent",
		DueDate: time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC),
		Email:   "a@b.co",
	})
	draft := ctrl.Draft()
	draft.Description = "Bank transfer"
	ctrl.SetDraft(draft)

	require.NoError(t, ctrl.Submit(context.Background()))

	assert.Equal(t, "t1", gotID)
	assert.Equal(t, 1, mock.updateCalls)
	assert.Zero(t, mock.createCalls)
	assert.Nil(t, ctrl.Editing())
}

func TestSubmitSurfacesStoreFailure(t *testing.T) {
	mock := &mockStore{
		createFunc: func(ctx context.Context, fields model.TaskFields) (*model.Task, error) {
			return nil, errors.New("endpoint returned 500")
		},
	}
	ctrl := NewController(mock, "Asia/Ho_Chi_Minh")
	ctrl.SetDraft(validDraft())

	err := ctrl.Submit(context.Background())

	require.Error(t, err)
	assert.Zero(t, mock.listCalls, "no refresh after a failed mutation")
	assert.Equal(t, validDraft(), ctrl.Draft(), "draft survives so the user can retry")
}

func TestSubmitAppliedButRefreshFailed(t *testing.T) {
	previous := []model.Task{{ID: "old"}}
	mock := &mockStore{
		listFunc: func(ctx context.Context) ([]model.Task, error) {
			return nil, errors.New("connection reset")
		},
	}
	ctrl := NewController(mock, "Asia/Ho_Chi_Minh")
	ctrl.tasks = previous
	ctrl.SetDraft(validDraft())

	err := ctrl.Submit(context.Background())

	// The mutation landed; only the resynchronization failed. The draft
	// is gone and the stale collection stays visible.
	require.Error(t, err)
	assert.Equal(t, 1, mock.createCalls)
	assert.Equal(t, model.Draft{}, ctrl.Draft())
	assert.Equal(t, previous, ctrl.Tasks())
}

func TestRefreshReplacesCollection(t *testing.T) {
	fresh := []model.Task{{ID: "a"}, {ID: "b"}}
	mock := &mockStore{
		listFunc: func(ctx context.Context) ([]model.Task, error) {
			return fresh, nil
		},
	}
	ctrl := NewController(mock, "Asia/Ho_Chi_Minh")

	require.NoError(t, ctrl.Refresh(context.Background()))

	assert.Equal(t, fresh, ctrl.Tasks())
	assert.Equal(t, StateLoaded, ctrl.State())
	assert.Empty(t, ctrl.LastError())
}

func TestRefreshFailureKeepsPreviousCollection(t *testing.T) {
	previous := []model.Task{{ID: "a"}}
	mock := &mockStore{
		listFunc: func(ctx context.Context) ([]model.Task, error) {
			return nil, errors.New("connection refused")
		},
	}
	ctrl := NewController(mock, "Asia/Ho_Chi_Minh")
	ctrl.tasks = previous

	err := ctrl.Refresh(context.Background())

	require.Error(t, err)
	assert.Equal(t, previous, ctrl.Tasks(), "a transient failure must not blank the view")
	assert.Equal(t, StateErrored, ctrl.State())
	assert.Contains(t, ctrl.LastError(), "connection refused")
}

func TestStartEditSeedsDraftInSessionZone(t *testing.T) {
	ctrl := NewController(&mockStore{}, "Asia/Ho_Chi_Minh")
	task := model.Task{
		ID:          "t1",
		Title:       "Pay rent",
		Description: "Bank transfer",
		DueDate:     time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC),
		Email:       "a@b.co",
		Timezone:    "Europe/Berlin", // authored elsewhere; editing uses the session zone
	}

	ctrl.StartEdit(task)

	require.NotNil(t, ctrl.Editing())
	assert.Equal(t, "t1", ctrl.Editing().ID)
	assert.Equal(t, model.Draft{
		Title:       "Pay rent",
		Description: "Bank transfer",
		DueDate:     "2024-01-01 10:00",
		Email:       "a@b.co",
	}, ctrl.Draft())
}

func TestStartEditThenCancelLeavesEverythingUntouched(t *testing.T) {
	previous := []model.Task{{ID: "a", Title: "Pay rent"}}
	mock := &mockStore{}
	ctrl := NewController(mock, "Asia/Ho_Chi_Minh")
	ctrl.tasks = previous

	ctrl.StartEdit(previous[0])
	ctrl.CancelEdit()

	assert.Equal(t, previous, ctrl.Tasks())
	assert.Equal(t, model.Draft{}, ctrl.Draft())
	assert.Nil(t, ctrl.Editing())
	assert.Zero(t, mock.totalCalls())
}

func TestControllerReadsAreSafeDuringSlowRefresh(t *testing.T) {
	mock := &mockStore{
		listFunc: func(ctx context.Context) ([]model.Task, error) {
			time.Sleep(20 * time.Millisecond)
			return []model.Task{{ID: "a"}}, nil
		},
	}
	ctrl := NewController(mock, "Asia/Ho_Chi_Minh")

	// The interactive surface re-renders on clock ticks while a store
	// call is still in flight: reads and the refresh overlap. The race
	// detector flags any unsynchronized access here.
	done := make(chan error, 1)
	go func() { done <- ctrl.Refresh(context.Background()) }()

	deadline := time.After(time.Second)
	for {
		select {
		case err := <-done:
			require.NoError(t, err)
			assert.Equal(t, StateLoaded, ctrl.State())
			assert.Len(t, ctrl.Tasks(), 1)
			return
		case <-deadline:
			t.Fatal("refresh never finished")
		default:
			_ = ctrl.State()
			_ = ctrl.Tasks()
			_ = ctrl.LastError()
			_ = ctrl.Draft()
			_ = ctrl.Editing()
		}
	}
}

func TestRemoveRequiresConfirmation(t *testing.T) {
	mock := &mockStore{}
	ctrl := NewController(mock, "Asia/Ho_Chi_Minh")

	err := ctrl.Remove(context.Background(), "t1", false)

	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.Zero(t, mock.deleteCalls)
}

func TestRemoveConfirmedDeletesAndRefreshes(t *testing.T) {
	mock := &mockStore{}
	ctrl := NewController(mock, "Asia/Ho_Chi_Minh")

	require.NoError(t, ctrl.Remove(context.Background(), "t1", true))

	assert.Equal(t, 1, mock.deleteCalls)
	assert.Equal(t, 1, mock.listCalls)
}
