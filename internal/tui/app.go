// Package tui is the terminal surface of the tracker. It only reads
// controller state and emits user intents; validation, normalization and
// collection ownership stay in the services.
package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"task-tracker/internal/model"
	"task-tracker/internal/service"
)

type mode int

const (
	modeList mode = iota
	modeForm
)

const (
	fieldTitle = iota
	fieldDescription
	fieldDueDate
	fieldEmail
	fieldCount
)

const opTimeout = 30 * time.Second

// Reminder membership is live: the clock is re-read on a timer so a task
// can enter or leave the due-soon panel without any data change.
const clockTick = 30 * time.Second

type refreshedMsg struct{ err error }
type submittedMsg struct{ err error }
type removedMsg struct{ err error }
type tickMsg time.Time

// Model drives the interactive session.
type Model struct {
	ctrl      *service.Controller
	reminders *service.ReminderService

	mode    mode
	inputs  [fieldCount]textinput.Model
	focus   int
	cursor  int
	pending string // task id awaiting delete confirmation
	status  string
	now     time.Time
	loading bool
	width   int
}

func New(ctrl *service.Controller, reminders *service.ReminderService) Model {
	m := Model{
		ctrl:      ctrl,
		reminders: reminders,
		status:    "Press a to add, e to edit, d to delete, r to refresh, q to quit.",
		now:       time.Now(),
	}

	placeholders := [fieldCount]string{
		"Task title",
		"Task description",
		"Due date (YYYY-MM-DD HH:mm)",
		"Email",
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 256
		ti.Width = 48
		m.inputs[i] = ti
	}

	return m
}

// Run starts the program and blocks until the user quits.
func Run(ctrl *service.Controller, reminders *service.ReminderService) error {
	_, err := tea.NewProgram(New(ctrl, reminders), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), tickCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		return m, tickCmd()

	case refreshedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = "⚠ " + errText(msg.err)
		} else {
			m.status = "Tasks refreshed."
		}
		m.cursor = clampCursor(m.cursor, len(m.ctrl.Tasks()))
		m.now = time.Now()
		return m, nil

	case submittedMsg:
		m.loading = false
		m.now = time.Now()
		if msg.err != nil {
			m.status = "⚠ " + errText(msg.err)
			// Validation and network failures keep the form open so the
			// user can correct and resubmit.
			return m, nil
		}
		m.status = "Task saved."
		m.mode = modeList
		m.clearInputs()
		m.cursor = clampCursor(m.cursor, len(m.ctrl.Tasks()))
		return m, nil

	case removedMsg:
		m.loading = false
		m.now = time.Now()
		if msg.err != nil {
			m.status = "⚠ " + errText(msg.err)
		} else {
			m.status = "Task deleted."
		}
		m.cursor = clampCursor(m.cursor, len(m.ctrl.Tasks()))
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			// One operation in flight at a time.
			return m, nil
		}
		if m.pending != "" {
			return m.updateConfirm(msg.String())
		}
		if m.mode == modeForm {
			return m.updateForm(msg)
		}
		return m.updateList(msg.String())
	}

	return m, nil
}

func (m Model) updateList(key string) (tea.Model, tea.Cmd) {
	tasks := m.ctrl.Tasks()

	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(tasks)-1 {
			m.cursor++
		}
	case "r":
		m.loading = true
		m.status = "Refreshing…"
		return m, m.refreshCmd()
	case "a":
		m.ctrl.CancelEdit()
		m.enterForm()
		m.status = "New task. Enter moves on, esc cancels."
		return m, textinput.Blink
	case "e":
		if len(tasks) == 0 {
			return m, nil
		}
		m.ctrl.StartEdit(tasks[m.cursor])
		m.enterForm()
		m.status = "Editing " + tasks[m.cursor].Title + ". Enter moves on, esc cancels."
		return m, textinput.Blink
	case "d":
		if len(tasks) == 0 {
			return m, nil
		}
		m.pending = tasks[m.cursor].ID
		m.status = "Delete \"" + tasks[m.cursor].Title + "\"? (y/n)"
	}

	return m, nil
}

func (m Model) updateConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		id := m.pending
		m.pending = ""
		m.loading = true
		m.status = "Deleting…"
		return m, m.removeCmd(id)
	case "n", "N", "esc":
		m.pending = ""
		m.status = "Delete cancelled."
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.ctrl.CancelEdit()
		m.mode = modeList
		m.clearInputs()
		m.status = "Cancelled."
		return m, nil

	case "enter":
		if m.focus < fieldCount-1 {
			return m.focusField(m.focus + 1)
		}
		m.ctrl.SetDraft(model.Draft{
			Title:       m.inputs[fieldTitle].Value(),
			Description: m.inputs[fieldDescription].Value(),
			DueDate:     m.inputs[fieldDueDate].Value(),
			Email:       m.inputs[fieldEmail].Value(),
		})
		m.loading = true
		m.status = "Saving…"
		return m, m.submitCmd()

	case "tab", "down":
		return m.focusField((m.focus + 1) % fieldCount)

	case "shift+tab", "up":
		return m.focusField((m.focus + fieldCount - 1) % fieldCount)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) enterForm() {
	m.mode = modeForm
	draft := m.ctrl.Draft()
	m.inputs[fieldTitle].SetValue(draft.Title)
	m.inputs[fieldDescription].SetValue(draft.Description)
	m.inputs[fieldDueDate].SetValue(draft.DueDate)
	m.inputs[fieldEmail].SetValue(draft.Email)
	m.focus = fieldTitle
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.inputs[fieldTitle].Focus()
}

func (m Model) focusField(idx int) (tea.Model, tea.Cmd) {
	m.inputs[m.focus].Blur()
	m.focus = idx
	return m, m.inputs[m.focus].Focus()
}

func (m *Model) clearInputs() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.focus = fieldTitle
}

func (m Model) refreshCmd() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		return refreshedMsg{err: ctrl.Refresh(ctx)}
	}
}

func (m Model) submitCmd() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		return submittedMsg{err: ctrl.Submit(ctx)}
	}
}

func (m Model) removeCmd(id string) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		// The y/n prompt above is the user's confirmation.
		return removedMsg{err: ctrl.Remove(ctx, id, true)}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(clockTick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func clampCursor(cursor, length int) int {
	if length == 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

func errText(err error) string {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Msg
	}
	return strings.TrimSpace(err.Error())
}
