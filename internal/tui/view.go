package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"task-tracker/internal/duedate"
	"task-tracker/internal/service"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	zoneStyle   = lipgloss.NewStyle().Faint(true)
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
	dueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("178"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("178")).
			Padding(0, 1)
	labelStyle = lipgloss.NewStyle().Width(14).Faint(true)
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Task Tracker"))
	b.WriteString("  ")
	b.WriteString(zoneStyle.Render("zone: " + m.ctrl.Zone()))
	b.WriteString("\n\n")

	if m.mode == modeForm {
		b.WriteString(m.viewForm())
	} else {
		b.WriteString(m.viewReminders())
		b.WriteString(m.viewTasks())
	}

	b.WriteString("\n")
	if strings.HasPrefix(m.status, "⚠") {
		b.WriteString(errStyle.Render(m.status))
	} else {
		b.WriteString(dimStyle.Render(m.status))
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewForm() string {
	var b strings.Builder

	title := "New task"
	if m.ctrl.Editing() != nil {
		title = "Edit task"
	}
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")

	labels := [fieldCount]string{"Title", "Description", "Due date", "Email"}
	for i, input := range m.inputs {
		b.WriteString(labelStyle.Render(labels[i]))
		b.WriteString(input.View())
		b.WriteString("\n")
	}

	b.WriteString(dimStyle.Render("enter next/save · tab cycle · esc cancel"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewReminders() string {
	due := service.DueSoon(m.ctrl.Tasks(), m.now)
	if len(due) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Due within 24 hours\n")
	for _, task := range due {
		zone := task.Timezone
		if zone == "" {
			zone = m.ctrl.Zone()
		}
		b.WriteString(fmt.Sprintf("%s\n%s · %s\n",
			task.Title,
			dueStyle.Render(duedate.ToDisplayString(task.DueDate, zone)),
			duedate.RelativeDescription(task.DueDate, m.now)))
	}

	return panelStyle.Render(strings.TrimSuffix(b.String(), "\n")) + "\n\n"
}

func (m Model) viewTasks() string {
	tasks := m.ctrl.Tasks()
	if len(tasks) == 0 {
		if m.ctrl.State() == service.StateLoading {
			return dimStyle.Render("Loading…") + "\n"
		}
		return dimStyle.Render("No tasks yet. Press a to add one.") + "\n"
	}

	var b strings.Builder
	for i, task := range tasks {
		zone := task.Timezone
		if zone == "" {
			zone = m.ctrl.Zone()
		}

		line := fmt.Sprintf("%s  %s", task.Title, dueStyle.Render("due "+duedate.ToDisplayString(task.DueDate, zone)))
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("› " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("    " + task.Description))
		b.WriteString("\n")
	}

	return b.String()
}
