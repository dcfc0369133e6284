package service

import (
	"fmt"
	"strings"
	"time"

	"task-tracker/internal/duedate"
	"task-tracker/internal/model"
)

// ReminderWindow is the fixed look-ahead interval for the due-soon view.
const ReminderWindow = 24 * time.Hour

// DueSoon returns the tasks whose due date falls inside the closed
// interval [now, now+24h], preserving collection order. It is a pure
// filter recomputed on every call, so membership follows the clock even
// when the collection has not changed: a task can enter or leave the
// window purely because time advanced.
func DueSoon(tasks []model.Task, now time.Time) []model.Task {
	end := now.Add(ReminderWindow)

	var due []model.Task
	for _, task := range tasks {
		if task.DueDate.Before(now) || task.DueDate.After(end) {
			continue
		}
		due = append(due, task)
	}
	return due
}

// ReminderService renders the due-soon view as plain text for the watch
// mode and the interactive reminder panel.
type ReminderService struct {
	zone string
}

func NewReminderService(zone string) *ReminderService {
	return &ReminderService{zone: zone}
}

// Summary builds a human-readable report of tasks due within the window.
// Due dates are displayed in the zone each task was authored in, falling
// back to the session zone for records that carry none.
func (s *ReminderService) Summary(tasks []model.Task, now time.Time) string {
	due := DueSoon(tasks, now)
	if len(due) == 0 {
		return "No tasks due in the next 24 hours."
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("%d task(s) due in the next 24 hours:\n", len(due)))
	for _, task := range due {
		zone := task.Timezone
		if zone == "" {
			zone = s.zone
		}
		builder.WriteString(fmt.Sprintf("⏳ %s — due %s (%s)\n",
			strings.TrimSpace(task.Title),
			duedate.ToDisplayString(task.DueDate, zone),
			duedate.RelativeDescription(task.DueDate, now)))
		if desc := strings.TrimSpace(task.Description); desc != "" {
			builder.WriteString(fmt.Sprintf("   📝 %s\n", desc))
		}
	}

	return strings.TrimSpace(builder.String())
}
