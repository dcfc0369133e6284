package model

import "time"

// Task is a single tracked item as the remote store returns it. The id is
// assigned by the store on creation and never changes. DueDate is always
// an absolute UTC instant; Timezone records the zone the date was authored
// in so any viewer can redisplay it correctly.
type Task struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	Email       string    `json:"email"`
	Timezone    string    `json:"timezone"`
}

// TaskFields carries the user-editable fields of a create or update call.
type TaskFields struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	Email       string    `json:"email"`
	Timezone    string    `json:"timezone"`
}
