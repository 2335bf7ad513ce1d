package models

import (
	"time"
)

// Task represents a homework item on the user's list
type Task struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Subject     Subject   `gorm:"size:16;index" json:"subject"`
	Priority    Priority  `gorm:"size:8;index" json:"priority"`
	Deadline    time.Time `gorm:"not null;index" json:"deadline"` // calendar date, local midnight
	Completed   bool      `json:"completed"`
	Source      Source    `gorm:"size:8" json:"source"`
}

// Feedback records whether the user took an optimizer suggestion for a task
type Feedback struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	TaskID   string `gorm:"size:36;index;not null" json:"task_id"`
	Accepted bool   `json:"accepted"`
	Choice   string `json:"choice"` // JSON snapshot of what the user kept
}

// Status returns a short status label for display
func (t Task) Status() string {
	if t.Completed {
		return "done"
	}
	return "todo"
}
