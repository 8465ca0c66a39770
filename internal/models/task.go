package models

import "time"

// Task is the document stored in the owner's "tasks:<uid>" partition.
// The owner is implied by the partition itself and never embedded here.
type Task struct {
	TaskID      string    `json:"task_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      *string   `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
