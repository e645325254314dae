package domain

import "time"

type Task struct {
	ID          int64     `json:"idTask"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	Owner       int64     `json:"owner"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
