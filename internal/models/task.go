package models

import "time"

type Task struct {
	ID          string
	UserID      string
	Name        string
	Description string
	Date        string
	CreatedAt   time.Time
}

// TaskPage is one window over the tasks matching a filter.
// Total and Pages describe the whole filtered set, not just Tasks.
type TaskPage struct {
	Tasks []*Task
	Total int64
	Page  int
	Pages int
}
