package storage

import "time"

// Task is a single study item with a due date. The JSON tags are the
// persisted blob layout and the import/export format.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Subject     string     `json:"subject"`
	Description string     `json:"description,omitempty"`
	DueDate     string     `json:"dueDate"`           // YYYY-MM-DD
	DueTime     string     `json:"dueTime,omitempty"` // HH:MM, empty means all day
	Priority    string     `json:"priority"`          // high | medium | low
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Goal is a longer-term measurable objective with a numeric target.
// Completed is stored but always recomputed from CurrentValue >= TargetValue.
type Goal struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	Description  string    `json:"description,omitempty"`
	TargetDate   string    `json:"targetDate"` // YYYY-MM-DD
	TargetValue  float64   `json:"targetValue"`
	CurrentValue float64   `json:"currentValue"`
	Unit         string    `json:"unit"`
	Completed    bool      `json:"completed"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Settings struct {
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
	WeekStartsOn  int    `json:"weekStartsOn"` // 0=Sunday .. 6=Saturday
}

func DefaultSettings() Settings {
	return Settings{
		Theme:         "light",
		Notifications: true,
		WeekStartsOn:  1,
	}
}

// Snapshot is a complete export of the session state at a point in time.
// It is both the import/export document and the auto-backup payload.
type Snapshot struct {
	Tasks      []Task    `json:"tasks"`
	Goals      []Goal    `json:"goals"`
	Settings   Settings  `json:"settings"`
	ExportDate time.Time `json:"exportDate"`
	Version    string    `json:"version"`
}
