package engine

import "strings"

// DateLayout is the calendar-date form used everywhere: two dates are the
// same day iff their formatted strings match.
const DateLayout = "2006-01-02"

// TimeLayout is the optional time-of-day form. 24-hour HH:MM strings compare
// correctly as text, which the timeline sort relies on.
const TimeLayout = "15:04"

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Rank orders priorities for sorting: high=3, medium=2, low=1.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// DefaultPriority is used when user input is missing/invalid.
const DefaultPriority = PriorityMedium

// ParseStoredPriority normalizes a persisted priority string, falling back to
// the default for anything unrecognized.
func ParseStoredPriority(s string) Priority {
	p := Priority(strings.TrimSpace(strings.ToLower(s)))
	if p.IsValid() {
		return p
	}
	return DefaultPriority
}
