package engine

import (
	"sort"
	"time"

	"studyplan/internal/storage"
)

// Stats is the dashboard aggregate.
type Stats struct {
	Total     int
	Completed int
	Pending   int
	Streak    int
}

// DateKey formats t as the calendar date it falls on.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// daysBetween returns to-from in whole calendar days. Both arguments are
// YYYY-MM-DD keys; parsing them at UTC midnight keeps the division exact.
func daysBetween(from, to string) (int, bool) {
	a, err := time.ParseInLocation(DateLayout, from, time.UTC)
	if err != nil {
		return 0, false
	}
	b, err := time.ParseInLocation(DateLayout, to, time.UTC)
	if err != nil {
		return 0, false
	}
	return int(b.Sub(a).Hours() / 24), true
}

// TasksForDate returns the tasks due on the calendar date of date, preserving
// collection order.
func TasksForDate(tasks []storage.Task, date time.Time) []storage.Task {
	key := DateKey(date)
	var out []storage.Task
	for _, t := range tasks {
		if t.DueDate == key {
			out = append(out, t)
		}
	}
	return out
}

// DashboardStats computes the totals and the streak as of today.
func DashboardStats(tasks []storage.Task, today time.Time) Stats {
	st := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			st.Completed++
		}
	}
	st.Pending = st.Total - st.Completed
	st.Streak = StudyStreak(tasks, today)
	return st
}

// StudyStreak returns the length of the run of consecutive days with at least
// one completion, counting backward from today. Distinct completion days are
// walked in descending order; the chain breaks at the first gap. Multiple
// completions on the same day count once.
func StudyStreak(tasks []storage.Task, today time.Time) int {
	days := map[string]bool{}
	for _, t := range tasks {
		if t.Completed && t.CompletedAt != nil {
			days[DateKey(*t.CompletedAt)] = true
		}
	}
	if len(days) == 0 {
		return 0
	}

	ref := DateKey(today)
	offsets := make([]int, 0, len(days))
	for day := range days {
		if off, ok := daysBetween(day, ref); ok {
			offsets = append(offsets, off)
		}
	}
	// Ascending offsets == days in descending order.
	sort.Ints(offsets)

	streak := 0
	expected := 0
	for _, off := range offsets {
		if off == expected {
			streak++
			expected++
		} else if off > expected {
			break
		}
		// off < expected only happens for completions dated in the
		// future; they never extend a backward-counting streak.
	}
	return streak
}

// WeeklyProgress returns the completed percentage (0-100) of tasks due in the
// current calendar week. The week starts on weekStart and spans 7 days.
func WeeklyProgress(tasks []storage.Task, today time.Time, weekStart time.Weekday) float64 {
	delta := (int(today.Weekday()) - int(weekStart) + 7) % 7
	start := today.AddDate(0, 0, -delta)
	startKey := DateKey(start)
	endKey := DateKey(start.AddDate(0, 0, 6))

	total, completed := 0, 0
	for _, t := range tasks {
		// ISO date strings order the same as the dates they name.
		if t.DueDate >= startKey && t.DueDate <= endKey {
			total++
			if t.Completed {
				completed++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

// SortTasks returns a sorted copy: incomplete before completed, then by due
// date ascending, then by priority descending (high before low).
func SortTasks(tasks []storage.Task) []storage.Task {
	out := append([]storage.Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if ra, rb := completionRank(a.Completed), completionRank(b.Completed); ra != rb {
			return ra < rb
		}
		if a.DueDate != b.DueDate {
			return a.DueDate < b.DueDate
		}
		return ParseStoredPriority(a.Priority).Rank() > ParseStoredPriority(b.Priority).Rank()
	})
	return out
}

// SortGoals returns a sorted copy: incomplete before completed, then by
// target date ascending.
func SortGoals(goals []storage.Goal) []storage.Goal {
	out := append([]storage.Goal(nil), goals...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if ra, rb := completionRank(a.Completed), completionRank(b.Completed); ra != rb {
			return ra < rb
		}
		return a.TargetDate < b.TargetDate
	})
	return out
}

func completionRank(done bool) int {
	if done {
		return 1
	}
	return 0
}

// DailyTimeline returns the tasks for date ordered by time of day; tasks
// without a time sort last, as if due at 23:59.
func DailyTimeline(tasks []storage.Task, date time.Time) []storage.Task {
	out := TasksForDate(tasks, date)
	sort.SliceStable(out, func(i, j int) bool {
		return timelineKey(out[i]) < timelineKey(out[j])
	})
	return out
}

func timelineKey(t storage.Task) string {
	if t.DueTime == "" {
		return "23:59"
	}
	return t.DueTime
}

// GoalProgressPercent returns progress toward the target, capped at 100.
func GoalProgressPercent(g storage.Goal) float64 {
	// TargetValue > 0 is enforced at creation; a non-positive stored value
	// can only mean the goal is trivially met.
	if g.TargetValue <= 0 {
		return 100
	}
	pct := g.CurrentValue / g.TargetValue * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// DaysRemaining returns whole days until the goal's target date. Negative
// means overdue, zero means due today.
func DaysRemaining(g storage.Goal, ref time.Time) int {
	d, ok := daysBetween(DateKey(ref), g.TargetDate)
	if !ok {
		return 0
	}
	return d
}

// OverdueTasks returns incomplete tasks whose due instant has passed. Tasks
// without a time of day become overdue at the end of their due date.
func OverdueTasks(tasks []storage.Task, ref time.Time) []storage.Task {
	var out []storage.Task
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		due, err := time.ParseInLocation(DateLayout+" "+TimeLayout, t.DueDate+" "+timelineKey(t), ref.Location())
		if err != nil {
			continue
		}
		if due.Before(ref) {
			out = append(out, t)
		}
	}
	return out
}

// Service wrappers over the session collections. Each returns a fresh value
// computed on demand; callers decide when to re-derive.

func (s *Service) DashboardStats() Stats {
	return DashboardStats(s.Tasks(), s.now())
}

func (s *Service) StudyStreak() int {
	return StudyStreak(s.Tasks(), s.now())
}

func (s *Service) WeeklyProgress() float64 {
	return WeeklyProgress(s.Tasks(), s.now(), s.weekStart())
}

func (s *Service) TasksForDate(date time.Time) []storage.Task {
	return TasksForDate(s.Tasks(), date)
}

func (s *Service) DailyTimeline(date time.Time) []storage.Task {
	return DailyTimeline(s.Tasks(), date)
}

func (s *Service) SortedTasks() []storage.Task {
	return SortTasks(s.Tasks())
}

func (s *Service) SortedGoals() []storage.Goal {
	return SortGoals(s.Goals())
}

func (s *Service) Overdue() []storage.Task {
	return OverdueTasks(s.Tasks(), s.now())
}
