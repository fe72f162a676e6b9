package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"studyplan/internal/engine"
	"studyplan/internal/storage"
	"studyplan/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	stats  engine.Stats
	weekly float64
	tasks  []storage.Task
	goals  []storage.Goal

	selected int

	lastLog string
	loading bool
}

type loadedMsg struct {
	stats  engine.Stats
	weekly float64
	tasks  []storage.Task
	goals  []storage.Goal
}

type toggledMsg struct {
	task *storage.Task
	err  error
}

type deletedMsg struct {
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{
			stats:  m.svc.DashboardStats(),
			weekly: m.svc.WeeklyProgress(),
			tasks:  m.svc.SortedTasks(),
			goals:  m.svc.SortedGoals(),
		}
	}
}

func (m boardModel) toggleCmd(id string) tea.Cmd {
	return func() tea.Msg {
		task, err := m.svc.ToggleTask(m.ctx, id)
		return toggledMsg{task: task, err: err}
	}
}

func (m boardModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{err: m.svc.DeleteTask(m.ctx, id)}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.stats = msg.stats
		m.weekly = msg.weekly
		m.tasks = msg.tasks
		m.goals = msg.goals
		if m.selected >= len(m.tasks) {
			m.selected = len(m.tasks) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case toggledMsg:
		if msg.err != nil && msg.task == nil {
			m.lastLog = "Toggle failed: " + msg.err.Error()
			return m, nil
		}
		if msg.err != nil {
			m.lastLog = "Change not saved: " + msg.err.Error()
		} else if msg.task.Completed {
			m.lastLog = "Completed: " + msg.task.Title
		} else {
			m.lastLog = "Back to pending: " + msg.task.Title
		}
		return m, m.loadCmd()
	case deletedMsg:
		if msg.err != nil {
			m.lastLog = "Change not saved: " + msg.err.Error()
		} else {
			m.lastLog = "Task removed."
		}
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.tasks)-1 {
				m.selected++
			}
			return m, nil
		case "enter", " ":
			if m.selected < 0 || m.selected >= len(m.tasks) {
				return m, nil
			}
			t := m.tasks[m.selected]
			m.lastLog = "Toggling " + t.Title + "…"
			return m, m.toggleCmd(t.ID)
		case "d":
			if m.selected < 0 || m.selected >= len(m.tasks) {
				return m, nil
			}
			t := m.tasks[m.selected]
			m.lastLog = "Removing " + t.Title + "…"
			return m, m.deleteCmd(t.ID)
		}
	}
	return m, nil
}

func (m boardModel) View() string {
	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	// Simple 2-column layout.
	leftW := 28
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.loading {
		return "Studyplan — loading…"
	}
	return fmt.Sprintf("Studyplan | %d tasks (%d done, %d pending) | streak %d | week %s",
		m.stats.Total, m.stats.Completed, m.stats.Pending, m.stats.Streak, progressBar(int(m.weekly), 100, 20))
}

func (m boardModel) renderSidebar() string {
	lines := []string{"Goals"}
	if len(m.goals) == 0 {
		lines = append(lines, "(none)")
	}
	for _, g := range m.goals {
		pct := engine.GoalProgressPercent(g)
		lines = append(lines, fmt.Sprintf("- %s %s", truncate(g.Title, 14), progressBar(int(pct), 100, 8)))
	}
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- enter/space: toggle")
	lines = append(lines, "- d: delete")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	var out []string
	out = append(out, "Today")
	today := engine.DailyTimeline(m.tasks, time.Now())
	if len(today) == 0 {
		out = append(out, "(nothing due today)")
	} else {
		for _, t := range today {
			slot := "all day"
			if t.DueTime != "" {
				slot = t.DueTime
			}
			out = append(out, fmt.Sprintf("- %s %s %s", slot, ui.DoneIcon(t.Completed), t.Title))
		}
	}
	out = append(out, "")
	out = append(out, "All tasks")

	if len(m.tasks) == 0 {
		out = append(out, "(empty)")
		return strings.Join(out, "\n")
	}
	for i, t := range m.tasks {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		due := t.DueDate
		if t.DueTime != "" {
			due += " " + t.DueTime
		}
		out = append(out, fmt.Sprintf("%s%s %s [%s] %s %s", cursor, ui.DoneIcon(t.Completed), t.Title, t.Subject, due, t.Priority))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
