package view

import (
	"html/template"
	"time"
	"unicode/utf8"

	"taskboard/internal/models"
)

const ellipsis = "..."

// Card description limits.
const (
	TaskDescriptionLimit    = 100
	ProjectDescriptionLimit = 150
)

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"truncate":      Truncate,
		"statusBadge":   StatusBadge,
		"priorityBadge": PriorityBadge,
		"date":          formatDate,
		"dateInput":     formatDateInput,
		"plural":        plural,
		"sameID":        sameID,
		"statuses":      func() []models.Status { return models.Statuses },
		"priorities":    func() []models.Priority { return models.Priorities },
		"overdue": func(t models.Task) bool {
			return t.Overdue(r.now())
		},
		"taskLimit":    func() int { return TaskDescriptionLimit },
		"projectLimit": func() int { return ProjectDescriptionLimit },
	}
}

// Truncate shortens s to at most n runes, appending an ellipsis only when it cut.
func Truncate(n int, s string) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + ellipsis
}

// StatusBadge maps a status to its Bootstrap badge colour.
func StatusBadge(s models.Status) string {
	switch s {
	case models.StatusDone:
		return "success"
	case models.StatusInProgress:
		return "info"
	default:
		return "warning"
	}
}

// PriorityBadge maps a priority to its Bootstrap badge colour.
func PriorityBadge(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return "danger"
	case models.PriorityMedium:
		return "warning"
	default:
		return "secondary"
	}
}

func formatDate(v any) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format("Jan 2, 2006")
	case *time.Time:
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Format("Jan 2, 2006")
	}
	return ""
}

// formatDateInput renders the value of an <input type="date">.
func formatDateInput(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func plural(n int, singular, many string) string {
	if n == 1 {
		return singular
	}
	return many
}

func sameID(a *int64, b int64) bool {
	return a != nil && *a == b
}

// Column is one kanban column.
type Column struct {
	Status models.Status
	Label  string
	Tasks  []models.Task
}

// KanbanColumns orders a status grouping into the three board columns.
func KanbanColumns(board map[models.Status][]models.Task) []Column {
	cols := make([]Column, 0, len(models.Statuses))
	for _, s := range models.Statuses {
		cols = append(cols, Column{Status: s, Label: s.Label(), Tasks: board[s]})
	}
	return cols
}

// StatsCards feeds the dashboard counters. Trigger is the htmx polling trigger the
// swapped element carries.
type StatsCards struct {
	models.Summary
	Trigger string
}

// Polling triggers for the stats panel: the full page also fetches once on load,
// the swapped fragment only keeps polling.
const (
	StatsTriggerPage     = "load, every 30s"
	StatsTriggerFragment = "every 30s"
)
