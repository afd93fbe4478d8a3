package models

import (
	"strings"
	"time"
)

// Status is the kanban column a task sits in.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Statuses lists the board columns in display order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

// Valid reports whether s is one of the board columns.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Label is the human readable column name ("In progress").
func (s Status) Label() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	}
	return string(s)
}

// ParseStatus normalizes raw input; empty input yields the default status.
func ParseStatus(raw string) (Status, bool) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if s == "" {
		return StatusTodo, true
	}
	return s, s.Valid()
}

// Priority orders tasks inside a kanban column.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists priorities from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func (p Priority) Label() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	}
	return string(p)
}

// ParsePriority normalizes raw input; empty input yields medium.
func ParsePriority(raw string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if p == "" {
		return PriorityMedium, true
	}
	return p, p.Valid()
}

// Project groups related tasks.
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectSummary is a project together with the number of tasks it holds.
type ProjectSummary struct {
	Project
	TaskCount int `json:"task_count"`
}

// Task is a single card on the board.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	AssignedTo  string     `json:"assigned_to"`
	ProjectID   *int64     `json:"project_id"`
	ProjectName string     `json:"project_name,omitempty"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Overdue reports whether the task is past its due date and still open.
func (t Task) Overdue(now time.Time) bool {
	if t.DueDate == nil || t.Status == StatusDone {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	due := time.Date(t.DueDate.Year(), t.DueDate.Month(), t.DueDate.Day(), 0, 0, 0, 0, time.UTC)
	return due.Before(today)
}

// TaskInput carries the editable task fields for create and full update.
type TaskInput struct {
	Title       string
	Description string
	Status      Status
	Priority    Priority
	AssignedTo  string
	ProjectID   *int64
	DueDate     *time.Time
}

// TaskFilter selects tasks; zero values are ignored.
type TaskFilter struct {
	Status    Status
	Priority  Priority
	ProjectID *int64
}

// TaskStats are the counters shown on the dashboard.
type TaskStats struct {
	Total      int `json:"total_tasks"`
	Todo       int `json:"todo_count"`
	InProgress int `json:"in_progress_count"`
	Done       int `json:"done_count"`
	Overdue    int `json:"overdue_count"`
	High       int `json:"high_priority_count"`
	Medium     int `json:"medium_priority_count"`
	Low        int `json:"low_priority_count"`
}

// Summary combines task counters with the project total.
type Summary struct {
	TaskStats
	TotalProjects int       `json:"total_projects"`
	GeneratedAt   time.Time `json:"generated_at"`
}
