package models

import (
	"testing"
	"time"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want Status
		ok   bool
	}{
		{raw: "", want: StatusTodo, ok: true},
		{raw: " Done ", want: StatusDone, ok: true},
		{raw: "in_progress", want: StatusInProgress, ok: true},
		{raw: "archived", want: "archived", ok: false},
	}
	for _, tt := range tests {
		got, ok := ParseStatus(tt.raw)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("ParseStatus(%q) = %q,%v want %q,%v", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParsePriority(t *testing.T) {
	if p, ok := ParsePriority(""); p != PriorityMedium || !ok {
		t.Fatalf("empty priority should default to medium, got %q %v", p, ok)
	}
	if _, ok := ParsePriority("urgent"); ok {
		t.Fatalf("urgent must be rejected")
	}
}

func TestTaskOverdue(t *testing.T) {
	now := time.Date(2026, 10, 14, 15, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	today := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{name: "no due date", task: Task{Status: StatusTodo}},
		{name: "past and open", task: Task{Status: StatusTodo, DueDate: &yesterday}, want: true},
		{name: "past but done", task: Task{Status: StatusDone, DueDate: &yesterday}},
		{name: "due today", task: Task{Status: StatusInProgress, DueDate: &today}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.Overdue(now); got != tt.want {
				t.Fatalf("Overdue() = %v, want %v", got, tt.want)
			}
		})
	}
}
