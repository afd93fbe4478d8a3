package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskboard/internal/models"
)

type fakeProjects struct {
	n   int
	err error
}

func (f fakeProjects) Count(context.Context) (int, error) { return f.n, f.err }

type fakeTasks struct {
	stats models.TaskStats
	err   error
	seen  time.Time
}

func (f *fakeTasks) Stats(_ context.Context, today time.Time) (models.TaskStats, error) {
	f.seen = today
	return f.stats, f.err
}

func TestSummaryCombinesSources(t *testing.T) {
	clock := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	tasks := &fakeTasks{stats: models.TaskStats{Total: 4, Todo: 2, Done: 2, Overdue: 1, High: 3, Low: 1}}

	agg := New(fakeProjects{n: 2}, tasks).WithClock(func() time.Time { return clock })
	got, err := agg.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if got.TotalProjects != 2 || got.Total != 4 || got.Overdue != 1 || got.High != 3 {
		t.Fatalf("unexpected summary: %+v", got)
	}
	if !tasks.seen.Equal(clock) {
		t.Fatalf("task stats should use the aggregator clock, got %v", tasks.seen)
	}
	if !got.GeneratedAt.Equal(clock) {
		t.Fatalf("unexpected generated_at %v", got.GeneratedAt)
	}
}

func TestSummaryZeroRows(t *testing.T) {
	got, err := New(fakeProjects{}, &fakeTasks{}).Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if got.TaskStats != (models.TaskStats{}) || got.TotalProjects != 0 {
		t.Fatalf("expected zeros, got %+v", got)
	}
}

func TestSummaryPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")

	if _, err := New(fakeProjects{err: boom}, &fakeTasks{}).Summary(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected project error, got %v", err)
	}
	if _, err := New(fakeProjects{}, &fakeTasks{err: boom}).Summary(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected task error, got %v", err)
	}
}
