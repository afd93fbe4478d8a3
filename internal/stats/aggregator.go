package stats

import (
	"context"
	"fmt"
	"time"

	"taskboard/internal/models"
)

// ProjectCounter reports how many projects exist.
type ProjectCounter interface {
	Count(ctx context.Context) (int, error)
}

// TaskStatsSource computes task counters as of a given day.
type TaskStatsSource interface {
	Stats(ctx context.Context, today time.Time) (models.TaskStats, error)
}

// Aggregator builds the dashboard summary.
type Aggregator struct {
	projects ProjectCounter
	tasks    TaskStatsSource
	now      func() time.Time
}

// New returns an Aggregator using the wall clock.
func New(projects ProjectCounter, tasks TaskStatsSource) *Aggregator {
	return &Aggregator{projects: projects, tasks: tasks, now: time.Now}
}

// WithClock overrides the time source.
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

// Summary combines project and task counts. It never writes.
func (a *Aggregator) Summary(ctx context.Context) (models.Summary, error) {
	now := a.now()

	taskStats, err := a.tasks.Stats(ctx, now)
	if err != nil {
		return models.Summary{}, fmt.Errorf("summary: %w", err)
	}
	projectCount, err := a.projects.Count(ctx)
	if err != nil {
		return models.Summary{}, fmt.Errorf("summary: %w", err)
	}

	return models.Summary{
		TaskStats:     taskStats,
		TotalProjects: projectCount,
		GeneratedAt:   now.UTC(),
	}, nil
}
