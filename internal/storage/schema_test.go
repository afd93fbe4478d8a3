package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestEnsureSchemaSeedsOnce(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "seed.db")
	db := openTestDB(t, path)

	if err := db.EnsureSchema(ctx, true); err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	if err := db.EnsureSchema(ctx, true); err != nil {
		t.Fatalf("second ensure: %v", err)
	}

	projects := NewProjectRepository(db)
	n, err := projects.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != len(seedProjects) {
		t.Fatalf("expected %d seeded projects, got %d", len(seedProjects), n)
	}

	tasks, err := NewTaskRepository(db).List(ctx)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != len(seedTasks) {
		t.Fatalf("expected %d seeded tasks, got %d", len(seedTasks), len(tasks))
	}
	for _, task := range tasks {
		if task.ProjectID == nil || task.ProjectName == "" {
			t.Fatalf("seeded task %q is not linked to a project", task.Title)
		}
	}

	stats, err := NewTaskRepository(db).Stats(ctx, time.Now())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Overdue != 1 {
		t.Fatalf("expected one overdue seeded task, got %d", stats.Overdue)
	}

	applied, err := db.AppliedMigrations(ctx)
	if err != nil {
		t.Fatalf("applied migrations: %v", err)
	}
	if len(applied) != len(migrationSteps) {
		t.Fatalf("expected %d recorded steps, got %+v", len(migrationSteps), applied)
	}
}

func TestEnsureSchemaWithoutSeed(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	n, err := NewProjectRepository(db).Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected empty database, got %d projects", n)
	}

	applied, err := db.AppliedMigrations(ctx)
	if err != nil {
		t.Fatalf("applied migrations: %v", err)
	}
	if len(applied) != len(migrationSteps)-1 {
		t.Fatalf("sample data step must stay unrecorded, got %+v", applied)
	}
}

func TestSeedSkippedWhenProjectsExist(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	if _, err := NewProjectRepository(db).Create(ctx, "Mine", ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := db.EnsureSchema(ctx, true); err != nil {
		t.Fatalf("ensure with seed: %v", err)
	}

	n, err := NewProjectRepository(db).Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("existing data must block seeding, got %d projects", n)
	}
}
