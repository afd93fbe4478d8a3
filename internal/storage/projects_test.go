package storage

import (
	"context"
	"errors"
	"testing"

	"taskboard/internal/models"
)

func TestProjectCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(newTestDB(t))

	if _, err := repo.Create(ctx, "   ", "x"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}

	id, err := repo.Create(ctx, "<i>Launch</i>", "Ship v1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	p, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Name != "Launch" || p.Description != "Ship v1" {
		t.Fatalf("unexpected project: %+v", p)
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not set: %+v", p)
	}

	if _, err := repo.GetByID(ctx, id+100); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestProjectListOrders(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(newTestDB(t))

	for _, name := range []string{"beta", "Alpha", "gamma"} {
		if _, err := repo.Create(ctx, name, ""); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	newest, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got := names(newest); got != "gamma,Alpha,beta" {
		t.Fatalf("expected newest first, got %s", got)
	}

	byName, err := repo.ListByName(ctx)
	if err != nil {
		t.Fatalf("list by name: %v", err)
	}
	if got := names(byName); got != "Alpha,beta,gamma" {
		t.Fatalf("expected alphabetical, got %s", got)
	}
}

func TestProjectTaskCounts(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	projects := NewProjectRepository(db)
	tasks := NewTaskRepository(db)

	busy, _ := projects.Create(ctx, "Busy", "")
	if _, err := projects.Create(ctx, "Idle", ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	for _, title := range []string{"one", "two"} {
		if _, err := tasks.Create(ctx, models.TaskInput{Title: title, ProjectID: &busy}); err != nil {
			t.Fatalf("create task: %v", err)
		}
	}

	summaries, err := projects.ListWithTaskCounts(ctx)
	if err != nil {
		t.Fatalf("list counts: %v", err)
	}
	counts := map[string]int{}
	for _, s := range summaries {
		counts[s.Name] = s.TaskCount
	}
	if len(counts) != 2 || counts["Busy"] != 2 || counts["Idle"] != 0 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestProjectUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(newTestDB(t))

	id, _ := repo.Create(ctx, "Old", "")
	ok, err := repo.Update(ctx, id, "New", "desc")
	if err != nil || !ok {
		t.Fatalf("update: ok=%v err=%v", ok, err)
	}
	p, _ := repo.GetByID(ctx, id)
	if p.Name != "New" || p.Description != "desc" {
		t.Fatalf("update not applied: %+v", p)
	}

	ok, err = repo.Update(ctx, id+1, "Ghost", "")
	if err != nil || ok {
		t.Fatalf("update of missing project: ok=%v err=%v", ok, err)
	}
	if _, err := repo.Update(ctx, id, "", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestProjectDeleteCascadesToTasks(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	projects := NewProjectRepository(db)
	tasks := NewTaskRepository(db)

	doomed, _ := projects.Create(ctx, "Doomed", "")
	kept, _ := projects.Create(ctx, "Kept", "")

	var doomedTasks []int64
	for _, title := range []string{"a", "b"} {
		id, err := tasks.Create(ctx, models.TaskInput{Title: title, ProjectID: &doomed})
		if err != nil {
			t.Fatalf("create task: %v", err)
		}
		doomedTasks = append(doomedTasks, id)
	}
	survivor, _ := tasks.Create(ctx, models.TaskInput{Title: "c", ProjectID: &kept})
	loose, _ := tasks.Create(ctx, models.TaskInput{Title: "d"})

	ok, err := projects.Delete(ctx, doomed)
	if err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	for _, id := range doomedTasks {
		if _, err := tasks.GetByID(ctx, id); !errors.Is(err, ErrNotFound) {
			t.Fatalf("task %d should be gone, got %v", id, err)
		}
	}
	for _, id := range []int64{survivor, loose} {
		if _, err := tasks.GetByID(ctx, id); err != nil {
			t.Fatalf("task %d should survive: %v", id, err)
		}
	}

	ok, err = projects.Delete(ctx, doomed)
	if err != nil || ok {
		t.Fatalf("second delete: ok=%v err=%v", ok, err)
	}
}

func names(ps []models.Project) string {
	out := ""
	for i, p := range ps {
		if i > 0 {
			out += ","
		}
		out += p.Name
	}
	return out
}
