package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"taskboard/internal/config"
	"taskboard/internal/models"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	cmd := NewRootCmd(config.Config{DBType: config.DBTypeSQLite, DBPath: "unused.db", Seed: true, LogLevel: "error"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("taskboard %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestMigrateListsSteps(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cli.db")

	out := run(t, "migrate", "--db", dbPath)
	if !strings.Contains(out, "create_projects_table") || !strings.Contains(out, "4 migrations applied (sqlite)") {
		t.Fatalf("unexpected migrate output:\n%s", out)
	}

	out = run(t, "migrate", "--db", dbPath)
	if !strings.Contains(out, "4 migrations applied") {
		t.Fatalf("second run should be a no-op:\n%s", out)
	}
}

func TestMigrateWithoutSeed(t *testing.T) {
	out := run(t, "migrate", "--db", filepath.Join(t.TempDir(), "cli.db"), "--seed=false")
	if strings.Contains(out, "add_sample_data") || !strings.Contains(out, "3 migrations applied") {
		t.Fatalf("seed step should be skipped:\n%s", out)
	}
}

func TestStatsJSON(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cli.db")
	run(t, "migrate", "--db", dbPath)

	out := run(t, "stats", "--db", dbPath, "--json")
	var got models.Summary
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got.TotalProjects != 3 || got.Total != 5 {
		t.Fatalf("expected seeded counts, got %+v", got)
	}
}

func TestRejectsUnknownDatabaseType(t *testing.T) {
	cmd := NewRootCmd(config.Config{DBType: config.DBTypeSQLite, DBPath: "x.db", LogLevel: "error"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"stats", "--db-type", "oracle"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected an error for an unknown database type")
	}
}
