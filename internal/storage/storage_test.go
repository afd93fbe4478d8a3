package storage

import (
	"context"
	"path/filepath"
	"testing"

	"taskboard/internal/config"
	"taskboard/internal/logging"
)

// newTestDB opens an isolated sqlite database with the schema applied and no sample rows.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db := openTestDB(t, filepath.Join(t.TempDir(), "taskboard.db"))
	if err := db.EnsureSchema(context.Background(), false); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return db
}

func openTestDB(t *testing.T, path string) *DB {
	t.Helper()
	cfg := config.Config{DBType: config.DBTypeSQLite, DBPath: path}
	db, err := Open(context.Background(), cfg, logging.Discard())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRebind(t *testing.T) {
	in := `SELECT * FROM tasks WHERE status = ? AND priority = ? LIMIT ?`
	if got := sqliteDialect.rebind(in); got != in {
		t.Fatalf("sqlite must keep ? placeholders, got %s", got)
	}
	want := `SELECT * FROM tasks WHERE status = $1 AND priority = $2 LIMIT $3`
	if got := postgresDialect.rebind(in); got != want {
		t.Fatalf("postgres rebind:\n got: %s\nwant: %s", got, want)
	}
}

func TestOpenRejectsInvalidConfig(t *testing.T) {
	_, err := Open(context.Background(), config.Config{DBType: "sqlite"}, logging.Discard())
	if err == nil {
		t.Fatalf("expected error for empty sqlite path")
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "  plain  ", want: "plain"},
		{in: "<b>bold</b> move", want: "bold move"},
		{in: "Tom & Jerry", want: "Tom & Jerry"},
		{in: `<script>alert("x")</script>safe`, want: "safe"},
	}
	for _, tt := range tests {
		if got := cleanText(tt.in); got != tt.want {
			t.Fatalf("cleanText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
