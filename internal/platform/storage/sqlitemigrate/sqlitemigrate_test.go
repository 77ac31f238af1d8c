package sqlitemigrate

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func TestApplyRecordsApplied(t *testing.T) {
	db := openTempDB(t)

	migrations := fstest.MapFS{
		"001_slots.sql": &fstest.MapFile{
			Data: []byte("-- +migrate Up\nCREATE TABLE slots(key TEXT PRIMARY KEY);\n-- +migrate Down\nDROP TABLE slots;"),
		},
	}

	if err := Apply(context.Background(), db, migrations, ""); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	if rows := queryInt64(t, db, "SELECT COUNT(*) FROM schema_migrations"); rows != 1 {
		t.Fatalf("expected 1 migration row, got %d", rows)
	}
	if !tableExists(t, db, "slots") {
		t.Fatal("expected applied table to exist")
	}
}

func TestApplySkipsAlreadyApplied(t *testing.T) {
	db := openTempDB(t)

	migrations := fstest.MapFS{
		"001_slots.sql": &fstest.MapFile{
			Data: []byte("-- +migrate Up\nCREATE TABLE slots(key TEXT PRIMARY KEY);"),
		},
	}
	for i := 0; i < 2; i++ {
		if err := Apply(context.Background(), db, migrations, ""); err != nil {
			t.Fatalf("apply run %d: %v", i, err)
		}
	}

	if rows := queryInt64(t, db, "SELECT COUNT(*) FROM schema_migrations"); rows != 1 {
		t.Fatalf("expected single migration row after replay, got %d", rows)
	}
}

func TestApplyDoesNotRecordFailedMigration(t *testing.T) {
	db := openTempDB(t)

	bad := fstest.MapFS{
		"001_slots.sql": &fstest.MapFile{
			Data: []byte("-- +migrate Up\nCREAT table slots(key TEXT);"),
		},
	}
	if err := Apply(context.Background(), db, bad, ""); err == nil {
		t.Fatal("expected bad migration to fail")
	}
	if rows := queryInt64(t, db, "SELECT COUNT(*) FROM schema_migrations"); rows != 0 {
		t.Fatalf("expected failed migration to stay unrecorded, got %d rows", rows)
	}

	good := fstest.MapFS{
		"001_slots.sql": &fstest.MapFile{
			Data: []byte("-- +migrate Up\nCREATE TABLE slots(key TEXT PRIMARY KEY);"),
		},
	}
	if err := Apply(context.Background(), db, good, ""); err != nil {
		t.Fatalf("apply fixed migration: %v", err)
	}
	if rows := queryInt64(t, db, "SELECT COUNT(*) FROM schema_migrations"); rows != 1 {
		t.Fatalf("expected fixed migration to be recorded, got %d rows", rows)
	}
}

func TestApplyRespectsRoot(t *testing.T) {
	db := openTempDB(t)

	migrations := fstest.MapFS{
		"sessions/001_sessions.sql": &fstest.MapFile{
			Data: []byte("-- +migrate Up\nCREATE TABLE session_rows(id TEXT PRIMARY KEY);"),
		},
	}
	if err := Apply(context.Background(), db, migrations, "sessions"); err != nil {
		t.Fatalf("apply migrations with root: %v", err)
	}

	if key := queryString(t, db, "SELECT name FROM schema_migrations LIMIT 1"); key != "sessions/001_sessions.sql" {
		t.Fatalf("expected migration key with root path, got %q", key)
	}
	if !tableExists(t, db, "session_rows") {
		t.Fatal("expected migrated table in root-based migration")
	}
}

func TestApplyHonoursCancelledContext(t *testing.T) {
	db := openTempDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Apply(ctx, db, fstest.MapFS{"001.sql": &fstest.MapFile{Data: []byte("CREATE TABLE x(id INT);")}}, "")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Apply error = %v, want context.Canceled", err)
	}
}

func TestExtractUpMigration(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"no markers", "CREATE TABLE a(id INT);", "CREATE TABLE a(id INT);"},
		{"up only", "-- +migrate Up\nCREATE TABLE a(id INT);", "\nCREATE TABLE a(id INT);"},
		{"up and down", "-- +migrate Up\nA;\n-- +migrate Down\nB;", "\nA;\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractUpMigration(tc.content); got != tc.want {
				t.Fatalf("ExtractUpMigration = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestIsAlreadyExistsError(t *testing.T) {
	if IsAlreadyExistsError(nil) {
		t.Fatal("nil error is not an already-exists error")
	}
	if !IsAlreadyExistsError(errors.New("table slots already exists")) {
		t.Fatal("expected already exists match")
	}
	if IsAlreadyExistsError(errors.New("syntax error")) {
		t.Fatal("unexpected match for syntax error")
	}
}

func openTempDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "migrate.db"))
	if err != nil {
		t.Fatalf("open temp db: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Fatalf("close db: %v", err)
		}
	})
	return db
}

func queryInt64(t *testing.T, db *sql.DB, query string) int64 {
	t.Helper()
	var value int64
	if err := db.QueryRow(query).Scan(&value); err != nil {
		t.Fatalf("query int value: %v", err)
	}
	return value
}

func queryString(t *testing.T, db *sql.DB, query string) string {
	t.Helper()
	var value string
	if err := db.QueryRow(query).Scan(&value); err != nil {
		t.Fatalf("query string value: %v", err)
	}
	return value
}

func tableExists(t *testing.T, db *sql.DB, tableName string) bool {
	t.Helper()
	var name string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = ?", tableName).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		t.Fatalf("check table exists: %v", err)
	}
	return name == tableName
}
