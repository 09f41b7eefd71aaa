package audit

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// setupTestDB creates an in-memory SQLite database with the audit_logs schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // test cleanup

	schema := `
		CREATE TABLE audit_logs (
			id TEXT PRIMARY KEY,
			action TEXT NOT NULL,
			user_id TEXT,
			source TEXT NOT NULL DEFAULT 'api',
			details TEXT,
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		) STRICT;
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}

	return db
}

func TestCreate_GeneratesIDAndDefaults(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	entry := &Entry{Action: ActionRegister, UserID: "usr-12345678"}
	if err := repo.Create(ctx, entry); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if !strings.HasPrefix(entry.ID, "aud-") {
		t.Errorf("ID = %q, want aud- prefix", entry.ID)
	}
	if entry.Source != "api" {
		t.Errorf("Source = %q, want %q", entry.Source, "api")
	}
	if entry.CreatedAt.IsZero() {
		t.Error("Create() did not set CreatedAt")
	}
}

func TestCreate_WithDetails(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	entry := &Entry{
		Action:  ActionLoginDenied,
		Details: map[string]any{"email": "a@x.com"},
	}
	if err := repo.Create(ctx, entry); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	result, err := repo.List(ctx, Filter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("List() returned %d entries, want 1", len(result.Entries))
	}

	got := result.Entries[0]
	if got.UserID != "" {
		t.Errorf("UserID = %q, want empty", got.UserID)
	}
	if got.Details["email"] != "a@x.com" {
		t.Errorf("Details[email] = %v, want %q", got.Details["email"], "a@x.com")
	}
}

func TestList_FilterByAction(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	for _, action := range []string{ActionRegister, ActionLogin, ActionLogin} {
		if err := repo.Create(ctx, &Entry{Action: action, UserID: "usr-12345678"}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	result, err := repo.List(ctx, Filter{Action: ActionLogin})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if result.Total != 2 {
		t.Errorf("Total = %d, want 2", result.Total)
	}
	for _, e := range result.Entries {
		if e.Action != ActionLogin {
			t.Errorf("entry action = %q, want %q", e.Action, ActionLogin)
		}
	}
}

func TestList_FilterByUser(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	for _, userID := range []string{"usr-aaaaaaaa", "usr-bbbbbbbb", "usr-aaaaaaaa"} {
		if err := repo.Create(ctx, &Entry{Action: ActionLogin, UserID: userID}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	result, err := repo.List(ctx, Filter{UserID: "usr-aaaaaaaa"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if result.Total != 2 {
		t.Errorf("Total = %d, want 2", result.Total)
	}
}

func TestList_PaginationAndOrdering(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 1, 22, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		entry := &Entry{
			ID:        fmt.Sprintf("aud-%08d", i),
			Action:    ActionLogin,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(ctx, entry); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	result, err := repo.List(ctx, Filter{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if result.Total != 5 {
		t.Errorf("Total = %d, want 5", result.Total)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("List() returned %d entries, want 2", len(result.Entries))
	}
	// Most recent first; offset 1 skips the newest.
	if result.Entries[0].ID != "aud-00000003" {
		t.Errorf("first entry ID = %q, want aud-00000003", result.Entries[0].ID)
	}
	if result.Entries[1].ID != "aud-00000002" {
		t.Errorf("second entry ID = %q, want aud-00000002", result.Entries[1].ID)
	}
}

func TestList_LimitClamping(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	result, err := repo.List(ctx, Filter{Limit: 10000, Offset: -3})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if result.Limit != 200 {
		t.Errorf("Limit = %d, want clamped to 200", result.Limit)
	}
	if result.Offset != 0 {
		t.Errorf("Offset = %d, want clamped to 0", result.Offset)
	}
	if result.Entries == nil {
		t.Error("Entries = nil, want empty slice")
	}
}
