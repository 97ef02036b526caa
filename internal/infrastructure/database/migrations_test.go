package database

import (
	"context"
	"testing"
)

func TestParseMigrationFilename(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		wantVersion string
		wantDesc    string
		wantOK      bool
	}{
		{
			name:        "valid migration",
			filename:    "0001_journal.sql",
			wantVersion: "0001",
			wantDesc:    "journal",
			wantOK:      true,
		},
		{
			name:        "multi word description",
			filename:    "0002_add_event_index.sql",
			wantVersion: "0002",
			wantDesc:    "add_event_index",
			wantOK:      true,
		},
		{
			name:     "not sql",
			filename: "0001_journal.txt",
			wantOK:   false,
		},
		{
			name:     "no version separator",
			filename: "journal.sql",
			wantOK:   false,
		},
		{
			name:     "empty description",
			filename: "0001_.sql",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version, desc, ok := parseMigrationFilename(tt.filename)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !tt.wantOK {
				return
			}
			if version != tt.wantVersion {
				t.Errorf("version = %q, want %q", version, tt.wantVersion)
			}
			if desc != tt.wantDesc {
				t.Errorf("description = %q, want %q", desc, tt.wantDesc)
			}
		})
	}
}

func TestMigrate(t *testing.T) {
	db, err := Open(testConfig(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}

	// The journal table should now exist.
	var name string
	err = db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type='table' AND name='ir_events'",
	).Scan(&name)
	if err != nil {
		t.Fatalf("ir_events table not found after migration: %v", err)
	}

	// Applying again is a no-op.
	if err := db.Migrate(ctx); err != nil {
		t.Errorf("second Migrate failed: %v", err)
	}

	var count int
	err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	if err != nil {
		t.Fatalf("counting applied migrations: %v", err)
	}
	if count == 0 {
		t.Error("no migrations recorded in schema_migrations")
	}
}
