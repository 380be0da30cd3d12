// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"bytes"
	"database/sql"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-pass-guard/internal/logger"
)

func TestMigrate_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	_ = mock // не используем напрямую, goose сам будет ходить в DB

	err = Migrate(db, logger.Nop())
	if err == nil {
		t.Fatal("expected error from Migrate, got nil")
	}

	if !strings.Contains(err.Error(), "migration error") {
		t.Errorf("expected wrapped migration error, got: %v", err)
	}
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	err := Migrate(db, logger.Nop())
	if err == nil {
		t.Fatal("expected error when db is nil, got nil")
	}

	if !strings.Contains(err.Error(), "db is nil") {
		t.Errorf("expected 'db is nil' error, got: %v", err)
	}
}

func TestMigrate_SQLiteCreatesTables(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if err = Migrate(db, logger.Nop()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	// second run is a no-op
	if err = Migrate(db, logger.Nop()); err != nil {
		t.Fatalf("Migrate (again): %v", err)
	}

	for _, table := range []string{"credentials", "categories"} {
		var name string
		err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}

	var keyColumns int
	err = db.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('credentials') WHERE name = 'key_id'`).Scan(&keyColumns)
	if err != nil || keyColumns != 1 {
		t.Fatalf("credentials.key_id missing: count=%d err=%v", keyColumns, err)
	}
}

func TestMigrate_ProgressGoesToLogger(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	var buf bytes.Buffer
	if err = Migrate(db, logger.NewLogger("test", &buf, zerolog.DebugLevel)); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "successfully migrated") {
		t.Errorf("expected goose progress in log, got: %q", out)
	}
	if !strings.Contains(out, `"func":"goose"`) {
		t.Errorf("expected goose entries to be tagged, got: %q", out)
	}
}
