package db

import (
	"io/fs"
	"strings"
	"testing"
)

func TestMigrationsEmbedded(t *testing.T) {
	up, err := fs.ReadFile(migrationsFS, "migrations/000001_create_user.up.sql")
	if err != nil {
		t.Fatalf("read up migration: %v", err)
	}
	if !strings.Contains(string(up), `CREATE TABLE IF NOT EXISTS "user"`) {
		t.Errorf("up migration does not create the user table: %s", up)
	}
	if !strings.Contains(string(up), "username VARCHAR(255) UNIQUE") {
		t.Errorf("username must be unique: %s", up)
	}

	if _, err := fs.ReadFile(migrationsFS, "migrations/000001_create_user.down.sql"); err != nil {
		t.Errorf("read down migration: %v", err)
	}
}
