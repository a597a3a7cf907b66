package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-test/deep"
)

func TestMigrationFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_seed.sql", "001_init.sql", "README.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "003_dir.sql"), 0o700); err != nil {
		t.Fatal(err)
	}

	got, err := migrationFiles(dir)
	if err != nil {
		t.Fatalf("migrationFiles() error = %v", err)
	}
	if diff := deep.Equal(got, []string{"001_init.sql", "002_seed.sql"}); diff != nil {
		t.Error(diff)
	}
}

func TestMigrationFiles_MissingDir(t *testing.T) {
	if _, err := migrationFiles(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("migrationFiles() should fail for a missing directory")
	}
}

func TestShippedMigrationsParseable(t *testing.T) {
	files, err := migrationFiles(filepath.Join("..", "..", "migrations"))
	if err != nil {
		t.Fatalf("migrationFiles() error = %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no migrations shipped")
	}
}
