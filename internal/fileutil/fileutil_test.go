package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureDir(t *testing.T) {
	t.Parallel()

	t.Run("creates nested directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a", "b", "c")
		if err := EnsureDir(path); err != nil {
			t.Fatalf("EnsureDir: %v", err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if !info.IsDir() {
			t.Error("created path is not a directory")
		}
	})

	t.Run("existing directory is not an error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := EnsureDir(dir); err != nil {
			t.Fatalf("EnsureDir on existing dir: %v", err)
		}
	})
}

func TestEnsureDirForFile(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "logs", "db.log")
	if err := EnsureDirForFile(file); err != nil {
		t.Fatalf("EnsureDirForFile: %v", err)
	}
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file after EnsureDirForFile: %v", err)
	}
}

func TestRemoveIfExists(t *testing.T) {
	t.Parallel()

	t.Run("removes existing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "wal.log")
		if err := os.WriteFile(path, []byte("log"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if err := RemoveIfExists(path); err != nil {
			t.Fatalf("RemoveIfExists: %v", err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("file still exists after RemoveIfExists")
		}
	})

	t.Run("missing file is not an error", func(t *testing.T) {
		t.Parallel()

		if err := RemoveIfExists(filepath.Join(t.TempDir(), "absent")); err != nil {
			t.Fatalf("RemoveIfExists on missing file: %v", err)
		}
	})
}
