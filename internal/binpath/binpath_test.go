package binpath

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// placeBinary creates dir and an executable file named binary inside it.
func placeBinary(t *testing.T, dir, binary string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, binary), []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}
}

func TestLocate_StandardDirectoryWins(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	standard := filepath.Join(root, "build", "bin")
	clion := filepath.Join(root, "cmake-build-release", "bin")
	placeBinary(t, standard, "noisepage")
	placeBinary(t, clion, "noisepage")

	dir, err := Locate(root, "noisepage", "release")
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if dir != standard {
		t.Errorf("Locate = %q, want standard directory %q", dir, standard)
	}
}

func TestLocate_FallsBackToBuildTypeDirectory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	clion := filepath.Join(root, "cmake-build-debug", "bin")
	placeBinary(t, clion, "noisepage")

	dir, err := Locate(root, "noisepage", "debug")
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if dir != clion {
		t.Errorf("Locate = %q, want %q", dir, clion)
	}
}

func TestLocate_NotFoundListsAllProbedPaths(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	_, err := Locate(root, "noisepage", "debug")
	if !errors.Is(err, ErrBinaryNotFound) {
		t.Fatalf("Locate error = %v, want ErrBinaryNotFound", err)
	}
	for _, want := range []string{
		filepath.Join(root, "build", "bin", "noisepage"),
		filepath.Join(root, "cmake-build-debug", "bin", "noisepage"),
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not name probed path %q", err, want)
		}
	}
}
