package binpath

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/noisepage/dbenv/internal/sentinel"
)

// ErrBinaryNotFound is returned by Locate when no candidate directory
// contains the server binary.
const ErrBinaryNotFound = sentinel.Error("server binary not found")

// Locate returns the directory containing the server binary, probing a
// fixed, ordered list of candidate layouts under repoRoot:
//
//  1. build/bin — the standard build directory, always checked first
//  2. cmake-build-<buildType>/bin — the IDE layout for the given build type
//
// The first directory actually containing binary wins. When none does,
// the returned error wraps ErrBinaryNotFound and names every probed path.
func Locate(repoRoot, binary, buildType string) (string, error) {
	candidates := []string{
		filepath.Join(repoRoot, "build", "bin"),
		filepath.Join(repoRoot, "cmake-build-"+buildType, "bin"),
	}

	probed := make([]string, 0, len(candidates))
	for _, dir := range candidates {
		binPath := filepath.Join(dir, binary)
		probed = append(probed, binPath)
		if _, err := os.Stat(binPath); err == nil {
			return dir, nil
		}
	}

	return "", fmt.Errorf("%w: probed %s", ErrBinaryNotFound, strings.Join(probed, ", "))
}
