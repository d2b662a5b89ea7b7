package dbenv

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// fileLockRetryInterval is the interval between consecutive attempts to
// acquire the server instance lock. 50ms balances responsiveness (low wait
// after the holder releases) against CPU overhead from busy-polling.
const fileLockRetryInterval = 50 * time.Millisecond

// lockPath returns the per-port lock file guarding server startup. Two
// harness processes (e.g., test packages running in parallel) that target
// the same port would otherwise race for the socket and the WAL file.
func lockPath(port int) string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("dbenv-%d.lock", port))
}

// acquireFileLock acquires an exclusive lock on the given file path.
// It respects context cancellation and returns early if the context is
// canceled. Acquisition is retried at fileLockRetryInterval until successful
// or the context is done.
func acquireFileLock(ctx context.Context, path string) (*flock.Flock, error) {
	fl := flock.New(path)

	locked, err := fl.TryLockContext(ctx, fileLockRetryInterval)
	if err != nil {
		return nil, fmt.Errorf("acquiring file lock %s: %w", path, err)
	}
	if !locked {
		// TryLockContext should return an error when it fails; handle the
		// case where it returns (false, nil) unexpectedly.
		if ctx.Err() != nil {
			return nil, fmt.Errorf("acquiring file lock %s: %w", path, ctx.Err())
		}
		return nil, fmt.Errorf("acquiring file lock %s: lock not acquired", path)
	}

	return fl, nil
}

// releaseFileLock releases the file lock and closes its file descriptor.
// The lock file is intentionally left on disk to avoid a race where removing
// it could invalidate a lock concurrently acquired by another process.
// Best-effort cleanup: errors are logged at debug level, not returned.
func releaseFileLock(logger *slog.Logger, fl *flock.Flock) {
	if fl != nil {
		if err := fl.Close(); err != nil {
			logger.Debug("failed to release file lock", "path", fl.Path(), "err", err)
		}
	}
}
