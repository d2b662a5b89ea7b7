package dbenv_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/noisepage/dbenv"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		dbenv.ErrBinaryNotFound,
		dbenv.ErrNotRunning,
		dbenv.ErrAlreadyStarted,
		dbenv.ErrAlreadyExited,
		dbenv.ErrStartupTimeout,
		dbenv.ErrExitedBeforeReady,
		dbenv.ErrDryRun,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %v unexpectedly matches %v", a, b)
			}
		}
	}
}

func TestSentinelErrors_MatchThroughWrapping(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("stop server: %w", dbenv.ErrNotRunning)
	if !errors.Is(wrapped, dbenv.ErrNotRunning) {
		t.Error("wrapped sentinel does not match with errors.Is")
	}
}
