package process

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/noisepage/dbenv/internal/sentinel"
)

// ErrStartupTimeout is returned by WaitReady when the child does not emit
// the readiness marker before the deadline. The child has been killed and
// its accumulated output reported by the time this is returned.
const ErrStartupTimeout = sentinel.Error("server did not become ready before the deadline")

// ErrExitedBeforeReady is returned by WaitReady when the child terminates
// before emitting the readiness marker.
const ErrExitedBeforeReady = sentinel.Error("server process exited before becoming ready")

// WaitReady consumes stdout lines until one ends with marker, the child
// exits, or the wall-clock timeout elapses. On success it returns the time
// elapsed since the wait began.
//
// Every failure path reaps the child (killing it first when still alive),
// reports the accumulated output through the logger, and clears the handle,
// returning the controller to the idle state.
func (p *Process) WaitReady(ctx context.Context, marker string, timeout time.Duration) (time.Duration, error) {
	if p.cmd == nil {
		return 0, ErrNotRunning
	}
	if marker == "" {
		return 0, fmt.Errorf("wait for %s: marker must not be empty", p.name)
	}
	if timeout <= 0 {
		return 0, fmt.Errorf("wait for %s: timeout must be positive", p.name)
	}

	start := time.Now()
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		select {
		case line, ok := <-p.lines:
			if !ok {
				// stdout reached EOF: the child exited before the
				// marker ever appeared.
				return 0, p.abortStartup(nil, ErrExitedBeforeReady)
			}
			if strings.HasSuffix(line, marker) {
				p.endLineWatch()
				return time.Since(start), nil
			}

		case <-deadline.C:
			p.log.Error("server took too long to start; killing",
				"process", p.name, "pid", p.Pid(), "timeout", timeout)
			return 0, p.abortStartup(p.cmd.Process.Kill, ErrStartupTimeout)

		case <-ctx.Done():
			return 0, p.abortStartup(p.cmd.Process.Kill, ctx.Err())
		}
	}
}

// abortStartup tears down a child that failed to become ready. kill is
// invoked when the child may still be alive; the wait goroutine is then
// drained so the child is reaped, the accumulated output is reported as a
// failure diagnostic, and the handle is cleared.
func (p *Process) abortStartup(kill func() error, cause error) error {
	p.endLineWatch()
	if kill != nil {
		// Kill on an already-finished process returns a harmless
		// "process already finished" error.
		_ = kill()
	}
	if ok, _ := drainDone(p.waitDone, killDrainTimeout); !ok {
		p.log.Warn("timed out reaping process after failed startup",
			"process", p.name, "pid", p.Pid())
	}
	if logs := p.Logs(); len(logs) > 0 {
		p.log.Error(strings.Join(logs, "\n"))
	}
	p.clear()
	return fmt.Errorf("%s: %w", p.name, cause)
}
