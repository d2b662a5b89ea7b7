package process

import (
	"errors"
	"fmt"
	"os/exec"
	"syscall"
	"time"
)

// DefaultStopTimeout is the default wait applied to each phase of the
// graceful-then-forceful shutdown sequence.
const DefaultStopTimeout = 60 * time.Second

// killDrainTimeout is the hard upper bound for waiting on the done channel
// after SIGKILL has been sent (or after the process has already exited).
// SIGKILL cannot be caught, so the process should exit almost immediately.
// This timeout is a safety net against indefinite blocking if cmd.Wait
// never returns (e.g., due to stuck I/O or kernel issues).
const killDrainTimeout = 10 * time.Second

// drainDone reads from the done channel with the given timeout as a hard
// upper bound. Returns true and the cmd.Wait error if the channel delivered
// in time, or false and a nil error if the timeout elapsed.
func drainDone(done <-chan error, timeout time.Duration) (bool, error) {
	t := time.NewTimer(timeout)
	defer t.Stop()

	select {
	case err := <-done:
		return true, err
	case <-t.C:
		return false, nil
	}
}

// Stop terminates the child process.
//
// Returns ErrNotRunning when no child exists. When the child already exited
// on its own, the captured output is reported and ErrAlreadyExited returned.
// Otherwise the child receives SIGTERM and is given gracePeriod to exit;
// failing that it receives SIGKILL and is given killPeriod more. Exits caused
// by either signal count as a successful stop.
//
// The handle is cleared on every return path: after Stop the process is no
// longer in a known-running state regardless of the outcome.
func (p *Process) Stop(gracePeriod, killPeriod time.Duration) error {
	if p.cmd == nil || p.cmd.Process == nil {
		p.clear()
		return ErrNotRunning
	}
	pid := p.cmd.Process.Pid

	// The wait goroutine cannot deliver while the drain is parked on a full
	// line channel; resolve the watch before any waitDone read below.
	p.endLineWatch()

	// Non-blocking poll: a child that died on its own is a failure the
	// caller must hear about, not a stop to silently absorb.
	select {
	case <-p.exited:
		_, waitErr := drainDone(p.waitDone, killDrainTimeout)
		p.ReportLogs()
		p.clear()
		if waitErr != nil {
			return fmt.Errorf("%s (%v): %w", p.name, waitErr, ErrAlreadyExited)
		}
		return fmt.Errorf("%s: %w", p.name, ErrAlreadyExited)
	default:
	}

	err := p.stopSequence(gracePeriod, killPeriod)
	if err != nil {
		p.log.Warn("process stop failed; process may be orphaned",
			"process", p.name, "pid", pid, "error", err)
	} else {
		p.log.Info("server stopped", "process", p.name, "pid", pid)
	}
	p.clear()
	return err
}

// stopSequence implements the SIGTERM-then-SIGKILL shutdown using the done
// channel fed by the single cmd.Wait goroutine started in Start.
func (p *Process) stopSequence(gracePeriod, killPeriod time.Duration) error {
	if err := p.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		// The process slipped away between the exited poll and the
		// signal. Drain the wait goroutine with a hard upper bound.
		ok, waitErr := drainDone(p.waitDone, killDrainTimeout)
		if !ok {
			return fmt.Errorf("%s: timed out draining process after signal failure", p.name)
		}
		return expectSignalExit(waitErr, p.name)
	}

	grace := time.NewTimer(gracePeriod)
	defer grace.Stop()
	select {
	case err := <-p.waitDone:
		return expectSignalExit(err, p.name)
	case <-grace.C:
	}

	// Graceful shutdown did not finish in time; escalate.
	p.log.Warn("graceful stop timed out; sending SIGKILL",
		"process", p.name, "pid", p.cmd.Process.Pid, "grace", gracePeriod)
	_ = p.cmd.Process.Kill()

	ok, waitErr := drainDone(p.waitDone, killPeriod)
	if !ok {
		return fmt.Errorf("%s: process did not exit within %s of SIGKILL", p.name, killPeriod)
	}
	return expectSignalExit(waitErr, p.name)
}

// expectSignalExit interprets an error from cmd.Wait after sending a
// termination signal. Exit errors caused by SIGTERM or SIGKILL are expected
// and treated as successful stops.
func expectSignalExit(err error, name string) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok {
			sig := status.Signal()
			if sig == syscall.SIGTERM || sig == syscall.SIGKILL {
				return nil
			}
		}
	}
	return fmt.Errorf("%s: %w", name, err)
}
