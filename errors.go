package dbenv

import (
	"github.com/noisepage/dbenv/internal/binpath"
	"github.com/noisepage/dbenv/internal/process"
	"github.com/noisepage/dbenv/internal/sentinel"
)

// Sentinel errors for error inspection with errors.Is.
// These are immutable constants safe for use in wrapped error chain comparison.
const (
	// ErrBinaryNotFound is returned by New when no candidate build-output
	// directory contains the server binary. The wrapped message names
	// every probed path.
	ErrBinaryNotFound = binpath.ErrBinaryNotFound

	// ErrNotRunning is returned by Stop and PrintLogs when no server
	// process exists to operate on.
	ErrNotRunning = process.ErrNotRunning

	// ErrAlreadyStarted is returned by Start when a server process is
	// already running under this Server.
	ErrAlreadyStarted = process.ErrAlreadyStarted

	// ErrAlreadyExited is returned by Stop when the server process
	// terminated on its own before Stop was called. The captured server
	// output has been reported by the time this is returned.
	ErrAlreadyExited = process.ErrAlreadyExited

	// ErrStartupTimeout is returned by Start when the server does not emit
	// the readiness marker within the start timeout. The process has been
	// killed and its output reported.
	ErrStartupTimeout = process.ErrStartupTimeout

	// ErrExitedBeforeReady is returned by Start when the server process
	// exits before emitting the readiness marker.
	ErrExitedBeforeReady = process.ErrExitedBeforeReady

	// ErrDryRun is returned by Stop when a live server process exists on a
	// dry-run Server. Dry run must never have side effects, so a live
	// process indicates the harness state is corrupt.
	ErrDryRun = sentinel.Error("dry run: no server process should exist")
)
