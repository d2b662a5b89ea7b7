package dbenv

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/noisepage/dbenv/internal/args"
	"github.com/noisepage/dbenv/internal/binpath"
	"github.com/noisepage/dbenv/internal/fileutil"
	"github.com/noisepage/dbenv/internal/netutil"
	"github.com/noisepage/dbenv/internal/process"
)

// readyMarkerFormat is the log line suffix the server emits once it has
// bound its listening socket. The harness requires server logging to be
// enabled: stdout is the only readiness signal.
const readyMarkerFormat = "[info] Listening on Unix domain socket with port %d [PID=%d]"

// Server represents one DBMS server instance that can be started, stopped,
// or restarted. A Server owns at most one child process at a time.
//
// Server is not safe for concurrent use. The harness model is
// single-threaded: callers serialize Start, Stop, Restart, DeleteWAL, and
// PrintLogs. Execute is the exception — each call opens its own connection,
// so concurrent Execute calls against a running server are safe, with no
// ordering guarantee between them.
type Server struct {
	cfg    serverConfig
	binDir string
	merged *args.List // default server arguments with caller overrides applied
	proc   process.Process
	lock   *flock.Flock
	log    *slog.Logger
}

// New creates a Server from defaults plus the given options. The server
// binary is located at construction time: the standard build directory is
// probed first, then the build-type-specific layout. Returns an error
// wrapping ErrBinaryNotFound, naming every probed path, when the binary is
// not found.
//
// New performs no other I/O; spawning is deferred to Start.
func New(opts ...Option) (*Server, error) {
	cfg := defaultServerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	binDir, err := binpath.Locate(cfg.repoRoot, cfg.binaryName, cfg.buildType)
	if err != nil {
		return nil, fmt.Errorf("locate server binary: %w", err)
	}

	log := cfg.logger
	if log == nil {
		log = Logger()
	}

	return &Server{
		cfg:    cfg,
		binDir: binDir,
		merged: cfg.mergedArgs(),
		proc:   process.New(cfg.binaryName, log),
		log:    log,
	}, nil
}

// BinaryDir returns the directory the server binary was located in.
func (s *Server) BinaryDir() string {
	return s.binDir
}

// CommandLine returns the exact command Start runs: the absolute binary path
// followed by every configured argument rendered through the preprocessing
// pipeline, space-joined in insertion order.
func (s *Server) CommandLine() string {
	cmdline := filepath.Join(s.binDir, s.cfg.binaryName)
	if rendered := s.merged.Build(args.Meta{BinDir: s.binDir}); rendered != "" {
		cmdline += " " + rendered
	}
	return cmdline
}

// IsRunning reports whether a server process is currently owned by this
// Server.
func (s *Server) IsRunning() bool {
	return s.proc.IsStarted()
}

// Start launches the DBMS server and blocks until it is verified as
// accepting connections.
//
// In dry-run mode the command is reported and nothing is executed. Otherwise
// Start acquires the per-port instance lock, spawns the binary with captured
// output streams, and scans stdout until a line ends with the readiness
// marker. If the marker does not appear within the start timeout, the
// process is killed, its accumulated output is reported, and an error
// wrapping ErrStartupTimeout is returned with the Server back in the idle
// state.
func (s *Server) Start(ctx context.Context) error {
	cmdline := s.CommandLine()

	if s.cfg.dryRun {
		s.log.Info("dry run", "command", cmdline)
		return nil
	}
	if s.proc.IsStarted() {
		return fmt.Errorf("start server: %w", ErrAlreadyStarted)
	}

	if err := netutil.CheckFree(s.cfg.host, s.cfg.port); err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	lock, err := acquireFileLock(ctx, lockPath(s.cfg.port))
	if err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	s.log.Info("running", "command", cmdline)
	cmd := exec.CommandContext(ctx,
		filepath.Join(s.binDir, s.cfg.binaryName),
		s.merged.Tokens(args.Meta{BinDir: s.binDir})...)
	if err := s.proc.Start(cmd, s.cfg.outputFile); err != nil {
		releaseFileLock(s.log, lock)
		return fmt.Errorf("start server: %w", err)
	}
	s.lock = lock
	s.log.Info("ran", "command", cmdline, "pid", s.proc.Pid())

	marker := fmt.Sprintf(readyMarkerFormat, s.cfg.port, s.proc.Pid())
	elapsed, err := s.proc.WaitReady(ctx, marker, s.cfg.startTimeout)
	if err != nil {
		s.releaseLock()
		return fmt.Errorf("start server: %w", err)
	}

	s.log.Info("server process is verified as running",
		"elapsed", elapsed.Round(10*time.Millisecond))
	return nil
}

// Stop terminates the server process. The server must be running.
//
// Returns ErrDryRun when a live process exists on a dry-run Server (dry run
// must never have side effects, so this state is a contradiction), and
// ErrNotRunning when there is no process to stop. When the process already
// exited on its own, its captured output is reported and ErrAlreadyExited
// returned. Otherwise the process receives SIGTERM and, past the stop
// timeout, SIGKILL with an equal wait. On success the Server returns to the
// idle state.
func (s *Server) Stop() error {
	if s.cfg.dryRun && s.proc.IsStarted() {
		return fmt.Errorf("stop server: %w", ErrDryRun)
	}
	if !s.proc.IsStarted() {
		return fmt.Errorf("stop server: %w", ErrNotRunning)
	}

	err := s.proc.Stop(s.cfg.stopTimeout, s.cfg.stopTimeout)
	s.proc.Close()
	s.releaseLock()
	if err != nil {
		return fmt.Errorf("stop server: %w", err)
	}
	return nil
}

// Restart stops the running server and starts it again with the same
// configuration.
func (s *Server) Restart(ctx context.Context) error {
	if err := s.Stop(); err != nil {
		return fmt.Errorf("restart server: %w", err)
	}
	if err := s.Start(ctx); err != nil {
		return fmt.Errorf("restart server: %w", err)
	}
	return nil
}

// DeleteWAL removes the write-ahead log between test runs, resetting the
// server's durability state. It is a no-op when the configuration disables
// the WAL (wal_enable=false) or when the WAL file does not exist.
//
// The configured path is used as written, not resolved against the binary
// directory: a relative wal_file_path is removed relative to the harness's
// working directory, mirroring where the caller expects it.
func (s *Server) DeleteWAL() error {
	if v, ok := s.merged.Get(argWALEnable); ok {
		if enabled, isBool := v.AsBool(); isBool && !enabled {
			return nil
		}
	}

	walPath := DefaultWALFile
	if v, ok := s.merged.Get(argWALFilePath); ok {
		if str, isStr := v.AsString(); isStr {
			walPath = str
		}
	}
	if err := fileutil.RemoveIfExists(walPath); err != nil {
		return fmt.Errorf("delete WAL: %w", err)
	}
	return nil
}

// PrintLogs reports the server's captured output through the logger for
// diagnostics. Returns ErrNotRunning when no server process exists.
func (s *Server) PrintLogs() error {
	if !s.proc.IsStarted() {
		return fmt.Errorf("print server logs: %w", ErrNotRunning)
	}
	s.proc.ReportLogs()
	return nil
}

// releaseLock drops the per-port instance lock if held.
func (s *Server) releaseLock() {
	releaseFileLock(s.log, s.lock)
	s.lock = nil
}
