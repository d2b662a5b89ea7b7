package process

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/noisepage/dbenv/internal/fileutil"
	"github.com/noisepage/dbenv/internal/sentinel"
)

// ErrAlreadyStarted is returned when Start is called on a process that is
// already running. Callers must Stop the process before starting it again.
const ErrAlreadyStarted = sentinel.Error("process already started")

// ErrNotRunning is returned by operations that require a live child process
// when none exists.
const ErrNotRunning = sentinel.Error("no server process is running")

// ErrAlreadyExited is returned by Stop when the child process terminated on
// its own before Stop was called.
const ErrAlreadyExited = sentinel.Error("server process already terminated")

// ErrNilCmd is returned when Start is called with a nil *exec.Cmd.
const ErrNilCmd = sentinel.Error("cmd must not be nil")

// ErrEmptyCmdPath is returned when Start is called with an empty cmd.Path.
const ErrEmptyCmdPath = sentinel.Error("cmd.Path must not be empty")

// ErrEmptyCapturePath is returned when Start is called with an empty output
// capture path.
const ErrEmptyCapturePath = sentinel.Error("capture path must not be empty")

// lineBacklog is the buffer size of the channel feeding stdout lines to the
// readiness watcher. The backlog absorbs startup bursts emitted before
// WaitReady begins consuming; when it fills, the drain goroutine blocks
// rather than drop a line, so the readiness marker cannot be lost no matter
// how much chatter precedes it. Once the watch is resolved the drain stops
// blocking and surplus lines are dropped from the channel only.
const lineBacklog = 1024

// maxRecentLines bounds the in-memory buffer of captured output kept for
// failure reports and PrintLogs. Older lines are evicted first; the full
// stream is always on disk in the capture file.
const maxRecentLines = 1000

// Process owns at most one running child process. It is not safe for
// concurrent use; the Server facade serializes access (spec'd single-threaded
// harness model).
type Process struct {
	cmd       *exec.Cmd
	waitDone  <-chan error    // receives the cmd.Wait result; consumed once by Stop or an abort path
	exited    <-chan struct{} // closed when the process exits; non-blocking pollable
	lines     <-chan string   // stdout lines; closed when stdout reaches EOF
	watchDone chan struct{}   // closed when readiness watching ends; releases the drain from blocking sends
	capture   *os.File

	mu     sync.Mutex
	recent []string

	name string
	log  *slog.Logger
}

// New creates a Process with the given name and logger. The name appears in
// every error and log entry produced over the process lifecycle. Panics if
// name is empty. If logger is nil, slog.Default() is used.
func New(name string, logger *slog.Logger) Process {
	if name == "" {
		panic("dbenv: process name must not be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return Process{name: name, log: logger}
}

// IsStarted reports whether the process has been started and not yet
// stopped or reaped by a failed readiness wait.
func (p *Process) IsStarted() bool {
	return p.cmd != nil
}

// Pid returns the child's process ID. Valid only while IsStarted is true.
func (p *Process) Pid() int {
	if p.cmd == nil || p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

// Exited returns a channel closed when the child exits, or nil when no
// child has been started.
func (p *Process) Exited() <-chan struct{} {
	return p.exited
}

// Logger returns the logger used by this process.
func (p *Process) Logger() *slog.Logger {
	return p.log
}

// Start launches cmd with both output streams captured to capturePath and
// stdout additionally scanned line by line for readiness detection.
//
// Exactly one goroutine calls cmd.Wait, and only after both pipe drains have
// reached EOF, per the os/exec contract for StdoutPipe. The wait result is
// delivered on an internal channel consumed by Stop or the WaitReady abort
// paths.
func (p *Process) Start(cmd *exec.Cmd, capturePath string) error {
	if cmd == nil {
		return ErrNilCmd
	}
	if cmd.Path == "" {
		return ErrEmptyCmdPath
	}
	if capturePath == "" {
		return ErrEmptyCapturePath
	}
	if p.cmd != nil {
		return ErrAlreadyStarted
	}

	if err := fileutil.EnsureDirForFile(capturePath); err != nil {
		return fmt.Errorf("prepare capture file: %w", err)
	}
	capture, err := os.Create(capturePath)
	if err != nil {
		return fmt.Errorf("create capture file %s: %w", capturePath, err)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		_ = capture.Close()
		return fmt.Errorf("pipe %s stdout: %w", p.name, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		_ = capture.Close()
		return fmt.Errorf("pipe %s stderr: %w", p.name, err)
	}

	configureSysProcAttr(cmd)

	if err := cmd.Start(); err != nil {
		_ = capture.Close()
		return fmt.Errorf("start %s process: %w", p.name, err)
	}

	lines := make(chan string, lineBacklog)
	watchDone := make(chan struct{})
	sink := &syncWriter{w: capture}

	var drain errgroup.Group
	drain.Go(func() error {
		return p.drainStdout(stdout, sink, lines, watchDone)
	})
	drain.Go(func() error {
		_, err := io.Copy(sink, stderr)
		return err
	})

	done := make(chan error, 1)
	exited := make(chan struct{})
	go func() {
		if err := drain.Wait(); err != nil {
			p.log.Warn("draining process output failed",
				"process", p.name, "error", err)
		}
		close(lines)
		done <- cmd.Wait()
		close(exited)
	}()

	p.cmd = cmd
	p.waitDone = done
	p.exited = exited
	p.lines = lines
	p.watchDone = watchDone
	p.capture = capture
	return nil
}

// drainStdout copies stdout lines to the capture file, records non-blank
// lines in the recent buffer, and feeds the readiness watcher. Until the
// watch is resolved the send blocks when the backlog fills, so no line —
// the readiness marker in particular — is ever dropped before readiness is
// decided. After watchDone is closed the send turns best-effort: surplus
// lines are dropped from the channel but still land in the capture file and
// recent buffer.
func (p *Process) drainStdout(r io.Reader, sink io.Writer, lines chan<- string, watchDone <-chan struct{}) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if _, err := fmt.Fprintln(sink, line); err != nil {
			return fmt.Errorf("write capture file: %w", err)
		}
		p.recordLine(line)
		select {
		case lines <- line:
		default:
			select {
			case lines <- line:
			case <-watchDone:
			}
		}
	}
	return scanner.Err()
}

// recordLine appends a non-blank output line to the bounded recent buffer.
func (p *Process) recordLine(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.recent = append(p.recent, line)
	if len(p.recent) > maxRecentLines {
		p.recent = p.recent[len(p.recent)-maxRecentLines:]
	}
}

// Logs returns a snapshot of the recent captured output lines.
func (p *Process) Logs() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.recent))
	copy(out, p.recent)
	return out
}

// ReportLogs emits the recent captured output through the logger, bracketed
// so it stands out from surrounding harness output.
func (p *Process) ReportLogs() {
	p.log.Info("************ server logs start ************", "process", p.name)
	p.log.Info(strings.Join(p.Logs(), "\n"))
	p.log.Info("************* server logs end *************", "process", p.name)
}

// Close releases the output capture file. If the process is still running,
// Close stops it first as a safety net; callers should always Stop before
// Close.
func (p *Process) Close() {
	if p.cmd != nil {
		p.log.Warn("process.Close called without Stop; stopping automatically",
			"process", p.name)
		if err := p.Stop(DefaultStopTimeout, DefaultStopTimeout); err != nil {
			p.log.Warn("auto-stop during Close failed",
				"process", p.name, "error", err)
		}
	}
	if p.capture != nil {
		_ = p.capture.Close()
		p.capture = nil
	}
}

// endLineWatch marks the readiness watch as resolved, releasing the drain
// goroutine from blocking line delivery. Must be called before any wait on
// waitDone: the wait goroutine cannot finish while the drain is parked on a
// full channel. Safe to call more than once.
func (p *Process) endLineWatch() {
	if p.watchDone != nil {
		close(p.watchDone)
		p.watchDone = nil
	}
}

// clear drops every reference to the child so IsStarted reports false, and
// closes the capture file so repeated failed starts do not leak descriptors.
// The full output remains on disk for inspection.
func (p *Process) clear() {
	p.endLineWatch()
	p.cmd = nil
	p.waitDone = nil
	p.exited = nil
	p.lines = nil
	if p.capture != nil {
		_ = p.capture.Close()
		p.capture = nil
	}
}

// syncWriter serializes writes from the stdout and stderr drain goroutines
// onto the shared capture file.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(b []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(b)
}
