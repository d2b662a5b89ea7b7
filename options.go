package dbenv

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/noisepage/dbenv/internal/args"
)

// requirePositive panics if v <= 0 with a descriptive message.
func requirePositive[T int | time.Duration](name string, v T) {
	if v <= 0 {
		panic(fmt.Sprintf("dbenv: %s must be greater than 0, got %v", name, v))
	}
}

// requireNonEmpty panics if s is empty with a descriptive message.
func requireNonEmpty(name, s string) {
	if s == "" {
		panic(fmt.Sprintf("dbenv: %s must not be empty", name))
	}
}

// Option configures a Server during construction via New.
// Each With* function returns an Option that sets a specific field.
//
// Several With* functions panic on invalid input (empty paths, non-positive
// ports or durations). These panics are intentional: option values are
// typically compile-time constants, so an invalid value indicates a
// programmer error rather than a runtime condition — fail fast during
// initialization instead of returning errors that would be universally
// fatal anyway.
type Option func(*serverConfig)

// WithHost sets the hostname the server binds to and SQL connections dial.
// Panics if host is empty.
func WithHost(host string) Option {
	requireNonEmpty("host", host)
	return func(c *serverConfig) {
		c.host = host
	}
}

// WithPort sets the port the server listens on. The port also appears in the
// readiness marker the harness scans for.
//
// Default: 15721.
//
// Panics if port <= 0.
func WithPort(port int) Option {
	requirePositive("port", port)
	return func(c *serverConfig) {
		c.port = port
	}
}

// WithUser sets the default username for SQL connections.
// Panics if user is empty.
func WithUser(user string) Option {
	requireNonEmpty("user", user)
	return func(c *serverConfig) {
		c.user = user
	}
}

// WithBuildType sets the build-type label used to probe the
// build-type-specific binary directory (cmake-build-<type>/bin).
// Panics if buildType is empty.
func WithBuildType(buildType string) Option {
	requireNonEmpty("build type", buildType)
	return func(c *serverConfig) {
		c.buildType = buildType
	}
}

// WithRepoRoot sets the source checkout root under which build-output
// directories are probed for the server binary.
//
// Default: the current working directory.
//
// Panics if root is empty.
func WithRepoRoot(root string) Option {
	requireNonEmpty("repo root", root)
	return func(c *serverConfig) {
		c.repoRoot = root
	}
}

// WithBinaryName sets the file name of the server binary.
// Panics if name is empty.
func WithBinaryName(name string) Option {
	requireNonEmpty("binary name", name)
	return func(c *serverConfig) {
		c.binaryName = name
	}
}

// WithOutputFile sets the file that captured server output (stdout and
// stderr) is written to.
//
// Default: db_log.txt under the system temp directory.
//
// Panics if path is empty.
func WithOutputFile(path string) Option {
	requireNonEmpty("output file", path)
	return func(c *serverConfig) {
		c.outputFile = path
	}
}

// WithDryRun makes Start report the command it would run without executing
// anything. Dry run never produces side effects.
func WithDryRun() Option {
	return func(c *serverConfig) {
		c.dryRun = true
	}
}

// WithStartTimeout sets the wall-clock budget for the server to emit its
// readiness marker after spawn.
//
// Default: 60 seconds.
//
// Panics if d <= 0.
func WithStartTimeout(d time.Duration) Option {
	requirePositive("start timeout", d)
	return func(c *serverConfig) {
		c.startTimeout = d
	}
}

// WithStopTimeout sets the wait applied to each phase of shutdown: after the
// graceful SIGTERM and again after the SIGKILL escalation.
//
// Default: 60 seconds.
//
// Panics if d <= 0.
func WithStopTimeout(d time.Duration) Option {
	requirePositive("stop timeout", d)
	return func(c *serverConfig) {
		c.stopTimeout = d
	}
}

// WithLogger sets the logger for this Server. When not given, the Server
// uses the package-level logger (see SetLogger).
func WithLogger(l *slog.Logger) Option {
	return func(c *serverConfig) {
		c.logger = l
	}
}

// WithServerArgString adds a string-valued server argument, rendered as
// -name=value. A value starting with "./" or "../" is resolved against the
// server binary's directory at command-line construction.
// Panics if name is empty.
func WithServerArgString(name, value string) Option {
	requireNonEmpty("server argument name", name)
	return func(c *serverConfig) {
		c.serverArgs.Set(name, args.String(value))
	}
}

// WithServerArgBool adds a boolean server argument, rendered as -name=true
// or -name=false.
// Panics if name is empty.
func WithServerArgBool(name string, value bool) Option {
	requireNonEmpty("server argument name", name)
	return func(c *serverConfig) {
		c.serverArgs.Set(name, args.Bool(value))
	}
}

// WithServerArgInt adds an integer server argument, rendered as -name=value.
// Panics if name is empty.
func WithServerArgInt(name string, value int) Option {
	requireNonEmpty("server argument name", name)
	return func(c *serverConfig) {
		c.serverArgs.Set(name, args.Int(value))
	}
}

// WithServerArgFlag adds a no-value server argument, rendered as a bare
// -name token.
// Panics if name is empty.
func WithServerArgFlag(name string) Option {
	requireNonEmpty("server argument name", name)
	return func(c *serverConfig) {
		c.serverArgs.Set(name, args.Flag())
	}
}
