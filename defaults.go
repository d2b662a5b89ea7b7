package dbenv

import "time"

// Default configuration values for New.
// These constants are exported so callers can reference the defaults
// when building custom configurations relative to them (e.g.,
// 2 * DefaultStartTimeout).
const (
	// DefaultHost is the hostname the server binds and clients connect to.
	DefaultHost = "localhost"

	// DefaultPort is the port the server listens on.
	DefaultPort = 15721

	// DefaultUser is the username used for SQL connections when the caller
	// does not override it.
	DefaultUser = "noisepage"

	// DefaultBinaryName is the file name of the server binary searched for
	// under the build-output directories.
	DefaultBinaryName = "noisepage"

	// DefaultWALFile is the write-ahead-log path passed to the server when
	// the caller does not configure wal_file_path explicitly.
	DefaultWALFile = "wal.log"

	// DefaultOutputFileName is the file name, under the system temp
	// directory, where captured server output is written when no explicit
	// output file is configured.
	DefaultOutputFileName = "db_log.txt"

	// DefaultBuildType is the build-type label used to probe the
	// build-type-specific binary directory layout.
	DefaultBuildType = "release"

	// DefaultStartTimeout is the wall-clock budget for the server to emit
	// its readiness marker after spawn. A server that has not reported the
	// bound socket within this window is killed.
	DefaultStartTimeout = 60 * time.Second

	// DefaultStopTimeout is the wait applied to each phase of shutdown:
	// first after the graceful SIGTERM, then again after the SIGKILL
	// escalation.
	DefaultStopTimeout = 60 * time.Second
)

// Names of the server arguments the harness itself interprets. They are
// ordinary pass-through arguments on the command line; the harness reads
// them back for WAL maintenance between runs.
const (
	argWALEnable   = "wal_enable"
	argWALFilePath = "wal_file_path"
)
