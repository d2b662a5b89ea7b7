package dbenv

import (
	"time"

	"github.com/noisepage/dbenv/internal/args"
)

// ConfigSnapshot holds a copy of serverConfig fields for test assertions.
// Exported only via export_test.go so that the _test package can verify
// option closures actually mutate the config without accessing internals.
type ConfigSnapshot struct {
	Host         string
	Port         int
	User         string
	BuildType    string
	RepoRoot     string
	BinaryName   string
	OutputFile   string
	DryRun       bool
	StartTimeout time.Duration
	StopTimeout  time.Duration
}

// ApplyOptionsForTesting creates a default serverConfig, applies the given
// options, and returns a ConfigSnapshot of the result. This tests the option
// closures directly without requiring a server binary on disk.
func ApplyOptionsForTesting(opts ...Option) ConfigSnapshot {
	cfg := defaultServerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return ConfigSnapshot{
		Host:         cfg.host,
		Port:         cfg.port,
		User:         cfg.user,
		BuildType:    cfg.buildType,
		RepoRoot:     cfg.repoRoot,
		BinaryName:   cfg.binaryName,
		OutputFile:   cfg.outputFile,
		DryRun:       cfg.dryRun,
		StartTimeout: cfg.startTimeout,
		StopTimeout:  cfg.stopTimeout,
	}
}

// LockPathForTesting exposes the per-port instance lock path so tests can
// contend for the lock from outside the package.
func LockPathForTesting(port int) string {
	return lockPath(port)
}

// MergedArgTokensForTesting returns the rendered argument tokens for a
// config built from the given options, using binDir as the binary directory.
func MergedArgTokensForTesting(binDir string, opts ...Option) []string {
	cfg := defaultServerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg.mergedArgs().Tokens(args.Meta{BinDir: binDir})
}
