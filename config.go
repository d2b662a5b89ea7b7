package dbenv

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/noisepage/dbenv/internal/args"
)

// serverConfig holds the immutable configuration a Server is constructed
// with. It is assembled once in New from defaults plus options and never
// mutated afterwards.
type serverConfig struct {
	host         string
	port         int
	user         string
	buildType    string
	repoRoot     string
	binaryName   string
	outputFile   string
	dryRun       bool
	startTimeout time.Duration
	stopTimeout  time.Duration
	serverArgs   *args.List // caller-supplied arguments, in insertion order
	logger       *slog.Logger
}

// defaultServerConfig returns the configuration used when no options are given.
// The repo root defaults to the current working directory, matching the usual
// invocation of the harness from a source checkout.
func defaultServerConfig() serverConfig {
	wd, err := os.Getwd()
	if err != nil {
		// Getwd only fails when the working directory was deleted out from
		// under the process; fall back to "." and let binary resolution
		// report the missing binary with full paths.
		wd = "."
	}
	return serverConfig{
		host:         DefaultHost,
		port:         DefaultPort,
		user:         DefaultUser,
		buildType:    DefaultBuildType,
		repoRoot:     wd,
		binaryName:   DefaultBinaryName,
		outputFile:   filepath.Join(os.TempDir(), DefaultOutputFileName),
		startTimeout: DefaultStartTimeout,
		stopTimeout:  DefaultStopTimeout,
		serverArgs:   &args.List{},
	}
}

// mergedArgs returns the default server arguments with the caller's
// arguments merged over them. A caller override of a defaulted name replaces
// the value in place, keeping the default's position; new names append in
// the caller's insertion order.
func (c serverConfig) mergedArgs() *args.List {
	merged := &args.List{}
	merged.Set(argWALFilePath, args.String(DefaultWALFile))
	c.serverArgs.Range(func(name string, v args.Value) {
		merged.Set(name, v)
	})
	return merged
}
