// Package dbenv drives an external DBMS server process for integration
// testing: it builds the server's command line from configured arguments,
// launches the binary, verifies readiness by scanning server output for the
// listen marker, executes SQL against the running server, and tears the
// process down between runs.
//
// # Basic Usage
//
//	ctx := context.Background()
//
//	server, err := dbenv.New(
//	    dbenv.WithRepoRoot("/path/to/checkout"),
//	    dbenv.WithBuildType("release"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := server.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Stop() // Returns nil on success; safe to ignore in defer
//
//	rows, err := server.Execute(ctx, "SELECT 1", dbenv.DefaultExecOptions())
//	// Use rows...
//
// # Dry Run
//
// A server constructed with WithDryRun only reports the command it would
// launch; Start performs no side effects and Stop rejects the contradiction
// of a live process existing in dry-run mode.
//
// # Scope
//
// One Server owns at most one child process. The harness is single-threaded
// by design: readiness detection and shutdown are blocking operations with
// fixed wall-clock deadlines, and nothing is retried automatically. SQL
// execution opens a fresh one-shot connection per call, so concurrent
// callers never share connection state.
package dbenv
