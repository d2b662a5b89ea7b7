// Package process manages the lifecycle of the DBMS server child process.
//
// It defines Process for spawn/readiness/teardown of the single child a
// controller owns: stdout is scanned line by line for the readiness marker,
// both output streams are captured to a file, and shutdown follows a
// SIGTERM-then-SIGKILL escalation with bounded waits.
package process
