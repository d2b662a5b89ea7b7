// Package fileutil provides the small filesystem operations the harness
// needs around a server run: creating output-file parent directories and
// removing the write-ahead log between test runs.
package fileutil
