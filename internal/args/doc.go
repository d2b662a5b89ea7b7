// Package args builds the command-line argument string passed to the DBMS
// server binary.
//
// Each configured argument value runs through a fixed, ordered pipeline of
// pure preprocessing steps (boolean lowering, relative-path resolution, flag
// formatting) before being rendered as a "-name=value" token. List preserves
// caller insertion order so the spawned command line is reproducible.
package args
