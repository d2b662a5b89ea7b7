// Package binpath locates the DBMS server binary under the build-output
// directory layouts a source checkout can produce. The standard "build"
// directory is always probed first, so a binary there shadows any
// build-type-specific directory.
package binpath
