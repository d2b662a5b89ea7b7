// Package netutil provides the port preflight check used before spawning the
// DBMS server. Binding and immediately releasing the configured port surfaces
// an address-in-use conflict right away instead of after a full readiness
// timeout spent scanning server output.
package netutil
