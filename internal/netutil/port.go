package netutil

import (
	"fmt"
	"net"
	"strconv"
)

// CheckFree reports whether the TCP port can currently be bound on host.
// It asks the kernel for the bind and releases it immediately; a failure
// wraps the kernel's error so the caller sees the address-in-use cause.
//
// The check is inherently racy: another process can take the port between
// the release here and the server's own bind. It is a fail-fast preflight,
// not a reservation.
func CheckFree(host string, port int) error {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d unavailable on %s: %w", port, host, err)
	}
	if err := l.Close(); err != nil {
		return fmt.Errorf("release preflight listener on %s: %w", addr, err)
	}
	return nil
}
