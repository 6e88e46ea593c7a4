package utils

import (
	"fmt"
	"net"
	"time"
)

// PingHost checks TCP reachability of host:port within the timeout.
// Used by the healthcheck binary and by startup to fail fast on an
// unreachable database.
func PingHost(host, port string, timeout time.Duration) error {
	address := net.JoinHostPort(host, port)

	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	defer conn.Close()

	return nil
}
