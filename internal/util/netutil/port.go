// Package netutil provides TCP reachability checks.
package netutil

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"
)

// DefaultProbeTimeout bounds a single reachability check.
const DefaultProbeTimeout = 3 * time.Second

// Probe dials host:port once and closes the connection.
func Probe(ctx context.Context, host string, port int, timeout time.Duration) error {
	address := net.JoinHostPort(host, strconv.Itoa(port))

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return fmt.Errorf("%s unreachable: %w", address, err)
	}
	_ = conn.Close()
	return nil
}
