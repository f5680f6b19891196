package ftpserver

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/jlaffaye/ftp"
)

// Probe connects to addr, logs in and sends a NOOP.
func Probe(ctx context.Context, addr, username, password string, timeout time.Duration) error {
	conn, err := ftp.Dial(addr,
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(timeout),
	)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	defer conn.Quit()

	if err := conn.Login(username, password); err != nil {
		return fmt.Errorf("failed to login as %s: %w", username, err)
	}
	if err := conn.NoOp(); err != nil {
		return fmt.Errorf("noop failed: %w", err)
	}
	return nil
}

// dialAddr turns a listener address into one a local client can dial.
func dialAddr(addr net.Addr) string {
	tcp, ok := addr.(*net.TCPAddr)
	if !ok {
		return addr.String()
	}
	ip := tcp.IP
	switch {
	case ip == nil:
		ip = net.IPv4(127, 0, 0, 1)
	case ip.IsUnspecified() && ip.To4() != nil:
		ip = net.IPv4(127, 0, 0, 1)
	case ip.IsUnspecified():
		ip = net.IPv6loopback
	}
	return net.JoinHostPort(ip.String(), strconv.Itoa(tcp.Port))
}
