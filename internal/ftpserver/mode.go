package ftpserver

import (
	"fmt"
	"strings"
)

// Mode is the data connection mode clients are expected to use.
type Mode int

const (
	// Active mode: the server connects back to the client for data.
	Active Mode = iota
	// Passive mode: the client connects to a port advertised by the server.
	Passive
)

func (m Mode) String() string {
	switch m {
	case Active:
		return "active"
	case Passive:
		return "passive"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "active" or "passive", ignoring case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return Active, nil
	case "passive":
		return Passive, nil
	default:
		return 0, fmt.Errorf("unknown ftp mode %q (want active or passive)", s)
	}
}
