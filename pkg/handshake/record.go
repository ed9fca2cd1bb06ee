package handshake

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// Sentinel is the terminal line of a handshake record. A record is
	// complete only when this is the last line in the file.
	Sentinel = "EOF"

	// PortKey is the key carrying the child's bound port.
	PortKey = "sock"
)

var (
	// ErrIncomplete marks a record whose sentinel has not landed yet.
	// Readers treat it as "keep polling", never as a failure.
	ErrIncomplete = errors.New("handshake: record incomplete")

	// ErrPortMissing marks a complete record with no port key. The sentinel
	// is final, so no later write can repair this.
	ErrPortMissing = errors.New("handshake: record complete but port key missing")

	// ErrPortInvalid marks a port value that does not parse as a
	// nonnegative integer.
	ErrPortInvalid = errors.New("handshake: invalid port value")
)

// ParsePort scans a handshake record for the child's bound port.
//
// The record is complete only when its last line is exactly the Sentinel;
// anything else returns ErrIncomplete and the caller must re-read the whole
// file later. The child's write is not atomic from the reader's side, so a
// value observed before the sentinel may be a truncated flush.
//
// Within a complete record the first PortKey line wins, including for error
// purposes: an unparsable first value is fatal even if a valid one follows.
func ParsePort(data []byte) (int, error) {
	lines := splitLines(string(data))
	if len(lines) == 0 || lines[len(lines)-1] != Sentinel {
		return 0, ErrIncomplete
	}

	for _, line := range lines {
		key, value, found := strings.Cut(line, "=")
		if !found || key != PortKey {
			continue
		}
		port, err := strconv.Atoi(value)
		if err != nil || port < 0 {
			return 0, fmt.Errorf("%w: %q", ErrPortInvalid, value)
		}
		return port, nil
	}

	return 0, ErrPortMissing
}

// splitLines splits on '\n' without counting a single trailing newline as an
// extra empty line, so "EOF\n" still ends on the sentinel.
func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
