package handshake

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrBadField marks a field whose key or value would corrupt the
// line-oriented record.
var ErrBadField = errors.New("handshake: field breaks record format")

// Writer builds a handshake record on the child side. Fields keep insertion
// order; the sentinel is appended only at serialization time, so the record
// is never observable as "complete" before every field is in it.
type Writer struct {
	fields []field
}

type field struct {
	key   string
	value string
}

// NewWriter returns an empty record writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Set appends a key=value field. Duplicate keys are kept as-is; readers
// take the first occurrence.
func (w *Writer) Set(key, value string) {
	w.fields = append(w.fields, field{key: key, value: value})
}

// SetPort records the bound port under PortKey.
func (w *Writer) SetPort(port int) {
	w.Set(PortKey, fmt.Sprintf("%d", port))
}

// WriteTo serializes the record, sentinel last, to out.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	var buf bytes.Buffer
	for _, f := range w.fields {
		if !validField(f.key, f.value) {
			return 0, fmt.Errorf("%w: %s=%s", ErrBadField, f.key, f.value)
		}
		fmt.Fprintf(&buf, "%s=%s\n", f.key, f.value)
	}
	buf.WriteString(Sentinel)
	buf.WriteByte('\n')

	n, err := out.Write(buf.Bytes())
	return int64(n), err
}

// Commit writes the whole record to path in a single write followed by a
// sync. The single write keeps the partial-read window small, and the
// sentinel guards the rest: a reader that catches a truncated flush sees a
// last line that is not the sentinel and retries.
func (w *Writer) Commit(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open handshake file: %w", err)
	}

	if _, err := w.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync handshake file: %w", err)
	}
	return f.Close()
}

func validField(key, value string) bool {
	if key == "" || key == Sentinel {
		return false
	}
	for _, s := range []string{key, value} {
		for _, r := range s {
			if r == '\n' || r == '\r' {
				return false
			}
		}
	}
	// A '=' in the key would shift the parsed key boundary.
	for _, r := range key {
		if r == '=' {
			return false
		}
	}
	return true
}
