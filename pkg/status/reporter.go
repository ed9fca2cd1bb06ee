// Package status implements the one-shot status reporter worker processes
// use to emit structured state as a single JSON line. It holds no state
// across process invocations and writes to a caller-supplied sink, so test
// suites can capture output without touching process-wide streams.
package status

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// TimestampKey is the reserved key for the optional numeric timestamp.
const TimestampKey = "_timestamp"

// Reporter accumulates key/value pairs and serializes them as a single-line
// JSON object with keys in sorted order.
type Reporter struct {
	out    io.Writer
	fields map[string]any
}

// NewReporter creates a reporter writing to out. A nil out falls back to
// os.Stdout, the conventional channel a parent pipeline consumes.
func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	return &Reporter{
		out:    out,
		fields: make(map[string]any),
	}
}

// Add records a field. A repeated key overwrites the previous value.
func (r *Reporter) Add(key string, value any) {
	r.fields[key] = value
}

// AddTimestamp records ts (seconds since epoch) under TimestampKey.
func (r *Reporter) AddTimestamp(ts float64) {
	r.Add(TimestampKey, ts)
}

// Emit serializes the accumulated fields and writes them as one line.
// Serialization failures surface to the caller; nothing is written in that
// case.
func (r *Reporter) Emit() error {
	data, err := json.Marshal(r.fields)
	if err != nil {
		return fmt.Errorf("serialize status: %w", err)
	}
	data = append(data, '\n')
	if _, err := r.out.Write(data); err != nil {
		return fmt.Errorf("emit status: %w", err)
	}
	return nil
}
