package status

import (
	"bytes"
	"strings"
	"testing"
)

func TestReporter_SortedSingleLine(t *testing.T) {
	buf := &bytes.Buffer{}
	r := NewReporter(buf)
	r.Add("zeta", 1)
	r.Add("alpha", "a")
	r.Add("mid", true)

	if err := r.Emit(); err != nil {
		t.Fatalf("Emit failed: %v", err)
	}

	out := buf.String()
	if !strings.HasSuffix(out, "\n") || strings.Count(out, "\n") != 1 {
		t.Errorf("Expected exactly one line, got %q", out)
	}
	// encoding/json sorts map keys, which is the contract consumers rely on.
	want := `{"alpha":"a","mid":true,"zeta":1}` + "\n"
	if out != want {
		t.Errorf("Output mismatch:\n got  %q\n want %q", out, want)
	}
}

func TestReporter_Timestamp(t *testing.T) {
	buf := &bytes.Buffer{}
	r := NewReporter(buf)
	r.Add("gpu.0.temp", 61.5)
	r.AddTimestamp(1724572800.25)

	if err := r.Emit(); err != nil {
		t.Fatalf("Emit failed: %v", err)
	}

	want := `{"_timestamp":1724572800.25,"gpu.0.temp":61.5}` + "\n"
	if buf.String() != want {
		t.Errorf("Output mismatch:\n got  %q\n want %q", buf.String(), want)
	}
}

func TestReporter_OverwriteKey(t *testing.T) {
	buf := &bytes.Buffer{}
	r := NewReporter(buf)
	r.Add("state", "starting")
	r.Add("state", "listening")

	if err := r.Emit(); err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	if buf.String() != `{"state":"listening"}`+"\n" {
		t.Errorf("Expected last value to win, got %q", buf.String())
	}
}

func TestReporter_SerializationFailure(t *testing.T) {
	buf := &bytes.Buffer{}
	r := NewReporter(buf)
	r.Add("bad", func() {})

	if err := r.Emit(); err == nil {
		t.Fatal("Expected serialization error")
	}
	if buf.Len() != 0 {
		t.Errorf("Nothing should be written on failure, got %q", buf.String())
	}
}
