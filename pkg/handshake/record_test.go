package handshake

import (
	"bytes"
	"errors"
	"testing"
)

func TestParsePort_CompleteRecord(t *testing.T) {
	port, err := ParsePort([]byte("foo=bar\nsock=8421\nEOF\n"))
	if err != nil {
		t.Fatalf("ParsePort failed: %v", err)
	}
	if port != 8421 {
		t.Errorf("Expected 8421, got %d", port)
	}
}

func TestParsePort_NoTrailingNewline(t *testing.T) {
	port, err := ParsePort([]byte("sock=8421\nEOF"))
	if err != nil {
		t.Fatalf("ParsePort failed: %v", err)
	}
	if port != 8421 {
		t.Errorf("Expected 8421, got %d", port)
	}
}

func TestParsePort_Incomplete(t *testing.T) {
	cases := map[string]string{
		"empty":           "",
		"no sentinel":     "sock=8421\n",
		"truncated value": "sock=84",
		"sentinel not last": "sock=8421\nEOF\nextra\n",
		"blank after sentinel": "sock=8421\nEOF\n\n",
	}
	for name, content := range cases {
		if _, err := ParsePort([]byte(content)); !errors.Is(err, ErrIncomplete) {
			t.Errorf("%s: expected ErrIncomplete, got %v", name, err)
		}
	}
}

func TestParsePort_FirstKeyWins(t *testing.T) {
	port, err := ParsePort([]byte("sock=1111\nsock=2222\nEOF\n"))
	if err != nil {
		t.Fatalf("ParsePort failed: %v", err)
	}
	if port != 1111 {
		t.Errorf("Expected first value 1111, got %d", port)
	}
}

func TestParsePort_IgnoresOtherLines(t *testing.T) {
	content := "starting up\npid=4242\nsocket=9999\nsock=80\nEOF\n"
	port, err := ParsePort([]byte(content))
	if err != nil {
		t.Fatalf("ParsePort failed: %v", err)
	}
	if port != 80 {
		t.Errorf("Expected 80, got %d", port)
	}
}

func TestParsePort_MissingKeyIsFatal(t *testing.T) {
	_, err := ParsePort([]byte("foo=bar\nEOF\n"))
	if !errors.Is(err, ErrPortMissing) {
		t.Fatalf("Expected ErrPortMissing, got %v", err)
	}
}

func TestParsePort_InvalidValueIsFatal(t *testing.T) {
	for _, content := range []string{
		"sock=eighty\nEOF\n",
		"sock=-1\nEOF\n",
		"sock=\nEOF\n",
		// First occurrence is authoritative even when a later one parses.
		"sock=junk\nsock=80\nEOF\n",
	} {
		if _, err := ParsePort([]byte(content)); !errors.Is(err, ErrPortInvalid) {
			t.Errorf("%q: expected ErrPortInvalid, got %v", content, err)
		}
	}
}

func TestParsePort_ZeroIsParseable(t *testing.T) {
	port, err := ParsePort([]byte("sock=0\nEOF\n"))
	if err != nil {
		t.Fatalf("ParsePort failed: %v", err)
	}
	if port != 0 {
		t.Errorf("Expected 0, got %d", port)
	}
}

func TestWriter_RoundTrip(t *testing.T) {
	w := NewWriter()
	w.Set("service", "worker")
	w.SetPort(8421)

	buf := &bytes.Buffer{}
	if _, err := w.WriteTo(buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}

	want := "service=worker\nsock=8421\nEOF\n"
	if buf.String() != want {
		t.Errorf("Record mismatch:\n got  %q\n want %q", buf.String(), want)
	}

	port, err := ParsePort(buf.Bytes())
	if err != nil {
		t.Fatalf("ParsePort failed: %v", err)
	}
	if port != 8421 {
		t.Errorf("Expected 8421, got %d", port)
	}
}

func TestWriter_EmptyRecordIsSentinelOnly(t *testing.T) {
	buf := &bytes.Buffer{}
	if _, err := NewWriter().WriteTo(buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if buf.String() != "EOF\n" {
		t.Errorf("Expected bare sentinel, got %q", buf.String())
	}
	if _, err := ParsePort(buf.Bytes()); !errors.Is(err, ErrPortMissing) {
		t.Errorf("Expected ErrPortMissing, got %v", err)
	}
}

func TestWriter_RejectsFormatBreakingFields(t *testing.T) {
	cases := []struct{ key, value string }{
		{"multi", "line\nvalue"},
		{"key=with=eq", "v"},
		{"", "v"},
		{"EOF", "v"},
	}
	for _, c := range cases {
		w := NewWriter()
		w.Set(c.key, c.value)
		if _, err := w.WriteTo(&bytes.Buffer{}); !errors.Is(err, ErrBadField) {
			t.Errorf("%s=%s: expected ErrBadField, got %v", c.key, c.value, err)
		}
	}
}
