package qrcode

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestRequestASCII(t *testing.T) {
	out, err := RequestASCII("665f1c2e9b")
	if err != nil {
		t.Fatalf("RequestASCII failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) < 10 {
		t.Fatalf("expected a multi-line code, got %d lines", len(lines))
	}

	width := utf8.RuneCountInString(lines[0])
	for i, line := range lines {
		if n := utf8.RuneCountInString(line); n != width {
			t.Errorf("line %d has width %d, want %d", i, n, width)
		}
	}
	if !strings.ContainsAny(out, "█▀▄") {
		t.Error("expected block characters in output")
	}
}

func TestRequestASCII_Deterministic(t *testing.T) {
	a, _ := RequestASCII("r1")
	b, _ := RequestASCII(" r1 ")
	if a != b {
		t.Error("expected identical output for the same trimmed id")
	}
}

func TestRequestASCII_EmptyID(t *testing.T) {
	if _, err := RequestASCII("  "); !errors.Is(err, ErrEmptyRequestID) {
		t.Errorf("expected ErrEmptyRequestID, got %v", err)
	}
}

func TestPayload(t *testing.T) {
	if got := Payload("abc"); got != "carmate:service-request:abc" {
		t.Errorf("unexpected payload %q", got)
	}
}
