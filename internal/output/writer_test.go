package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriterFormat(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WriteEntry(1, "docA", 1, 0.5, "run-id"); err != nil {
		t.Fatalf("WriteEntry: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	want := "1 Q0 docA 1 0.500000000 run-id\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriterMultipleEntries(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteEntry(9, "a", 1, 1.0, "r")
	w.WriteEntry(9, "b", 2, 0.9, "r")
	w.Flush()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %v", len(lines), lines)
	}
}
