package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunStats(t *testing.T) {
	path := writeTranscript(t)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Total Events: 4",
		"Connections: 2",
		"message:",
		"presence:",
		"alice@example.org/Test",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q:\n%s", want, out)
		}
	}
}

func TestRunStatsMissingFile(t *testing.T) {
	if err := RunStats("does-not-exist.clog", &bytes.Buffer{}); err == nil {
		t.Error("RunStats accepted a missing file")
	}
}
