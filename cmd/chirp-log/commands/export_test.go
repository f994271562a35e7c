package commands

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chirp-protocol/chirp-go/pkg/log"
)

func TestRunExportJSONL(t *testing.T) {
	path := writeTranscript(t)
	out := filepath.Join(t.TempDir(), "out.jsonl")

	if err := RunExport(path, "jsonl", out); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()

	var lines int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines++
		var je map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &je); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", lines, err)
		}
		if je["connection_id"] == "" {
			t.Errorf("line %d missing connection_id", lines)
		}
	}
	if lines != 4 {
		t.Errorf("exported %d lines, want 4", lines)
	}
}

func TestRunExportCSV(t *testing.T) {
	path := writeTranscript(t)
	out := filepath.Join(t.TempDir(), "out.csv")

	if err := RunExport(path, "csv", out); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	content := string(data)
	// Header plus four events.
	if got := strings.Count(strings.TrimSpace(content), "\n") + 1; got != 5 {
		t.Errorf("exported %d rows, want 5:\n%s", got, content)
	}
	if !strings.HasPrefix(content, "timestamp,") {
		t.Errorf("missing CSV header:\n%s", content)
	}
}

func TestRunExportUnknownFormat(t *testing.T) {
	path := writeTranscript(t)
	if err := RunExport(path, "xml", ""); err == nil {
		t.Error("RunExport accepted an unknown format")
	}
}

func TestRunFilterByCategory(t *testing.T) {
	path := writeTranscript(t)
	out := filepath.Join(t.TempDir(), "filtered.clog")

	opts := FilterOptions{Output: out, Category: "element"}
	if err := RunFilter(path, opts); err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}

	events, err := log.ReadAll(out)
	if err != nil {
		t.Fatalf("ReadAll on filtered output: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("filtered transcript has %d events, want 2", len(events))
	}
	for _, e := range events {
		if e.Category != log.CategoryElement {
			t.Errorf("filtered transcript contains category %s", e.Category)
		}
	}
}
