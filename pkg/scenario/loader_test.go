package scenario

import (
	"errors"
	"testing"
)

func TestParseValidScenario(t *testing.T) {
	data := []byte(`
id: smoke
description: minimal
steps:
  - action: connect
  - action: expect-depth
    depth: 0
`)
	sc, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if sc.ID != "smoke" {
		t.Errorf("ID = %q, want \"smoke\"", sc.ID)
	}
	if len(sc.Steps) != 2 {
		t.Fatalf("parsed %d steps, want 2", len(sc.Steps))
	}
	if sc.Steps[1].Depth == nil || *sc.Steps[1].Depth != 0 {
		t.Errorf("depth not parsed: %+v", sc.Steps[1])
	}
}

func TestParseRejectsMissingID(t *testing.T) {
	_, err := Parse([]byte("steps:\n  - action: connect\n"))
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("Parse returned %T, want *LoadError", err)
	}
}

func TestParseRejectsEmptySteps(t *testing.T) {
	if _, err := Parse([]byte("id: empty\n")); err == nil {
		t.Error("Parse accepted a scenario without steps")
	}
}

func TestParseRejectsUnknownAction(t *testing.T) {
	data := []byte(`
id: bad
steps:
  - action: teleport
`)
	if _, err := Parse(data); err == nil {
		t.Error("Parse accepted an unknown action")
	}
}

func TestParseRejectsBadWait(t *testing.T) {
	data := []byte(`
id: bad-wait
steps:
  - action: expect-sent
    wait: soon
`)
	if _, err := Parse(data); err == nil {
		t.Error("Parse accepted an unparseable wait")
	}
}

func TestParseRejectsBadYAML(t *testing.T) {
	if _, err := Parse([]byte("{not yaml")); err == nil {
		t.Error("Parse accepted malformed YAML")
	}
}

func TestLoadDirectory(t *testing.T) {
	scenarios, err := LoadDirectory("testdata")
	if err != nil {
		t.Fatalf("LoadDirectory failed: %v", err)
	}
	if len(scenarios) != 2 {
		t.Fatalf("loaded %d scenarios, want 2", len(scenarios))
	}

	ids := map[string]bool{}
	for _, sc := range scenarios {
		ids[sc.ID] = true
	}
	if !ids["basic-session"] || !ids["feature-announcement"] {
		t.Errorf("loaded scenario ids = %v", ids)
	}
}

func TestScenarioConfigDefaults(t *testing.T) {
	sc := &Scenario{ID: "defaults"}
	cfg := sc.Config()
	if cfg.Domain != "example.org" || cfg.Username != "sim" {
		t.Errorf("Config() = %+v, want conntest defaults", cfg)
	}
}
