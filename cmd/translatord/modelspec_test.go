package main

import "testing"

func TestParseModelSpec(t *testing.T) {
	spec, err := parseModelSpec("uk:en=/models/uk-en.gguf")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if spec.Source != "uk" || spec.Target != "en" || spec.Path != "/models/uk-en.gguf" {
		t.Fatalf("spec=%+v", spec)
	}
}

func TestParseModelSpecTrimsSpaces(t *testing.T) {
	spec, err := parseModelSpec(" uk : en = /models/a.gguf ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if spec.Source != "uk" || spec.Target != "en" || spec.Path != "/models/a.gguf" {
		t.Fatalf("spec=%+v", spec)
	}
}

func TestParseModelSpecPathWithEquals(t *testing.T) {
	// Only the first '=' separates direction from path.
	spec, err := parseModelSpec("uk:en=/models/q=4.gguf")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if spec.Path != "/models/q=4.gguf" {
		t.Fatalf("path=%q", spec.Path)
	}
}

func TestParseModelSpecInvalid(t *testing.T) {
	for _, raw := range []string{
		"",
		"uk:en",
		"uken=/models/a.gguf",
		"uk:=/models/a.gguf",
		":en=/models/a.gguf",
		"uk:en=",
		"uk:en=   ",
	} {
		if _, err := parseModelSpec(raw); err == nil {
			t.Errorf("parseModelSpec(%q): expected error", raw)
		}
	}
}
