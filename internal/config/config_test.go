package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "netlint.json")
	if err := os.WriteFile(path, []byte(`{"rules": {"unused": "off"}}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.Rules["unused"] != "off" {
		t.Fatalf("expected unused rule off, got %q", cfg.Rules["unused"])
	}
	if cfg.IgnoreSignals == nil {
		t.Fatalf("IgnoreSignals should default to an empty list")
	}
}

func TestLoadFileRejectsBadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "netlint.json")
	if err := os.WriteFile(path, []byte(`{`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestRuleSeverityLookup(t *testing.T) {
	cfg := &Config{Rules: map[string]string{"undriven": "error"}}

	if got := cfg.GetRuleSeverity("undriven", "warning"); got != "error" {
		t.Fatalf("expected configured severity, got %q", got)
	}
	if got := cfg.GetRuleSeverity("unused", "warning"); got != "warning" {
		t.Fatalf("expected default severity, got %q", got)
	}
	if !cfg.IsRuleEnabled("undriven") {
		t.Fatalf("error severity should count as enabled")
	}

	cfg.Rules["undriven"] = "off"
	if cfg.IsRuleEnabled("undriven") {
		t.Fatalf("off severity should disable the rule")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "netlint.json")

	cfg := DefaultConfig()
	cfg.IgnoreSignals = []string{"tb_*"}
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(loaded.IgnoreSignals) != 1 || loaded.IgnoreSignals[0] != "tb_*" {
		t.Fatalf("round trip lost ignore patterns: %+v", loaded.IgnoreSignals)
	}
	if loaded.Rules["undriven"] != "warning" {
		t.Fatalf("round trip lost rules: %+v", loaded.Rules)
	}
}
