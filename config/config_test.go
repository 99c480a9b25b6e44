package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `api:
  base_url: "http://game.example:8000"
  timeout_seconds: 5
poll:
  session_seconds: 2
action_log:
  backend: "rotating"
  path: "actions.jsonl"
  max_size_mb: 5
metrics:
  prometheus:
    enabled: true
    address: ":9190"
store:
  snapshot_path: "state.json"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"api.base_url", cfg.API.BaseURL, "http://game.example:8000"},
		{"api.timeout_seconds", cfg.API.TimeoutSeconds, 5},
		{"poll.session_seconds", cfg.Poll.SessionSeconds, 2},
		{"poll.financials_seconds", cfg.Poll.FinancialsSeconds, 5},
		{"action_log.backend", cfg.ActionLog.Backend, "rotating"},
		{"action_log.path", cfg.ActionLog.Path, "actions.jsonl"},
		{"metrics.prometheus.enabled", cfg.Metrics.Prometheus.Enabled, true},
		{"metrics.prometheus.address", cfg.Metrics.Prometheus.Address, ":9190"},
		{"store.snapshot_path", cfg.Store.SnapshotPath, "state.json"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("api:\n  base_url: \"http://file.example\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("MARKETCTL_API__BASE_URL", "http://env.example")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.API.BaseURL != "http://env.example" {
		t.Errorf("env override not applied: %s", cfg.API.BaseURL)
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	if _, err := Load("config.toml"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestLoadInvalidInflux(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `metrics:
  influx:
    enabled: true
    url: ""
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected influx validation error")
	}
}
