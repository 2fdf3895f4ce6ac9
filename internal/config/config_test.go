package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Fatal("Load() with explicit missing file should fail")
	}

	// No explicit file: missing config falls back to defaults.
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.WarningDays != 7 {
		t.Errorf("WarningDays = %d, want 7", cfg.WarningDays)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.Timeout)
	}
	if cfg.NotifyEnabled {
		t.Error("NotifyEnabled should default to false")
	}
	if cfg.OutputDir != "results" || cfg.OutputFormat != "json" {
		t.Errorf("output defaults = %s/%s, want results/json", cfg.OutputDir, cfg.OutputFormat)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", `
monitoring:
  warning_days: 14
  timeout_seconds: 5
notify:
  enabled: true
  webhook_url: https://hooks.example.com/notify
  weekly_report: true
  target_id: ops-alerts
logging:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.WarningDays != 14 {
		t.Errorf("WarningDays = %d, want 14", cfg.WarningDays)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
	if !cfg.NotifyEnabled || cfg.WebhookURL != "https://hooks.example.com/notify" {
		t.Errorf("notify settings not loaded: enabled=%v url=%s", cfg.NotifyEnabled, cfg.WebhookURL)
	}
	if !cfg.WeeklyReport || cfg.NotifyTargetID != "ops-alerts" {
		t.Errorf("weekly=%v target=%s, want true/ops-alerts", cfg.WeeklyReport, cfg.NotifyTargetID)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", cfg.LogLevel)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CERTSENTRY_MONITORING_WARNING_DAYS", "30")
	t.Setenv("CERTSENTRY_NOTIFY_WEBHOOK_URL", "https://env.example.com/hook")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.WarningDays != 30 {
		t.Errorf("WarningDays = %d, want env override 30", cfg.WarningDays)
	}
	if cfg.WebhookURL != "https://env.example.com/hook" {
		t.Errorf("WebhookURL = %s, want env override", cfg.WebhookURL)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", `
notify:
  enabled: true
`)

	if _, err := Load(path); err == nil {
		t.Fatal("Load() should reject notifications enabled without a webhook URL")
	}
}

func TestLoadSitesJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "sites.json", `{
  "sites": [
    {"name": "Example", "url": "https://example.com"},
    {"name": "Disabled", "url": "https://off.example.com", "enabled": false}
  ]
}`)

	sites, err := LoadSites(path)
	if err != nil {
		t.Fatalf("LoadSites() error: %v", err)
	}
	if len(sites) != 2 {
		t.Fatalf("got %d sites, want 2", len(sites))
	}
	if sites[0].Name != "Example" || !sites[0].IsEnabled() {
		t.Errorf("sites[0] = %+v, want enabled Example", sites[0])
	}
	if sites[1].IsEnabled() {
		t.Error("sites[1] should be disabled")
	}
}

func TestLoadSitesYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "sites.yaml", `
sites:
  - name: Example
    url: https://example.com
  - name: Pinned
    url: https://example.com:8443
    enabled: true
`)

	sites, err := LoadSites(path)
	if err != nil {
		t.Fatalf("LoadSites() error: %v", err)
	}
	if len(sites) != 2 {
		t.Fatalf("got %d sites, want 2", len(sites))
	}
	if sites[1].URL != "https://example.com:8443" || !sites[1].IsEnabled() {
		t.Errorf("sites[1] = %+v", sites[1])
	}
}

func TestLoadSitesErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "nope.json")},
		{"malformed json", writeFile(t, dir, "bad.json", `{"sites": [`)},
		{"malformed yaml", writeFile(t, dir, "bad.yaml", "sites:\n  - name: [")},
		{"empty site list", writeFile(t, dir, "empty.json", `{"sites": []}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadSites(tt.path); err == nil {
				t.Error("LoadSites() = nil, want error")
			}
		})
	}
}
