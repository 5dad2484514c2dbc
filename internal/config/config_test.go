package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	yaml := `
storage:
  db_path: /var/lib/techcal/techcal.db
earnings:
  tickers: ["aapl", " msft ", ""]
  api_key: test-key
  calendar:
    relcalid: my.earnings
events:
  series:
    - id: reinvent
      name: "AWS re:Invent"
      queries: ["aws reinvent dates"]
`
	cfg, err := Load(writeTempFile(t, yaml))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Storage.DBPath != "/var/lib/techcal/techcal.db" {
		t.Errorf("Storage.DBPath = %q", cfg.Storage.DBPath)
	}
	if want := []string{"AAPL", "MSFT"}; len(cfg.Earnings.Tickers) != 2 ||
		cfg.Earnings.Tickers[0] != want[0] || cfg.Earnings.Tickers[1] != want[1] {
		t.Errorf("Tickers = %v, want %v", cfg.Earnings.Tickers, want)
	}
	if cfg.Earnings.Calendar.RelCalID != "my.earnings" {
		t.Errorf("Earnings.Calendar.RelCalID = %q", cfg.Earnings.Calendar.RelCalID)
	}
	if len(cfg.Events.Series) != 1 || cfg.Events.Series[0].ID != "reinvent" {
		t.Errorf("Events.Series = %+v", cfg.Events.Series)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_FINNHUB_KEY", "secret123")

	yaml := `
earnings:
  api_key: ${TEST_FINNHUB_KEY}
  tickers: [AAPL]
`
	cfg, err := Load(writeTempFile(t, yaml))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Earnings.APIKey != "secret123" {
		t.Errorf("APIKey = %q, want env-substituted value", cfg.Earnings.APIKey)
	}
}

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := LoadWithDefaults(writeTempFile(t, "earnings:\n  tickers: [AAPL]\n"))
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	if cfg.Storage.DBPath != DefaultDBPath {
		t.Errorf("DBPath = %q, want %q", cfg.Storage.DBPath, DefaultDBPath)
	}
	if cfg.Earnings.BaseURL != DefaultFinnhubBaseURL {
		t.Errorf("BaseURL = %q", cfg.Earnings.BaseURL)
	}
	if cfg.Earnings.DaysAhead != DefaultEarningsDaysAhead || cfg.Earnings.DaysPast != DefaultEarningsDaysPast {
		t.Errorf("earnings window = +%d/-%d", cfg.Earnings.DaysAhead, cfg.Earnings.DaysPast)
	}
	if cfg.Earnings.Calendar.RetentionYears != DefaultEarningsRetentionYears {
		t.Errorf("retention = %d", cfg.Earnings.Calendar.RetentionYears)
	}
	if cfg.Events.Calendar.RelCalID != DefaultEventsRelCalID {
		t.Errorf("events relcalid = %q", cfg.Events.Calendar.RelCalID)
	}
	if cfg.Events.DaysAhead <= cfg.Earnings.DaysAhead {
		t.Error("events display window should look further ahead than earnings")
	}
	if cfg.Research.Model != DefaultResearchModel {
		t.Errorf("research model = %q", cfg.Research.Model)
	}
	if !strings.Contains(cfg.Earnings.Calendar.Description, "No representation or warranty") {
		t.Errorf("calendar description missing disclaimer: %q", cfg.Earnings.Calendar.Description)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing-db-path", func(c *Config) { c.Storage.DBPath = "" }, "storage.db_path"},
		{"retention-too-high", func(c *Config) { c.Earnings.Calendar.RetentionYears = 99 }, "retention_years"},
		{"days-ahead-negative", func(c *Config) { c.Earnings.DaysAhead = -1 }, "days_ahead"},
		{"series-missing-id", func(c *Config) { c.Events.Series = []SeriesConfig{{Name: "X"}} }, "series[0].id"},
		{"series-duplicate-id", func(c *Config) {
			c.Events.Series = []SeriesConfig{{ID: "a", Name: "A"}, {ID: "a", Name: "B"}}
		}, "duplicate id"},
		{"years-ahead-out-of-range", func(c *Config) { c.Research.YearsAhead = 9 }, "years_ahead"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Earnings: EarningsConfig{Tickers: []string{"AAPL"}}}
			cfg.applyDefaults()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate passed, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaultsPass(t *testing.T) {
	cfg := &Config{Earnings: EarningsConfig{Tickers: []string{"AAPL"}}}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed on defaults: %v", err)
	}
}
