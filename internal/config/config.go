package config

import "time"

// Config is the root configuration for the techcal tool.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Earnings EarningsConfig `yaml:"earnings"`
	Events   EventsConfig   `yaml:"events"`
	Research ResearchConfig `yaml:"research"`
}

// StorageConfig holds the embedded deduplication database settings.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// CalendarConfig holds the output settings for one ICS feed.
type CalendarConfig struct {
	ICSPath        string `yaml:"ics_path"`
	RelCalID       string `yaml:"relcalid"`
	Name           string `yaml:"name"`
	Description    string `yaml:"description"`
	RetentionYears int    `yaml:"retention_years"`
}

// EarningsConfig holds the earnings workflow settings.
type EarningsConfig struct {
	Calendar   CalendarConfig `yaml:"calendar"`
	Tickers    []string       `yaml:"tickers"`
	APIKey     string         `yaml:"api_key"` // Falls back to TC_FINNHUB_API_KEY
	BaseURL    string         `yaml:"base_url"`
	Timeout    time.Duration  `yaml:"timeout"`
	MaxRetries int            `yaml:"max_retries"`
	DaysAhead  int            `yaml:"days_ahead"`
	DaysPast   int            `yaml:"days_past"`
}

// EventsConfig holds the annual events workflow settings.
type EventsConfig struct {
	Calendar  CalendarConfig `yaml:"calendar"`
	Series    []SeriesConfig `yaml:"series"`
	DaysAhead int            `yaml:"days_ahead"`
	DaysPast  int            `yaml:"days_past"`
}

// SeriesConfig defines one annual event series to research.
type SeriesConfig struct {
	ID      string   `yaml:"id"`
	Name    string   `yaml:"name"`
	Queries []string `yaml:"queries"`
}

// ResearchConfig holds the local LLM settings for event lookups.
type ResearchConfig struct {
	Model      string        `yaml:"model"`
	Host       string        `yaml:"host"` // Falls back to OLLAMA_HOST
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
	YearsAhead int           `yaml:"years_ahead"`
}
