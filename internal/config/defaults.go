package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultDBPath = "tech_calendar.db"

	DefaultFinnhubBaseURL = "https://finnhub.io/api/v1"
	DefaultAPITimeout     = 30 * time.Second
	DefaultMaxRetries     = 3

	DefaultEarningsICSPath        = "earnings.ics"
	DefaultEarningsRelCalID       = "tech.calendar.earnings"
	DefaultEarningsName           = "Tech Earnings Calendar"
	DefaultEarningsRetentionYears = 5
	DefaultEarningsDaysAhead      = 20
	DefaultEarningsDaysPast       = 10

	DefaultEventsICSPath        = "events.ics"
	DefaultEventsRelCalID       = "tech.calendar.events"
	DefaultEventsName           = "Tech Events Calendar"
	DefaultEventsRetentionYears = 5
	DefaultEventsDaysAhead      = 550
	DefaultEventsDaysPast       = 365

	DefaultResearchModel      = "qwen3"
	DefaultResearchTimeout    = 2 * time.Minute
	DefaultResearchMaxRetries = 3
	DefaultResearchYearsAhead = 1
)

// DefaultCalendarDescription is the disclaimer attached to both feeds when
// the config does not override it.
const DefaultCalendarDescription = "No representation or warranty, express or implied, is made as to the " +
	"accuracy, completeness, or timeliness of this information. Do not rely on " +
	"this calendar or its contents for investment or trading decisions."

func (c *Config) applyDefaults() {
	if c.Storage.DBPath == "" {
		c.Storage.DBPath = DefaultDBPath
	}

	// Earnings defaults
	if c.Earnings.BaseURL == "" {
		c.Earnings.BaseURL = DefaultFinnhubBaseURL
	}
	if c.Earnings.Timeout == 0 {
		c.Earnings.Timeout = DefaultAPITimeout
	}
	if c.Earnings.MaxRetries == 0 {
		c.Earnings.MaxRetries = DefaultMaxRetries
	}
	if c.Earnings.DaysAhead == 0 {
		c.Earnings.DaysAhead = DefaultEarningsDaysAhead
	}
	if c.Earnings.DaysPast == 0 {
		c.Earnings.DaysPast = DefaultEarningsDaysPast
	}
	applyCalendarDefaults(&c.Earnings.Calendar,
		DefaultEarningsICSPath, DefaultEarningsRelCalID, DefaultEarningsName, DefaultEarningsRetentionYears)

	// Events defaults
	if c.Events.DaysAhead == 0 {
		c.Events.DaysAhead = DefaultEventsDaysAhead
	}
	if c.Events.DaysPast == 0 {
		c.Events.DaysPast = DefaultEventsDaysPast
	}
	applyCalendarDefaults(&c.Events.Calendar,
		DefaultEventsICSPath, DefaultEventsRelCalID, DefaultEventsName, DefaultEventsRetentionYears)

	// Research defaults
	if c.Research.Model == "" {
		c.Research.Model = DefaultResearchModel
	}
	if c.Research.Timeout == 0 {
		c.Research.Timeout = DefaultResearchTimeout
	}
	if c.Research.MaxRetries == 0 {
		c.Research.MaxRetries = DefaultResearchMaxRetries
	}
	if c.Research.YearsAhead == 0 {
		c.Research.YearsAhead = DefaultResearchYearsAhead
	}
}

func applyCalendarDefaults(cal *CalendarConfig, icsPath, relcalid, name string, retention int) {
	if cal.ICSPath == "" {
		cal.ICSPath = icsPath
	}
	if cal.RelCalID == "" {
		cal.RelCalID = relcalid
	}
	if cal.Name == "" {
		cal.Name = name
	}
	if cal.Description == "" {
		cal.Description = DefaultCalendarDescription
	}
	if cal.RetentionYears == 0 {
		cal.RetentionYears = retention
	}
}
