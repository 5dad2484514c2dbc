package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Storage.DBPath == "" {
		return errors.New("storage.db_path is required")
	}

	if err := c.Earnings.Calendar.validate("earnings.calendar"); err != nil {
		return err
	}
	if err := validateDays("earnings", c.Earnings.DaysAhead, c.Earnings.DaysPast, 365); err != nil {
		return err
	}
	if c.Earnings.MaxRetries < 0 {
		return errors.New("earnings.max_retries must be >= 0")
	}

	if err := c.Events.Calendar.validate("events.calendar"); err != nil {
		return err
	}
	if err := validateDays("events", c.Events.DaysAhead, c.Events.DaysPast, 3650); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Events.Series))
	for i, s := range c.Events.Series {
		if s.ID == "" {
			return fmt.Errorf("events.series[%d].id is required", i)
		}
		if s.Name == "" {
			return fmt.Errorf("events.series[%d].name is required", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("events.series has duplicate id %q", s.ID)
		}
		seen[s.ID] = true
	}

	if c.Research.Model == "" {
		return errors.New("research.model is required")
	}
	if c.Research.YearsAhead < 0 || c.Research.YearsAhead > 5 {
		return fmt.Errorf("research.years_ahead must be between 0 and 5, got %d", c.Research.YearsAhead)
	}

	return nil
}

func (cal *CalendarConfig) validate(prefix string) error {
	if cal.ICSPath == "" {
		return fmt.Errorf("%s.ics_path is required", prefix)
	}
	if cal.RelCalID == "" {
		return fmt.Errorf("%s.relcalid is required", prefix)
	}
	if cal.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if cal.RetentionYears < 1 || cal.RetentionYears > 50 {
		return fmt.Errorf("%s.retention_years must be between 1 and 50, got %d", prefix, cal.RetentionYears)
	}
	return nil
}

func validateDays(prefix string, ahead, past, max int) error {
	if ahead < 0 || ahead > max {
		return fmt.Errorf("%s.days_ahead must be between 0 and %d, got %d", prefix, max, ahead)
	}
	if past < 0 || past > max {
		return fmt.Errorf("%s.days_past must be between 0 and %d, got %d", prefix, max, past)
	}
	return nil
}
