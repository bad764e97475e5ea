// Package calendar loads holiday calendars used for working-day
// computation. A calendar is a YAML file listing dates; changing the
// file and regenerating a session recomputes every working-day count,
// never a partial subset.
package calendar

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Holiday is one non-working date, with an optional display name.
type Holiday struct {
	Date time.Time
	Name string
}

// Calendar is a parsed holiday calendar.
type Calendar struct {
	Name     string
	Holidays []Holiday
}

// calendarFile is the YAML schema of a holiday calendar file.
type calendarFile struct {
	Name     string `yaml:"name"`
	Holidays []struct {
		Date string `yaml:"date"`
		Name string `yaml:"name,omitempty"`
	} `yaml:"holidays"`
}

// Load reads and parses a holiday calendar YAML file.
func Load(path string) (*Calendar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading calendar file: %w", err)
	}
	return Parse(data)
}

// Parse parses holiday calendar YAML content.
func Parse(data []byte) (*Calendar, error) {
	var file calendarFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing calendar yaml: %w", err)
	}

	cal := &Calendar{Name: file.Name}
	for _, h := range file.Holidays {
		d, err := time.Parse("2006-01-02", h.Date)
		if err != nil {
			return nil, fmt.Errorf("holiday date %q: %w", h.Date, err)
		}
		cal.Holidays = append(cal.Holidays, Holiday{Date: d, Name: h.Name})
	}
	return cal, nil
}

// DateSet returns the holidays as a lookup set keyed by YYYY-MM-DD,
// the shape the capacity model consumes.
func (c *Calendar) DateSet() map[string]bool {
	if c == nil {
		return nil
	}
	set := make(map[string]bool, len(c.Holidays))
	for _, h := range c.Holidays {
		set[h.Date.Format("2006-01-02")] = true
	}
	return set
}
