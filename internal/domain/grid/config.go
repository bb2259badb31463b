package grid

import (
	"time"

	"applytrack/internal/domain/job"
)

const (
	// DefaultSaveDelay is the quiet period after the last edit before a
	// row's save fires.
	DefaultSaveDelay = 1000 * time.Millisecond

	// DefaultDuplicateThreshold is the similarity two rows must reach on
	// both company name and title to be flagged near-duplicates.
	DefaultDuplicateThreshold = 0.75

	// DefaultApplicantsThreshold splits favorable from unfavorable
	// competition on the applicants column.
	DefaultApplicantsThreshold = 25
)

// Calendar-day offsets for auto-populated follow-up dates.
const (
	followUpDaysApplied   = 3
	followUpDaysFirstSent = 5
)

// Config tunes one table instance. Zero values fall back to the defaults
// above; the save delay is one constant for the whole table, never
// per-field.
type Config struct {
	SaveDelay           time.Duration
	DuplicateThreshold  float64
	ApplicantsThreshold int
	ListLimit           int
}

func (c Config) withDefaults() Config {
	if c.SaveDelay <= 0 {
		c.SaveDelay = DefaultSaveDelay
	}
	if c.DuplicateThreshold <= 0 {
		c.DuplicateThreshold = DefaultDuplicateThreshold
	}
	if c.ApplicantsThreshold <= 0 {
		c.ApplicantsThreshold = DefaultApplicantsThreshold
	}
	if c.ListLimit <= 0 {
		c.ListLimit = job.MaxListLimit
	}
	return c
}
