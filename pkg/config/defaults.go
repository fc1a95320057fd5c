package config

import "github.com/eurekai25/prospecting-engine/pkg/models"

// Defaults contains system-wide default values applied when a campaign does
// not specify its own. Kept separate from Config so callers constructing a
// models.Campaign by hand (tests, the admin API) can reach for the same
// values the HTTP layer uses.
type Defaults struct {
	ScheduleDays  []string
	ScheduleTimes []string
	Timezone      string
	Mode          models.CampaignMode
}

// NewDefaults returns the standard campaign defaults: testing on Wednesday,
// Friday and Sunday at 09:00/13:00/20:30 Europe/Rome, in auto-test mode.
func NewDefaults() Defaults {
	return Defaults{
		ScheduleDays:  models.DefaultScheduleDays,
		ScheduleTimes: models.DefaultScheduleTimes,
		Timezone:      models.DefaultTimezone,
		Mode:          models.ModeAutoTest,
	}
}

// ApplyTo fills zero-valued fields of a campaign with the defaults.
func (d Defaults) ApplyTo(c *models.Campaign) {
	if len(c.ScheduleDays) == 0 {
		c.ScheduleDays = d.ScheduleDays
	}
	if len(c.ScheduleTimes) == 0 {
		c.ScheduleTimes = d.ScheduleTimes
	}
	if c.Timezone == "" {
		c.Timezone = d.Timezone
	}
	if c.Mode == "" {
		c.Mode = d.Mode
	}
}
