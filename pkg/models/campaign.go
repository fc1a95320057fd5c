package models

import "time"

// Campaign is the (profession, city) scoping unit for prospects and runs.
type Campaign struct {
	ID           string
	Profession   string
	City         string
	Description  string
	Timezone     string
	ScheduleDays []string // e.g. "wednesday", "friday", "sunday"
	ScheduleTimes []string // "HH:MM" local time-of-day, ordered
	Mode         CampaignMode
	Status       CampaignStatus
	MaxProspects int
	CreatedAt    time.Time
}

// DefaultScheduleDays and DefaultScheduleTimes are the fixed default
// cadence (Wed/Fri/Sun at 09:00/13:00/20:30 Europe/Rome) seeded onto
// every newly created campaign.
var (
	DefaultScheduleDays  = []string{"wednesday", "friday", "sunday"}
	DefaultScheduleTimes = []string{"09:00", "13:00", "20:30"}
)

// DefaultTimezone is the fixed timezone new campaigns are created in.
const DefaultTimezone = "Europe/Rome"
