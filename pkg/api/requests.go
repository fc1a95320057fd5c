package api

// CreateCampaignRequest is the body of POST /api/campaigns.
type CreateCampaignRequest struct {
	Profession    string   `json:"profession" binding:"required"`
	City          string   `json:"city" binding:"required"`
	Description   string   `json:"description"`
	Timezone      string   `json:"timezone"`
	ScheduleDays  []string `json:"schedule_days"`
	ScheduleTimes []string `json:"schedule_times"`
	Mode          string   `json:"mode"`
	MaxProspects  int      `json:"max_prospects"`
}

// IngestProspectRequest is one entry of the body of
// POST /api/campaigns/:id/prospects.
type IngestProspectRequest struct {
	Name            string   `json:"name" binding:"required"`
	City            string   `json:"city" binding:"required"`
	Profession      string   `json:"profession" binding:"required"`
	Website         string   `json:"website"`
	Phone           string   `json:"phone"`
	Email           string   `json:"email"`
	ReviewsCount    int      `json:"reviews_count"`
	GoogleAdsActive bool     `json:"google_ads_active"`
	CompetitorsCited []string `json:"competitors_cited"`
}

// IngestProspectsRequest is the body of POST /api/campaigns/:id/prospects.
type IngestProspectsRequest struct {
	Prospects []IngestProspectRequest `json:"prospects" binding:"required,min=1"`
}

// SetAssetsRequest is the body of POST /api/prospects/:id/assets.
type SetAssetsRequest struct {
	VideoURL      string `json:"video_url" binding:"required"`
	ScreenshotURL string `json:"screenshot_url" binding:"required"`
}
