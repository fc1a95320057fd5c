package api

import (
	"time"

	"github.com/eurekai25/prospecting-engine/pkg/models"
	"github.com/eurekai25/prospecting-engine/pkg/scheduler"
)

// CampaignResponse is the body of POST /api/campaigns and the list entries
// of GET /api/campaigns.
type CampaignResponse struct {
	ID            string   `json:"id"`
	Profession    string   `json:"profession"`
	City          string   `json:"city"`
	Description   string   `json:"description"`
	Timezone      string   `json:"timezone"`
	ScheduleDays  []string `json:"schedule_days"`
	ScheduleTimes []string `json:"schedule_times"`
	Mode          string   `json:"mode"`
	Status        string   `json:"status"`
	MaxProspects  int      `json:"max_prospects"`
	CreatedAt     time.Time `json:"created_at"`
}

func newCampaignResponse(c *models.Campaign) CampaignResponse {
	return CampaignResponse{
		ID:            c.ID,
		Profession:    c.Profession,
		City:          c.City,
		Description:   c.Description,
		Timezone:      c.Timezone,
		ScheduleDays:  c.ScheduleDays,
		ScheduleTimes: c.ScheduleTimes,
		Mode:          string(c.Mode),
		Status:        string(c.Status),
		MaxProspects:  c.MaxProspects,
		CreatedAt:     c.CreatedAt,
	}
}

// StatusCounts tallies prospects per lifecycle status.
type StatusCounts map[models.ProspectStatus]int

// CampaignDetailResponse is the body of GET /api/campaigns/:id: the
// campaign record plus per-status prospect counts, the count currently
// eligible for outreach, and the scheduler's live job snapshot.
type CampaignDetailResponse struct {
	CampaignResponse
	ProspectCounts   StatusCounts        `json:"prospect_counts"`
	EligibleCount    int                 `json:"eligible_count"`
	SchedulerRunning bool                `json:"scheduler_running"`
	ScheduledJobs    []ScheduledJobResponse `json:"scheduled_jobs"`
}

// ScheduledJobResponse is one entry of CampaignDetailResponse.ScheduledJobs:
// a cron job's ID, the trigger spec that drives it, and its next run.
// NextRun is omitted if the scheduler isn't currently running.
type ScheduledJobResponse struct {
	ID      string    `json:"id"`
	Trigger string    `json:"trigger"`
	NextRun *time.Time `json:"next_run,omitempty"`
}

func newScheduledJobResponse(j scheduler.JobStatus) ScheduledJobResponse {
	resp := ScheduledJobResponse{ID: j.ID, Trigger: j.Trigger}
	if !j.NextRun.IsZero() {
		resp.NextRun = &j.NextRun
	}
	return resp
}

// ProspectResponse is the JSON shape of a single prospect, with its
// competitor list capped at 5 for display (the stored list may already be
// capped at ingestion, this re-caps defensively for the response only).
type ProspectResponse struct {
	ID                 string   `json:"id"`
	CampaignID         string   `json:"campaign_id"`
	Name               string   `json:"name"`
	City               string   `json:"city"`
	Profession         string   `json:"profession"`
	Website            string   `json:"website"`
	Phone              string   `json:"phone"`
	Email              string   `json:"email"`
	ReviewsCount       int      `json:"reviews_count"`
	GoogleAdsActive    bool     `json:"google_ads_active"`
	CompetitorsCited   []string `json:"competitors_cited"`
	IAVisibilityScore  *float64 `json:"ia_visibility_score"`
	EligibilityFlag    bool     `json:"eligibility_flag"`
	LandingToken       string   `json:"landing_token"`
	VideoURL           string   `json:"video_url"`
	ScreenshotURL      string   `json:"screenshot_url"`
	Status             string   `json:"status"`
	ScoreJustification string   `json:"score_justification"`
}

func newProspectResponse(p *models.Prospect) ProspectResponse {
	comps := p.CompetitorsCited
	if len(comps) > 5 {
		comps = comps[:5]
	}
	return ProspectResponse{
		ID:                 p.ID,
		CampaignID:         p.CampaignID,
		Name:               p.Name,
		City:               p.City,
		Profession:         p.Profession,
		Website:            p.Website,
		Phone:              p.Phone,
		Email:              p.Email,
		ReviewsCount:       p.ReviewsCount,
		GoogleAdsActive:    p.GoogleAdsActive,
		CompetitorsCited:   comps,
		IAVisibilityScore:  p.IAVisibilityScore,
		EligibilityFlag:    p.EligibilityFlag,
		LandingToken:       p.LandingToken,
		VideoURL:           p.VideoURL,
		ScreenshotURL:      p.ScreenshotURL,
		Status:             string(p.Status),
		ScoreJustification: p.ScoreJustification,
	}
}

// ScoreResponse is the body of GET /api/prospects/:id/score.
type ScoreResponse struct {
	Score             float64  `json:"score"`
	Justification     string   `json:"justification"`
	StableCompetitors []string `json:"stable_competitors"`
	EmailOK           bool     `json:"email_ok"`
}

// RunResponse is one entry of GET /api/prospects/:id/runs.
type RunResponse struct {
	ID              string    `json:"id"`
	ProspectID      string    `json:"prospect_id"`
	Timestamp       time.Time `json:"timestamp"`
	Model           string    `json:"model"`
	Queries         []string  `json:"queries"`
	RawAnswers      []string  `json:"raw_answers"`
	MentionedTarget bool      `json:"mentioned_target"`
	MentionPerQuery []bool    `json:"mention_per_query"`
	Notes           string    `json:"notes"`
}

func newRunResponse(r models.TestRun) RunResponse {
	return RunResponse{
		ID:              r.ID,
		ProspectID:      r.ProspectID,
		Timestamp:       r.Timestamp,
		Model:           string(r.Model),
		Queries:         r.Queries,
		RawAnswers:      r.RawAnswers,
		MentionedTarget: r.MentionedTarget,
		MentionPerQuery: r.MentionPerQuery,
		Notes:           r.Notes,
	}
}

// TestSweepResponse is the body of POST /api/campaigns/:id/ia-test.
type TestSweepResponse struct {
	Total       int      `json:"total"`
	Processed   int      `json:"processed"`
	RunsCreated int      `json:"runs_created"`
	Errors      []string `json:"errors,omitempty"`
	DryRun      bool     `json:"dry_run"`
}

// GenerateResponse is the body of POST /api/campaigns/:id/generate.
// SendQueueCSV is the path the send-queue CSV was written to on disk, not
// its content.
type GenerateResponse struct {
	Generated    int      `json:"generated"`
	ProspectIDs  []string `json:"prospect_ids"`
	SendQueueCSV string   `json:"send_queue_csv,omitempty"`
}
