package models

import "time"

// Prospect is the central entity tracked through the lifecycle: a local
// business evaluated for AI-search invisibility.
type Prospect struct {
	ID         string
	CampaignID string
	Name       string
	City       string
	Profession string
	Website    string // optional
	Phone      string // optional
	Email      string // optional; the Deliverable Generator always leaves
	// this blank in its send-queue CSV (no source of real addresses from
	// scanning), but the field exists so a manually-ingested prospect can
	// carry one.
	ReviewsCount     int  // optional, 0 means unknown/none
	GoogleAdsActive  bool // optional
	CompetitorsCited []string // ordered, capped at 5
	IAVisibilityScore *float64 // nullable, 0.0-10.0
	EligibilityFlag   bool
	LandingToken      string // opaque 24-char token, globally unique
	VideoURL          string // nullable
	ScreenshotURL     string // nullable
	Status            ProspectStatus
	ScoreJustification string
	SourceNotes        string // provenance: manual vs scanned ingestion
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ReadyToSend reports whether p satisfies the invariant required of every
// prospect whose status is READY_TO_SEND: eligible, and both assets set.
func (p *Prospect) ReadyToSend() bool {
	return p.EligibilityFlag && p.VideoURL != "" && p.ScreenshotURL != ""
}
