// Package repository implements the Repository Layer directly against a
// pgx connection pool, targeting Postgres. UpdateProspectStatus is gated
// through pkg/lifecycle.CanTransition; SaveProspect writes the in-memory
// status as given and does not consult the transition table.
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eurekai25/prospecting-engine/pkg/entity"
	"github.com/eurekai25/prospecting-engine/pkg/lifecycle"
	"github.com/eurekai25/prospecting-engine/pkg/models"
)

// Repository is the pgx-backed concrete implementation of the
// Repository Layer.
type Repository struct {
	pool *pgxpool.Pool
}

// New wraps an existing pool. The pool's migrations are expected to have
// already been applied (see pkg/database).
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateCampaign inserts a new campaign.
func (r *Repository) CreateCampaign(ctx context.Context, c *models.Campaign) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO campaigns (id, profession, city, description, timezone, schedule_days, schedule_times, mode, status, max_prospects, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		c.ID, c.Profession, c.City, c.Description, c.Timezone, c.ScheduleDays, c.ScheduleTimes,
		string(c.Mode), string(c.Status), c.MaxProspects, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("repository: create campaign: %w", err)
	}
	return nil
}

// GetCampaign returns a single campaign by id, or ErrNotFound.
func (r *Repository) GetCampaign(ctx context.Context, id string) (*models.Campaign, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, profession, city, description, timezone, schedule_days, schedule_times, mode, status, max_prospects, created_at
		FROM campaigns WHERE id = $1`, id)
	return scanCampaign(row)
}

// ListCampaigns returns every campaign, most recently created first.
func (r *Repository) ListCampaigns(ctx context.Context) ([]*models.Campaign, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, profession, city, description, timezone, schedule_days, schedule_times, mode, status, max_prospects, created_at
		FROM campaigns ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("repository: list campaigns: %w", err)
	}
	defer rows.Close()

	var out []*models.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ActiveCampaigns returns every campaign whose status is "active",
// implementing the scheduler.Store interface.
func (r *Repository) ActiveCampaigns(ctx context.Context) ([]*models.Campaign, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, profession, city, description, timezone, schedule_days, schedule_times, mode, status, max_prospects, created_at
		FROM campaigns WHERE status = $1`, string(models.CampaignActive))
	if err != nil {
		return nil, fmt.Errorf("repository: active campaigns: %w", err)
	}
	defer rows.Close()

	var out []*models.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row rowScanner) (*models.Campaign, error) {
	c := &models.Campaign{}
	var mode, status string
	err := row.Scan(&c.ID, &c.Profession, &c.City, &c.Description, &c.Timezone,
		&c.ScheduleDays, &c.ScheduleTimes, &mode, &status, &c.MaxProspects, &c.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: scan campaign: %w", err)
	}
	c.Mode = models.CampaignMode(mode)
	c.Status = models.CampaignStatus(status)
	return c, nil
}

// CreateProspect inserts a new prospect, already carrying a generated
// LandingToken.
func (r *Repository) CreateProspect(ctx context.Context, p *models.Prospect) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO prospects (id, campaign_id, name, city, profession, website, phone, email,
			reviews_count, google_ads_active, competitors_cited, ia_visibility_score, eligibility_flag,
			landing_token, video_url, screenshot_url, status, score_justification, source_notes,
			created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)`,
		p.ID, p.CampaignID, p.Name, p.City, p.Profession, p.Website, p.Phone, p.Email,
		p.ReviewsCount, p.GoogleAdsActive, p.CompetitorsCited, p.IAVisibilityScore, p.EligibilityFlag,
		p.LandingToken, p.VideoURL, p.ScreenshotURL, string(p.Status), p.ScoreJustification, p.SourceNotes,
		p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("repository: create prospect: %w", err)
	}
	return nil
}

// GetProspect returns a single prospect by id, or ErrNotFound.
func (r *Repository) GetProspect(ctx context.Context, id string) (*models.Prospect, error) {
	row := r.pool.QueryRow(ctx, prospectSelect+` WHERE id = $1`, id)
	return scanProspect(row)
}

// GetProspectByToken resolves the public landing route's lookup key.
func (r *Repository) GetProspectByToken(ctx context.Context, token string) (*models.Prospect, error) {
	row := r.pool.QueryRow(ctx, prospectSelect+` WHERE landing_token = $1`, token)
	return scanProspect(row)
}

// ListProspects returns every prospect of a campaign ordered by score
// descending, nulls last.
func (r *Repository) ListProspects(ctx context.Context, campaignID string) ([]*models.Prospect, error) {
	rows, err := r.pool.Query(ctx, prospectSelect+`
		WHERE campaign_id = $1 ORDER BY ia_visibility_score DESC NULLS LAST`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("repository: list prospects: %w", err)
	}
	defer rows.Close()
	return scanProspects(rows)
}

// ScheduledProspects returns a campaign's SCHEDULED prospects, implementing
// the scheduler.Store interface.
func (r *Repository) ScheduledProspects(ctx context.Context, campaignID string) ([]*models.Prospect, error) {
	rows, err := r.pool.Query(ctx, prospectSelect+`
		WHERE campaign_id = $1 AND status = $2`, campaignID, string(models.StatusScheduled))
	if err != nil {
		return nil, fmt.Errorf("repository: scheduled prospects: %w", err)
	}
	defer rows.Close()
	return scanProspects(rows)
}

// ReadyAssetsProspects returns every READY_ASSETS prospect across all
// campaigns, implementing the scheduler.Store interface.
func (r *Repository) ReadyAssetsProspects(ctx context.Context) ([]*models.Prospect, error) {
	rows, err := r.pool.Query(ctx, prospectSelect+` WHERE status = $1`, string(models.StatusReadyAssets))
	if err != nil {
		return nil, fmt.Errorf("repository: ready-assets prospects: %w", err)
	}
	defer rows.Close()
	return scanProspects(rows)
}

// UpdateProspectStatus transitions a prospect's status, rejecting the
// write with a *StateConflictError if lifecycle.CanTransition forbids it.
func (r *Repository) UpdateProspectStatus(ctx context.Context, id string, to models.ProspectStatus) error {
	current, err := r.GetProspect(ctx, id)
	if err != nil {
		return err
	}
	if !lifecycle.CanTransition(current.Status, to) {
		return &StateConflictError{ProspectID: id, From: string(current.Status), To: string(to)}
	}
	_, err = r.pool.Exec(ctx, `UPDATE prospects SET status = $1, updated_at = now() WHERE id = $2`, string(to), id)
	if err != nil {
		return fmt.Errorf("repository: update prospect status: %w", err)
	}
	return nil
}

// SaveProspect persists every mutable field of an in-memory prospect
// (status, assets, score, eligibility). Used by the API handlers and the
// Scheduler after a prospect was mutated in place.
func (r *Repository) SaveProspect(ctx context.Context, p *models.Prospect) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE prospects SET
			website = $1, phone = $2, email = $3, reviews_count = $4, google_ads_active = $5,
			competitors_cited = $6, ia_visibility_score = $7, eligibility_flag = $8,
			video_url = $9, screenshot_url = $10, status = $11, score_justification = $12,
			source_notes = $13, updated_at = now()
		WHERE id = $14`,
		p.Website, p.Phone, p.Email, p.ReviewsCount, p.GoogleAdsActive,
		p.CompetitorsCited, p.IAVisibilityScore, p.EligibilityFlag,
		p.VideoURL, p.ScreenshotURL, string(p.Status), p.ScoreJustification,
		p.SourceNotes, p.ID)
	if err != nil {
		return fmt.Errorf("repository: save prospect: %w", err)
	}
	return nil
}

const prospectSelect = `
	SELECT id, campaign_id, name, city, profession, website, phone, email, reviews_count,
		google_ads_active, competitors_cited, ia_visibility_score, eligibility_flag, landing_token,
		video_url, screenshot_url, status, score_justification, source_notes, created_at, updated_at
	FROM prospects`

func scanProspect(row rowScanner) (*models.Prospect, error) {
	p := &models.Prospect{}
	var status string
	err := row.Scan(&p.ID, &p.CampaignID, &p.Name, &p.City, &p.Profession, &p.Website, &p.Phone, &p.Email,
		&p.ReviewsCount, &p.GoogleAdsActive, &p.CompetitorsCited, &p.IAVisibilityScore, &p.EligibilityFlag,
		&p.LandingToken, &p.VideoURL, &p.ScreenshotURL, &status, &p.ScoreJustification, &p.SourceNotes,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: scan prospect: %w", err)
	}
	p.Status = models.ProspectStatus(status)
	return p, nil
}

func scanProspects(rows pgx.Rows) ([]*models.Prospect, error) {
	var out []*models.Prospect
	for rows.Next() {
		p, err := scanProspect(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SaveTestRuns inserts a batch of freshly produced test runs in one
// transaction; runs are append-only and never updated afterward.
func (r *Repository) SaveTestRuns(ctx context.Context, runs []models.TestRun) error {
	if len(runs) == 0 {
		return nil
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository: begin test run batch: %w", err)
	}
	defer tx.Rollback(ctx)

	for i := range runs {
		run := &runs[i]
		extracted, err := json.Marshal(run.ExtractedEntities)
		if err != nil {
			return fmt.Errorf("repository: marshal extracted entities: %w", err)
		}
		competitors, err := json.Marshal(run.CompetitorsEntities)
		if err != nil {
			return fmt.Errorf("repository: marshal competitor entities: %w", err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO test_runs (id, campaign_id, prospect_id, "timestamp", model, queries, raw_answers,
				extracted_entities, mentioned_target, mention_per_query, competitors_entities, notes)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
			run.ID, run.CampaignID, run.ProspectID, run.Timestamp, string(run.Model),
			run.Queries, run.RawAnswers, extracted, run.MentionedTarget, run.MentionPerQuery,
			competitors, run.Notes)
		if err != nil {
			return fmt.Errorf("repository: insert test run: %w", err)
		}
	}
	return tx.Commit(ctx)
}

// ListTestRuns returns every run for a prospect, timestamp ascending.
func (r *Repository) ListTestRuns(ctx context.Context, prospectID string) ([]models.TestRun, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, campaign_id, prospect_id, "timestamp", model, queries, raw_answers,
			extracted_entities, mentioned_target, mention_per_query, competitors_entities, notes
		FROM test_runs WHERE prospect_id = $1 ORDER BY "timestamp" ASC`, prospectID)
	if err != nil {
		return nil, fmt.Errorf("repository: list test runs: %w", err)
	}
	defer rows.Close()

	var out []models.TestRun
	for rows.Next() {
		var run models.TestRun
		var model string
		var extractedRaw, competitorsRaw []byte
		err := rows.Scan(&run.ID, &run.CampaignID, &run.ProspectID, &run.Timestamp, &model,
			&run.Queries, &run.RawAnswers, &extractedRaw, &run.MentionedTarget, &run.MentionPerQuery,
			&competitorsRaw, &run.Notes)
		if err != nil {
			return nil, fmt.Errorf("repository: scan test run: %w", err)
		}
		run.Model = models.AIModel(model)
		if err := json.Unmarshal(extractedRaw, &run.ExtractedEntities); err != nil {
			return nil, fmt.Errorf("repository: unmarshal extracted entities: %w", err)
		}
		var competitors []entity.Entity
		if err := json.Unmarshal(competitorsRaw, &competitors); err != nil {
			return nil, fmt.Errorf("repository: unmarshal competitor entities: %w", err)
		}
		run.CompetitorsEntities = competitors
		out = append(out, run)
	}
	return out, rows.Err()
}
