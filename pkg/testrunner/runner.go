// Package testrunner fans a campaign's scheduled prospects out across the
// active AI model adapters and the five canonical queries, producing
// TestRun records. The (prospect, model) pair is the natural unit of
// parallelism, handled by a bounded worker-goroutine pool that fans out
// over prospects and models.
package testrunner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/eurekai25/prospecting-engine/pkg/entity"
	"github.com/eurekai25/prospecting-engine/pkg/llmadapter"
	"github.com/eurekai25/prospecting-engine/pkg/matcher"
	"github.com/eurekai25/prospecting-engine/pkg/models"
	"github.com/eurekai25/prospecting-engine/pkg/querybank"
)

// DefaultCallTimeout is the recommended per-adapter-call timeout.
const DefaultCallTimeout = 30 * time.Second

// MaxCompetitors caps the deduplicated competitor list persisted per run.
const MaxCompetitors = 20

// DefaultCampaignConcurrency bounds how many prospects a single
// RunForCampaign sweep processes at once.
const DefaultCampaignConcurrency = 4

// Runner executes test sweeps against a model adapter registry and query
// bank.
type Runner struct {
	Registry    *llmadapter.Registry
	Bank        *querybank.Bank
	CallTimeout time.Duration
	// Mask scrubs adapter error notes before they are returned for
	// persistence (secrets that might leak back through an error message).
	// Defaults to the identity function when nil.
	Mask func(string) string
	// Concurrency bounds RunForCampaign's per-prospect fan-out.
	Concurrency int
}

func (r *Runner) timeout() time.Duration {
	if r.CallTimeout > 0 {
		return r.CallTimeout
	}
	return DefaultCallTimeout
}

func (r *Runner) mask(s string) string {
	if r.Mask == nil {
		return s
	}
	return r.Mask(s)
}

func (r *Runner) concurrency() int {
	if r.Concurrency > 0 {
		return r.Concurrency
	}
	return DefaultCampaignConcurrency
}

// RunForProspect runs a full test sweep for one prospect. The prospect
// must be in SCHEDULED status; on entry its status becomes TESTING, and
// on success TESTED (both mutated in place — callers are responsible for
// persisting the prospect via the repository layer before and after this
// call). If no model is active and dryRun is false, the sweep is skipped,
// a warning is logged, and status is left unchanged.
func (r *Runner) RunForProspect(ctx context.Context, prospect *models.Prospect, dryRun bool) ([]models.TestRun, error) {
	if prospect.Status != models.StatusScheduled {
		return nil, fmt.Errorf("testrunner: prospect %s is %s, want SCHEDULED", prospect.ID, prospect.Status)
	}

	modelIDs := r.modelsToRun(dryRun)
	if len(modelIDs) == 0 {
		slog.Warn("testrunner: no active models, skipping sweep", "prospect_id", prospect.ID)
		return nil, nil
	}

	prospect.Status = models.StatusTesting

	queries := r.Bank.QueriesFor(prospect.Profession, prospect.City)

	var wg sync.WaitGroup
	runs := make([]models.TestRun, len(modelIDs))
	for i, modelID := range modelIDs {
		wg.Add(1)
		go func(i int, modelID models.AIModel) {
			defer wg.Done()
			runs[i] = r.runModel(ctx, prospect, modelID, queries, dryRun)
		}(i, modelID)
	}
	wg.Wait()

	prospect.Status = models.StatusTested
	return runs, nil
}

func (r *Runner) modelsToRun(dryRun bool) []models.AIModel {
	if dryRun {
		return models.AllModels()
	}
	var out []models.AIModel
	for _, id := range r.Registry.Active() {
		out = append(out, models.AIModel(id))
	}
	return out
}

// runModel asks every query of a single model and aggregates one TestRun.
// A query-level adapter error is recovered locally: it becomes an
// "[ERROR] <msg>" answer slot and a note, and never aborts the rest of
// the model's sweep.
func (r *Runner) runModel(ctx context.Context, prospect *models.Prospect, model models.AIModel, queries []string, dryRun bool) models.TestRun {
	run := models.TestRun{
		CampaignID:        prospect.CampaignID,
		ProspectID:        prospect.ID,
		Timestamp:         time.Now().UTC(),
		Model:             model,
		Queries:           queries,
		RawAnswers:        make([]string, len(queries)),
		ExtractedEntities: make([][]entity.Entity, len(queries)),
		MentionPerQuery:   make([]bool, len(queries)),
	}

	var adapter llmadapter.Adapter
	if !dryRun {
		adapter, _ = r.Registry.Get(string(model))
	}

	var notes []string
	seenCompetitor := make(map[string]bool)
	var competitors []entity.Entity

	for i, query := range queries {
		answer := r.ask(ctx, adapter, query, dryRun)
		if strings.HasPrefix(answer, "[ERROR]") {
			notes = append(notes, fmt.Sprintf("Q%d erreur %s: %s", i+1, model, strings.TrimPrefix(answer, "[ERROR] ")))
		}
		run.RawAnswers[i] = answer

		entities := entity.Extract(answer)
		run.ExtractedEntities[i] = entities

		mentioned := matcher.Mentioned(answer, prospect.Name, prospect.Website)
		run.MentionPerQuery[i] = mentioned
		if mentioned {
			run.MentionedTarget = true
		}

		for _, c := range entity.Competitors(entities, prospect.Name, prospect.Website) {
			key := strings.ToLower(c.Value)
			if seenCompetitor[key] {
				continue
			}
			seenCompetitor[key] = true
			competitors = append(competitors, c)
		}
	}

	if len(competitors) > MaxCompetitors {
		competitors = competitors[:MaxCompetitors]
	}
	run.CompetitorsEntities = competitors
	run.Notes = r.mask(strings.Join(notes, "; "))

	return run
}

func (r *Runner) ask(ctx context.Context, adapter llmadapter.Adapter, query string, dryRun bool) string {
	if dryRun {
		return "[DRY_RUN] " + query
	}
	callCtx, cancel := context.WithTimeout(ctx, r.timeout())
	defer cancel()
	answer, err := adapter.Ask(callCtx, query)
	if err != nil {
		return "[ERROR] " + err.Error()
	}
	return answer
}

// CampaignResult summarizes a RunForCampaign sweep.
type CampaignResult struct {
	Total       int
	Processed   int
	RunsCreated int
	Errors      []ProspectError
}

// ProspectError records a single prospect's sweep failure without
// aborting the rest of the campaign's batch.
type ProspectError struct {
	ProspectID string
	Error      string
}

// RunForCampaign runs RunForProspect over every given prospect, isolating
// each prospect's failure so one bad prospect never aborts the batch.
// Each successful prospect's runs are appended to the returned slice in
// completion order (not input order).
func (r *Runner) RunForCampaign(ctx context.Context, prospects []*models.Prospect, dryRun bool) (CampaignResult, []models.TestRun) {
	result := CampaignResult{Total: len(prospects)}

	var mu sync.Mutex
	var allRuns []models.TestRun
	sem := make(chan struct{}, r.concurrency())
	var wg sync.WaitGroup

	for _, p := range prospects {
		wg.Add(1)
		sem <- struct{}{}
		go func(p *models.Prospect) {
			defer wg.Done()
			defer func() { <-sem }()

			runs, err := r.RunForProspect(ctx, p, dryRun)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Errors = append(result.Errors, ProspectError{ProspectID: p.ID, Error: err.Error()})
				return
			}
			result.Processed++
			result.RunsCreated += len(runs)
			allRuns = append(allRuns, runs...)
		}(p)
	}
	wg.Wait()

	return result, allRuns
}
