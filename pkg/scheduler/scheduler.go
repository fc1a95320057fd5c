// Package scheduler drives the two recurring sweeps: the cron-driven
// multi-model test sweep at each campaign's configured cadence, and a
// weekly "prepare ready-to-send" sweep over eligible READY_ASSETS
// prospects. Job lifecycle (Start/Stop, idempotent guard via a non-nil
// cancel func, a done channel awaited on Stop) uses a ticker for the
// simpler weekly sweep; the per-campaign cadence needs specific
// wall-clock times rather than a fixed interval, so cron entries
// (robfig/cron/v3) carry those jobs instead.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/eurekai25/prospecting-engine/pkg/assetgate"
	"github.com/eurekai25/prospecting-engine/pkg/models"
	"github.com/eurekai25/prospecting-engine/pkg/testrunner"
)

// MondaySweepCheckInterval is how often the weekly sweep loop wakes up to
// check whether it is Monday; an hourly check is plenty for a sweep
// that only needs to fire once a week.
const MondaySweepCheckInterval = time.Hour

var weekdayIndex = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Store is the slice of the Repository Layer the Scheduler depends on,
// kept minimal and consumer-defined so this package never imports the
// concrete Postgres repository.
type Store interface {
	ActiveCampaigns(ctx context.Context) ([]*models.Campaign, error)
	ScheduledProspects(ctx context.Context, campaignID string) ([]*models.Prospect, error)
	ReadyAssetsProspects(ctx context.Context) ([]*models.Prospect, error)
	SaveProspect(ctx context.Context, p *models.Prospect) error
	SaveTestRuns(ctx context.Context, runs []models.TestRun) error
}

// Notifier receives a one-line summary after each sweep; nil is a valid,
// silent notifier.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Scheduler owns the cron engine and the weekly ready-to-send loop.
type Scheduler struct {
	Store    Store
	Runner   *testrunner.Runner
	Notifier Notifier

	cron *cron.Cron
	jobs map[string][]jobRecord // campaignID -> jobs registered for it

	mondayCancel context.CancelFunc
	mondayDone   chan struct{}
}

// jobRecord pairs a job's log-correlation ID and cron spec with the
// cron.EntryID needed to look up its next scheduled run.
type jobRecord struct {
	id      string
	entryID cron.EntryID
	spec    string
}

// JobStatus is the operator-facing snapshot of one registered cron job:
// its ID, the cron trigger that drives it, and its next scheduled run.
type JobStatus struct {
	ID      string
	Trigger string
	NextRun time.Time
}

// Running reports whether the scheduler's cron engine is currently active.
func (s *Scheduler) Running() bool {
	return s.cron != nil
}

// Jobs returns the current status of every cron job registered for a
// campaign, for the operator-facing "scheduler's current job snapshot"
// view. Returns nil if the scheduler has not been started or the
// campaign has no jobs. NextRun is the zero time if the scheduler has
// since been stopped.
func (s *Scheduler) Jobs(campaignID string) []JobStatus {
	records := s.jobs[campaignID]
	if records == nil {
		return nil
	}
	out := make([]JobStatus, 0, len(records))
	for _, r := range records {
		status := JobStatus{ID: r.id, Trigger: r.spec}
		if s.cron != nil {
			status.NextRun = s.cron.Entry(r.entryID).Next
		}
		out = append(out, status)
	}
	return out
}

// New builds a Scheduler. Call Start to register campaign jobs and begin
// the weekly sweep.
func New(store Store, runner *testrunner.Runner, notifier Notifier) *Scheduler {
	return &Scheduler{Store: store, Runner: runner, Notifier: notifier}
}

// Start loads every active campaign and registers one cron entry per
// (day, time) pair in its schedule, then launches the weekly ready-to-send
// sweep. Calling Start twice is a no-op.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.cron != nil {
		return nil
	}

	campaigns, err := s.Store.ActiveCampaigns(ctx)
	if err != nil {
		return fmt.Errorf("scheduler: loading active campaigns: %w", err)
	}

	c := cron.New()
	s.jobs = make(map[string][]jobRecord)
	for _, campaign := range campaigns {
		if err := s.registerCampaign(c, campaign); err != nil {
			return fmt.Errorf("scheduler: registering campaign %s: %w", campaign.ID, err)
		}
	}
	c.Start()
	s.cron = c

	mondayCtx, cancel := context.WithCancel(ctx)
	s.mondayCancel = cancel
	s.mondayDone = make(chan struct{})
	go s.runMondaySweepLoop(mondayCtx)

	slog.Info("scheduler started", "campaigns", len(campaigns))
	return nil
}

// Stop halts the cron engine and the weekly sweep loop, waiting for the
// in-flight sweep (if any) to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		s.cron = nil
	}
	if s.mondayCancel != nil {
		s.mondayCancel()
		<-s.mondayDone
		s.mondayCancel = nil
	}
	slog.Info("scheduler stopped")
}

func (s *Scheduler) registerCampaign(c *cron.Cron, campaign *models.Campaign) error {
	if _, err := time.LoadLocation(campaign.Timezone); err != nil {
		return fmt.Errorf("loading timezone %q: %w", campaign.Timezone, err)
	}
	for _, day := range campaign.ScheduleDays {
		if _, ok := weekdayIndex[strings.ToLower(day)]; !ok {
			return fmt.Errorf("unknown schedule day %q", day)
		}
		for _, hhmm := range campaign.ScheduleTimes {
			hour, minute, err := parseHHMM(hhmm)
			if err != nil {
				return fmt.Errorf("campaign %s: %w", campaign.ID, err)
			}
			spec := fmt.Sprintf("CRON_TZ=%s %d %d * * %s", campaign.Timezone, minute, hour, strings.ToLower(day)[:3])
			jobID := fmt.Sprintf("ia_run_%s_%s", strings.ToLower(day), strings.ReplaceAll(hhmm, ":", ""))
			campaignID := campaign.ID
			entryID, err := c.AddFunc(spec, func() {
				s.runCampaignSweep(context.Background(), campaignID, jobID)
			})
			if err != nil {
				return fmt.Errorf("registering cron entry %q: %w", spec, err)
			}
			s.jobs[campaignID] = append(s.jobs[campaignID], jobRecord{id: jobID, entryID: entryID, spec: spec})
		}
	}
	return nil
}

func parseHHMM(hhmm string) (hour, minute int, err error) {
	_, err = fmt.Sscanf(hhmm, "%d:%d", &hour, &minute)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid schedule time %q, want HH:MM", hhmm)
	}
	return hour, minute, nil
}

func (s *Scheduler) runCampaignSweep(ctx context.Context, campaignID, jobID string) {
	log := slog.With("job", jobID, "campaign_id", campaignID)

	prospects, err := s.Store.ScheduledProspects(ctx, campaignID)
	if err != nil {
		log.Error("scheduler: loading scheduled prospects failed", "error", err)
		s.notify(ctx, fmt.Sprintf("Sweep %s failed to load prospects for campaign %s: %v", jobID, campaignID, err))
		return
	}
	if len(prospects) == 0 {
		log.Info("scheduler: no scheduled prospects, skipping sweep")
		return
	}

	result, runs := s.Runner.RunForCampaign(ctx, prospects, false)
	log.Info("scheduler: sweep complete",
		"total", result.Total, "processed", result.Processed,
		"runs_created", result.RunsCreated, "errors", len(result.Errors))

	if len(runs) > 0 {
		if err := s.Store.SaveTestRuns(ctx, runs); err != nil {
			log.Error("scheduler: persisting test runs failed", "error", err)
		}
	}
	for _, p := range prospects {
		if err := s.Store.SaveProspect(ctx, p); err != nil {
			log.Error("scheduler: persisting prospect status failed", "prospect_id", p.ID, "error", err)
		}
	}
	for _, e := range result.Errors {
		log.Warn("scheduler: prospect sweep failed, continuing batch", "prospect_id", e.ProspectID, "error", e.Error)
	}
}

func (s *Scheduler) runMondaySweepLoop(ctx context.Context) {
	defer close(s.mondayDone)

	ticker := time.NewTicker(MondaySweepCheckInterval)
	defer ticker.Stop()

	lastRun := time.Time{}
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if now.Weekday() == time.Monday && now.Sub(lastRun) > 23*time.Hour {
				lastRun = now
				s.runMondayReadyToSendSweep(ctx)
			}
		}
	}
}

// runMondayReadyToSendSweep is the "monday_ready_to_send" job: for every
// READY_ASSETS prospect that already carries both assets and the
// eligibility flag, it calls the Asset Gate to promote the prospect to
// READY_TO_SEND and persists the result. A prospect failing the gate (or
// the save) is logged and skipped; it does not block the rest of the
// sweep.
func (s *Scheduler) runMondayReadyToSendSweep(ctx context.Context) {
	log := slog.With("job", "monday_ready_to_send")

	prospects, err := s.Store.ReadyAssetsProspects(ctx)
	if err != nil {
		log.Error("scheduler: loading ready-assets prospects failed", "error", err)
		return
	}

	var promoted []string
	for _, p := range prospects {
		if !p.ReadyToSend() {
			continue
		}
		if err := assetgate.MarkReadyToSend(p); err != nil {
			log.Warn("scheduler: gate rejected prospect, skipping", "prospect_id", p.ID, "error", err)
			continue
		}
		if err := s.Store.SaveProspect(ctx, p); err != nil {
			log.Error("scheduler: persisting promoted prospect failed", "prospect_id", p.ID, "error", err)
			continue
		}
		log.Info("scheduler: prospect promoted to READY_TO_SEND", "prospect_id", p.ID)
		promoted = append(promoted, p.ID)
	}

	log.Info("scheduler: monday sweep complete", "promoted", len(promoted), "total", len(prospects))
	if len(promoted) > 0 {
		s.notify(ctx, fmt.Sprintf("%d prospect(s) promoted to READY_TO_SEND this week", len(promoted)))
	}
}

func (s *Scheduler) notify(ctx context.Context, text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Notify(ctx, text); err != nil {
		slog.Warn("scheduler: notification failed", "error", err)
	}
}
