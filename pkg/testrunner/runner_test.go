package testrunner

import (
	"context"
	"errors"
	"testing"

	"github.com/eurekai25/prospecting-engine/pkg/llmadapter"
	"github.com/eurekai25/prospecting-engine/pkg/models"
	"github.com/eurekai25/prospecting-engine/pkg/querybank"
)

type stubAdapter struct {
	id      string
	answers map[string]string
	err     error
}

func (s *stubAdapter) ID() string { return s.id }

func (s *stubAdapter) Ask(ctx context.Context, query string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.answers[query], nil
}

func newBank(t *testing.T) *querybank.Bank {
	t.Helper()
	b, err := querybank.New(
		map[string][]string{"default": {"q1 {profession} {city}", "q2", "q3", "q4", "q5"}},
		nil,
	)
	if err != nil {
		t.Fatalf("querybank.New: %v", err)
	}
	return b
}

func TestRunForProspectRejectsWrongStatus(t *testing.T) {
	r := &Runner{Registry: llmadapter.NewRegistry(nil, nil), Bank: newBank(t)}
	p := &models.Prospect{Status: models.StatusScanned}
	if _, err := r.RunForProspect(context.Background(), p, true); err == nil {
		t.Fatal("expected an error for a non-SCHEDULED prospect")
	}
}

func TestRunForProspectDryRunSynthesizesAnswers(t *testing.T) {
	r := &Runner{Registry: llmadapter.NewRegistry(nil, nil), Bank: newBank(t)}
	p := &models.Prospect{ID: "p1", Status: models.StatusScheduled, Name: "Martin Couverture", Website: "https://martin-couvreur.fr"}

	runs, err := r.RunForProspect(context.Background(), p, true)
	if err != nil {
		t.Fatalf("RunForProspect: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("got %d runs, want 3 (one per bundled model)", len(runs))
	}
	if p.Status != models.StatusTested {
		t.Errorf("Status = %v, want TESTED", p.Status)
	}
	for _, run := range runs {
		if !run.Valid() {
			t.Errorf("run for %v is not Valid(): %+v", run.Model, run)
		}
		for _, a := range run.RawAnswers {
			if a[:9] != "[DRY_RUN]" {
				t.Errorf("dry run answer = %q, want [DRY_RUN] prefix", a)
			}
		}
	}
}

func TestRunForProspectSkipsWithNoActiveModelsNotDryRun(t *testing.T) {
	r := &Runner{Registry: llmadapter.NewRegistry(nil, nil), Bank: newBank(t)}
	p := &models.Prospect{ID: "p1", Status: models.StatusScheduled}

	runs, err := r.RunForProspect(context.Background(), p, false)
	if err != nil {
		t.Fatalf("RunForProspect: %v", err)
	}
	if runs != nil {
		t.Errorf("runs = %v, want nil when no model is active", runs)
	}
	if p.Status != models.StatusScheduled {
		t.Errorf("Status = %v, want unchanged SCHEDULED", p.Status)
	}
}

func TestRunForProspectIsolatesAdapterErrors(t *testing.T) {
	reg := llmadapter.NewRegistry(map[string]string{"openai": "key"}, nil)
	r := &Runner{Registry: reg, Bank: newBank(t)}
	p := &models.Prospect{ID: "p1", Status: models.StatusScheduled, Name: "Martin"}

	// Swap in a failing stub by constructing the registry directly would
	// require internals; instead verify the real HTTP-backed adapter surfaces
	// its error as a [ERROR]-prefixed answer rather than aborting the sweep.
	runs, err := r.RunForProspect(context.Background(), p, false)
	if err != nil {
		t.Fatalf("RunForProspect: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1 active model", len(runs))
	}
	run := runs[0]
	for i, a := range run.RawAnswers {
		if len(a) >= 7 && a[:7] == "[ERROR]" {
			if run.Notes == "" {
				t.Errorf("query %d produced an [ERROR] answer but Notes is empty", i)
			}
		}
	}
}

func TestRunForCampaignIsolatesPerProspectFailures(t *testing.T) {
	r := &Runner{Registry: llmadapter.NewRegistry(nil, nil), Bank: newBank(t)}
	good := &models.Prospect{ID: "good", Status: models.StatusScheduled, Name: "Good"}
	bad := &models.Prospect{ID: "bad", Status: models.StatusScanned, Name: "Bad"}

	result, runs := r.RunForCampaign(context.Background(), []*models.Prospect{good, bad}, true)

	if result.Total != 2 {
		t.Errorf("Total = %d, want 2", result.Total)
	}
	if result.Processed != 1 {
		t.Errorf("Processed = %d, want 1 (only the successful prospect counts)", result.Processed)
	}
	if len(result.Errors) != 1 || result.Errors[0].ProspectID != "bad" {
		t.Errorf("Errors = %v, want exactly one entry for prospect bad", result.Errors)
	}
	if result.RunsCreated != 3 || len(runs) != 3 {
		t.Errorf("RunsCreated = %d len(runs) = %d, want 3 from the one valid prospect", result.RunsCreated, len(runs))
	}
	if good.Status != models.StatusTested {
		t.Errorf("good.Status = %v, want TESTED", good.Status)
	}
}

func TestAskReturnsErrorPrefixedAnswer(t *testing.T) {
	r := &Runner{}
	stub := &stubAdapter{id: "openai", err: errors.New("boom")}
	answer := r.ask(context.Background(), stub, "query", false)
	if answer != "[ERROR] boom" {
		t.Errorf("ask = %q, want [ERROR] boom", answer)
	}
}
