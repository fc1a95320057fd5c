package deliverable

import (
	"strings"
	"testing"
	"time"

	"github.com/eurekai25/prospecting-engine/pkg/models"
)

func sampleProspect() *models.Prospect {
	score := 6.0
	return &models.Prospect{
		ID: "p1", Name: "Martin Couverture", City: "Lyon", Profession: "couvreur",
		Website: "https://martin-couvreur.fr", LandingToken: "tok123456789012345678901",
		CompetitorsCited: []string{"toiture express", "couvreur du rhone"},
		IAVisibilityScore: &score, ScoreJustification: "Score 6/10 — EMAIL_OK: OUI\nline two",
		EligibilityFlag: true, VideoURL: "https://video", Status: models.StatusReadyAssets,
	}
}

func sampleRuns() []models.TestRun {
	return []models.TestRun{
		{
			Model: models.ModelOpenAI, Timestamp: time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC),
			Queries:         []string{"q1", "q2", "q3", "q4", "q5"},
			MentionPerQuery: []bool{false, false, false, false, false},
		},
		{
			Model: models.ModelAnthropic, Timestamp: time.Date(2026, 7, 3, 9, 0, 0, 0, time.UTC),
			Queries:         []string{"q1", "q2", "q3", "q4", "q5"},
			MentionPerQuery: []bool{true, false, false, false, false},
			MentionedTarget: true,
		},
	}
}

func TestGenerateAuditIncludesScoreAndCompetitors(t *testing.T) {
	g := New("", "", "")
	html, err := g.GenerateAudit(sampleProspect(), sampleRuns())
	if err != nil {
		t.Fatalf("GenerateAudit: %v", err)
	}
	if !strings.Contains(html, "6/10") {
		t.Error("expected the score to appear in the rendered report")
	}
	if !strings.Contains(html, "Toiture Express") {
		t.Error("expected the first competitor, title-cased, to appear")
	}
	if !strings.Contains(html, "Martin Couverture") {
		t.Error("expected the company name to appear")
	}
}

func TestGenerateEmailSubjectNamesTopCompetitor(t *testing.T) {
	g := New("", "", "")
	email := g.GenerateEmail(sampleProspect())
	want := "À Lyon, ChatGPT recommande Toiture Express. Pas vous."
	if email.Subject != want {
		t.Errorf("Subject = %q, want %q", email.Subject, want)
	}
	if email.Competitor2 != "Couvreur Du Rhone" {
		t.Errorf("Competitor2 = %q", email.Competitor2)
	}
	if !strings.Contains(email.Body, g.LandingURL(sampleProspect())) {
		t.Error("expected the email body to include the landing URL")
	}
}

func TestGenerateEmailFallsBackWithoutCompetitors(t *testing.T) {
	g := New("", "", "")
	p := sampleProspect()
	p.CompetitorsCited = nil
	email := g.GenerateEmail(p)
	if email.Competitor1 != "vos concurrents" {
		t.Errorf("Competitor1 = %q, want the generic fallback", email.Competitor1)
	}
	if email.Competitor2 != "" {
		t.Errorf("Competitor2 = %q, want empty", email.Competitor2)
	}
}

func TestGenerateVideoScriptHasSixLines(t *testing.T) {
	g := New("", "", "")
	script := g.GenerateVideoScript(sampleProspect())
	count := strings.Count(script, "»\n")
	if count != 6 {
		t.Errorf("video script has %d numbered lines ending in »; want 6", count)
	}
}

func TestGenerateForCampaignSkipsIneligibleProspects(t *testing.T) {
	g := New("", "", "")
	eligible := sampleProspect()
	ineligible := sampleProspect()
	ineligible.ID = "p2"
	ineligible.EligibilityFlag = false

	result, err := g.GenerateForCampaign([]*models.Prospect{eligible, ineligible}, nil)
	if err != nil {
		t.Fatalf("GenerateForCampaign: %v", err)
	}
	if result.Generated != 1 {
		t.Errorf("Generated = %d, want 1", result.Generated)
	}
	if _, ok := result.Artifacts["p2"]; ok {
		t.Error("ineligible prospect must not get artifacts")
	}
	if !strings.Contains(result.SendQueueCSV, "p1") {
		t.Error("expected the eligible prospect's row in the CSV")
	}
	lines := strings.Split(strings.TrimSpace(result.SendQueueCSV), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d CSV lines, want 1 header + 1 row", len(lines))
	}
	fields := strings.Split(lines[1], ",")
	if fields[4] != "" {
		t.Errorf("email column = %q, want blank", fields[4])
	}
}

func TestGenerateForCampaignEmptyWhenNoneEligible(t *testing.T) {
	g := New("", "", "")
	p := sampleProspect()
	p.EligibilityFlag = false
	result, err := g.GenerateForCampaign([]*models.Prospect{p}, nil)
	if err != nil {
		t.Fatalf("GenerateForCampaign: %v", err)
	}
	if result.SendQueueCSV != "" {
		t.Error("expected no CSV when no prospect is eligible")
	}
}

func TestSendQueueFilenameFormat(t *testing.T) {
	at := time.Date(2026, 7, 31, 14, 5, 0, 0, time.UTC)
	got := SendQueueFilename(at)
	want := "send_queue_20260731_1405.csv"
	if got != want {
		t.Errorf("SendQueueFilename = %q, want %q", got, want)
	}
}

func TestTitleCase(t *testing.T) {
	cases := map[string]string{
		"toiture express":    "Toiture Express",
		"couvreur du rhone":  "Couvreur Du Rhone",
		"":                   "",
	}
	for in, want := range cases {
		if got := titleCase(in); got != want {
			t.Errorf("titleCase(%q) = %q, want %q", in, got, want)
		}
	}
}
