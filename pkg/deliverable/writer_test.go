package deliverable

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/eurekai25/prospecting-engine/pkg/models"
)

func TestWriteProspectArtifactsCreatesAllFourFiles(t *testing.T) {
	g := New("", "", t.TempDir())
	email := g.GenerateEmail(sampleProspect())
	artifacts := ProspectArtifacts{AuditHTML: "<html></html>", Email: email, VideoScript: "script"}

	if err := g.WriteProspectArtifacts("p1", artifacts); err != nil {
		t.Fatalf("WriteProspectArtifacts: %v", err)
	}

	dir := filepath.Join(g.OutputDir, "p1")
	for _, name := range []string{"audit.html", "email.json", "email_body.txt", "video_script.txt"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		if len(data) == 0 {
			t.Errorf("%s is empty", name)
		}
	}

	var decoded EmailArtifact
	raw, err := os.ReadFile(filepath.Join(dir, "email.json"))
	if err != nil {
		t.Fatalf("reading email.json: %v", err)
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("email.json did not round-trip: %v", err)
	}
	if decoded.Subject != email.Subject {
		t.Errorf("decoded subject = %q, want %q", decoded.Subject, email.Subject)
	}
}

func TestWriteSendQueueCSVUsesTimestampedFilename(t *testing.T) {
	g := New("", "", t.TempDir())
	at := time.Date(2026, 7, 31, 14, 5, 0, 0, time.UTC)

	path, err := g.WriteSendQueueCSV("header\nrow", at)
	if err != nil {
		t.Fatalf("WriteSendQueueCSV: %v", err)
	}
	if filepath.Base(path) != "send_queue_20260731_1405.csv" {
		t.Errorf("path = %q, want basename send_queue_20260731_1405.csv", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written CSV: %v", err)
	}
	if string(data) != "header\nrow" {
		t.Errorf("written CSV content = %q", string(data))
	}
}

func TestPersistWritesArtifactsAndCSVForEligibleProspects(t *testing.T) {
	g := New("", "", t.TempDir())
	eligible := sampleProspect()
	ineligible := sampleProspect()
	ineligible.ID = "p2"
	ineligible.EligibilityFlag = false

	result, err := g.GenerateForCampaign([]*models.Prospect{eligible, ineligible}, nil)
	if err != nil {
		t.Fatalf("GenerateForCampaign: %v", err)
	}

	csvPath, err := g.Persist(result)
	if err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if csvPath == "" {
		t.Fatal("expected a non-empty CSV path")
	}
	if _, err := os.Stat(filepath.Join(g.OutputDir, "p1", "audit.html")); err != nil {
		t.Errorf("expected p1/audit.html to exist: %v", err)
	}
	if _, err := os.Stat(filepath.Join(g.OutputDir, "p2")); !os.IsNotExist(err) {
		t.Error("ineligible prospect p2 must not get a directory")
	}
	data, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("reading csv: %v", err)
	}
	if !strings.Contains(string(data), "p1") {
		t.Error("expected p1's row in the persisted CSV")
	}
}

func TestPersistSkipsCSVWhenNoneEligible(t *testing.T) {
	g := New("", "", t.TempDir())
	p := sampleProspect()
	p.EligibilityFlag = false
	result, err := g.GenerateForCampaign([]*models.Prospect{p}, nil)
	if err != nil {
		t.Fatalf("GenerateForCampaign: %v", err)
	}
	csvPath, err := g.Persist(result)
	if err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if csvPath != "" {
		t.Errorf("csvPath = %q, want empty", csvPath)
	}
}
