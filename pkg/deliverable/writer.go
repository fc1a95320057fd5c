package deliverable

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultSendQueueDir is used when Generator.OutputDir is blank.
const DefaultSendQueueDir = "send_queue"

func (g *Generator) outputDir() string {
	if g.OutputDir != "" {
		return g.OutputDir
	}
	return DefaultSendQueueDir
}

// WriteProspectArtifacts persists one prospect's rendered audit.html,
// email.json, email_body.txt and video_script.txt under
// <OutputDir>/<prospectID>/, creating the directory if it does not exist.
func (g *Generator) WriteProspectArtifacts(prospectID string, a ProspectArtifacts) error {
	dir := filepath.Join(g.outputDir(), prospectID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("deliverable: creating %s: %w", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, "audit.html"), []byte(a.AuditHTML), 0o644); err != nil {
		return fmt.Errorf("deliverable: writing audit.html: %w", err)
	}
	emailJSON, err := json.MarshalIndent(a.Email, "", "  ")
	if err != nil {
		return fmt.Errorf("deliverable: marshaling email.json: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "email.json"), emailJSON, 0o644); err != nil {
		return fmt.Errorf("deliverable: writing email.json: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "email_body.txt"), []byte(a.Email.EmailBodyFile()), 0o644); err != nil {
		return fmt.Errorf("deliverable: writing email_body.txt: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "video_script.txt"), []byte(a.VideoScript), 0o644); err != nil {
		return fmt.Errorf("deliverable: writing video_script.txt: %w", err)
	}
	return nil
}

// WriteSendQueueCSV persists csv under
// <OutputDir>/send_queue_<UTC timestamp>.csv and returns the path written.
func (g *Generator) WriteSendQueueCSV(csv string, at time.Time) (string, error) {
	if err := os.MkdirAll(g.outputDir(), 0o755); err != nil {
		return "", fmt.Errorf("deliverable: creating %s: %w", g.outputDir(), err)
	}
	path := filepath.Join(g.outputDir(), SendQueueFilename(at))
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		return "", fmt.Errorf("deliverable: writing %s: %w", path, err)
	}
	return path, nil
}

// Persist writes every artifact in result to disk: one subdirectory per
// eligible prospect plus the timestamped send-queue CSV. Returns the CSV
// path, or an empty string if result carried no CSV (no prospect was
// eligible).
func (g *Generator) Persist(result CampaignResult) (string, error) {
	for _, id := range result.ProspectIDs {
		if err := g.WriteProspectArtifacts(id, result.Artifacts[id]); err != nil {
			return "", err
		}
	}
	if result.SendQueueCSV == "" {
		return "", nil
	}
	return g.WriteSendQueueCSV(result.SendQueueCSV, time.Now())
}
