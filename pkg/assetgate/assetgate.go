// Package assetgate guards the READY_TO_SEND transition behind the
// required deliverable assets and the eligibility flag.
package assetgate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eurekai25/prospecting-engine/pkg/lifecycle"
	"github.com/eurekai25/prospecting-engine/pkg/models"
)

// ErrInvalidInput is returned when SetAssets is given a blank video or
// screenshot URL.
var ErrInvalidInput = errors.New("invalid input")

// GateError reports every unmet precondition for a blocked gate in a
// single message: "Gate READY_TO_SEND bloquée : <reason> | <reason>".
type GateError struct {
	Gate    string
	Reasons []string
}

func (e *GateError) Error() string {
	return fmt.Sprintf("Gate %s bloquée : %s", e.Gate, strings.Join(e.Reasons, " | "))
}

// SetAssets validates and stores the video and screenshot URLs on the
// prospect. Both must be non-empty after trimming, or ErrInvalidInput is
// returned and the prospect is left unchanged. On success, if the
// prospect's current status is SCORED, it transitions to READY_ASSETS.
func SetAssets(prospect *models.Prospect, videoURL, screenshotURL string) error {
	videoURL = strings.TrimSpace(videoURL)
	screenshotURL = strings.TrimSpace(screenshotURL)
	if videoURL == "" || screenshotURL == "" {
		return ErrInvalidInput
	}

	prospect.VideoURL = videoURL
	prospect.ScreenshotURL = screenshotURL

	if prospect.Status == models.StatusScored {
		prospect.Status = models.StatusReadyAssets
	}
	return nil
}

// MarkReadyToSend requires video_url, screenshot_url, the eligibility
// flag, and a current status of READY_ASSETS. Any unmet precondition is
// collected into a single *GateError listing every offending condition.
// On success, the prospect transitions to READY_TO_SEND.
func MarkReadyToSend(prospect *models.Prospect) error {
	var reasons []string
	if prospect.VideoURL == "" {
		reasons = append(reasons, "video_url manquante")
	}
	if prospect.ScreenshotURL == "" {
		reasons = append(reasons, "screenshot_url manquante")
	}
	if !prospect.EligibilityFlag {
		reasons = append(reasons, "prospect non éligible (EMAIL_OK = False)")
	}
	if prospect.Status != models.StatusReadyAssets {
		reasons = append(reasons, fmt.Sprintf("statut actuel '%s' — attendu READY_ASSETS", prospect.Status))
	}
	if len(reasons) > 0 {
		return &GateError{Gate: "READY_TO_SEND", Reasons: reasons}
	}

	next, _ := lifecycle.Next(prospect.Status)
	prospect.Status = next
	return nil
}
