package assetgate

import (
	"errors"
	"strings"
	"testing"

	"github.com/eurekai25/prospecting-engine/pkg/models"
)

func TestSetAssetsRejectsBlank(t *testing.T) {
	p := &models.Prospect{Status: models.StatusScored}
	err := SetAssets(p, "", "screenshot")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("SetAssets err = %v, want ErrInvalidInput", err)
	}
	if p.VideoURL != "" || p.ScreenshotURL != "" {
		t.Error("SetAssets mutated the prospect despite invalid input")
	}
}

func TestSetAssetsTransitionsFromScored(t *testing.T) {
	p := &models.Prospect{Status: models.StatusScored}
	if err := SetAssets(p, "https://video", "https://shot"); err != nil {
		t.Fatalf("SetAssets: %v", err)
	}
	if p.Status != models.StatusReadyAssets {
		t.Errorf("Status = %v, want READY_ASSETS", p.Status)
	}
}

func TestMarkReadyToSendGateRefusal(t *testing.T) {
	p := &models.Prospect{Status: models.StatusReadyAssets, EligibilityFlag: false}
	err := MarkReadyToSend(p)
	if err == nil {
		t.Fatal("expected a gate error")
	}
	if !strings.Contains(err.Error(), "non éligible") {
		t.Errorf("error = %q, want it to mention ineligibility", err.Error())
	}
	if p.Status != models.StatusReadyAssets {
		t.Error("MarkReadyToSend must not mutate status on refusal")
	}
}

func TestMarkReadyToSendSuccess(t *testing.T) {
	p := &models.Prospect{
		Status:          models.StatusReadyAssets,
		EligibilityFlag: true,
		VideoURL:        "https://video",
		ScreenshotURL:   "https://shot",
	}
	if err := MarkReadyToSend(p); err != nil {
		t.Fatalf("MarkReadyToSend: %v", err)
	}
	if p.Status != models.StatusReadyToSend {
		t.Errorf("Status = %v, want READY_TO_SEND", p.Status)
	}
}

func TestMarkReadyToSendListsEveryReason(t *testing.T) {
	p := &models.Prospect{Status: models.StatusScored}
	err := MarkReadyToSend(p)
	var gateErr *GateError
	if !errors.As(err, &gateErr) {
		t.Fatalf("err = %v, want *GateError", err)
	}
	if len(gateErr.Reasons) != 4 {
		t.Errorf("Reasons = %v, want 4 offending conditions", gateErr.Reasons)
	}
}
