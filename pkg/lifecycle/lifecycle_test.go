package lifecycle

import (
	"testing"

	"github.com/eurekai25/prospecting-engine/pkg/models"
)

func TestCanTransitionHappyPath(t *testing.T) {
	path := []models.ProspectStatus{
		models.StatusScanned,
		models.StatusScheduled,
		models.StatusTesting,
		models.StatusTested,
		models.StatusScored,
		models.StatusReadyAssets,
		models.StatusReadyToSend,
		models.StatusSentManual,
	}
	for i := 0; i+1 < len(path); i++ {
		if !CanTransition(path[i], path[i+1]) {
			t.Errorf("CanTransition(%s, %s) = false, want true", path[i], path[i+1])
		}
	}
}

func TestCanTransitionRejectsSkips(t *testing.T) {
	if CanTransition(models.StatusScanned, models.StatusTested) {
		t.Error("CanTransition(SCANNED, TESTED) = true, want false")
	}
	if CanTransition(models.StatusReadyToSend, models.StatusScanned) {
		t.Error("CanTransition(READY_TO_SEND, SCANNED) = true, want false")
	}
}

func TestSentManualIsTerminal(t *testing.T) {
	if CanTransition(models.StatusSentManual, models.StatusScanned) {
		t.Error("CanTransition(SENT_MANUAL, anything) = true, want false")
	}
	if _, ok := Next(models.StatusSentManual); ok {
		t.Error("Next(SENT_MANUAL) reported a next status, want none")
	}
}

func TestUnknownStatusRejected(t *testing.T) {
	if CanTransition(models.ProspectStatus("BOGUS"), models.StatusScheduled) {
		t.Error("CanTransition from an unknown status = true, want false")
	}
}

func TestTransitionsNotTransitive(t *testing.T) {
	// SCANNED->SCHEDULED and SCHEDULED->TESTING hold, but SCANNED->TESTING must not.
	if !CanTransition(models.StatusScanned, models.StatusScheduled) {
		t.Fatal("precondition failed: SCANNED->SCHEDULED should hold")
	}
	if !CanTransition(models.StatusScheduled, models.StatusTesting) {
		t.Fatal("precondition failed: SCHEDULED->TESTING should hold")
	}
	if CanTransition(models.StatusScanned, models.StatusTesting) {
		t.Error("transitions must not be transitive: SCANNED->TESTING should be false")
	}
}
