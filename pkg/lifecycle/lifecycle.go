// Package lifecycle encodes the allowed prospect status transitions as a
// pure, data-driven state machine.
package lifecycle

import "github.com/eurekai25/prospecting-engine/pkg/models"

// transitions is the *only* allowed set of (current, next) pairs. It is
// encoded as a constant map so the machine itself stays a pure function
// over data rather than branching logic.
var transitions = map[models.ProspectStatus]models.ProspectStatus{
	models.StatusScanned:     models.StatusScheduled,
	models.StatusScheduled:   models.StatusTesting,
	models.StatusTesting:     models.StatusTested,
	models.StatusTested:      models.StatusScored,
	models.StatusScored:      models.StatusReadyAssets,
	models.StatusReadyAssets: models.StatusReadyToSend,
	models.StatusReadyToSend: models.StatusSentManual,
	// StatusSentManual is terminal: no outgoing transition.
}

// CanTransition reports whether moving a prospect from current to target
// is allowed. Unknown status strings, and the terminal SENT_MANUAL state,
// always return false. Transitions are not transitive: CanTransition(a, b)
// and CanTransition(b, c) does not imply CanTransition(a, c).
func CanTransition(current, target models.ProspectStatus) bool {
	next, ok := transitions[current]
	if !ok {
		return false
	}
	return next == target
}

// Next returns the single legal next status for current, and false if
// current is terminal or unknown.
func Next(current models.ProspectStatus) (models.ProspectStatus, bool) {
	next, ok := transitions[current]
	return next, ok
}
