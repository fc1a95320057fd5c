package models

import (
	"time"

	"github.com/eurekai25/prospecting-engine/pkg/entity"
)

// QueryCount is the fixed number of canonical queries asked per model per
// prospect per sweep.
const QueryCount = 5

// TestRun is an immutable, append-only observation: the result of asking
// one AI model the five canonical queries for one prospect.
type TestRun struct {
	ID                  string
	CampaignID          string
	ProspectID          string
	Timestamp           time.Time
	Model               AIModel
	Queries             []string         // length == QueryCount
	RawAnswers          []string         // length == QueryCount, aligned with Queries
	ExtractedEntities   [][]entity.Entity // one list per query, aligned with Queries
	MentionedTarget     bool             // true iff mentioned in >= 1 query
	MentionPerQuery     []bool           // length == QueryCount, aligned with Queries
	CompetitorsEntities []entity.Entity  // deduplicated, ordered, capped at 20
	Notes               string           // nullable diagnostic text
}

// Valid reports whether the run satisfies its length and derived-field
// invariants.
func (r *TestRun) Valid() bool {
	n := len(r.Queries)
	if n != QueryCount {
		return false
	}
	if len(r.RawAnswers) != n || len(r.ExtractedEntities) != n || len(r.MentionPerQuery) != n {
		return false
	}
	any := false
	for _, m := range r.MentionPerQuery {
		if m {
			any = true
			break
		}
	}
	return r.MentionedTarget == any
}
