// Package scoring implements the EMAIL_OK eligibility rule and the /10
// scalar visibility score.
package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/eurekai25/prospecting-engine/pkg/models"
)

// MinCompetitorRuns is the minimum number of runs a competitor name must
// appear in to count as "stable".
const MinCompetitorRuns = 2

// ModelsRequired and QueriesRequired are the EMAIL_OK thresholds: at least
// this many invisible models / invisible queries.
const (
	ModelsRequired  = 2
	QueriesRequired = 4
)

// EmailOK reports whether runs satisfy the composite eligibility
// predicate, alongside a human-readable French justification string. An
// empty runs list is never eligible.
func EmailOK(runs []models.TestRun) (bool, string) {
	if len(runs) == 0 {
		return false, "Aucun run disponible"
	}

	invisibleModels := countInvisibleModels(runs)
	invisibleQueries := countInvisibleQueries(runs)
	stable := StableCompetitors(runs)

	modelsOK := invisibleModels >= ModelsRequired
	queriesOK := invisibleQueries >= QueriesRequired
	competOK := len(stable) >= 1

	justification := fmt.Sprintf(
		"Modèles invisibles: %d/3 (%s) | Requêtes invisibles: %d/5 (%s) | Concurrents stables: %d (%s)",
		invisibleModels, checkmark(modelsOK),
		invisibleQueries, checkmark(queriesOK),
		len(stable), checkmark(competOK),
	)

	return modelsOK && queriesOK && competOK, justification
}

func checkmark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

// countInvisibleModels counts models for which every run has
// MentionedTarget == false.
func countInvisibleModels(runs []models.TestRun) int {
	byModel := make(map[models.AIModel][]models.TestRun)
	for _, r := range runs {
		byModel[r.Model] = append(byModel[r.Model], r)
	}
	count := 0
	for _, modelRuns := range byModel {
		invisible := true
		for _, r := range modelRuns {
			if r.MentionedTarget {
				invisible = false
				break
			}
		}
		if invisible {
			count++
		}
	}
	return count
}

// countInvisibleQueries counts query indices (0..4) where the accumulated
// mention list across all runs is non-empty and every entry is false.
func countInvisibleQueries(runs []models.TestRun) int {
	perQuery := make(map[int][]bool)
	for _, r := range runs {
		for i, mentioned := range r.MentionPerQuery {
			perQuery[i] = append(perQuery[i], mentioned)
		}
	}
	count := 0
	for _, mentions := range perQuery {
		if len(mentions) == 0 {
			continue
		}
		invisible := true
		for _, m := range mentions {
			if m {
				invisible = false
				break
			}
		}
		if invisible {
			count++
		}
	}
	return count
}

// StableCompetitors returns competitor names cited in at least
// MinCompetitorRuns runs, ordered by descending count and capped at 5.
func StableCompetitors(runs []models.TestRun) []string {
	return topCompetitors(runs, MinCompetitorRuns, 5)
}

func topCompetitors(runs []models.TestRun, minCount, cap int) []string {
	counts := make(map[string]int)
	var order []string
	for _, r := range runs {
		for _, c := range r.CompetitorsEntities {
			key := strings.ToLower(c.Value)
			if _, seen := counts[key]; !seen {
				order = append(order, key)
			}
			counts[key]++
		}
	}
	type entry struct {
		name  string
		count int
	}
	var entries []entry
	for _, name := range order {
		if counts[name] >= minCount {
			entries = append(entries, entry{name, counts[name]})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].count > entries[j].count })
	if len(entries) > cap {
		entries = entries[:cap]
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.name
	}
	return out
}

// Result is the outcome of Score.
type Result struct {
	Score             float64
	Justification     string
	StableCompetitors []string
	EmailOK           bool
}

// Score computes the /10 scalar visibility score and its justification
// for a prospect given its runs, following the fixed point allocation:
// EMAIL_OK +4, stable competitors +2, Google Ads active +1, >=20 reviews
// +1, website present +1. The reserved +1 slot is never awarded.
func Score(prospect *models.Prospect, runs []models.TestRun) Result {
	emailOK, emailJustif := EmailOK(runs)

	var score float64
	var parts []string

	if emailOK {
		score += 4
		parts = append(parts, "+4 Invisibilité IA robuste confirmée")
	}

	stable := topCompetitors(runs, 2, 5)
	if len(stable) > 0 {
		score += 2
		top := stable
		if len(top) > 2 {
			top = top[:2]
		}
		parts = append(parts, fmt.Sprintf("+2 Concurrents stables cités (%s)", strings.Join(top, ", ")))
	}

	if prospect.GoogleAdsActive {
		score += 1
		parts = append(parts, "+1 Google Ads actif (budget marketing existant)")
	}

	if prospect.ReviewsCount >= 20 {
		score += 1
		parts = append(parts, fmt.Sprintf("+1 %d avis (présence locale établie)", prospect.ReviewsCount))
	}

	if prospect.Website != "" {
		score += 1
		parts = append(parts, "+1 Site web présent")
	}

	status := "NON"
	if emailOK {
		status = "OUI"
	}
	justification := fmt.Sprintf("Score %g/10 — EMAIL_OK: %s\n%s", score, status, emailJustif)
	if len(parts) > 0 {
		justification += "\n\n" + strings.Join(parts, "\n")
	}

	return Result{
		Score:             score,
		Justification:     justification,
		StableCompetitors: stable,
		EmailOK:           emailOK,
	}
}
