package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eurekai25/prospecting-engine/pkg/lifecycle"
	"github.com/eurekai25/prospecting-engine/pkg/models"
	"github.com/eurekai25/prospecting-engine/pkg/scoring"
)

// handleRunIATest drives an on-demand test sweep for every SCHEDULED
// prospect in the campaign, mirroring the shape of the scheduler's own
// cron-triggered sweep but callable synchronously from the API.
func (s *Server) handleRunIATest(c *gin.Context) {
	campaignID := c.Param("id")
	if _, err := s.Repo.GetCampaign(c.Request.Context(), campaignID); err != nil {
		respondError(c, err)
		return
	}
	dryRun, _ := strconv.ParseBool(c.Query("dry_run"))

	prospects, err := s.Repo.ScheduledProspects(c.Request.Context(), campaignID)
	if err != nil {
		respondError(c, err)
		return
	}

	result, runs := s.Runner.RunForCampaign(c.Request.Context(), prospects, dryRun)

	if !dryRun {
		if len(runs) > 0 {
			if err := s.Repo.SaveTestRuns(c.Request.Context(), runs); err != nil {
				respondError(c, err)
				return
			}
		}
		for _, p := range prospects {
			if err := s.Repo.SaveProspect(c.Request.Context(), p); err != nil {
				respondError(c, err)
				return
			}
		}
	}

	errs := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		errs = append(errs, e.ProspectID+": "+e.Error)
	}

	c.JSON(http.StatusOK, TestSweepResponse{
		Total:       result.Total,
		Processed:   result.Processed,
		RunsCreated: result.RunsCreated,
		Errors:      errs,
		DryRun:      dryRun,
	})
}

// handleScoreCampaign computes the /10 score and EMAIL_OK eligibility for
// every TESTED prospect in the campaign, persisting the result and
// advancing each to SCORED.
func (s *Server) handleScoreCampaign(c *gin.Context) {
	campaignID := c.Param("id")
	if _, err := s.Repo.GetCampaign(c.Request.Context(), campaignID); err != nil {
		respondError(c, err)
		return
	}

	prospects, err := s.Repo.ListProspects(c.Request.Context(), campaignID)
	if err != nil {
		respondError(c, err)
		return
	}

	scored := make([]ProspectResponse, 0)
	for _, p := range prospects {
		if p.Status != models.StatusTested {
			continue
		}
		runs, err := s.Repo.ListTestRuns(c.Request.Context(), p.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		result := scoring.Score(p, runs)
		p.IAVisibilityScore = &result.Score
		p.ScoreJustification = result.Justification
		p.EligibilityFlag = result.EmailOK
		p.CompetitorsCited = result.StableCompetitors
		if next, ok := lifecycle.Next(p.Status); ok {
			p.Status = next
		}
		if err := s.Repo.SaveProspect(c.Request.Context(), p); err != nil {
			respondError(c, err)
			return
		}
		scored = append(scored, newProspectResponse(p))
	}

	c.JSON(http.StatusOK, scored)
}
