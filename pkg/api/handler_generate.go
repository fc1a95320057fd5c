package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eurekai25/prospecting-engine/pkg/models"
)

// handleGenerateCampaign renders every deliverable artifact for each
// eligible prospect in the campaign and assembles the send-queue CSV.
func (s *Server) handleGenerateCampaign(c *gin.Context) {
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

	runs, err := s.runsForProspects(c.Request.Context(), prospects)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := s.Deliverable.GenerateForCampaign(prospects, runs)
	if err != nil {
		respondError(c, err)
		return
	}

	csvPath, err := s.Deliverable.Persist(result)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, GenerateResponse{
		Generated:    result.Generated,
		ProspectIDs:  result.ProspectIDs,
		SendQueueCSV: csvPath,
	})
}

func (s *Server) runsForProspects(ctx context.Context, prospects []*models.Prospect) (map[string][]models.TestRun, error) {
	out := make(map[string][]models.TestRun, len(prospects))
	for _, p := range prospects {
		if !p.EligibilityFlag {
			continue
		}
		runs, err := s.Repo.ListTestRuns(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		out[p.ID] = runs
	}
	return out, nil
}

func (s *Server) handleGenerateAudit(c *gin.Context) {
	prospectID := c.Param("id")
	prospect, err := s.Repo.GetProspect(c.Request.Context(), prospectID)
	if err != nil {
		respondError(c, err)
		return
	}
	runs, err := s.Repo.ListTestRuns(c.Request.Context(), prospectID)
	if err != nil {
		respondError(c, err)
		return
	}
	html, err := s.Deliverable.GenerateAudit(prospect, runs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (s *Server) handleGenerateEmail(c *gin.Context) {
	prospectID := c.Param("id")
	prospect, err := s.Repo.GetProspect(c.Request.Context(), prospectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Deliverable.GenerateEmail(prospect))
}

func (s *Server) handleGenerateVideoScript(c *gin.Context) {
	prospectID := c.Param("id")
	prospect, err := s.Repo.GetProspect(c.Request.Context(), prospectID)
	if err != nil {
		respondError(c, err)
		return
	}
	script := s.Deliverable.GenerateVideoScript(prospect)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(script))
}
