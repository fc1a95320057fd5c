package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eurekai25/prospecting-engine/pkg/assetgate"
	"github.com/eurekai25/prospecting-engine/pkg/models"
	"github.com/eurekai25/prospecting-engine/pkg/scoring"
)

func (s *Server) handleIngestProspects(c *gin.Context) {
	campaignID := c.Param("id")
	if _, err := s.Repo.GetCampaign(c.Request.Context(), campaignID); err != nil {
		respondError(c, err)
		return
	}

	var req IngestProspectsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errInvalidInput)
		return
	}

	created := make([]ProspectResponse, 0, len(req.Prospects))
	for _, in := range req.Prospects {
		competitors := in.CompetitorsCited
		if len(competitors) > 5 {
			competitors = competitors[:5]
		}
		p := &models.Prospect{
			ID:               newID(),
			CampaignID:       campaignID,
			Name:             in.Name,
			City:             in.City,
			Profession:       in.Profession,
			Website:          in.Website,
			Phone:            in.Phone,
			Email:            in.Email,
			ReviewsCount:     in.ReviewsCount,
			GoogleAdsActive:  in.GoogleAdsActive,
			CompetitorsCited: competitors,
			LandingToken:     newLandingToken(),
			Status:           models.StatusScanned,
			SourceNotes:      "manual ingestion",
		}
		if err := s.Repo.CreateProspect(c.Request.Context(), p); err != nil {
			respondError(c, err)
			return
		}
		created = append(created, newProspectResponse(p))
	}

	c.JSON(http.StatusCreated, created)
}

func (s *Server) handleListRuns(c *gin.Context) {
	prospectID := c.Param("id")
	runs, err := s.Repo.ListTestRuns(c.Request.Context(), prospectID)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]RunResponse, 0, len(runs))
	for _, r := range runs {
		out = append(out, newRunResponse(r))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleSetAssets(c *gin.Context) {
	prospectID := c.Param("id")
	prospect, err := s.Repo.GetProspect(c.Request.Context(), prospectID)
	if err != nil {
		respondError(c, err)
		return
	}

	var req SetAssetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errInvalidInput)
		return
	}

	if err := assetgate.SetAssets(prospect, req.VideoURL, req.ScreenshotURL); err != nil {
		respondError(c, err)
		return
	}
	if err := s.Repo.SaveProspect(c.Request.Context(), prospect); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProspectResponse(prospect))
}

func (s *Server) handleMarkReady(c *gin.Context) {
	prospectID := c.Param("id")
	prospect, err := s.Repo.GetProspect(c.Request.Context(), prospectID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := assetgate.MarkReadyToSend(prospect); err != nil {
		respondError(c, err)
		return
	}
	if err := s.Repo.SaveProspect(c.Request.Context(), prospect); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProspectResponse(prospect))
}

func (s *Server) handleGetScore(c *gin.Context) {
	prospectID := c.Param("id")
	prospect, err := s.Repo.GetProspect(c.Request.Context(), prospectID)
	if err != nil {
		respondError(c, err)
		return
	}
	if prospect.IAVisibilityScore == nil {
		respondError(c, errNotScored)
		return
	}

	runs, err := s.Repo.ListTestRuns(c.Request.Context(), prospectID)
	if err != nil {
		respondError(c, err)
		return
	}
	emailOK, _ := scoring.EmailOK(runs)
	c.JSON(http.StatusOK, ScoreResponse{
		Score:             *prospect.IAVisibilityScore,
		Justification:     prospect.ScoreJustification,
		StableCompetitors: scoring.StableCompetitors(runs),
		EmailOK:           emailOK,
	})
}
