package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleLandingPage serves the public /couvreur?t=<token> landing route a
// prospect's outreach email links to. It only resolves the token to a
// prospect; full landing-page rendering (beyond this placeholder) is left
// to a future iteration.
func (s *Server) handleLandingPage(c *gin.Context) {
	token := c.Query("t")
	if token == "" {
		c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte("<h1>Page introuvable</h1>"))
		return
	}
	prospect, err := s.Repo.GetProspectByToken(c.Request.Context(), token)
	if err != nil {
		c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte("<h1>Page introuvable</h1>"))
		return
	}
	html := fmt.Sprintf("<h1>Bonjour %s</h1><p>Votre audit de visibilité IA est en cours de préparation.</p>", prospect.Name)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// handleAdminCampaignPage serves a minimal operator-facing campaign
// monitoring page, gated behind the admin token.
func (s *Server) handleAdminCampaignPage(c *gin.Context) {
	if !checkAdminAuth(c, s.AdminToken) {
		respondError(c, errAuthFailed)
		return
	}

	campaignID := c.Param("id")
	campaign, err := s.Repo.GetCampaign(c.Request.Context(), campaignID)
	if err != nil {
		respondError(c, err)
		return
	}

	html := fmt.Sprintf("<h1>Campagne %s — %s</h1><p>Statut : %s</p>", campaign.Profession, campaign.City, campaign.Status)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
