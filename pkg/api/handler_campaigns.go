package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eurekai25/prospecting-engine/pkg/config"
	"github.com/eurekai25/prospecting-engine/pkg/models"
)

func (s *Server) handleCreateCampaign(c *gin.Context) {
	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errInvalidInput)
		return
	}

	campaign := &models.Campaign{
		ID:            newID(),
		Profession:    req.Profession,
		City:          req.City,
		Description:   req.Description,
		Timezone:      req.Timezone,
		ScheduleDays:  req.ScheduleDays,
		ScheduleTimes: req.ScheduleTimes,
		Mode:          models.CampaignMode(req.Mode),
		Status:        models.CampaignActive,
		MaxProspects:  req.MaxProspects,
		CreatedAt:     time.Now().UTC(),
	}
	config.NewDefaults().ApplyTo(campaign)
	if !campaign.Mode.IsValid() {
		campaign.Mode = config.NewDefaults().Mode
	}

	if err := s.Repo.CreateCampaign(c.Request.Context(), campaign); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newCampaignResponse(campaign))
}

func (s *Server) handleListCampaigns(c *gin.Context) {
	campaigns, err := s.Repo.ListCampaigns(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]CampaignResponse, 0, len(campaigns))
	for _, camp := range campaigns {
		out = append(out, newCampaignResponse(camp))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetCampaign(c *gin.Context) {
	id := c.Param("id")
	campaign, err := s.Repo.GetCampaign(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	prospects, err := s.Repo.ListProspects(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	counts := StatusCounts{}
	eligible := 0
	for _, p := range prospects {
		counts[p.Status]++
		if p.EligibilityFlag {
			eligible++
		}
	}

	var jobs []ScheduledJobResponse
	running := false
	if s.Scheduler != nil {
		running = s.Scheduler.Running()
		for _, j := range s.Scheduler.Jobs(id) {
			jobs = append(jobs, newScheduledJobResponse(j))
		}
	}

	c.JSON(http.StatusOK, CampaignDetailResponse{
		CampaignResponse: newCampaignResponse(campaign),
		ProspectCounts:   counts,
		EligibleCount:    eligible,
		SchedulerRunning: running,
		ScheduledJobs:    jobs,
	})
}
