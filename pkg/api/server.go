// Package api wires the Repository Layer, Test Runner, Scheduler and
// Deliverable Generator behind a gin HTTP surface.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/eurekai25/prospecting-engine/pkg/deliverable"
	"github.com/eurekai25/prospecting-engine/pkg/repository"
	"github.com/eurekai25/prospecting-engine/pkg/scheduler"
	"github.com/eurekai25/prospecting-engine/pkg/testrunner"
)

// Server wires the engine's core packages to gin handlers.
type Server struct {
	Repo        *repository.Repository
	Runner      *testrunner.Runner
	Scheduler   *scheduler.Scheduler
	Deliverable *deliverable.Generator
	AdminToken  string
}

// NewServer builds a Server. Scheduler may be nil (e.g. in tests that
// never start the cron engine); the scheduler job snapshot then reads as
// empty rather than erroring.
func NewServer(repo *repository.Repository, runner *testrunner.Runner, sched *scheduler.Scheduler, gen *deliverable.Generator, adminToken string) *Server {
	return &Server{Repo: repo, Runner: runner, Scheduler: sched, Deliverable: gen, AdminToken: adminToken}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.Use(securityHeaders())

	r.GET("/health", s.handleHealth)

	api := r.Group("/api")
	{
		api.POST("/campaigns", s.handleCreateCampaign)
		api.GET("/campaigns", s.handleListCampaigns)
		api.GET("/campaigns/:id", s.handleGetCampaign)
		api.POST("/campaigns/:id/prospects", s.handleIngestProspects)
		api.POST("/campaigns/:id/ia-test", s.handleRunIATest)
		api.POST("/campaigns/:id/scoring", s.handleScoreCampaign)
		api.POST("/campaigns/:id/generate", s.handleGenerateCampaign)

		api.GET("/prospects/:id/runs", s.handleListRuns)
		api.GET("/prospects/:id/score", s.handleGetScore)
		api.POST("/prospects/:id/assets", s.handleSetAssets)
		api.POST("/prospects/:id/mark-ready", s.handleMarkReady)
		api.GET("/prospects/:id/generate/audit", s.handleGenerateAudit)
		api.GET("/prospects/:id/generate/email", s.handleGenerateEmail)
		api.GET("/prospects/:id/generate/video-script", s.handleGenerateVideoScript)
	}

	r.GET("/couvreur", s.handleLandingPage)
	r.GET("/admin/campaigns/:id", s.handleAdminCampaignPage)

	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
