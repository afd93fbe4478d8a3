package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskboard/internal/view"
)

const recentTaskLimit = 5

// handleDashboard renders the counters and the latest tasks.
func (s *Server) handleDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	summary, err := s.stats.Summary(ctx)
	if err != nil {
		s.respondError(c, err)
		return
	}
	recent, err := s.tasks.Recent(ctx, recentTaskLimit)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.HTML(http.StatusOK, view.PageDashboard, gin.H{
		"Title":       "Dashboard",
		"Nav":         "dashboard",
		"Stats":       view.StatsCards{Summary: summary, Trigger: view.StatsTriggerPage},
		"RecentTasks": recent,
	})
}

// handleDashboardStats returns the stats cards fragment, or the raw counters
// for JSON clients.
func (s *Server) handleDashboardStats(c *gin.Context) {
	summary, err := s.stats.Summary(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	if wantsJSON(c) {
		c.JSON(http.StatusOK, summary)
		return
	}
	c.HTML(http.StatusOK, view.FragmentStatsCards, view.StatsCards{Summary: summary, Trigger: view.StatsTriggerFragment})
}

func wantsJSON(c *gin.Context) bool {
	if c.Query("format") == "json" {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}
