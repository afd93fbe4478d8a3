package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskboard/internal/models"
	"taskboard/internal/view"
)

type databaseStats struct {
	DatabaseType string `json:"database_type"`
	models.Summary
}

// handleDatabaseStatus renders connection health, counters and applied migrations.
func (s *Server) handleDatabaseStatus(c *gin.Context) {
	ctx := c.Request.Context()
	data := gin.H{
		"Title":     "Database Status",
		"Nav":       "database",
		"DBType":    s.db.Type(),
		"Connected": true,
		"Message":   "Database connection successful",
		"CheckedAt": time.Now().UTC(),
	}
	if err := s.db.Ping(ctx); err != nil {
		s.logger.Warn("database ping failed", "error", err)
		data["Connected"] = false
		data["Message"] = "Database connection failed"
		c.HTML(http.StatusServiceUnavailable, view.PageDatabaseStatus, data)
		return
	}

	summary, err := s.stats.Summary(ctx)
	if err != nil {
		s.respondError(c, err)
		return
	}
	migrations, err := s.db.AppliedMigrations(ctx)
	if err != nil {
		s.respondError(c, err)
		return
	}
	data["Stats"] = &summary
	data["Migrations"] = migrations
	c.HTML(http.StatusOK, view.PageDatabaseStatus, data)
}

// handleDatabaseStats reports the counters together with the database type.
func (s *Server) handleDatabaseStats(c *gin.Context) {
	summary, err := s.stats.Summary(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, databaseStats{DatabaseType: s.db.Type(), Summary: summary})
}

// handleDatabaseTest pings the database.
func (s *Server) handleDatabaseTest(c *gin.Context) {
	resp := gin.H{
		"status":        "success",
		"database_type": s.db.Type(),
		"message":       "Database connection successful",
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.db.Ping(c.Request.Context()); err != nil {
		s.logger.Warn("database ping failed", "error", err)
		resp["status"] = "error"
		resp["message"] = "Database connection failed"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
