package server

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"taskboard/internal/view"
)

// mountStatic serves the client assets under /assets, from the configured
// directory when one is set and from the embedded copy otherwise.
func (s *Server) mountStatic() {
	if s.staticDir != "" {
		info, err := os.Stat(s.staticDir)
		if err == nil && info.IsDir() {
			s.engine.StaticFS("/assets", gin.Dir(s.staticDir, false))
			return
		}
		s.logger.Warn("static directory missing; using embedded assets", "path", s.staticDir, "error", err)
	}
	s.engine.StaticFS("/assets", http.FS(view.Assets()))
}
