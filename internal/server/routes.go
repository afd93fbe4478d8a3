package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type route struct {
	method  string
	path    string
	handler gin.HandlerFunc
}

// routes lists every endpoint in registration order.
func (s *Server) routes() []route {
	return []route{
		{http.MethodGet, "/", s.handleDashboard},
		{http.MethodGet, "/dashboard", s.handleDashboard},
		{http.MethodGet, "/api/dashboard/stats", s.handleDashboardStats},

		{http.MethodGet, "/tasks", s.handleTaskIndex},
		{http.MethodGet, "/tasks/create", s.handleTaskCreate},
		{http.MethodPost, "/tasks/store", s.handleTaskStore},
		{http.MethodGet, "/tasks/search", s.handleTaskSearch},
		{http.MethodGet, "/tasks/filter", s.handleTaskFilter},
		{http.MethodGet, "/tasks/:id", s.handleTaskShow},
		{http.MethodGet, "/tasks/:id/edit", s.handleTaskEdit},
		{http.MethodPost, "/tasks/:id/update", s.handleTaskUpdate},
		{http.MethodPost, "/tasks/:id/delete", s.handleTaskDelete},
		{http.MethodPost, "/tasks/:id/status", s.handleTaskStatus},

		{http.MethodGet, "/api/tasks/search", s.handleTaskSearch},
		{http.MethodGet, "/api/tasks/kanban", s.handleKanban},
		{http.MethodPost, "/api/tasks/:id/status", s.handleTaskStatus},

		{http.MethodGet, "/projects", s.handleProjectIndex},
		{http.MethodGet, "/projects/create", s.handleProjectCreate},
		{http.MethodPost, "/projects/store", s.handleProjectStore},
		{http.MethodGet, "/projects/:id", s.handleProjectShow},
		{http.MethodGet, "/projects/:id/edit", s.handleProjectEdit},
		{http.MethodPost, "/projects/:id/update", s.handleProjectUpdate},
		{http.MethodPost, "/projects/:id/delete", s.handleProjectDelete},

		{http.MethodGet, "/database/status", s.handleDatabaseStatus},
		{http.MethodGet, "/api/database/stats", s.handleDatabaseStats},
		{http.MethodGet, "/api/database/test", s.handleDatabaseTest},
		{http.MethodGet, "/api/healthz", s.handleHealth},
	}
}

// registerRoutes wires the route table, static assets and the fallback.
func (s *Server) registerRoutes() {
	for _, r := range s.routes() {
		s.engine.Handle(r.method, r.path, r.handler)
	}
	s.mountStatic()
	s.engine.NoRoute(notFound)
}
