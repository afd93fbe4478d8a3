package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"taskboard/internal/models"
	"taskboard/internal/storage"
	"taskboard/internal/view"
)

type projectForm struct {
	Name        string `form:"name"`
	Description string `form:"description"`
}

// handleProjectIndex lists projects with their task counts.
func (s *Server) handleProjectIndex(c *gin.Context) {
	projects, err := s.projects.ListWithTaskCounts(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.HTML(http.StatusOK, view.PageProjects, gin.H{
		"Title":    "Projects",
		"Nav":      "projects",
		"Projects": projects,
	})
}

func (s *Server) handleProjectCreate(c *gin.Context) {
	s.renderProjectForm(c, http.StatusOK, 0, projectForm{}, nil)
}

// handleProjectStore creates a project from the submitted form.
func (s *Server) handleProjectStore(c *gin.Context) {
	var form projectForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Malformed form")
		return
	}
	err := requireName(form.Name)
	if err == nil {
		_, err = s.projects.Create(c.Request.Context(), form.Name, form.Description)
	}
	if errors.Is(err, storage.ErrValidation) {
		s.renderProjectForm(c, http.StatusBadRequest, 0, form, err)
		return
	}
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/projects")
}

// handleProjectShow renders a project with its tasks.
func (s *Server) handleProjectShow(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	tasks, err := s.tasks.Filter(ctx, models.TaskFilter{ProjectID: &id})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.HTML(http.StatusOK, view.PageProjectShow, gin.H{
		"Title":   project.Name,
		"Nav":     "projects",
		"Project": project,
		"Tasks":   tasks,
	})
}

func (s *Server) handleProjectEdit(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	project, err := s.projects.GetByID(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.renderProjectForm(c, http.StatusOK, id, projectForm{Name: project.Name, Description: project.Description}, nil)
}

// handleProjectUpdate renames or redescribes a project.
func (s *Server) handleProjectUpdate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var form projectForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Malformed form")
		return
	}

	var updated bool
	err := requireName(form.Name)
	if err == nil {
		updated, err = s.projects.Update(c.Request.Context(), id, form.Name, form.Description)
	}
	if errors.Is(err, storage.ErrValidation) {
		s.renderProjectForm(c, http.StatusBadRequest, id, form, err)
		return
	}
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !updated {
		notFound(c)
		return
	}
	c.Redirect(http.StatusFound, "/projects")
}

// handleProjectDelete removes a project together with its tasks.
func (s *Server) handleProjectDelete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	deleted, err := s.projects.Delete(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !deleted {
		notFound(c)
		return
	}
	c.Redirect(http.StatusFound, "/projects")
}

func requireName(name string) error {
	if strings.TrimSpace(name) == "" {
		return validationError("project name must not be empty")
	}
	return nil
}

func (s *Server) renderProjectForm(c *gin.Context, status int, id int64, form projectForm, formErr error) {
	data := gin.H{
		"Title":  "Create Project",
		"Nav":    "projects",
		"Form":   form,
		"Action": "/projects/store",
	}
	if id > 0 {
		data["Title"] = "Edit Project"
		data["Editing"] = true
		data["ProjectID"] = id
		data["Action"] = "/projects/" + strconv.FormatInt(id, 10) + "/update"
	}
	if formErr != nil {
		data["Error"] = validationMessage(formErr)
	}
	c.HTML(status, view.PageProjectForm, data)
}
