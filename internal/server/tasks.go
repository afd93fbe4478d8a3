package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"taskboard/internal/models"
	"taskboard/internal/storage"
	"taskboard/internal/view"
)

// taskForm is the body of the task create and update forms.
type taskForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Status      string `form:"status"`
	Priority    string `form:"priority"`
	AssignedTo  string `form:"assigned_to"`
	ProjectID   string `form:"project_id"`
	DueDate     string `form:"due_date"`
}

// input converts the raw form. The returned TaskInput always echoes what was
// submitted so a rejected form can be shown again.
func (f taskForm) input() (models.TaskInput, error) {
	in := models.TaskInput{
		Title:       f.Title,
		Description: f.Description,
		Status:      models.Status(f.Status),
		Priority:    models.Priority(f.Priority),
		AssignedTo:  f.AssignedTo,
	}
	var errs []error

	status, ok := models.ParseStatus(f.Status)
	if ok {
		in.Status = status
	} else {
		errs = append(errs, validationError("unknown status "+strconv.Quote(f.Status)))
	}
	priority, ok := models.ParsePriority(f.Priority)
	if ok {
		in.Priority = priority
	} else {
		errs = append(errs, validationError("unknown priority "+strconv.Quote(f.Priority)))
	}

	if raw := strings.TrimSpace(f.ProjectID); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			errs = append(errs, validationError("invalid project"))
		} else {
			in.ProjectID = &id
		}
	}
	if raw := strings.TrimSpace(f.DueDate); raw != "" {
		due, err := time.Parse("2006-01-02", raw)
		if err != nil {
			errs = append(errs, validationError("due date must be a date (YYYY-MM-DD)"))
		} else {
			in.DueDate = &due
		}
	}

	if strings.TrimSpace(f.Title) == "" {
		errs = append([]error{validationError("task title must not be empty")}, errs...)
	}
	if len(errs) > 0 {
		return in, errs[0]
	}
	return in, nil
}

func formFromTask(t models.Task) models.TaskInput {
	return models.TaskInput{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		AssignedTo:  t.AssignedTo,
		ProjectID:   t.ProjectID,
		DueDate:     t.DueDate,
	}
}

// handleTaskIndex lists every task newest first.
func (s *Server) handleTaskIndex(c *gin.Context) {
	ctx := c.Request.Context()
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		s.respondError(c, err)
		return
	}
	projects, err := s.projects.ListByName(ctx)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.HTML(http.StatusOK, view.PageTasks, gin.H{
		"Title":    "Tasks",
		"Nav":      "tasks",
		"Tasks":    tasks,
		"Projects": projects,
	})
}

// handleTaskCreate shows an empty task form, optionally preselecting a project.
func (s *Server) handleTaskCreate(c *gin.Context) {
	form := models.TaskInput{Status: models.StatusTodo, Priority: models.PriorityMedium}
	if id, err := strconv.ParseInt(c.Query("project_id"), 10, 64); err == nil && id > 0 {
		form.ProjectID = &id
	}
	s.renderTaskForm(c, http.StatusOK, 0, form, nil)
}

// handleTaskStore creates a task from the submitted form.
func (s *Server) handleTaskStore(c *gin.Context) {
	var form taskForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Malformed form")
		return
	}
	in, err := form.input()
	if err == nil {
		err = s.checkProject(c, in.ProjectID)
	}
	if err == nil {
		_, err = s.tasks.Create(c.Request.Context(), in)
	}
	if errors.Is(err, storage.ErrValidation) {
		s.renderTaskForm(c, http.StatusBadRequest, 0, in, err)
		return
	}
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/tasks")
}

// handleTaskShow renders the detail page of one task.
func (s *Server) handleTaskShow(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	task, err := s.tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.HTML(http.StatusOK, view.PageTaskShow, gin.H{
		"Title": task.Title,
		"Nav":   "tasks",
		"Task":  task,
	})
}

// handleTaskEdit shows the form prefilled with the stored task.
func (s *Server) handleTaskEdit(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	task, err := s.tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.renderTaskForm(c, http.StatusOK, id, formFromTask(task), nil)
}

// handleTaskUpdate replaces every editable field of a task.
func (s *Server) handleTaskUpdate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var form taskForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Malformed form")
		return
	}

	in, err := form.input()
	if err == nil {
		err = s.checkProject(c, in.ProjectID)
	}
	var updated bool
	if err == nil {
		updated, err = s.tasks.Update(c.Request.Context(), id, in)
	}
	if errors.Is(err, storage.ErrValidation) {
		s.renderTaskForm(c, http.StatusBadRequest, id, in, err)
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
	c.Redirect(http.StatusFound, "/tasks")
}

// handleTaskDelete removes a task.
func (s *Server) handleTaskDelete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	deleted, err := s.tasks.Delete(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !deleted {
		notFound(c)
		return
	}
	c.Redirect(http.StatusFound, "/tasks")
}

type statusRequest struct {
	Status string `form:"status" json:"status"`
}

// handleTaskStatus moves a task to another column and returns its refreshed card.
func (s *Server) handleTaskStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, "Malformed request")
		return
	}
	if strings.TrimSpace(req.Status) == "" {
		c.String(http.StatusBadRequest, "Status is required")
		return
	}
	status, _ := models.ParseStatus(req.Status)

	ctx := c.Request.Context()
	updated, err := s.tasks.UpdateStatus(ctx, id, status)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !updated {
		notFound(c)
		return
	}
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.HTML(http.StatusOK, view.FragmentTaskCard, task)
}

// handleTaskSearch returns matching tasks; a blank query clears the results box.
func (s *Server) handleTaskSearch(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.String(http.StatusOK, "")
		return
	}
	tasks, err := s.tasks.Search(c.Request.Context(), q)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.HTML(http.StatusOK, view.FragmentSearchResults, gin.H{
		"Query": q,
		"Tasks": tasks,
	})
}

// handleTaskFilter returns the task list restricted by status, priority and project.
func (s *Server) handleTaskFilter(c *gin.Context) {
	var f models.TaskFilter
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status, ok := models.ParseStatus(raw)
		if !ok {
			c.String(http.StatusBadRequest, "Unknown status")
			return
		}
		f.Status = status
	}
	if raw := strings.TrimSpace(c.Query("priority")); raw != "" {
		priority, ok := models.ParsePriority(raw)
		if !ok {
			c.String(http.StatusBadRequest, "Unknown priority")
			return
		}
		f.Priority = priority
	}
	if raw := strings.TrimSpace(c.Query("project_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.String(http.StatusBadRequest, "Invalid project")
			return
		}
		f.ProjectID = &id
	}

	tasks, err := s.tasks.Filter(c.Request.Context(), f)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.HTML(http.StatusOK, view.FragmentTaskList, tasks)
}

// handleKanban renders the three status columns.
func (s *Server) handleKanban(c *gin.Context) {
	board, err := s.tasks.GroupedByStatus(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.HTML(http.StatusOK, view.FragmentKanban, view.KanbanColumns(board))
}

// checkProject rejects references to projects that do not exist.
func (s *Server) checkProject(c *gin.Context, id *int64) error {
	if id == nil {
		return nil
	}
	_, err := s.projects.GetByID(c.Request.Context(), *id)
	if errors.Is(err, storage.ErrNotFound) {
		return validationError("selected project does not exist")
	}
	return err
}

func (s *Server) renderTaskForm(c *gin.Context, status int, id int64, form models.TaskInput, formErr error) {
	projects, err := s.projects.ListByName(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	data := gin.H{
		"Title":    "Create Task",
		"Nav":      "tasks",
		"Form":     form,
		"Projects": projects,
		"Action":   "/tasks/store",
	}
	if id > 0 {
		data["Title"] = "Edit Task"
		data["Editing"] = true
		data["TaskID"] = id
		data["Action"] = "/tasks/" + strconv.FormatInt(id, 10) + "/update"
	}
	if formErr != nil {
		data["Error"] = validationMessage(formErr)
	}
	c.HTML(status, view.PageTaskForm, data)
}
