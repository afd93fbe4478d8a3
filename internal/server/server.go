package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"taskboard/internal/models"
	"taskboard/internal/stats"
	"taskboard/internal/storage"
	"taskboard/internal/view"
)

// ProjectStore is the project persistence the handlers need.
type ProjectStore interface {
	Create(ctx context.Context, name, description string) (int64, error)
	GetByID(ctx context.Context, id int64) (models.Project, error)
	ListByName(ctx context.Context) ([]models.Project, error)
	ListWithTaskCounts(ctx context.Context) ([]models.ProjectSummary, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, id int64, name, description string) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// TaskStore is the task persistence the handlers need.
type TaskStore interface {
	Create(ctx context.Context, in models.TaskInput) (int64, error)
	GetByID(ctx context.Context, id int64) (models.Task, error)
	List(ctx context.Context) ([]models.Task, error)
	Recent(ctx context.Context, limit int) ([]models.Task, error)
	Update(ctx context.Context, id int64, in models.TaskInput) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status models.Status) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Search(ctx context.Context, keyword string) ([]models.Task, error)
	Filter(ctx context.Context, f models.TaskFilter) ([]models.Task, error)
	GroupedByStatus(ctx context.Context) (map[models.Status][]models.Task, error)
	Stats(ctx context.Context, today time.Time) (models.TaskStats, error)
}

// Database reports on the backing connection.
type Database interface {
	Type() string
	Ping(ctx context.Context) error
	AppliedMigrations(ctx context.Context) ([]storage.Migration, error)
}

// SummarySource produces the dashboard counters.
type SummarySource interface {
	Summary(ctx context.Context) (models.Summary, error)
}

// Options carries the server dependencies. Stats and Views default when nil.
type Options struct {
	Projects    ProjectStore
	Tasks       TaskStore
	Database    Database
	Stats       SummarySource
	Views       *view.Renderer
	Logger      *slog.Logger
	StaticDir   string
	CORSOrigins []string
}

// Server provides the HTML and JSON handlers of the task board.
type Server struct {
	engine    *gin.Engine
	projects  ProjectStore
	tasks     TaskStore
	db        Database
	stats     SummarySource
	logger    *slog.Logger
	staticDir string
}

// New constructs the HTTP server with routes and middleware configured.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	views := opts.Views
	if views == nil {
		views = view.MustNew()
	}
	summaries := opts.Stats
	if summaries == nil {
		summaries = stats.New(opts.Projects, opts.Tasks)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.HTMLRender = views

	srv := &Server{
		engine:    router,
		projects:  opts.Projects,
		tasks:     opts.Tasks,
		db:        opts.Database,
		stats:     summaries,
		logger:    logger,
		staticDir: opts.StaticDir,
	}

	router.Use(requestID(), srv.requestLogger())
	router.Use(gin.CustomRecoveryWithWriter(io.Discard, srv.recoverPanic))
	if len(opts.CORSOrigins) > 0 {
		router.Use(apiOnly(cors.New(corsConfig(opts.CORSOrigins))))
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "HX-Request", "HX-Target", "HX-Trigger", "HX-Current-URL"},
		MaxAge:       12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}

// apiOnly limits a middleware to the /api tree.
func apiOnly(h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			h(c)
			return
		}
		c.Next()
	}
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseID converts a path parameter to int64. Identifiers that are not integers
// cannot name a row, so they are answered as not found.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		notFound(c)
		return 0, false
	}
	return id, true
}

func notFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{"error": "endpoint not found"})
		return
	}
	c.String(http.StatusNotFound, "Page not found")
}

// respondError maps storage errors onto plain responses. Unexpected errors are
// logged and answered with a generic 500.
func (s *Server) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		notFound(c)
	case errors.Is(err, storage.ErrValidation):
		c.String(http.StatusBadRequest, validationMessage(err))
	default:
		s.logger.Error("request failed",
			slog.String("path", c.Request.URL.Path),
			slog.String("request_id", c.GetString(requestIDKey)),
			slog.String("error", err.Error()))
		c.String(http.StatusInternalServerError, "Internal Server Error")
	}
}

func (s *Server) recoverPanic(c *gin.Context, recovered any) {
	s.logger.Error("panic recovered",
		slog.String("path", c.Request.URL.Path),
		slog.String("request_id", c.GetString(requestIDKey)),
		slog.Any("panic", recovered))
	c.String(http.StatusInternalServerError, "Internal Server Error")
	c.Abort()
}

// validationMessage strips the sentinel prefix, leaving the field message.
func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, storage.ErrValidation.Error()+": "); i >= 0 {
		msg = msg[i+len(storage.ErrValidation.Error())+2:]
	}
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", storage.ErrValidation, msg)
}
