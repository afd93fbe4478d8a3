package view

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates
var templatesFS embed.FS

//go:embed assets
var assetsFS embed.FS

// Page template names, each wrapped in the layout shell.
const (
	PageDashboard      = "dashboard"
	PageTasks          = "tasks/index"
	PageTaskForm       = "tasks/form"
	PageTaskShow       = "tasks/show"
	PageProjects       = "projects/index"
	PageProjectForm    = "projects/form"
	PageProjectShow    = "projects/show"
	PageDatabaseStatus = "database/status"
)

// Fragment template names, rendered standalone for partial page updates.
const (
	FragmentTaskCard      = "fragment/task_card"
	FragmentTaskList      = "fragment/task_list"
	FragmentSearchResults = "fragment/search_results"
	FragmentKanban        = "fragment/kanban_board"
	FragmentStatsCards    = "fragment/stats_cards"
)

var pages = []string{
	PageDashboard, PageTasks, PageTaskForm, PageTaskShow,
	PageProjects, PageProjectForm, PageProjectShow, PageDatabaseStatus,
}

var fragments = []string{
	FragmentTaskCard, FragmentTaskList, FragmentSearchResults,
	FragmentKanban, FragmentStatsCards,
}

type entry struct {
	tmpl *template.Template
	name string
}

// Renderer implements gin's render.HTMLRender over the embedded templates.
type Renderer struct {
	entries map[string]entry
	now     func() time.Time
}

// New parses every page and fragment. Pages share the layout and components and
// each gets its own clone so their "content" blocks do not collide.
func New() (*Renderer, error) {
	r := &Renderer{entries: map[string]entry{}, now: time.Now}

	base, err := template.New("base").Funcs(r.funcs()).ParseFS(templatesFS,
		"templates/layout.html", "templates/components/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse base templates: %w", err)
	}

	for _, name := range pages {
		page, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone base for %s: %w", name, err)
		}
		if _, err := page.ParseFS(templatesFS, path.Join("templates", "pages", name+".html")); err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		r.entries[name] = entry{tmpl: page, name: "layout"}
	}

	for _, name := range fragments {
		def := strings.TrimPrefix(name, "fragment/")
		if base.Lookup(def) == nil {
			return nil, fmt.Errorf("fragment %s is not defined", def)
		}
		r.entries[name] = entry{tmpl: base, name: def}
	}
	return r, nil
}

// MustNew is New for program start, where a template error is fatal.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// WithClock fixes the time used for overdue markers.
func (r *Renderer) WithClock(now func() time.Time) *Renderer {
	r.now = now
	return r
}

// Instance satisfies render.HTMLRender.
func (r *Renderer) Instance(name string, data any) render.Render {
	e, ok := r.entries[name]
	if !ok {
		panic(fmt.Sprintf("view: unknown template %q", name))
	}
	return render.HTML{Template: e.tmpl, Name: e.name, Data: data}
}

// Assets exposes the embedded static files (js, css) rooted at the assets directory.
func Assets() fs.FS {
	sub, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}
