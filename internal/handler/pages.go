// Package handler is the HTTP layer: server-rendered pages, the JSON API and
// the admin API. Handlers parse requests, call a service and write a response;
// grouping, classification and gating all live below them.
package handler

import (
	"bytes"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/sakif/portfolio/internal/content"
	"github.com/sakif/portfolio/internal/service"
)

// ResumeFile is served by GET /resume from the static directory.
const ResumeFile = "resume.pdf"

// Site is the fixed text around the content.
type Site struct {
	Name            string
	Tagline         string
	About           string
	ResumeAvailable bool
}

// pageData is what every page template receives. Sections a page does not
// show are left zero.
type pageData struct {
	Site        Site
	Title       string
	Active      string
	Year        int
	View        content.ViewState
	Panels      []content.Panel
	ActiveEntry string

	Timeline service.Section[content.Timeline]
	Skills   service.Section[[]content.SkillGroup]
	Projects service.Section[[]service.ProjectView]
}

// PageHandler renders the public HTML pages.
type PageHandler struct {
	content   *service.ContentService
	contact   *service.ContactService
	site      Site
	staticDir string
	pages     map[string]*template.Template
	logger    *slog.Logger
}

// NewPageHandler parses the page templates from fsys once, at startup.
// staticDir is where ResumeFile is looked up; it may be empty.
func NewPageHandler(
	contentSvc *service.ContentService,
	contactSvc *service.ContactService,
	site Site,
	staticDir string,
	fsys fs.FS,
	logger *slog.Logger,
) (*PageHandler, error) {
	pages, err := parsePages(fsys)
	if err != nil {
		return nil, err
	}
	if staticDir != "" {
		if _, err := os.Stat(filepath.Join(staticDir, ResumeFile)); err == nil {
			site.ResumeAvailable = true
		}
	}

	return &PageHandler{
		content:   contentSvc,
		contact:   contactSvc,
		site:      site,
		staticDir: staticDir,
		pages:     pages,
		logger:    logger,
	}, nil
}

func (h *PageHandler) newPage(title, active string) pageData {
	return pageData{
		Site:   h.site,
		Title:  title,
		Active: active,
		Year:   time.Now().Year(),
		Panels: content.Panels,
	}
}

// HandleHome serves GET /. ?panel= opens one of the quick panels and ?entry=
// selects a timeline entry; the default is the first current one.
func (h *PageHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	data := h.homeData(r, content.ContactGate{})
	h.render(w, pageHome, http.StatusOK, data)
}

func (h *PageHandler) homeData(r *http.Request, gate content.ContactGate) pageData {
	home := h.content.Home(r.Context())

	data := h.newPage("", "")
	data.View = content.ViewState{Panel: content.ParsePanel(r.URL.Query().Get("panel")), Contact: gate}
	data.Timeline = home.Timeline
	data.Skills = home.Skills
	data.Projects = home.Projects
	data.ActiveEntry = activeEntry(home.Timeline.Data, r.URL.Query().Get("entry"))
	return data
}

// activeEntry returns requested when it names an entry, else the default.
func activeEntry(t content.Timeline, requested string) string {
	if requested != "" {
		for _, e := range t.Ordered() {
			if e.ID == requested {
				return requested
			}
		}
	}
	return t.DefaultActive()
}

// HandleSkills serves GET /skills.
func (h *PageHandler) HandleSkills(w http.ResponseWriter, r *http.Request) {
	data := h.newPage("Skills", pageSkills)
	data.Skills.Data, data.Skills.Err = h.content.SkillGroups(r.Context())
	h.logSection("skills", data.Skills.Err)
	h.render(w, pageSkills, http.StatusOK, data)
}

// HandleEducation serves GET /education: the whole timeline, education included.
func (h *PageHandler) HandleEducation(w http.ResponseWriter, r *http.Request) {
	data := h.newPage("Experience & Education", pageEducation)
	data.Timeline.Data, data.Timeline.Err = h.content.Timeline(r.Context())
	h.logSection("timeline", data.Timeline.Err)
	data.ActiveEntry = activeEntry(data.Timeline.Data, r.URL.Query().Get("entry"))
	h.render(w, pageEducation, http.StatusOK, data)
}

// HandleProjects serves GET /projects.
func (h *PageHandler) HandleProjects(w http.ResponseWriter, r *http.Request) {
	data := h.newPage("Projects", pageProjects)
	data.Projects.Data, data.Projects.Err = h.content.Projects(r.Context())
	h.logSection("projects", data.Projects.Err)
	h.render(w, pageProjects, http.StatusOK, data)
}

// HandleUnlock serves POST /contact/unlock.
//
// htmx requests (HX-Request: true) get just the contact panel back. A plain
// form post gets the whole home page with the contact panel open, so the
// form also works without JavaScript. Both answer 200 on a wrong code: the
// result is a rendered panel, not an API error.
func (h *PageHandler) HandleUnlock(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	gate := h.contact.Unlock(r.Context(), r.PostForm.Get("code"))
	h.renderGate(w, r, gate, http.StatusOK)
}

// HandleUnlockLimited answers an unlock attempt over the rate limit.
func (h *PageHandler) HandleUnlockLimited(w http.ResponseWriter, r *http.Request) {
	gate := content.ContactGate{State: content.Locked, Message: "Too many attempts. Try again in a minute."}
	h.renderGate(w, r, gate, http.StatusTooManyRequests)
}

func (h *PageHandler) renderGate(w http.ResponseWriter, r *http.Request, gate content.ContactGate, status int) {
	if r.Header.Get("HX-Request") == "true" {
		view := content.ViewState{Panel: content.PanelContact, Contact: gate}
		h.renderTemplate(w, pageHome, "contact-panel", status, view)
		return
	}

	data := h.homeData(r, gate)
	data.View.Panel = content.PanelContact
	h.render(w, pageHome, status, data)
}

// HandleResume serves GET /resume as a download.
func (h *PageHandler) HandleResume(w http.ResponseWriter, r *http.Request) {
	if h.staticDir == "" {
		http.NotFound(w, r)
		return
	}
	path := filepath.Join(h.staticDir, ResumeFile)
	if _, err := os.Stat(path); err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="`+ResumeFile+`"`)
	http.ServeFile(w, r, path)
}

func (h *PageHandler) logSection(section string, err error) {
	if err != nil {
		h.logger.Error("section failed to load",
			slog.String("section", section),
			slog.String("error", err.Error()),
		)
	}
}

func (h *PageHandler) render(w http.ResponseWriter, page string, status int, data pageData) {
	h.renderTemplate(w, page, "base", status, data)
}

// renderTemplate executes into a buffer first so a template error can still
// become a clean 500 instead of a half-written page.
func (h *PageHandler) renderTemplate(w http.ResponseWriter, page, name string, status int, data any) {
	var buf bytes.Buffer
	if err := h.pages[page].ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error("failed to render template",
			slog.String("page", page),
			slog.String("template", name),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
