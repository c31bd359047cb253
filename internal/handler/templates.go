package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"strings"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"github.com/sakif/portfolio/internal/model"
)

// md renders trusted-but-unsanitised text from the content store. Raw HTML in
// the input is escaped because WithUnsafe is not set.
var md = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

func renderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

// stars draws a 1..5 level as filled and empty stars.
func stars(level int) string {
	level = max(model.MinSkillLevel, min(level, model.MaxSkillLevel))
	return strings.Repeat("★", level) + strings.Repeat("☆", model.MaxSkillLevel-level)
}

type timelineGroupView struct {
	Heading  string
	Items    []model.TimelineEntry
	ActiveID string
}

type timelineEntryView struct {
	Entry  model.TimelineEntry
	Active bool
}

var funcs = template.FuncMap{
	"renderMarkdown": renderMarkdown,
	"stars":          stars,
	"timelineGroup": func(heading string, items []model.TimelineEntry, activeID string) timelineGroupView {
		return timelineGroupView{Heading: heading, Items: items, ActiveID: activeID}
	},
	"entryView": func(e model.TimelineEntry, activeID string) timelineEntryView {
		return timelineEntryView{Entry: e, Active: e.ID != "" && e.ID == activeID}
	},
}

// Page names double as template file names under templates/.
const (
	pageHome      = "home"
	pageSkills    = "skills"
	pageEducation = "education"
	pageProjects  = "projects"
)

var pageNames = []string{pageHome, pageSkills, pageEducation, pageProjects}

// shared holds the templates every page is parsed with.
var shared = []string{"templates/base.html", "templates/partials.html", "templates/contact.html"}

// parsePages builds one template set per page. Each set has its own "content"
// definition, so they cannot share a single *template.Template.
func parsePages(fsys fs.FS) (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		files := append(append([]string{}, shared...), "templates/"+name+".html")
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(fsys, files...)
		if err != nil {
			return nil, fmt.Errorf("handler: parsing %s templates: %w", name, err)
		}
		pages[name] = tmpl
	}
	return pages, nil
}
