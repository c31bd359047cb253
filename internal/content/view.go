package content

import "strings"

// Panel identifies which quick panel on the home page is open.
type Panel string

const (
	PanelNone      Panel = ""
	PanelSkills    Panel = "skills"
	PanelEducation Panel = "education"
	PanelProjects  Panel = "projects"
	PanelContact   Panel = "contact"
)

// Panels lists the panels in menu order.
var Panels = []Panel{PanelSkills, PanelEducation, PanelProjects, PanelContact}

// ParsePanel maps a query value to a Panel; unknown values mean no panel.
func ParsePanel(v string) Panel {
	p := Panel(strings.ToLower(strings.TrimSpace(v)))
	for _, known := range Panels {
		if p == known {
			return p
		}
	}
	return PanelNone
}

// Label is the menu text for the panel.
func (p Panel) Label() string {
	if p == PanelNone {
		return ""
	}
	s := string(p)
	return strings.ToUpper(s[:1]) + s[1:]
}

// ViewState is everything about the page that is not content: which panel is open
// and where the contact gate stands. It is built per request and passed down to the
// templates; nothing about it outlives the response.
type ViewState struct {
	Panel   Panel
	Contact ContactGate
}

// IsOpen reports whether p is the open panel.
func (v ViewState) IsOpen(p Panel) bool {
	return v.Panel != PanelNone && v.Panel == p
}
