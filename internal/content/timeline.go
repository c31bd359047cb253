package content

import (
	"strings"

	"github.com/sakif/portfolio/internal/model"
)

// Section is where a timeline entry is shown.
type Section string

const (
	SectionCurrent   Section = "current"
	SectionWork      Section = "work"
	SectionEducation Section = "education"
)

// educationMarkers are matched case-insensitively against an entry's title and
// organization when the row carries no explicit kind. Bare "master" and
// "associate" are left out on purpose: "Scrum Master" and "Associate Engineer"
// are job titles.
var educationMarkers = []string{
	"b.s.", "b.a.", "m.s.", "m.a.", "ph.d", "a.a.",
	"bachelor", "master's", "degree",
	"university", "college", "school",
}

// Classify decides which section an entry belongs to.
//
// An explicit Kind wins. Otherwise education markers in the title or organization
// win over dates, so a degree with no end date is still education. Remaining
// entries are current when IsCurrent holds and past work otherwise.
func Classify(e model.TimelineEntry) Section {
	switch strings.ToLower(strings.TrimSpace(e.Kind)) {
	case model.KindEducation:
		return SectionEducation
	case model.KindWork:
		if e.IsCurrent() {
			return SectionCurrent
		}
		return SectionWork
	}

	if looksLikeEducation(e.Title) || looksLikeEducation(e.Organization) {
		return SectionEducation
	}
	if e.IsCurrent() {
		return SectionCurrent
	}
	return SectionWork
}

func looksLikeEducation(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range educationMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// Timeline is a list of entries split into its three display sections.
type Timeline struct {
	Current   []model.TimelineEntry `json:"current"`
	Work      []model.TimelineEntry `json:"work"`
	Education []model.TimelineEntry `json:"education"`
}

// PartitionTimeline splits entries into sections, keeping input order within each.
func PartitionTimeline(entries []model.TimelineEntry) Timeline {
	t := Timeline{
		Current:   []model.TimelineEntry{},
		Work:      []model.TimelineEntry{},
		Education: []model.TimelineEntry{},
	}
	for _, e := range entries {
		switch Classify(e) {
		case SectionEducation:
			t.Education = append(t.Education, e)
		case SectionCurrent:
			t.Current = append(t.Current, e)
		default:
			t.Work = append(t.Work, e)
		}
	}
	return t
}

// Ordered concatenates the sections: current, then past work, then education.
func (t Timeline) Ordered() []model.TimelineEntry {
	out := make([]model.TimelineEntry, 0, len(t.Current)+len(t.Work)+len(t.Education))
	out = append(out, t.Current...)
	out = append(out, t.Work...)
	out = append(out, t.Education...)
	return out
}

// Len is the total number of entries across all sections.
func (t Timeline) Len() int {
	return len(t.Current) + len(t.Work) + len(t.Education)
}

// DefaultActive picks the entry the timeline opens on: the first current entry,
// falling back to the first entry of the ordered list. Returns "" when empty.
func (t Timeline) DefaultActive() string {
	if len(t.Current) > 0 {
		return t.Current[0].ID
	}
	if ordered := t.Ordered(); len(ordered) > 0 {
		return ordered[0].ID
	}
	return ""
}
