// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data. They are similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
//
// Every row type here mirrors one logical table of the content backend:
//
//	timeline         → TimelineEntry
//	skills           → Skill
//	projects         → Project
//	private_contact  → PrivateContact
//
// Rows are read-only from the site's point of view. They are written only by the
// admin API and the seed command.
package model

import "strings"

// Kind values for TimelineEntry.Kind.
// An empty Kind means "not tagged" and the title/organization heuristic decides.
const (
	KindWork      = "work"
	KindEducation = "education"
)

// TimelineEntry is one row of the experience/education timeline.
//
// WHY STRINGS FOR DATES?
// Rows come from hand-edited tables where the end of a period is often the literal
// text "Present". StartDate is expected in ISO form ("2019-08" or "2019-08-01") so the
// backends can order by it lexically; EndDate may be empty, a date, or "Present".
type TimelineEntry struct {
	ID           string   `json:"id"           db:"id"`
	Title        string   `json:"title"        db:"title"`
	Organization string   `json:"organization" db:"organization"`
	StartDate    string   `json:"startDate"    db:"start_date"`
	EndDate      string   `json:"endDate"      db:"end_date"`
	Current      bool     `json:"current"      db:"current"`
	Summary      string   `json:"summary"      db:"summary"`
	Bullets      []string `json:"bullets"      db:"bullets"`
	Kind         string   `json:"kind"         db:"kind"` // "work", "education" or "" (untagged)
}

// IsCurrent reports whether the entry is still ongoing: explicitly flagged, no end
// date, or an end date that says "present" in any casing.
func (e TimelineEntry) IsCurrent() bool {
	if e.Current {
		return true
	}
	end := strings.TrimSpace(e.EndDate)
	return end == "" || strings.Contains(strings.ToLower(end), "present")
}

// Period renders the date range the way the timeline shows it: start and end
// joined by an em dash, e.g. 2019-08 to Present.
// A blank end date always means the entry is ongoing.
func (e TimelineEntry) Period() string {
	start := strings.TrimSpace(e.StartDate)
	end := strings.TrimSpace(e.EndDate)
	if end == "" {
		end = "Present"
	}
	if start == "" {
		return end
	}
	return start + " — " + end
}
