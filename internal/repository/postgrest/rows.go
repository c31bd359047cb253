package postgrest

import (
	"time"

	"github.com/sakif/portfolio/internal/model"
)

// Row types mirror the table columns exactly (snake_case). The model types use
// camelCase JSON for the public API, so we convert at the boundary.

type timelineRow struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Organization string   `json:"organization"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Current      bool     `json:"current"`
	Summary      string   `json:"summary"`
	Bullets      []string `json:"bullets"`
	Kind         string   `json:"kind"`
}

func (r timelineRow) toModel() model.TimelineEntry {
	return model.TimelineEntry{
		ID:           r.ID,
		Title:        r.Title,
		Organization: r.Organization,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		Current:      r.Current,
		Summary:      r.Summary,
		Bullets:      nonNil(r.Bullets),
		Kind:         r.Kind,
	}
}

func timelineRowFrom(e *model.TimelineEntry) timelineRow {
	return timelineRow{
		ID:           e.ID,
		Title:        e.Title,
		Organization: e.Organization,
		StartDate:    e.StartDate,
		EndDate:      e.EndDate,
		Current:      e.Current,
		Summary:      e.Summary,
		Bullets:      nonNil(e.Bullets),
		Kind:         e.Kind,
	}
}

type skillRow struct {
	ID        string `json:"id"`
	Category  string `json:"category"`
	Name      string `json:"name"`
	Level     int    `json:"level"`
	SortOrder *int   `json:"sort_order"`
}

func (r skillRow) toModel() model.Skill {
	return model.Skill{
		ID:        r.ID,
		Category:  r.Category,
		Name:      r.Name,
		Level:     r.Level,
		SortOrder: r.SortOrder,
	}
}

type projectRow struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Technologies []string  `json:"technologies"`
	Bullets      []string  `json:"bullets"`
	MediaURL     string    `json:"media_url"`
	MediaType    string    `json:"media_type"`
	WebsiteURL   string    `json:"website_url"`
	Category     string    `json:"category"`
	Featured     bool      `json:"featured"`
	CreatedAt    time.Time `json:"created_at"`
}

func (r projectRow) toModel() model.Project {
	return model.Project{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Technologies: nonNil(r.Technologies),
		Bullets:      nonNil(r.Bullets),
		MediaURL:     r.MediaURL,
		MediaType:    r.MediaType,
		WebsiteURL:   r.WebsiteURL,
		Category:     r.Category,
		Featured:     r.Featured,
		CreatedAt:    r.CreatedAt,
	}
}

func projectRowFrom(p *model.Project) projectRow {
	return projectRow{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Technologies: nonNil(p.Technologies),
		Bullets:      nonNil(p.Bullets),
		MediaURL:     p.MediaURL,
		MediaType:    p.MediaType,
		WebsiteURL:   p.WebsiteURL,
		Category:     p.Category,
		Featured:     p.Featured,
		CreatedAt:    p.CreatedAt,
	}
}

type contactRow struct {
	ID          string    `json:"id"`
	AccessCode  string    `json:"access_code"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	LinkedInURL string    `json:"linkedin_url"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (r contactRow) toModel() *model.PrivateContact {
	return &model.PrivateContact{
		ID:          r.ID,
		AccessCode:  r.AccessCode,
		Phone:       r.Phone,
		Email:       r.Email,
		LinkedInURL: r.LinkedInURL,
		Location:    r.Location,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func contactRowFrom(c *model.PrivateContact) contactRow {
	return contactRow{
		ID:          c.ID,
		AccessCode:  c.AccessCode,
		Phone:       c.Phone,
		Email:       c.Email,
		LinkedInURL: c.LinkedInURL,
		Location:    c.Location,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
