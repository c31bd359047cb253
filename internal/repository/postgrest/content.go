package postgrest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/portfolio/internal/apperror"
	"github.com/sakif/portfolio/internal/model"
	"github.com/sakif/portfolio/internal/repository"
)

func selectAll(order string) url.Values {
	q := url.Values{}
	q.Set("select", "*")
	if order != "" {
		q.Set("order", order)
	}
	return q
}

// ListTimeline returns every timeline row, newest start date first.
func (c *Client) ListTimeline(ctx context.Context) ([]model.TimelineEntry, error) {
	var rows []timelineRow
	if err := c.do(ctx, http.MethodGet, string(repository.TableTimeline),
		selectAll("start_date.desc"), nil, "", &rows); err != nil {
		return nil, fmt.Errorf("postgrest: listing timeline: %w", err)
	}

	entries := make([]model.TimelineEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, r.toModel())
	}
	return entries, nil
}

// ListSkills returns skills by sort order (NULLs last), then name.
func (c *Client) ListSkills(ctx context.Context) ([]model.Skill, error) {
	var rows []skillRow
	if err := c.do(ctx, http.MethodGet, string(repository.TableSkills),
		selectAll("sort_order.asc.nullslast,name.asc"), nil, "", &rows); err != nil {
		return nil, fmt.Errorf("postgrest: listing skills: %w", err)
	}

	skills := make([]model.Skill, 0, len(rows))
	for _, r := range rows {
		skills = append(skills, r.toModel())
	}
	return skills, nil
}

// ListProjects returns featured projects first, newest first within each group.
func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var rows []projectRow
	if err := c.do(ctx, http.MethodGet, string(repository.TableProjects),
		selectAll("featured.desc,created_at.desc"), nil, "", &rows); err != nil {
		return nil, fmt.Errorf("postgrest: listing projects: %w", err)
	}

	projects := make([]model.Project, 0, len(rows))
	for _, r := range rows {
		projects = append(projects, r.toModel())
	}
	return projects, nil
}

// FindContactByCode filters private_contact by access_code equality.
// An empty result is apperror.NoMatch.
func (c *Client) FindContactByCode(ctx context.Context, code string) (*model.PrivateContact, error) {
	q := selectAll("")
	q.Set("access_code", "eq."+code)
	q.Set("limit", "1")

	var rows []contactRow
	if err := c.do(ctx, http.MethodGet, string(repository.TableContact), q, nil, "", &rows); err != nil {
		return nil, fmt.Errorf("postgrest: finding private contact: %w", err)
	}
	if len(rows) == 0 {
		return nil, apperror.NoMatch("private contact")
	}
	return rows[0].toModel(), nil
}

// CreateTimelineEntry inserts a row. An empty ID is filled with a new xid.
func (c *Client) CreateTimelineEntry(ctx context.Context, entry *model.TimelineEntry) error {
	if entry.ID == "" {
		entry.ID = xid.New().String()
	}
	err := c.do(ctx, http.MethodPost, string(repository.TableTimeline), nil,
		timelineRowFrom(entry), "return=minimal", nil)
	if err != nil {
		if isConflict(err) {
			return apperror.Conflict("timeline entry", entry.ID)
		}
		return fmt.Errorf("postgrest: creating timeline entry: %w", err)
	}
	return nil
}

// CreateSkill inserts a row. An empty ID is filled with a new xid.
func (c *Client) CreateSkill(ctx context.Context, skill *model.Skill) error {
	if skill.ID == "" {
		skill.ID = xid.New().String()
	}
	row := skillRow{
		ID:        skill.ID,
		Category:  skill.Category,
		Name:      skill.Name,
		Level:     skill.Level,
		SortOrder: skill.SortOrder,
	}
	err := c.do(ctx, http.MethodPost, string(repository.TableSkills), nil, row, "return=minimal", nil)
	if err != nil {
		if isConflict(err) {
			return apperror.Conflict("skill", skill.ID)
		}
		return fmt.Errorf("postgrest: creating skill: %w", err)
	}
	return nil
}

// CreateProject inserts a row. An empty ID is filled with a new xid and a zero
// CreatedAt with the current time.
func (c *Client) CreateProject(ctx context.Context, project *model.Project) error {
	if project.ID == "" {
		project.ID = xid.New().String()
	}
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}
	err := c.do(ctx, http.MethodPost, string(repository.TableProjects), nil,
		projectRowFrom(project), "return=minimal", nil)
	if err != nil {
		if isConflict(err) {
			return apperror.Conflict("project", project.ID)
		}
		return fmt.Errorf("postgrest: creating project: %w", err)
	}
	return nil
}

// SaveContact upserts on the primary key using PostgREST's merge-duplicates
// resolution. A clash on access_code is still a 409.
func (c *Client) SaveContact(ctx context.Context, contact *model.PrivateContact) error {
	if contact.ID == "" {
		contact.ID = xid.New().String()
	}
	now := time.Now().UTC()
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = now
	}
	contact.UpdatedAt = now

	err := c.do(ctx, http.MethodPost, string(repository.TableContact), nil,
		contactRowFrom(contact), "resolution=merge-duplicates,return=minimal", nil)
	if err != nil {
		if isConflict(err) {
			return apperror.Conflict("private contact", contact.ID)
		}
		return fmt.Errorf("postgrest: saving private contact: %w", err)
	}
	return nil
}

// Delete removes one row. PostgREST answers 2xx even when the filter matched
// nothing, so we ask for the deleted rows back and count them.
func (c *Client) Delete(ctx context.Context, table repository.Table, id string) error {
	if _, ok := repository.ParseTable(string(table)); !ok {
		return apperror.ValidationFailed("table", fmt.Sprintf("unknown table %q", table))
	}

	q := url.Values{}
	q.Set("id", "eq."+id)
	q.Set("select", "id")

	var deleted []struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodDelete, string(table), q, nil, "return=representation", &deleted); err != nil {
		return fmt.Errorf("postgrest: deleting from %s %s: %w", table, id, err)
	}
	if len(deleted) == 0 {
		return apperror.NotFound(string(table), id)
	}
	return nil
}
