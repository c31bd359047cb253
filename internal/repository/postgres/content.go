package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/xid"

	"github.com/sakif/portfolio/internal/apperror"
	"github.com/sakif/portfolio/internal/model"
	"github.com/sakif/portfolio/internal/repository"
)

// ListTimeline returns every timeline row, newest start date first.
func (db *DB) ListTimeline(ctx context.Context) ([]model.TimelineEntry, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, organization, start_date, end_date, current, summary, bullets, kind
		 FROM timeline
		 ORDER BY start_date DESC, created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing timeline: %w", err)
	}
	defer rows.Close()

	entries := make([]model.TimelineEntry, 0)
	for rows.Next() {
		var e model.TimelineEntry
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Organization, &e.StartDate, &e.EndDate,
			&e.Current, &e.Summary, &e.Bullets, &e.Kind,
		); err != nil {
			return nil, fmt.Errorf("postgres: scanning timeline row: %w", err)
		}
		e.Bullets = nonNil(e.Bullets)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterating timeline: %w", err)
	}

	return entries, nil
}

// ListSkills returns skills by sort order (NULLs last), then name.
func (db *DB) ListSkills(ctx context.Context) ([]model.Skill, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, category, name, level, sort_order
		 FROM skills
		 ORDER BY sort_order ASC NULLS LAST, name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing skills: %w", err)
	}
	defer rows.Close()

	skills := make([]model.Skill, 0)
	for rows.Next() {
		var s model.Skill
		if err := rows.Scan(&s.ID, &s.Category, &s.Name, &s.Level, &s.SortOrder); err != nil {
			return nil, fmt.Errorf("postgres: scanning skill row: %w", err)
		}
		skills = append(skills, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterating skills: %w", err)
	}

	return skills, nil
}

// ListProjects returns featured projects first, newest first within each group.
func (db *DB) ListProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, description, technologies, bullets, media_url, media_type,
		        website_url, category, featured, created_at
		 FROM projects
		 ORDER BY featured DESC, created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing projects: %w", err)
	}
	defer rows.Close()

	projects := make([]model.Project, 0)
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.Technologies, &p.Bullets,
			&p.MediaURL, &p.MediaType, &p.WebsiteURL, &p.Category,
			&p.Featured, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres: scanning project row: %w", err)
		}
		p.Technologies = nonNil(p.Technologies)
		p.Bullets = nonNil(p.Bullets)
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterating projects: %w", err)
	}

	return projects, nil
}

// FindContactByCode returns the contact row whose access code equals code.
func (db *DB) FindContactByCode(ctx context.Context, code string) (*model.PrivateContact, error) {
	var c model.PrivateContact
	err := db.pool.QueryRow(ctx,
		`SELECT id, access_code, phone, email, linkedin_url, location, created_at, updated_at
		 FROM private_contact
		 WHERE access_code = $1`,
		code,
	).Scan(
		&c.ID, &c.AccessCode, &c.Phone, &c.Email,
		&c.LinkedInURL, &c.Location, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NoMatch("private contact")
		}
		return nil, fmt.Errorf("postgres: finding private contact: %w", err)
	}
	return &c, nil
}

// CreateTimelineEntry inserts a row. An empty ID is filled with a new xid.
func (db *DB) CreateTimelineEntry(ctx context.Context, entry *model.TimelineEntry) error {
	if entry.ID == "" {
		entry.ID = xid.New().String()
	}
	_, err := db.pool.Exec(ctx,
		`INSERT INTO timeline (id, title, organization, start_date, end_date, current, summary, bullets, kind)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entry.ID, entry.Title, entry.Organization, entry.StartDate, entry.EndDate,
		entry.Current, entry.Summary, nonNil(entry.Bullets), entry.Kind,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("timeline entry", entry.ID)
		}
		return fmt.Errorf("postgres: creating timeline entry: %w", err)
	}
	return nil
}

// CreateSkill inserts a row. An empty ID is filled with a new xid.
func (db *DB) CreateSkill(ctx context.Context, skill *model.Skill) error {
	if skill.ID == "" {
		skill.ID = xid.New().String()
	}
	_, err := db.pool.Exec(ctx,
		`INSERT INTO skills (id, category, name, level, sort_order)
		 VALUES ($1, $2, $3, $4, $5)`,
		skill.ID, skill.Category, skill.Name, skill.Level, skill.SortOrder,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("skill", skill.ID)
		}
		return fmt.Errorf("postgres: creating skill: %w", err)
	}
	return nil
}

// CreateProject inserts a row. An empty ID is filled with a new xid and a zero
// CreatedAt with the current time.
func (db *DB) CreateProject(ctx context.Context, project *model.Project) error {
	if project.ID == "" {
		project.ID = xid.New().String()
	}
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now()
	}
	_, err := db.pool.Exec(ctx,
		`INSERT INTO projects (id, title, description, technologies, bullets, media_url, media_type,
		                       website_url, category, featured, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		project.ID, project.Title, project.Description,
		nonNil(project.Technologies), nonNil(project.Bullets),
		project.MediaURL, project.MediaType, project.WebsiteURL, project.Category,
		project.Featured, project.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("project", project.ID)
		}
		return fmt.Errorf("postgres: creating project: %w", err)
	}
	return nil
}

// SaveContact inserts the row, or replaces every field of the row with the same ID.
func (db *DB) SaveContact(ctx context.Context, contact *model.PrivateContact) error {
	if contact.ID == "" {
		contact.ID = xid.New().String()
	}
	now := time.Now()
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = now
	}
	contact.UpdatedAt = now

	_, err := db.pool.Exec(ctx,
		`INSERT INTO private_contact (id, access_code, phone, email, linkedin_url, location, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE SET
		   access_code  = EXCLUDED.access_code,
		   phone        = EXCLUDED.phone,
		   email        = EXCLUDED.email,
		   linkedin_url = EXCLUDED.linkedin_url,
		   location     = EXCLUDED.location,
		   updated_at   = EXCLUDED.updated_at`,
		contact.ID, contact.AccessCode, contact.Phone, contact.Email,
		contact.LinkedInURL, contact.Location, contact.CreatedAt, contact.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("private contact", contact.ID)
		}
		return fmt.Errorf("postgres: saving private contact: %w", err)
	}
	return nil
}

// Delete removes one row from a content table. The table name comes from the
// closed repository.Table set and is quoted with pgx.Identifier.
func (db *DB) Delete(ctx context.Context, table repository.Table, id string) error {
	if _, ok := repository.ParseTable(string(table)); !ok {
		return apperror.ValidationFailed("table", fmt.Sprintf("unknown table %q", table))
	}

	tag, err := db.pool.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, pgx.Identifier{string(table)}.Sanitize()),
		id,
	)
	if err != nil {
		return fmt.Errorf("postgres: deleting from %s %s: %w", table, id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound(string(table), id)
	}
	return nil
}
