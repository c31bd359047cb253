package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/portfolio/internal/apperror"
	"github.com/sakif/portfolio/internal/model"
)

// ListProjects returns featured projects first, newest first within each group.
func (db *DB) ListProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, description, technologies, bullets, media_url, media_type,
		        website_url, category, featured, created_at
		 FROM projects
		 ORDER BY featured DESC, created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing projects: %w", err)
	}
	defer rows.Close()

	projects := make([]model.Project, 0)
	for rows.Next() {
		var p model.Project
		var technologies, bullets string
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &technologies, &bullets,
			&p.MediaURL, &p.MediaType, &p.WebsiteURL, &p.Category,
			&p.Featured, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning project row: %w", err)
		}
		if p.Technologies, err = decodeList("technologies", technologies); err != nil {
			return nil, fmt.Errorf("sqlite: project %s: %w", p.ID, err)
		}
		if p.Bullets, err = decodeList("bullets", bullets); err != nil {
			return nil, fmt.Errorf("sqlite: project %s: %w", p.ID, err)
		}
		projects = append(projects, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating projects: %w", err)
	}

	return projects, nil
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

	technologies, err := encodeList(project.Technologies)
	if err != nil {
		return fmt.Errorf("sqlite: encoding project technologies: %w", err)
	}
	bullets, err := encodeList(project.Bullets)
	if err != nil {
		return fmt.Errorf("sqlite: encoding project bullets: %w", err)
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO projects (id, title, description, technologies, bullets, media_url, media_type,
		                       website_url, category, featured, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		project.ID,
		project.Title,
		project.Description,
		technologies,
		bullets,
		project.MediaURL,
		project.MediaType,
		project.WebsiteURL,
		project.Category,
		boolToInt(project.Featured),
		project.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("project", project.ID)
		}
		return fmt.Errorf("sqlite: creating project: %w", err)
	}

	return nil
}
