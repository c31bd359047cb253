package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/xid"
	"github.com/sakif/portfolio/internal/apperror"
	"github.com/sakif/portfolio/internal/model"
)

// ListSkills returns skills by sort order, then name.
//
// NULL ORDERING:
// SQLite puts NULLs FIRST in ascending order; Postgres puts them last.
// `sort_order IS NULL` evaluates to 0 or 1, so ordering by it first pushes
// un-positioned skills to the end on both backends.
func (db *DB) ListSkills(ctx context.Context) ([]model.Skill, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, category, name, level, sort_order
		 FROM skills
		 ORDER BY sort_order IS NULL, sort_order ASC, name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing skills: %w", err)
	}
	defer rows.Close()

	skills := make([]model.Skill, 0)
	for rows.Next() {
		var s model.Skill
		// sql.NullInt64 handles the nullable column; we convert to *int below.
		var sortOrder sql.NullInt64
		if err := rows.Scan(&s.ID, &s.Category, &s.Name, &s.Level, &sortOrder); err != nil {
			return nil, fmt.Errorf("sqlite: scanning skill row: %w", err)
		}
		if sortOrder.Valid {
			v := int(sortOrder.Int64)
			s.SortOrder = &v
		}
		skills = append(skills, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating skills: %w", err)
	}

	return skills, nil
}

// CreateSkill inserts a row. An empty ID is filled with a new xid.
func (db *DB) CreateSkill(ctx context.Context, skill *model.Skill) error {
	if skill.ID == "" {
		skill.ID = xid.New().String()
	}

	var sortOrder sql.NullInt64
	if skill.SortOrder != nil {
		sortOrder = sql.NullInt64{Int64: int64(*skill.SortOrder), Valid: true}
	}

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO skills (id, category, name, level, sort_order)
		 VALUES (?, ?, ?, ?, ?)`,
		skill.ID, skill.Category, skill.Name, skill.Level, sortOrder,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("skill", skill.ID)
		}
		return fmt.Errorf("sqlite: creating skill: %w", err)
	}

	return nil
}
