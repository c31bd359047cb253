package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/portfolio/internal/apperror"
	"github.com/sakif/portfolio/internal/model"
	"github.com/sakif/portfolio/internal/repository"
)

// FindContactByCode returns the contact row whose access code equals code.
//
// The comparison is a plain SQL equality, the same as the hosted backends do it.
// When nothing matches we return apperror.NoMatch rather than NotFound so the
// submitted code never ends up in an error message.
func (db *DB) FindContactByCode(ctx context.Context, code string) (*model.PrivateContact, error) {
	var c model.PrivateContact

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, access_code, phone, email, linkedin_url, location, created_at, updated_at
		 FROM private_contact
		 WHERE access_code = ?`,
		code,
	).Scan(
		&c.ID, &c.AccessCode, &c.Phone, &c.Email,
		&c.LinkedInURL, &c.Location, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NoMatch("private contact")
		}
		return nil, fmt.Errorf("sqlite: finding private contact: %w", err)
	}

	return &c, nil
}

// SaveContact inserts the row, or replaces every field of the row with the same ID.
// Access codes are UNIQUE, so two rows can never unlock with the same code.
func (db *DB) SaveContact(ctx context.Context, contact *model.PrivateContact) error {
	if contact.ID == "" {
		contact.ID = xid.New().String()
	}
	now := time.Now()
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = now
	}
	contact.UpdatedAt = now

	// UPSERT:
	// INSERT ... ON CONFLICT(id) DO UPDATE is SQLite's (and Postgres's) upsert.
	// `excluded` refers to the row we tried to insert.
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO private_contact (id, access_code, phone, email, linkedin_url, location, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   access_code  = excluded.access_code,
		   phone        = excluded.phone,
		   email        = excluded.email,
		   linkedin_url = excluded.linkedin_url,
		   location     = excluded.location,
		   updated_at   = excluded.updated_at`,
		contact.ID,
		contact.AccessCode,
		contact.Phone,
		contact.Email,
		contact.LinkedInURL,
		contact.Location,
		contact.CreatedAt,
		contact.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("private contact", contact.ID)
		}
		return fmt.Errorf("sqlite: saving private contact: %w", err)
	}

	return nil
}

// Delete removes one row from a content table.
//
// The table name is interpolated, which is only safe because repository.Table is a
// closed set checked by ParseTable; the id still goes through a placeholder.
func (db *DB) Delete(ctx context.Context, table repository.Table, id string) error {
	if _, ok := repository.ParseTable(string(table)); !ok {
		return apperror.ValidationFailed("table", fmt.Sprintf("unknown table %q", table))
	}

	result, err := db.conn.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table),
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting from %s %s: %w", table, id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound(string(table), id)
	}

	return nil
}
