package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/portfolio/internal/apperror"
	"github.com/sakif/portfolio/internal/model"
	"github.com/sakif/portfolio/internal/repository"
)

// COMPILE-TIME INTERFACE CHECK:
// This line verifies AT COMPILE TIME that *DB implements repository.Store.
//
// How it works:
//   - `var _ X = (*Y)(nil)` creates a nil pointer of type *Y
//   - It assigns it to a variable of type X (the interface)
//   - If *Y doesn't implement X, the compiler errors immediately
//   - The `_` means we don't actually use the variable; it's just a check
var _ repository.Store = (*DB)(nil)

// ListTimeline returns every timeline row, newest start date first.
//
// Start dates are ISO-ish text ("2019-08"), so ORDER BY on the text column gives
// chronological order. The caller re-sorts into current/work/education anyway.
func (db *DB) ListTimeline(ctx context.Context) ([]model.TimelineEntry, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, organization, start_date, end_date, current, summary, bullets, kind
		 FROM timeline
		 ORDER BY start_date DESC, created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing timeline: %w", err)
	}
	// CRITICAL: always close rows when done!
	defer rows.Close()

	entries := make([]model.TimelineEntry, 0)
	for rows.Next() {
		var e model.TimelineEntry
		var bullets string
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Organization, &e.StartDate, &e.EndDate,
			&e.Current, &e.Summary, &bullets, &e.Kind,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning timeline row: %w", err)
		}
		if e.Bullets, err = decodeList("bullets", bullets); err != nil {
			return nil, fmt.Errorf("sqlite: timeline %s: %w", e.ID, err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating timeline: %w", err)
	}

	return entries, nil
}

// CreateTimelineEntry inserts a row. An empty ID is filled with a new xid.
func (db *DB) CreateTimelineEntry(ctx context.Context, entry *model.TimelineEntry) error {
	if entry.ID == "" {
		entry.ID = xid.New().String()
	}
	bullets, err := encodeList(entry.Bullets)
	if err != nil {
		return fmt.Errorf("sqlite: encoding timeline bullets: %w", err)
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO timeline (id, title, organization, start_date, end_date, current, summary, bullets, kind, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Title,
		entry.Organization,
		entry.StartDate,
		entry.EndDate,
		boolToInt(entry.Current),
		entry.Summary,
		bullets,
		entry.Kind,
		time.Now(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("timeline entry", entry.ID)
		}
		return fmt.Errorf("sqlite: creating timeline entry: %w", err)
	}

	return nil
}
