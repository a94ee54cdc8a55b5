package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const entryColumns = `id, origin, title, data_type, xunits, yunits, npoints, firstx, lastx, children, indexed_at`

// SearchTitle returns entries whose title contains the given
// substring (case-insensitive per SQLite LIKE), ordered by title.
func (s *Store) SearchTitle(ctx context.Context, substr string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+entryColumns+`
		FROM spectra
		WHERE title LIKE '%' || ? || '%'
		ORDER BY title, origin
	`, substr)
	if err != nil {
		return nil, fmt.Errorf("search title %q: %w", substr, err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// ByOrigin returns the entry indexed under an origin path, or
// (nil, nil) when the origin is not in the catalog.
func (s *Store) ByOrigin(ctx context.Context, origin string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+entryColumns+`
		FROM spectra
		WHERE origin = ?
	`, origin)
	e, err := scanEntry(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read origin %q: %w", origin, err)
	}
	return &e, nil
}

// Count returns the number of indexed spectra.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM spectra`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count spectra: %w", err)
	}
	return n, nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return out, nil
}

func scanEntry(scan func(...any) error) (Entry, error) {
	var (
		e         Entry
		indexedAt string
	)
	err := scan(
		&e.ID,
		&e.Origin,
		&e.Title,
		&e.DataType,
		&e.XUnits,
		&e.YUnits,
		&e.NPoints,
		&e.FirstX,
		&e.LastX,
		&e.Children,
		&indexedAt,
	)
	if err != nil {
		return Entry{}, err
	}
	if t, perr := time.Parse(time.RFC3339Nano, indexedAt); perr == nil {
		e.IndexedAt = t
	}
	return e, nil
}
