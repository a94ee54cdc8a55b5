package catalog

import (
	"context"
	"fmt"
	"time"
)

// Upsert inserts or refreshes the catalog row for an entry's origin.
// The row id is stable across re-indexing: a conflicting origin keeps
// its original id and updates everything else.
func (s *Store) Upsert(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO spectra
		(id, origin, title, data_type, xunits, yunits, npoints, firstx, lastx, children, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(origin) DO UPDATE SET
			title      = excluded.title,
			data_type  = excluded.data_type,
			xunits     = excluded.xunits,
			yunits     = excluded.yunits,
			npoints    = excluded.npoints,
			firstx     = excluded.firstx,
			lastx      = excluded.lastx,
			children   = excluded.children,
			indexed_at = excluded.indexed_at
	`,
		e.ID,
		e.Origin,
		e.Title,
		e.DataType,
		e.XUnits,
		e.YUnits,
		e.NPoints,
		e.FirstX,
		e.LastX,
		e.Children,
		e.IndexedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert spectrum %q: %w", e.Origin, err)
	}
	return nil
}
