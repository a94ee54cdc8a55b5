package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/tomc271/jcamp/internal/spectrum"
)

// Entry is one catalog row: the searchable header summary of a
// decoded spectrum.
type Entry struct {
	ID        string
	Origin    string
	Title     string
	DataType  string
	XUnits    string
	YUnits    string
	NPoints   int
	FirstX    *float64
	LastX     *float64
	Children  int
	IndexedAt time.Time
}

// EntryFromRecord summarizes a decoded record for indexing under the
// given origin path.
func EntryFromRecord(origin string, rec *spectrum.Record) Entry {
	e := Entry{
		ID:        uuid.NewString(),
		Origin:    origin,
		Title:     rec.Title(),
		DataType:  rec.DataType(),
		NPoints:   len(rec.Y),
		Children:  len(rec.Children),
		IndexedAt: time.Now().UTC(),
	}
	e.XUnits, _ = rec.Str("xunits")
	e.YUnits, _ = rec.Str("yunits")
	if v, ok := rec.Num("firstx"); ok {
		e.FirstX = &v
	}
	if v, ok := rec.Num("lastx"); ok {
		e.LastX = &v
	}
	return e
}
