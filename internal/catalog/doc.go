// Package catalog provides a SQLite index of decoded JCAMP-DX
// headers, so a directory of spectra can be searched by title or
// origin without re-parsing every file.
//
// Only summary metadata is stored; the series data stays in the
// source files. Rows are keyed by origin path and upserts are
// idempotent, so re-indexing a directory is always safe.
package catalog
