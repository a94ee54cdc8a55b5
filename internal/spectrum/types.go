package spectrum

import "fmt"

// WarningCode categorizes advisory diagnostics.
type WarningCode string

const (
	// WarnXCheck indicates a data line's leading x-coordinate disagreed
	// with the position predicted from the previous line.
	WarnXCheck WarningCode = "X_CHECK"

	// WarnYCheck indicates a broken DIF continuity chain: the y-checkpoint
	// of a line did not equal the last y-value of the previous line.
	WarnYCheck WarningCode = "Y_CHECK"

	// WarnLengthMismatch indicates the assembled x and y series differ
	// in length.
	WarnLengthMismatch WarningCode = "LENGTH_MISMATCH"

	// WarnLongDate indicates the LONGDATE header could not be parsed and
	// the raw string was kept.
	WarnLongDate WarningCode = "LONGDATE_UNPARSED"
)

// Warning is an advisory diagnostic. Warnings never abort decoding;
// they are collected on the Record for the caller to report.
type Warning struct {
	Code    WarningCode
	Message string
}

// String implements fmt.Stringer.
func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// Record is one decoded JCAMP-DX document.
//
// Headers preserve document order (the writer re-emits them in the
// order they were read). Keys are lower-cased and unique; last write
// wins except for multi-line continuations, which append.
type Record struct {
	keys    []string
	headers map[string]Value

	// X and Y are the assembled series. They are equal length after a
	// successful assembly; a mismatch is advisory, not fatal.
	X []float64
	Y []float64

	// Children holds nested records of a LINK compound document, in
	// document order. Each child is exclusively owned by this record.
	Children []*Record

	// Warnings collects advisory diagnostics raised while decoding.
	Warnings []Warning
}

// New returns an empty record.
func New() *Record {
	return &Record{headers: make(map[string]Value)}
}

// SetHeader stores a header value, preserving first-seen key order.
func (r *Record) SetHeader(key string, v Value) {
	if _, ok := r.headers[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.headers[key] = v
}

// Header returns the value for a key.
func (r *Record) Header(key string) (Value, bool) {
	v, ok := r.headers[key]
	return v, ok
}

// HeaderKeys returns the header keys in document order.
func (r *Record) HeaderKeys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Num returns a numeric header (int or float) as a float64.
func (r *Record) Num(key string) (float64, bool) {
	v, ok := r.headers[key]
	if !ok {
		return 0, false
	}
	return v.Num()
}

// Str returns a string header.
func (r *Record) Str(key string) (string, bool) {
	v, ok := r.headers[key]
	if !ok {
		return "", false
	}
	return v.Str()
}

// Title returns the TITLE header, or "" if absent.
func (r *Record) Title() string {
	s, _ := r.Str("title")
	return s
}

// DataType returns the DATA TYPE header, checking both spellings the
// format allows ("data type" and "datatype").
func (r *Record) DataType() string {
	if s, ok := r.Str("data type"); ok {
		return s
	}
	s, _ := r.Str("datatype")
	return s
}

// Warn records an advisory diagnostic.
func (r *Record) Warn(code WarningCode, format string, args ...any) {
	r.Warnings = append(r.Warnings, Warning{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	})
}
