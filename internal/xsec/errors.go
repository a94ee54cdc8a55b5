package xsec

import "fmt"

// ConvertErrorCode categorizes fatal conversion failures.
type ConvertErrorCode string

const (
	// ErrCodeBadXUnits indicates an x-axis unit that cannot be
	// normalized to micrometers.
	ErrCodeBadXUnits ConvertErrorCode = "UNKNOWN_X_UNITS"

	// ErrCodeBadYUnits indicates an intensity unit that cannot be
	// normalized to absorbance.
	ErrCodeBadYUnits ConvertErrorCode = "UNKNOWN_Y_UNITS"

	// ErrCodeBadQuantity indicates a physical-quantity header (path
	// length, partial pressure) that could not be parsed.
	ErrCodeBadQuantity ConvertErrorCode = "UNPARSEABLE_QUANTITY"

	// ErrCodeNPointsMismatch indicates the NPOINTS header disagrees
	// with the actual series length.
	ErrCodeNPointsMismatch ConvertErrorCode = "NPOINTS_MISMATCH"

	// ErrCodeLengthMismatch indicates x and y series of unequal length.
	ErrCodeLengthMismatch ConvertErrorCode = "LENGTH_MISMATCH"
)

// ConvertError is a fatal conversion failure. Title carries the
// record's TITLE header for context when available.
type ConvertError struct {
	Code    ConvertErrorCode
	Message string
	Title   string
}

// Error implements the error interface.
func (e *ConvertError) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("%s: %q: %s", e.Code, e.Title, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func convertErrorf(code ConvertErrorCode, title, format string, args ...any) *ConvertError {
	return &ConvertError{Code: code, Message: fmt.Sprintf(format, args...), Title: title}
}
