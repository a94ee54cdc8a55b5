package jdx

import "fmt"

// ParseErrorCode categorizes fatal decode and encode failures.
type ParseErrorCode string

const (
	// ErrCodeUnknownChar indicates a character in a data line that
	// belongs to none of the AFFN/SQZ/DIF/DUP alphabets.
	ErrCodeUnknownChar ParseErrorCode = "UNKNOWN_CHARACTER"

	// ErrCodeBadNumber indicates a numeric literal that failed to parse
	// after decompression.
	ErrCodeBadNumber ParseErrorCode = "MALFORMED_NUMBER"

	// ErrCodeBadHeader indicates a ## record with no key/value separator.
	ErrCodeBadHeader ParseErrorCode = "MALFORMED_HEADER"

	// ErrCodeBadDate indicates a LONGDATE string that matched none of
	// the accepted forms. Callers treat this as advisory and keep the
	// raw string.
	ErrCodeBadDate ParseErrorCode = "UNPARSEABLE_DATE"

	// ErrCodeMissingHeader indicates a mandatory header (firstx, lastx,
	// npoints) was absent when reconstructing an (X++(Y..Y)) x-axis.
	ErrCodeMissingHeader ParseErrorCode = "MISSING_HEADER"

	// ErrCodeMissingSeries indicates a record without x/y data was
	// handed to the writer.
	ErrCodeMissingSeries ParseErrorCode = "MISSING_SERIES"

	// ErrCodeBadNPoints indicates an NPOINTS override larger than the
	// series handed to the writer.
	ErrCodeBadNPoints ParseErrorCode = "BAD_NPOINTS"
)

// ParseError is a fatal codec failure with positional context.
type ParseError struct {
	Code    ParseErrorCode
	Message string
	Line    int // 1-based input line, 0 if not line-scoped
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s (line %d)", e.Code, e.Message, e.Line)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func parseErrorf(code ParseErrorCode, line int, format string, args ...any) *ParseError {
	return &ParseError{Code: code, Message: fmt.Sprintf(format, args...), Line: line}
}
