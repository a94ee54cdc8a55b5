package jdx

import (
	"regexp"
	"strconv"
	"time"
)

// The LONGDATE label allows several textual forms. An optional
// fractional-seconds run may follow the seconds with no separator;
// the format's own specification writes it as `.SSSS` without saying
// how many digits to expect, so the digit count is interpreted
// heuristically (7-9 digits: nanoseconds, 4-6: microseconds, 1-3:
// milliseconds expressed as microsecond multiples). The run is
// excised before trying the standard layouts, which never carry
// fractional seconds.
var fractionalSecondsPattern = regexp.MustCompile(
	`^\d{4}/\d{2}/\d{2} +\d{2}:\d{2}\d{2}(\d{1,9})`)

var longDateLayouts = []string{
	"2006/01/02 15:04:05 -0700",
	"2006/01/02 15:04:05",
	"2006/01/02",
}

// ParseLongDate parses a LONGDATE header string. It returns a
// *ParseError with ErrCodeBadDate when no accepted form matches; the
// decoder treats that as advisory and keeps the raw string.
func ParseLongDate(s string) (time.Time, error) {
	var micros int64
	if m := fractionalSecondsPattern.FindStringSubmatch(s); m != nil {
		var err error
		micros, err = InterpretFractionalSeconds(m[1])
		if err != nil {
			return time.Time{}, err
		}
		s = fractionalSecondsPattern.ReplaceAllString(s, "")
	}

	for _, layout := range longDateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return t.Add(time.Duration(micros) * time.Microsecond), nil
	}
	return time.Time{}, parseErrorf(ErrCodeBadDate, 0, "failed to parse date string %q", s)
}

// InterpretFractionalSeconds applies the digit-count heuristic to a
// bare fractional-seconds run and returns microseconds: 7-9 digits
// are read as nanoseconds and truncated, 4-6 directly as
// microseconds, 1-3 as thousandths scaled up. Any other length is an
// unrecoverable parse error.
func InterpretFractionalSeconds(digits string) (int64, error) {
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, parseErrorf(ErrCodeBadDate, 0, "fractional seconds %q could not be parsed", digits)
	}
	switch len(digits) {
	case 7, 8, 9:
		return n / 1000, nil
	case 4, 5, 6:
		return n, nil
	case 1, 2, 3:
		return n * 1000, nil
	default:
		return 0, parseErrorf(ErrCodeBadDate, 0, "fractional seconds %q could not be parsed", digits)
	}
}
