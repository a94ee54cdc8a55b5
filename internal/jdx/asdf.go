package jdx

import (
	"strconv"
	"strings"
)

// The ASDF compressed numeric form packs a delimiter, a sign and a
// leading digit into single characters drawn from three overlapping
// alphabets:
//
//	SQZ ("squeezed"):   @=+0 A..I=+1..+9 a..i=-1..-9, plus literal
//	                    '+', '-' and ','-as-delimiter
//	DIF ("difference"): %=0 J..R=+1..+9 j..r=-1..-9, the encoded digit
//	                    is a delta against the previous decoded value
//	DUP ("duplicate"):  S..Z=1..8 s=9, repeat of the previous token
//
// A plain AFFN line uses none of them and decodes as ordinary
// delimited numbers.

// codeKind tags the role a character plays in a data line.
type codeKind uint8

const (
	codeNone  codeKind = iota // digit, '.', or unknown
	codeDelim                 // space or ','
	codeSQZ
	codeDIF
	codeDUP
)

// classify resolves the overlapping alphabets for one character.
// seed is the literal text a SQZ character contributes, digit the
// signed delta digit of a DIF character, count the repeat count of a
// DUP character; only the field matching the returned kind is valid.
func classify(c byte) (kind codeKind, seed string, digit int, count int) {
	switch {
	case c == ' ' || c == ',':
		return codeDelim, "", 0, 0
	case c == '@':
		return codeSQZ, "+0", 0, 0
	case c >= 'A' && c <= 'I':
		return codeSQZ, "+" + string('1'+c-'A'), 0, 0
	case c >= 'a' && c <= 'i':
		return codeSQZ, "-" + string('1'+c-'a'), 0, 0
	case c == '+' || c == '-':
		return codeSQZ, string(c), 0, 0
	case c == '%':
		return codeDIF, "", 0, 0
	case c >= 'J' && c <= 'R':
		return codeDIF, "", int(c-'J') + 1, 0
	case c >= 'j' && c <= 'r':
		return codeDIF, "", -(int(c-'j') + 1), 0
	case c >= 'S' && c <= 'Z':
		return codeDUP, "", 0, int(c-'S') + 1
	case c == 's':
		return codeDUP, "", 0, 9
	default:
		return codeNone, "", 0, 0
	}
}

func isDIF(c byte) bool {
	k, _, _, _ := classify(c)
	return k == codeDIF
}

// hasDIFChars reports whether any DIF-alphabet character appears in
// the line. The table assembler probes the first data line of a table
// with this to distinguish ASDF from plain AFFN encoding.
func hasDIFChars(line string) bool {
	for i := 0; i < len(line); i++ {
		if isDIF(line[i]) {
			return true
		}
	}
	return false
}

// expandDUP rewrites duplicate-run characters into the repeated text
// of the token they reference. A DUP character with count n stands
// for n-1 additional copies of the most recently completed token,
// which starts at the most recent DIF-alphabet character. The
// expansion is textual and must run before the numeric pass: DUP
// references already-encoded token text, not decoded values.
func expandDUP(line string, lineNo int) (string, error) {
	var out strings.Builder
	out.Grow(len(line))
	for i := 0; i < len(line); i++ {
		c := line[i]
		kind, _, _, count := classify(c)
		if kind != codeDUP {
			out.WriteByte(c)
			continue
		}
		back := i - 1
		for back >= 0 && !isDIF(line[back]) {
			back--
		}
		if back < 0 {
			return "", parseErrorf(ErrCodeBadNumber, lineNo,
				"duplicate-run character %q with no preceding token", string(c))
		}
		token := line[back:i]
		for n := 0; n < count-1; n++ {
			out.WriteString(token)
		}
	}
	return out.String(), nil
}

// decodeLine decodes one data line into its numeric values, resolving
// SQZ/DIF/DUP compression. The first value of a table line is the
// line's x-coordinate checkpoint; DIF deltas chain off the immediately
// preceding decoded value.
func decodeLine(line string, lineNo int) ([]float64, error) {
	// Collapse whitespace runs to single spaces.
	line = strings.Join(strings.Fields(line), " ")

	expanded, err := expandDUP(line, lineNo)
	if err != nil {
		return nil, err
	}

	var (
		vals    []float64
		pending string
		dif     bool
	)
	flush := func() error {
		if pending == "" {
			return nil
		}
		n, err := strconv.ParseFloat(pending, 64)
		if err != nil {
			return parseErrorf(ErrCodeBadNumber, lineNo, "bad numeric literal %q", pending)
		}
		if dif {
			if len(vals) == 0 {
				return parseErrorf(ErrCodeBadNumber, lineNo, "difference token %q with no prior value", pending)
			}
			n += vals[len(vals)-1]
		}
		vals = append(vals, n)
		pending = ""
		return nil
	}

	for i := 0; i < len(expanded); i++ {
		c := expanded[i]
		if c >= '0' && c <= '9' || c == '.' {
			pending += string(c)
			continue
		}
		kind, seed, digit, _ := classify(c)
		switch kind {
		case codeDelim:
			dif = false
			if err := flush(); err != nil {
				return nil, err
			}
		case codeSQZ:
			dif = false
			if err := flush(); err != nil {
				return nil, err
			}
			pending = seed
		case codeDIF:
			if err := flush(); err != nil {
				return nil, err
			}
			dif = true
			pending = strconv.Itoa(digit)
		default:
			return nil, parseErrorf(ErrCodeUnknownChar, lineNo,
				"unknown character %q in data line", string(c))
		}
	}
	// A pending literal at end-of-line is flushed; an empty one is not.
	if err := flush(); err != nil {
		return nil, err
	}
	return vals, nil
}

// linspace returns n evenly spaced samples from first to last
// inclusive.
func linspace(first, last float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = first
		return out
	}
	step := (last - first) / float64(n-1)
	for i := range out {
		out[i] = first + float64(i)*step
	}
	out[n-1] = last
	return out
}
