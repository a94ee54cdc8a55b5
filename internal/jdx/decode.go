package jdx

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/tomc271/jcamp/internal/spectrum"
)

// Table grammar tags the assembler dispatches on.
const (
	tagXYY     = "(X++(Y..Y))"
	tagXRR     = "(X++(R..R))"
	tagXII     = "(X++(I..I))"
	tagXYPairs = "(XY..XY)"
)

// droppedVendorTag is a malformed value some vendors emit; it is
// dropped from the header store rather than kept as a string.
const droppedVendorTag = "(X++(I..I)), XYDATA"

var (
	digitGroupPattern = regexp.MustCompile(`\d+`)
	pairSplitPattern  = regexp.MustCompile(`[,;\s]+`)
)

// decoder holds the accumulating state of one record's pipeline
// invocation. Recursive calls for nested LINK blocks each own a fresh
// decoder; nothing is shared between siblings.
type decoder struct {
	rec *spectrum.Record

	x, y []float64
	aux  []float64 // bounded integer tables, auxiliary only

	dataStart   bool
	tableTag    string // grammar tag of the active table
	boundsTable bool   // active table came from ##END= bounds
	bounds      []int
	dx          float64
	asdf        bool
	lastKey     string

	// Per-line integrity checkpoints.
	lineLastX    float64
	lineLastN    int
	haveLineLast bool

	// LINK compound handling.
	isCompound bool
	inBlock    bool
	blockDepth int
	block      []string
}

// Decode parses one JCAMP-DX document, given as its sequence of text
// lines, into a spectrum record. Children of LINK compound documents
// are decoded bottom-up by recursion. Advisory problems are collected
// as warnings on the record; a non-nil error means the record could
// not be constructed.
func Decode(lines []string) (*spectrum.Record, error) {
	d := &decoder{rec: spectrum.New(), dx: 1.0}
	for i, line := range lines {
		if err := d.line(line, i+1); err != nil {
			return nil, err
		}
	}
	return d.finish()
}

func (d *decoder) line(line string, n int) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	if strings.HasPrefix(line, "$$") {
		return nil
	}

	upper := strings.ToUpper(line)

	// A ##TITLE inside a LINK document opens a nested block.
	if d.isCompound && !d.inBlock && strings.HasPrefix(upper, "##TITLE") {
		d.inBlock = true
		d.blockDepth = 0
		d.block = []string{line}
		return nil
	}

	// While buffering a nested block, lines pass through verbatim until
	// the matching ##END. Nested blocks of any depth are tracked so the
	// recursive call sees the complete sub-document.
	if d.inBlock {
		d.block = append(d.block, line)
		switch {
		case strings.HasPrefix(upper, "##TITLE"):
			d.blockDepth++
		case strings.HasPrefix(upper, "##END"):
			if d.blockDepth > 0 {
				d.blockDepth--
				return nil
			}
			child, err := Decode(d.block)
			if err != nil {
				return err
			}
			d.rec.Children = append(d.rec.Children, child)
			d.inBlock = false
			d.block = nil
		}
		return nil
	}

	if strings.HasPrefix(line, "##") {
		return d.headerLine(line, n)
	}

	// A non-header line outside a table continues the previous header's
	// free-text value.
	if d.lastKey != "" && !d.dataStart {
		d.appendContinuation(strings.TrimSpace(line))
		return nil
	}

	if d.dataStart {
		return d.dataLine(line, n)
	}
	return nil
}

// headerLine parses one ##KEY=value record and updates the header
// store plus the table/compound state machine.
func (d *decoder) headerLine(line string, n int) error {
	content := strings.Trim(line, "#")
	eq := strings.Index(content, "=")
	if eq < 0 {
		return parseErrorf(ErrCodeBadHeader, n, "header record %q has no '=' separator", strings.TrimSpace(line))
	}
	lhs := strings.ToLower(strings.TrimSpace(content[:eq]))
	rhs := strings.TrimSpace(content[eq+1:])

	if v, ok := coerceValue(rhs); ok {
		d.rec.SetHeader(lhs, v)
	}
	d.lastKey = lhs

	// LINK documents hold nested blocks instead of direct data.
	if (lhs == "data type" || lhs == "datatype") && strings.EqualFold(rhs, "link") {
		d.isCompound = true
		if d.rec.Children == nil {
			d.rec.Children = []*spectrum.Record{}
		}
	}

	switch lhs {
	case "xydata", "xypoints", "peak table", "data table":
		// A new data table: reset the series buffers and derive the
		// nominal per-step delta used by the x-checkpoint integrity
		// check. Data starts on the next line.
		d.x = nil
		d.y = nil
		d.dataStart = true
		d.boundsTable = false
		d.tableTag = rhs
		d.asdf = false
		d.haveLineLast = false
		d.dx = 1.0
		lastx, okLast := d.rec.Num("lastx")
		firstx, okFirst := d.rec.Num("firstx")
		npoints, okN := d.rec.Num("npoints")
		if okLast && okFirst && okN {
			d.dx = (lastx - firstx) / (npoints - 1)
		}
		if xf, ok := d.rec.Num("xfactor"); ok {
			d.dx /= xf
		}
	case "end":
		d.bounds = parseBounds(rhs)
		d.dataStart = true
		d.boundsTable = true
		d.tableTag = ""
		d.aux = nil
	case "longdate":
		if s, ok := d.rec.Str(lhs); ok {
			if t, err := ParseLongDate(s); err == nil {
				d.rec.SetHeader(lhs, spectrum.Time(t))
			} else {
				d.rec.Warn(spectrum.WarnLongDate, "keeping raw longdate %q: %v", s, err)
			}
		}
	default:
		// Any other header record terminates an active table.
		if d.dataStart {
			d.dataStart = false
		}
	}
	return nil
}

// appendContinuation extends the previous header's string value with
// another line of free text. Continuations only apply to string
// values; numeric headers are left untouched.
func (d *decoder) appendContinuation(text string) {
	prev, ok := d.rec.Str(d.lastKey)
	if !ok {
		return
	}
	d.rec.SetHeader(d.lastKey, spectrum.Str(prev+"\n"+text))
}

func (d *decoder) dataLine(line string, n int) error {
	switch {
	case d.boundsTable:
		vals, err := decodeLine(line, n)
		if err != nil {
			return err
		}
		d.aux = append(d.aux, vals...)
	case d.tableTag == tagXYY || d.tableTag == tagXRR || d.tableTag == tagXII:
		return d.tableLine(line, n)
	case d.tableTag == tagXYPairs:
		d.pairLine(line)
	}
	return nil
}

// tableLine handles the (X++(..)) family: the first decoded value is
// the line's x-coordinate checkpoint, the rest accumulate into the y
// series. When the table is ASDF-encoded, the second value of every
// non-first line repeats the previous line's final y as a continuity
// check on the delta chain.
func (d *decoder) tableLine(line string, n int) error {
	if len(d.y) == 0 {
		// ASDF vs plain AFFN is probed on the first data line only.
		d.asdf = hasDIFChars(line)
	}
	vals, err := decodeLine(line, n)
	if err != nil {
		return err
	}
	if len(vals) == 0 {
		return nil
	}

	if d.haveLineLast {
		nextX := d.lineLastX + float64(d.lineLastN)*d.dx
		if math.Abs(vals[0]-nextX) > 1.0 {
			d.rec.Warn(spectrum.WarnXCheck,
				"x-check failed on line %d: checkpoint %g, predicted %g", n, vals[0], nextX)
		}
	}

	switch {
	case d.asdf && len(d.y) > 0:
		d.lineLastX = vals[0]
		d.lineLastN = len(vals) - 2
		d.haveLineLast = true
		if len(vals) > 1 && vals[1] != d.y[len(d.y)-1] {
			d.rec.Warn(spectrum.WarnYCheck,
				"y-check failed on line %d: last value of previous line is %g but checkpoint is %g",
				n, d.y[len(d.y)-1], vals[1])
		}
		if len(vals) > 2 {
			d.y = append(d.y, vals[2:]...)
		}
	case d.asdf:
		d.y = append(d.y, vals[1:]...)
		d.lineLastX = vals[0]
		d.lineLastN = len(d.y) - 1
		d.haveLineLast = true
	default:
		d.lineLastX = vals[0]
		d.lineLastN = len(vals) - 1
		d.haveLineLast = true
		d.y = append(d.y, vals[1:]...)
	}
	return nil
}

// pairLine handles the (XY..XY) grammar: interleaved x,y pairs split
// on comma, semicolon or whitespace. Lines containing any non-numeric
// token are skipped entirely.
func (d *decoder) pairLine(line string) {
	var tokens []string
	for _, tok := range pairSplitPattern.Split(line, -1) {
		if tok = strings.TrimSpace(tok); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) == 0 {
		return
	}
	vals := make([]float64, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return
		}
		vals[i] = v
	}
	for i, v := range vals {
		if i%2 == 0 {
			d.x = append(d.x, v)
		} else {
			d.y = append(d.y, v)
		}
	}
}

// finish performs final series assembly: x regeneration for
// (X++(Y..Y)), scale factors, and the advisory length cross-check.
func (d *decoder) finish() (*spectrum.Record, error) {
	x, y := d.x, d.y

	if tag, ok := d.rec.Str("xydata"); ok && tag == tagXYY {
		// The decoded per-line x-checkpoints exist only for integrity
		// checking; the real axis is evenly spaced over the header range.
		firstx, okFirst := d.rec.Num("firstx")
		lastx, okLast := d.rec.Num("lastx")
		npoints, okN := d.rec.Num("npoints")
		if !okFirst || !okLast || !okN {
			return nil, parseErrorf(ErrCodeMissingHeader, 0,
				"(X++(Y..Y)) table requires firstx, lastx and npoints headers")
		}
		x = linspace(firstx, lastx, int(npoints))
	}

	if tag, ok := d.rec.Str("data table"); ok && tag == tagXRR {
		// (X++(R..R)) series are used as accumulated, with no x scaling.
	} else if xf, ok := d.rec.Num("xfactor"); ok {
		scaled := make([]float64, len(x))
		for i := range x {
			scaled[i] = x[i] * xf
		}
		x = scaled
	}

	if len(x) != len(y) {
		d.rec.Warn(spectrum.WarnLengthMismatch,
			"assembled %d x values but %d y values", len(x), len(y))
	}

	if yf, ok := d.rec.Num("yfactor"); ok {
		for i := range y {
			y[i] *= yf
		}
	}

	d.rec.X = x
	d.rec.Y = y
	return d.rec, nil
}

// coerceValue applies the header value coercion ladder: integer,
// float, float with a comma decimal separator, then string. The
// second return is false for the one vendor artifact that is dropped
// outright.
func coerceValue(rhs string) (spectrum.Value, bool) {
	if isAllDigits(rhs) {
		if n, err := strconv.ParseInt(rhs, 10, 64); err == nil {
			return spectrum.Int(n), true
		}
	}
	if f, err := strconv.ParseFloat(rhs, 64); err == nil {
		return spectrum.Float(f), true
	}
	if c := strings.Replace(rhs, ",", ".", 1); c != rhs {
		if f, err := strconv.ParseFloat(c, 64); err == nil {
			return spectrum.Float(f), true
		}
	}
	if rhs == droppedVendorTag {
		return spectrum.Value{}, false
	}
	return spectrum.Str(rhs), true
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// parseBounds extracts the integer bounds of an ##END= table via a
// digit-group scan.
func parseBounds(rhs string) []int {
	var bounds []int
	for _, g := range digitGroupPattern.FindAllString(rhs, -1) {
		n, err := strconv.Atoi(g)
		if err != nil {
			continue
		}
		bounds = append(bounds, n)
	}
	return bounds
}
