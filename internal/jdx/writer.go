package jdx

import (
	"fmt"
	"math"
	"strings"

	"github.com/tomc271/jcamp/internal/spectrum"
)

// DefaultLineWidth is the conventional wrap column for emitted data
// lines.
const DefaultLineWidth = 75

// Write serializes a record to JCAMP-DX text, always in the plain
// AFFN (X++(Y..Y)) form. The record is treated as read-only: computed
// header overrides are emitted directly, never stored back.
//
// Data lines carry the x-coordinate of their first y-value (6
// decimals) followed by space-separated y-values divided by YFACTOR
// (4 decimals, NaN emitted as "?"); a line is flushed once it reaches
// lineWidth columns. A lineWidth <= 0 selects DefaultLineWidth.
func Write(rec *spectrum.Record, lineWidth int) (string, error) {
	if lineWidth <= 0 {
		lineWidth = DefaultLineWidth
	}
	if len(rec.X) == 0 {
		return "", parseErrorf(ErrCodeMissingSeries, 0, "record has no x series to write")
	}
	if len(rec.Y) == 0 {
		return "", parseErrorf(ErrCodeMissingSeries, 0, "record has no y series to write")
	}
	x, y := rec.X, rec.Y

	var b strings.Builder
	b.WriteString("##JCAMP-DX=5.01\n")

	// Every stored header except the series and table bookkeeping keys,
	// in document order.
	for _, key := range rec.HeaderKeys() {
		if key == "x" || key == "y" || key == "xydata" || key == "end" {
			continue
		}
		v, _ := rec.Header(key)
		fmt.Fprintf(&b, "##%s=%s\n", strings.ToUpper(key), v.String())
	}

	// Range summaries are derived from the series unless the input
	// already carried them.
	writeIfAbsent := func(key string, prec int, val float64) {
		if _, ok := rec.Header(key); !ok {
			fmt.Fprintf(&b, "##%s=%.*f\n", strings.ToUpper(key), prec, val)
		}
	}
	writeIfAbsent("firstx", 6, x[0])
	writeIfAbsent("lastx", 6, x[len(x)-1])
	writeIfAbsent("maxx", 6, maxOf(x))
	writeIfAbsent("minx", 6, minOf(x))
	writeIfAbsent("firsty", 4, y[0])
	writeIfAbsent("lasty", 4, y[len(y)-1])
	writeIfAbsent("maxy", 4, maxOf(y))
	writeIfAbsent("miny", 4, minOf(y))

	// "npts" is an explicit point-count override; the series length is
	// the default.
	npts := len(x)
	if v, ok := rec.Num("npts"); ok {
		npts = int(v)
	}
	if npts > len(x) || npts > len(y) {
		return "", parseErrorf(ErrCodeBadNPoints, 0,
			"npoints override %d exceeds series length %d", npts, min(len(x), len(y)))
	}
	fmt.Fprintf(&b, "##NPOINTS=%d\n", npts)

	xfv := spectrum.Int(1)
	if v, ok := rec.Header("xfactor"); ok {
		xfv = v
	}
	fmt.Fprintf(&b, "##XFACTOR=%s\n", xfv.String())

	yfv := spectrum.Int(1)
	yfactor := 1.0
	if v, ok := rec.Header("yfactor"); ok {
		yfv = v
		if f, isNum := v.Num(); isNum {
			yfactor = f
		}
	}
	fmt.Fprintf(&b, "##YFACTOR=%s\n", yfv.String())
	b.WriteString("##XYDATA=(X++(Y..Y))\n")

	line := fmt.Sprintf("%.6f ", x[0])
	for j := 0; j < npts; j++ {
		if math.IsNaN(y[j]) {
			line += "? "
		} else {
			line += fmt.Sprintf("%.4f ", y[j]/yfactor)
		}
		if len(line) >= lineWidth || j == npts-1 {
			b.WriteString(line)
			b.WriteByte('\n')
			if j < npts-1 {
				line = fmt.Sprintf("%.6f ", x[j+1])
			}
		}
	}

	b.WriteString("##END=\n")
	return b.String(), nil
}

// maxOf and minOf propagate NaN, matching the range summaries a
// record decoded from NaN-bearing data would produce.
func maxOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		m = math.Max(m, v)
	}
	return m
}

func minOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		m = math.Min(m, v)
	}
	return m
}
