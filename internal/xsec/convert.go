package xsec

import (
	"math"
	"strconv"
	"strings"

	"github.com/tomc271/jcamp/internal/spectrum"
)

// Physical constants of the conversion.
const (
	// temperatureK is the gas temperature assumed for the measurement.
	temperatureK = 296.0

	// conversionR folds the gas constant and unit conversions into one
	// factor for xsec = y * T * R / (p * ell).
	conversionR = 1.0355e-25

	// loschmidtFactor converts the premultiplied
	// "(micromol/mol)-1m-1 (base 10)" intensity unit directly to a
	// cross-section.
	loschmidtFactor = 2.687e19
)

// Defaults applied when quantitative metadata is missing and strict
// mode is off.
const (
	defaultPathLengthM      = 0.1
	defaultPartialPressmmHg = 150.0
	ppmToMmHg               = 759.8 * 1.0e-6
)

// Options controls the conversion.
type Options struct {
	// SkipNonquant makes missing quantitative metadata (path length,
	// partial pressure) short-circuit to an empty non-quantitative
	// Result instead of falling back to defaults.
	SkipNonquant bool
}

// Result holds the derived series, all parallel to the record's x.
type Result struct {
	// Wavelengths is the x-axis normalized to micrometers.
	Wavelengths []float64

	// Wavenumbers is the x-axis as 1/cm.
	Wavenumbers []float64

	// Absorbance is the intensity normalized to absorbance. Non-positive
	// transmittance readings become NaN.
	Absorbance []float64

	// Xsec is the absorption cross-section per molecule, in m^2.
	Xsec []float64

	// Quantitative is false when required metadata was missing and
	// Options.SkipNonquant short-circuited the conversion; all series
	// are nil in that case.
	Quantitative bool
}

// Convert derives an absorption cross-section from an assembled
// record. The record itself is never modified; the series are copied
// before any correction is applied.
func Convert(rec *spectrum.Record, opts Options) (*Result, error) {
	title := rec.Title()

	x := append([]float64(nil), rec.X...)
	y := append([]float64(nil), rec.Y...)

	res := &Result{Quantitative: true}

	// Normalize the x-axis to wavelength in micrometers. The sampling
	// grid stays nonuniform in wavelength space so each digital bin
	// keeps its proportionality to energy.
	xunits, _ := rec.Str("xunits")
	switch strings.ToLower(xunits) {
	case "1/cm", "cm-1", "cm^-1":
		res.Wavenumbers = append([]float64(nil), x...)
		for i := range x {
			x[i] = 10000.0 / x[i]
		}
		res.Wavelengths = x
	case "micrometers", "um", "wavelength (um)":
		res.Wavelengths = x
		res.Wavenumbers = invert(x)
	case "nanometers", "nm", "wavelength (nm)":
		for i := range x {
			x[i] /= 1000.0
		}
		res.Wavelengths = x
		res.Wavenumbers = invert(x)
	default:
		return nil, convertErrorf(ErrCodeBadXUnits, title,
			"cannot convert x units %q to micrometers", xunits)
	}

	// Unphysical negative readings clamp to zero.
	for i := range y {
		if y[i] < 0 {
			y[i] = 0
		}
	}

	// Normalize the intensity axis to absorbance.
	yunits, _ := rec.Str("yunits")
	switch strings.ToLower(yunits) {
	case "transmittance":
		for i := range y {
			// Transmittance above 1 is unphysical.
			if y[i] > 1.0 {
				y[i] = 1.0
			}
			if y[i] > 0.0 {
				y[i] = math.Log10(1.0 / y[i])
			} else {
				y[i] = math.NaN()
			}
		}
		res.Absorbance = y
	case "absorbance":
		res.Absorbance = y
	case "(micromol/mol)-1m-1 (base 10)":
		// Premultiplied cross-section unit: divide out the
		// Loschmidt-derived constant and skip the quantitative steps.
		xs := make([]float64, len(y))
		for i := range y {
			xs[i] = y[i] / loschmidtFactor
		}
		res.Xsec = xs
		return res, nil
	default:
		return nil, convertErrorf(ErrCodeBadYUnits, title,
			"cannot convert y units %q to absorbance", yunits)
	}

	ell, ok, err := pathLengthMeters(rec, title, opts)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &Result{}, nil
	}

	if len(x) != len(y) {
		return nil, convertErrorf(ErrCodeLengthMismatch, title,
			"x has %d points but y has %d", len(x), len(y))
	}
	if n, present := rec.Num("npoints"); present && len(x) != int(n) {
		return nil, convertErrorf(ErrCodeNPointsMismatch, title,
			"retrieved %d data points but npoints = %d", len(x), int(n))
	}

	p, ok, err := partialPressureMmHg(rec, title, opts)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &Result{}, nil
	}

	xs := make([]float64, len(y))
	for i := range y {
		xs[i] = y[i] * temperatureK * conversionR / (p * ell)
	}
	res.Xsec = xs
	return res, nil
}

// pathLengthMeters resolves the effective optical path length of the
// measurement chamber in meters. The second return is false when the
// header is absent and strict mode short-circuits.
func pathLengthMeters(rec *spectrum.Record, title string, opts Options) (float64, bool, error) {
	raw, present := rec.Str("path length")
	if !present {
		if opts.SkipNonquant {
			return 0, false, nil
		}
		return defaultPathLengthM, true, nil
	}
	fields := strings.Fields(strings.ToLower(raw))
	if len(fields) < 2 {
		return 0, false, convertErrorf(ErrCodeBadQuantity, title,
			"path length %q lacks a value/unit pair", raw)
	}
	val, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, false, convertErrorf(ErrCodeBadQuantity, title,
			"path length value %q is not numeric", fields[0])
	}
	switch fields[1] {
	case "cm":
		return val / 100.0, true, nil
	case "m":
		return val, true, nil
	case "mm":
		return val / 1000.0, true, nil
	default:
		// Unrecognized unit suffix falls back to the default chamber.
		return defaultPathLengthM, true, nil
	}
}

// partialPressureMmHg resolves the partial pressure of the sample gas
// in mmHg. The second return is false when the header is absent and
// strict mode short-circuits.
func partialPressureMmHg(rec *spectrum.Record, title string, opts Options) (float64, bool, error) {
	raw, present := rec.Str("partial_pressure")
	if !present {
		if opts.SkipNonquant {
			return 0, false, nil
		}
		return defaultPartialPressmmHg, true, nil
	}
	fields := strings.Fields(raw)
	if len(fields) < 2 {
		return 0, false, convertErrorf(ErrCodeBadQuantity, title,
			"partial pressure %q lacks a value/unit pair", raw)
	}
	p, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, false, convertErrorf(ErrCodeBadQuantity, title,
			"partial pressure value %q is not numeric", fields[0])
	}
	if strings.EqualFold(fields[1], "ppm") {
		// PPM at atmospheric pressure scaled to partial pressure.
		p *= ppmToMmHg
	}
	return p, true, nil
}

func invert(x []float64) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		out[i] = 10000.0 / x[i]
	}
	return out
}
