package xsec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomc271/jcamp/internal/spectrum"
)

func makeRecord(xunits, yunits string, x, y []float64) *spectrum.Record {
	rec := spectrum.New()
	rec.SetHeader("title", spectrum.Str("test spectrum"))
	rec.SetHeader("xunits", spectrum.Str(xunits))
	rec.SetHeader("yunits", spectrum.Str(yunits))
	rec.X = x
	rec.Y = y
	return rec
}

func TestConvert_FullTransmittance(t *testing.T) {
	rec := makeRecord("1/CM", "TRANSMITTANCE", []float64{2000}, []float64{1.0})
	rec.SetHeader("path length", spectrum.Str("10 cm"))
	rec.SetHeader("partial_pressure", spectrum.Str("150.0 mmHg"))

	res, err := Convert(rec, Options{})
	require.NoError(t, err)
	require.True(t, res.Quantitative)

	assert.Equal(t, []float64{2000}, res.Wavenumbers)
	assert.Equal(t, []float64{5}, res.Wavelengths)
	// Full transmission absorbs nothing.
	assert.Equal(t, []float64{0}, res.Absorbance)
	assert.Equal(t, []float64{0}, res.Xsec)
}

func TestConvert_TransmittanceToXsec(t *testing.T) {
	rec := makeRecord("1/cm", "transmittance", []float64{1000}, []float64{0.1})
	rec.SetHeader("path length", spectrum.Str("10 cm"))
	rec.SetHeader("partial_pressure", spectrum.Str("150.0 mmHg"))

	res, err := Convert(rec, Options{})
	require.NoError(t, err)

	require.Len(t, res.Absorbance, 1)
	assert.InDelta(t, 1.0, res.Absorbance[0], 1e-12)

	want := 1.0 * temperatureK * conversionR / (150.0 * 0.1)
	require.Len(t, res.Xsec, 1)
	assert.InDelta(t, want, res.Xsec[0], want*1e-12)
}

func TestConvert_ClampsUnphysicalTransmittance(t *testing.T) {
	rec := makeRecord("1/cm", "transmittance",
		[]float64{1000, 2000, 3000}, []float64{-0.5, 1.7, 0.5})
	rec.SetHeader("path length", spectrum.Str("10 cm"))
	rec.SetHeader("partial_pressure", spectrum.Str("150.0 mmHg"))

	res, err := Convert(rec, Options{})
	require.NoError(t, err)

	// Negative readings clamp to zero and yield NaN absorbance;
	// transmittance above one clamps to full transmission.
	assert.True(t, math.IsNaN(res.Absorbance[0]))
	assert.True(t, math.IsNaN(res.Xsec[0]))
	assert.Equal(t, 0.0, res.Absorbance[1])
	assert.InDelta(t, math.Log10(2.0), res.Absorbance[2], 1e-12)
}

func TestConvert_AbsorbancePassthrough(t *testing.T) {
	rec := makeRecord("1/cm", "ABSORBANCE", []float64{1000}, []float64{0.25})
	rec.SetHeader("path length", spectrum.Str("10 cm"))
	rec.SetHeader("partial_pressure", spectrum.Str("150.0 mmHg"))

	res, err := Convert(rec, Options{})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25}, res.Absorbance)
}

func TestConvert_PremultipliedUnit(t *testing.T) {
	rec := makeRecord("1/cm", "(micromol/mol)-1m-1 (base 10)",
		[]float64{1000}, []float64{loschmidtFactor})

	res, err := Convert(rec, Options{})
	require.NoError(t, err)
	require.True(t, res.Quantitative)

	// The premultiplied unit bypasses path length and pressure entirely.
	assert.Equal(t, []float64{1.0}, res.Xsec)
	assert.Nil(t, res.Absorbance)
}

func TestConvert_SkipNonquant(t *testing.T) {
	t.Run("missing path length", func(t *testing.T) {
		rec := makeRecord("1/cm", "transmittance", []float64{1000}, []float64{0.5})

		res, err := Convert(rec, Options{SkipNonquant: true})
		require.NoError(t, err)
		assert.False(t, res.Quantitative)
		assert.Nil(t, res.Xsec)
		assert.Nil(t, res.Absorbance)
	})

	t.Run("missing partial pressure", func(t *testing.T) {
		rec := makeRecord("1/cm", "transmittance", []float64{1000}, []float64{0.5})
		rec.SetHeader("path length", spectrum.Str("10 cm"))

		res, err := Convert(rec, Options{SkipNonquant: true})
		require.NoError(t, err)
		assert.False(t, res.Quantitative)
		assert.Nil(t, res.Xsec)
	})
}

func TestConvert_DefaultsWhenMetadataMissing(t *testing.T) {
	rec := makeRecord("1/cm", "absorbance", []float64{1000}, []float64{1.0})

	res, err := Convert(rec, Options{})
	require.NoError(t, err)
	require.True(t, res.Quantitative)

	want := 1.0 * temperatureK * conversionR / (defaultPartialPressmmHg * defaultPathLengthM)
	require.Len(t, res.Xsec, 1)
	assert.InDelta(t, want, res.Xsec[0], want*1e-12)
}

func TestConvert_PPMPressure(t *testing.T) {
	rec := makeRecord("1/cm", "absorbance", []float64{1000}, []float64{1.0})
	rec.SetHeader("path length", spectrum.Str("1 m"))
	rec.SetHeader("partial_pressure", spectrum.Str("1000 ppm"))

	res, err := Convert(rec, Options{})
	require.NoError(t, err)

	want := 1.0 * temperatureK * conversionR / (1000 * ppmToMmHg * 1.0)
	require.Len(t, res.Xsec, 1)
	assert.InDelta(t, want, res.Xsec[0], want*1e-12)
}

func TestPathLengthMeters(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"100 cm", 1.0},
		{"2 m", 2.0},
		{"500 mm", 0.5},
		// Unknown unit suffixes fall back to the default chamber.
		{"3 parsec", defaultPathLengthM},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			rec := spectrum.New()
			rec.SetHeader("path length", spectrum.Str(tc.raw))

			got, ok, err := pathLengthMeters(rec, "t", Options{})
			require.NoError(t, err)
			require.True(t, ok)
			assert.InDelta(t, tc.want, got, 1e-12)
		})
	}
}

func TestPathLengthMeters_Invalid(t *testing.T) {
	for _, raw := range []string{"10", "abc cm"} {
		t.Run(raw, func(t *testing.T) {
			rec := spectrum.New()
			rec.SetHeader("path length", spectrum.Str(raw))

			_, _, err := pathLengthMeters(rec, "t", Options{})
			require.Error(t, err)

			var cerr *ConvertError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, ErrCodeBadQuantity, cerr.Code)
		})
	}
}

func TestConvert_XUnitNormalization(t *testing.T) {
	t.Run("nanometers", func(t *testing.T) {
		rec := makeRecord("nm", "absorbance", []float64{500}, []float64{1.0})
		res, err := Convert(rec, Options{})
		require.NoError(t, err)
		assert.InDelta(t, 0.5, res.Wavelengths[0], 1e-12)
		assert.InDelta(t, 20000, res.Wavenumbers[0], 1e-9)
	})

	t.Run("micrometers", func(t *testing.T) {
		rec := makeRecord("Wavelength (um)", "absorbance", []float64{5}, []float64{1.0})
		res, err := Convert(rec, Options{})
		require.NoError(t, err)
		assert.Equal(t, []float64{5}, res.Wavelengths)
		assert.InDelta(t, 2000, res.Wavenumbers[0], 1e-9)
	})
}

func TestConvert_UnknownUnits(t *testing.T) {
	t.Run("x", func(t *testing.T) {
		rec := makeRecord("furlongs", "absorbance", []float64{1}, []float64{1})
		_, err := Convert(rec, Options{})
		require.Error(t, err)

		var cerr *ConvertError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, ErrCodeBadXUnits, cerr.Code)
		assert.Equal(t, "test spectrum", cerr.Title)
	})

	t.Run("y", func(t *testing.T) {
		rec := makeRecord("1/cm", "candela", []float64{1}, []float64{1})
		_, err := Convert(rec, Options{})
		require.Error(t, err)

		var cerr *ConvertError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, ErrCodeBadYUnits, cerr.Code)
	})
}

func TestConvert_SeriesIntegrity(t *testing.T) {
	t.Run("npoints mismatch", func(t *testing.T) {
		rec := makeRecord("1/cm", "absorbance", []float64{1, 2}, []float64{1, 2})
		rec.SetHeader("npoints", spectrum.Int(5))

		_, err := Convert(rec, Options{})
		require.Error(t, err)

		var cerr *ConvertError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, ErrCodeNPointsMismatch, cerr.Code)
		assert.Equal(t, "test spectrum", cerr.Title)
	})

	t.Run("length mismatch", func(t *testing.T) {
		rec := makeRecord("1/cm", "absorbance", []float64{1, 2}, []float64{1})

		_, err := Convert(rec, Options{})
		require.Error(t, err)

		var cerr *ConvertError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, ErrCodeLengthMismatch, cerr.Code)
	})
}

func TestConvert_DoesNotMutateRecord(t *testing.T) {
	rec := makeRecord("1/cm", "transmittance", []float64{2000}, []float64{0.5})

	_, err := Convert(rec, Options{})
	require.NoError(t, err)

	assert.Equal(t, []float64{2000}, rec.X)
	assert.Equal(t, []float64{0.5}, rec.Y)
}
