package jdx

import (
	"math"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomc271/jcamp/internal/spectrum"
)

func TestWrite_Golden(t *testing.T) {
	rec, err := Decode(affnDoc())
	require.NoError(t, err)

	text, err := Write(rec, DefaultLineWidth)
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "write_affn", []byte(text))
}

func TestWrite_RoundTrip(t *testing.T) {
	rec, err := Decode(affnDoc())
	require.NoError(t, err)

	text, err := Write(rec, DefaultLineWidth)
	require.NoError(t, err)

	again, err := Decode(strings.Split(text, "\n"))
	require.NoError(t, err)
	assert.Empty(t, again.Warnings)

	assert.Equal(t, rec.X, again.X)
	require.Len(t, again.Y, len(rec.Y))
	for i := range rec.Y {
		assert.InDelta(t, rec.Y[i], again.Y[i], 1e-4)
	}
}

func TestWrite_LineWrap(t *testing.T) {
	rec := spectrum.New()
	rec.X = []float64{0, 1, 2, 3}
	rec.Y = []float64{1, 2, 3, 4}

	text, err := Write(rec, 20)
	require.NoError(t, err)

	lines := strings.Split(text, "\n")
	assert.Contains(t, lines, "0.000000 1.0000 2.0000 ")
	assert.Contains(t, lines, "2.000000 3.0000 4.0000 ")
}

func TestWrite_NaNEmittedAsQuery(t *testing.T) {
	rec := spectrum.New()
	rec.X = []float64{1, 2}
	rec.Y = []float64{math.NaN(), 5}

	text, err := Write(rec, DefaultLineWidth)
	require.NoError(t, err)
	assert.Contains(t, text, "1.000000 ? 5.0000 ")
}

func TestWrite_NPointsOverride(t *testing.T) {
	rec, err := Decode(affnDoc())
	require.NoError(t, err)
	rec.SetHeader("npts", spectrum.Int(3))

	text, err := Write(rec, DefaultLineWidth)
	require.NoError(t, err)

	assert.Contains(t, text, "##NPOINTS=3\n")
	assert.Contains(t, text, "400.000000 0.9000 0.8000 0.7000 \n##END=")
}

func TestWrite_NPointsOverrideTooLarge(t *testing.T) {
	rec, err := Decode(affnDoc())
	require.NoError(t, err)
	rec.SetHeader("npts", spectrum.Int(10))

	_, err = Write(rec, DefaultLineWidth)
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrCodeBadNPoints, perr.Code)
}

func TestWrite_MissingSeries(t *testing.T) {
	_, err := Write(spectrum.New(), DefaultLineWidth)
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrCodeMissingSeries, perr.Code)
}
