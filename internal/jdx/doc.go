// Package jdx implements the JCAMP-DX decode/encode engine.
//
// Decode consumes a sequence of text lines (already read from storage
// by a caller) and produces a spectrum.Record: header metadata plus
// the numeric x/y series, recursing into nested blocks for LINK
// compound documents. Data tables may be written in plain AFFN
// numbers or in the compressed ASDF form, whose three overlapping
// single-character alphabets (SQZ, DIF, DUP) are handled by the line
// decoder in asdf.go.
//
// Write performs the reverse transformation, always emitting the
// uncompressed (X++(Y..Y)) form.
//
// Hard failures (unknown characters in a data line, malformed header
// records, missing mandatory headers) surface as *ParseError.
// Recoverable oddities (x-checkpoint drift, broken DIF continuity,
// x/y length mismatch, unparseable LONGDATE) are collected as
// advisory warnings on the record instead.
package jdx
