// Package spectrum defines the in-memory representation of a JCAMP-DX
// document: the Record with its ordered header store, the numeric x/y
// series, nested child records for LINK compound documents, and the
// advisory Warning diagnostics collected during decoding.
//
// The package is a pure data model. All parsing lives in internal/jdx
// and all physics post-processing in internal/xsec.
package spectrum
