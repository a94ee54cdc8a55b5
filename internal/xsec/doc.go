// Package xsec converts an assembled spectrum from transmittance or
// absorbance plus instrument metadata into an absorption
// cross-section per molecule (m^2).
//
// The conversion assumes gas-phase measurements at 296 K, the
// temperature used by NIST when collecting the reference spectra.
// Results are returned as a new Result rather than written back onto
// the record, so decoded records stay exactly what the decoder
// produced.
package xsec
