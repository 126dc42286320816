package syndnaquant

import "fmt"

// Biophysical constants used to convert genomic element lengths into
// per-gram copy numbers. The molar masses are averages per single-stranded
// RNA base and per double-stranded DNA basepair, and can be overridden via
// a Config file.
const (
	AvogadrosNumber = 6.022e23

	DefaultRNABaseGPerMole     = 340.0
	DefaultDNABasepairGPerMole = 650.0

	NanogramsPerGram = 1e9
)

// CopiesPerGram returns the number of copies of a genomic element present
// in one gram of that element, given the element's length in bases (or
// basepairs) and the molar mass of one base (or basepair).
func CopiesPerGram(lengthBases, gPerMole float64) (float64, error) {
	if lengthBases <= 0 {
		return 0, fmt.Errorf("element length must be positive, got %v", lengthBases)
	}
	if gPerMole <= 0 {
		return 0, fmt.Errorf("molar mass must be positive, got %v", gPerMole)
	}

	return AvogadrosNumber / (lengthBases * gPerMole), nil
}

// MassNgInAliquot returns the total nanograms of analyte in an aliquot,
// given its concentration in ng/µL and its volume in µL.
func MassNgInAliquot(concNgUL, volUL float64) float64 {
	return concNgUL * volUL
}
