// Package calibrate fits per-sample calibration models relating syndna
// spike-in read counts to known spike-in input masses. Each sample gets an
// ordinary least-squares fit of log10(input mass ng) against
// log10(counts per million syndna reads); the fitted line is later used to
// translate observed read counts of biological features into mass
// estimates.
package calibrate

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// LinModel is the fitted calibration line for one sample. Field semantics
// follow the usual six-value linear regression summary: Pearson r, the
// two-sided p-value of the slope t-test, and the standard errors of the
// slope and intercept.
type LinModel struct {
	Slope           float64
	Intercept       float64
	RValue          float64
	PValue          float64
	StdErr          float64
	InterceptStdErr float64
}

// FormatModels renders a per-sample model block, one line per field,
// samples sorted by ID and fields sorted by name, values truncated to 12
// decimal places:
//
//	A:
//	  intercept: -6.724238188489
//	  ...
//	  stderr: 0.073054085503
func FormatModels(models map[string]LinModel) string {
	sampleIDs := make([]string, 0, len(models))
	for id := range models {
		sampleIDs = append(sampleIDs, id)
	}
	sort.Strings(sampleIDs)

	var b strings.Builder
	for _, id := range sampleIDs {
		m := models[id]
		b.WriteString(id + ":\n")
		b.WriteString("  intercept: " + formatRounded(m.Intercept) + "\n")
		b.WriteString("  intercept_stderr: " + formatRounded(m.InterceptStdErr) + "\n")
		b.WriteString("  pvalue: " + formatRounded(m.PValue) + "\n")
		b.WriteString("  rvalue: " + formatRounded(m.RValue) + "\n")
		b.WriteString("  slope: " + formatRounded(m.Slope) + "\n")
		b.WriteString("  stderr: " + formatRounded(m.StdErr) + "\n")
	}

	return b.String()
}

func formatRounded(v float64) string {
	truncated := math.Trunc(v*1e12) / 1e12
	return strconv.FormatFloat(truncated, 'g', -1, 64)
}

// Sprint lists the model's fields on one line, for diagnostics.
func (m LinModel) Sprint() string {
	return fmt.Sprintf("slope=%g intercept=%g rvalue=%g pvalue=%g stderr=%g intercept_stderr=%g",
		m.Slope, m.Intercept, m.RValue, m.PValue, m.StdErr, m.InterceptStdErr)
}
