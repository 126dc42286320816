package calibrate

import (
	"fmt"
	"math"
	"sort"

	"github.com/biocore/syndnaquant"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Matches the guard scipy's linregress uses against division by zero when
// r is exactly ±1.
const tiny = 1e-20

// FitLinearModels fits one calibration model per sample.
//
// concs declares the pool composition, samples the per-sample pool mass
// and total syndna reads, and reads the per-syndna per-sample count
// matrix restricted to syndna features. Syndna IDs must match exactly
// between concs and reads. Samples declared in the sample info but absent
// from the read data are tolerated and logged; the reverse is fatal.
// Syndnas whose total aligned reads across all samples fall below
// minSyndnaReads are dropped from the fit and logged.
//
// For each surviving sample the fit is an ordinary least-squares line of
// log10(individual syndna mass ng) against log10(counts per million
// syndna reads), over the syndnas with nonzero counts in that sample.
// Samples left with fewer than two usable points, or with no variation in
// their x values, are excluded from the result and logged.
func FitLinearModels(concs []SyndnaConc, samples []SampleSyndna, reads *syndnaquant.Table, minSyndnaReads float64) (map[string]LinModel, []string, error) {
	syndnaIDs := make([]string, 0, len(concs))
	for _, c := range concs {
		syndnaIDs = append(syndnaIDs, c.SyndnaID)
	}
	if _, err := syndnaquant.CheckIDConsistency(
		syndnaIDs, reads.FeatureIDs(), "config", "read data", "syndna feature", true); err != nil {
		return nil, nil, err
	}

	sampleIDs := make([]string, 0, len(samples))
	bySample := make(map[string]SampleSyndna, len(samples))
	for _, s := range samples {
		sampleIDs = append(sampleIDs, s.SampleID)
		bySample[s.SampleID] = s
	}
	infoOnly, err := syndnaquant.CheckIDConsistency(
		sampleIDs, reads.SampleIDs(), "sample info", "read data", "sample id", false)
	if err != nil {
		return nil, nil, err
	}

	var msgs []string
	if len(infoOnly) > 0 {
		msgs = append(msgs, fmt.Sprintf(
			"The following sample ids were in the sample info but not in the data: %v", infoOnly))
	}

	// Drop syndnas that sequenced too poorly to trust, based on their
	// total aligned reads across every sample.
	var dropped []string
	drop := make(map[string]bool)
	for id, sum := range reads.FeatureSums() {
		if sum < minSyndnaReads {
			dropped = append(dropped, id)
			drop[id] = true
		}
	}
	if len(dropped) > 0 {
		sort.Strings(dropped)
		msgs = append(msgs, fmt.Sprintf(
			"The following syndnas were dropped because they had fewer than %v total reads aligned: %v",
			minSyndnaReads, dropped))
	}
	working := reads.WithoutFeatures(drop)

	masses, err := SyndnaMassesNg(concs, samples)
	if err != nil {
		return nil, nil, err
	}

	models := make(map[string]LinModel)
	var excluded []string

	for _, sampleID := range sortedStrings(working.SampleIDs()) {
		info := bySample[sampleID]
		counts := working.SampleValues(sampleID)

		xs := make([]float64, 0, len(counts))
		ys := make([]float64, 0, len(counts))
		for _, syndnaID := range sortedKeys(counts) {
			count := counts[syndnaID]
			massNg := masses[sampleID][syndnaID]
			if count <= 0 || massNg <= 0 || info.TotalReads <= 0 {
				continue
			}
			xs = append(xs, math.Log10(count/info.TotalReads*1e6))
			ys = append(ys, math.Log10(massNg))
		}

		if len(xs) < 2 || !hasVariation(xs) {
			excluded = append(excluded, sampleID)
			continue
		}

		models[sampleID] = linregress(xs, ys)
	}

	if len(excluded) > 0 {
		msgs = append(msgs, fmt.Sprintf(
			"The following samples were excluded from model fitting because they had fewer than two usable syndna data points: %v",
			excluded))
	}

	return models, msgs, nil
}

// linregress reproduces the six-field summary of a two-variable ordinary
// least-squares fit: slope, intercept, Pearson r, the two-sided p-value of
// the slope's t statistic, and the standard errors of slope and intercept.
func linregress(xs, ys []float64) LinModel {
	n := float64(len(xs))

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)

	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		r = 0
	}
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}

	if len(xs) == 2 {
		// A two-point fit is exact, so the error estimates degenerate.
		pvalue := 1.0
		if ys[0] != ys[1] {
			pvalue = 0.0
		}
		return LinModel{
			Slope:     slope,
			Intercept: intercept,
			RValue:    r,
			PValue:    pvalue,
		}
	}

	xm := stat.Mean(xs, nil)

	// Population (1/n) mean squared deviations.
	ssxm := stat.Variance(xs, nil) * (n - 1) / n
	ssym := stat.Variance(ys, nil) * (n - 1) / n

	df := n - 2
	t := r * math.Sqrt(df/((1.0-r+tiny)*(1.0+r+tiny)))
	tdist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	pvalue := 2 * tdist.Survival(math.Abs(t))

	stderr := math.Sqrt((1 - r*r) * ssym / ssxm / df)
	interceptStdErr := stderr * math.Sqrt(ssxm+xm*xm)

	return LinModel{
		Slope:           slope,
		Intercept:       intercept,
		RValue:          r,
		PValue:          pvalue,
		StdErr:          stderr,
		InterceptStdErr: interceptStdErr,
	}
}

func hasVariation(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return true
		}
	}
	return false
}

func sortedStrings(ids []string) []string {
	out := append([]string{}, ids...)
	sort.Strings(out)
	return out
}

func sortedKeys(m map[string]float64) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
