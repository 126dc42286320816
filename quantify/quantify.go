// Package quantify projects raw per-feature read counts into absolute
// copies per gram of original sample material, using per-sample physical
// measurements and per-feature copies-per-gram factors derived from ORF
// coordinate spans.
package quantify

import (
	"fmt"
	"sort"

	"github.com/biocore/syndnaquant"
)

// Column names expected in the per-sample quantitation parameter table.
const (
	SampleIDKey             = "sample_name"
	AliquotMassGKey         = "calc_mass_sample_aliquot_input_g"
	RNAConcNgULKey          = "total_rna_concentration_ng_ul"
	EluteVolULKey           = "vol_extracted_elution_ul"
	TotalBiologicalReadsKey = "total_biological_reads_r1r2"
)

var requiredParamColumns = []string{
	SampleIDKey, AliquotMassGKey, RNAConcNgULKey, EluteVolULKey, TotalBiologicalReadsKey,
}

// RequiredParamColumns lists the metadata columns the projection needs.
func RequiredParamColumns() []string {
	return append([]string{}, requiredParamColumns...)
}

// sampleFactors holds the three per-sample physical quantities the
// projection chain multiplies through.
type sampleFactors struct {
	// TotalReads is the sample's total biological read count, the stage-1
	// divisor.
	TotalReads float64

	// MassInEluteG is the total analyte mass recovered in the elute, in
	// grams, the stage-2 multiplier.
	MassInEluteG float64

	// AliquotMassG is the grams of original sample material put into
	// extraction, the stage-4 divisor.
	AliquotMassG float64
}

// CopiesPerGramOfSample projects a raw ORF read-count matrix into copies
// of each ORF's ssRNA per gram of original sample.
//
// params must carry the columns named by RequiredParamColumns. Samples
// with unusable metadata are dropped and logged, not raised; metadata-only
// samples with no counts are likewise logged and skipped. Every feature in
// the reads must have a copies-per-gram factor; factors for features never
// observed are tolerated silently.
func CopiesPerGramOfSample(params *syndnaquant.SampleInfo, reads *syndnaquant.Table, copiesPerG map[string]float64) (*syndnaquant.Table, []string, error) {
	if err := params.RequireColumns("quantitation parameters", requiredParamColumns...); err != nil {
		return nil, nil, err
	}

	infoOnly, err := syndnaquant.CheckIDConsistency(
		params.SampleIDs(), reads.SampleIDs(), "sample info", "read data", "sample id", false)
	if err != nil {
		return nil, nil, err
	}

	var msgs []string
	if len(infoOnly) > 0 {
		msgs = append(msgs, fmt.Sprintf(
			"The following sample ids were in the sample info but not in the data: %v", infoOnly))
	}

	filterColumns := []string{AliquotMassGKey, RNAConcNgULKey, EluteVolULKey, TotalBiologicalReadsKey}
	filtered, filterMsgs, err := syndnaquant.FilterBySampleInfo(params, reads, filterColumns)
	if err != nil {
		return nil, nil, err
	}
	msgs = append(msgs, filterMsgs...)

	factorIDs := make([]string, 0, len(copiesPerG))
	for id := range copiesPerG {
		factorIDs = append(factorIDs, id)
	}
	if _, err := syndnaquant.CheckIDConsistency(
		factorIDs, filtered.FeatureIDs(), "coordinates", "read data", "feature", false); err != nil {
		return nil, nil, err
	}

	perSample := make(map[string]sampleFactors)
	var nonPositive []string
	keep := make(map[string]bool)
	for _, sampleID := range filtered.SampleIDs() {
		totalReads, err := params.Float(sampleID, TotalBiologicalReadsKey)
		if err != nil {
			return nil, nil, err
		}
		conc, err := params.Float(sampleID, RNAConcNgULKey)
		if err != nil {
			return nil, nil, err
		}
		vol, err := params.Float(sampleID, EluteVolULKey)
		if err != nil {
			return nil, nil, err
		}
		aliquotG, err := params.Float(sampleID, AliquotMassGKey)
		if err != nil {
			return nil, nil, err
		}

		if totalReads <= 0 || aliquotG <= 0 || conc < 0 || vol < 0 {
			nonPositive = append(nonPositive, sampleID)
			continue
		}

		keep[sampleID] = true
		perSample[sampleID] = sampleFactors{
			TotalReads:   totalReads,
			MassInEluteG: syndnaquant.MassNgInAliquot(conc, vol) / syndnaquant.NanogramsPerGram,
			AliquotMassG: aliquotG,
		}
	}
	if len(nonPositive) > 0 {
		sort.Strings(nonPositive)
		msgs = append(msgs, fmt.Sprintf(
			"The following samples were dropped because a physical quantity required for quantitation was not positive: %v",
			nonPositive))
		filtered = filtered.KeepSamples(keep)
	}

	out, err := projectCopiesPerGram(filtered, perSample, copiesPerG)
	if err != nil {
		return nil, nil, err
	}

	return out, msgs, nil
}

// projectCopiesPerGram applies the four-stage multiplicative chain to
// every stored cell:
//
//  1. fraction of the sample's biological reads
//  2. × grams of analyte in the elute → grams of this feature's ssRNA
//  3. × copies per gram of the feature → copies in the extracted sample
//  4. ÷ grams of sample material in the aliquot → copies per gram of sample
//
// Stage order matters: the stage-1 and stage-4 divisors are distinct
// physical quantities.
func projectCopiesPerGram(reads *syndnaquant.Table, perSample map[string]sampleFactors, copiesPerG map[string]float64) (*syndnaquant.Table, error) {
	invTotalReads := make(map[string]float64, len(perSample))
	massInEluteG := make(map[string]float64, len(perSample))
	invAliquotG := make(map[string]float64, len(perSample))
	for sampleID, f := range perSample {
		invTotalReads[sampleID] = 1 / f.TotalReads
		massInEluteG[sampleID] = f.MassInEluteG
		invAliquotG[sampleID] = 1 / f.AliquotMassG
	}

	fractionOfReads, err := reads.ScaleBySample(invTotalReads)
	if err != nil {
		return nil, err
	}

	gramsOfFeature, err := fractionOfReads.ScaleBySample(massInEluteG)
	if err != nil {
		return nil, err
	}

	copiesInSample, err := gramsOfFeature.ScaleByFeature(copiesPerG)
	if err != nil {
		return nil, err
	}

	return copiesInSample.ScaleBySample(invAliquotG)
}

// CopiesPerGramOfSampleFromCoords derives the per-feature factors from ORF
// coordinate spans and the configured RNA base molar mass, then projects.
func CopiesPerGramOfSampleFromCoords(params *syndnaquant.SampleInfo, reads *syndnaquant.Table, coords []syndnaquant.ORFCoords, cfg *syndnaquant.Config) (*syndnaquant.Table, []string, error) {
	if cfg == nil {
		cfg = syndnaquant.DefaultConfig()
	}

	copiesPerG, err := syndnaquant.ORFCopiesPerGram(coords, cfg.RNABaseGPerMole)
	if err != nil {
		return nil, nil, err
	}

	return CopiesPerGramOfSample(params, reads, copiesPerG)
}
