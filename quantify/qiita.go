package quantify

import (
	"strings"

	"github.com/biocore/syndnaquant"
)

var requiredSampleInfoColumns = []string{SampleIDKey, AliquotMassGKey}

var requiredPrepInfoColumns = []string{
	SampleIDKey, RNAConcNgULKey, EluteVolULKey, TotalBiologicalReadsKey,
}

// CopiesPerGramForQiita runs the projection from Qiita-shaped inputs:
// separate sample-info and prep-info metadata tables (inner-joined on the
// sample ID), the ORF read-count matrix, and the path to the ORF
// coordinate annotation file. Log messages come back newline-joined as a
// single string, empty when nothing notable happened.
func CopiesPerGramForQiita(sampleInfo, prepInfo *syndnaquant.SampleInfo, reads *syndnaquant.Table, coordsPath string, cfg *syndnaquant.Config) (*syndnaquant.Table, string, error) {
	if err := sampleInfo.RequireColumns("sample info", requiredSampleInfoColumns...); err != nil {
		return nil, "", err
	}
	if err := prepInfo.RequireColumns("prep info", requiredPrepInfoColumns...); err != nil {
		return nil, "", err
	}

	// Sample info may describe samples that were never included in this
	// prep; those are simply not joined.
	if _, err := syndnaquant.CheckIDConsistency(
		sampleInfo.SampleIDs(), prepInfo.SampleIDs(), "sample info", "prep info", "sample id", false); err != nil {
		return nil, "", err
	}

	params, err := prepInfo.InnerJoin(sampleInfo)
	if err != nil {
		return nil, "", err
	}

	coords, err := syndnaquant.ReadCoordsFile(coordsPath)
	if err != nil {
		return nil, "", err
	}

	out, msgs, err := CopiesPerGramOfSampleFromCoords(params, reads, coords, cfg)
	if err != nil {
		return nil, "", err
	}

	return out, strings.Join(msgs, "\n"), nil
}
