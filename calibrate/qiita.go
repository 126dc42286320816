package calibrate

import (
	"fmt"
	"strings"

	"github.com/biocore/syndnaquant"
)

// Column names expected in Qiita prep-info tables.
const (
	SampleIDKey         = "sample_name"
	SyndnaPoolNumKey    = "syndna_pool_number"
	SyndnaPoolMassNgKey = "mass_syndna_input_ng"
	SyndnaTotalReadsKey = "raw_reads_r1r2"
)

// Keys of the result map returned to Qiita.
const (
	LinRegressResultKey = "lin_regress_by_sample_id"
	FitLogKey           = "fit_syndna_models_log"
)

var requiredPrepColumns = []string{
	SampleIDKey, SyndnaPoolNumKey, SyndnaPoolMassNgKey, SyndnaTotalReadsKey,
}

// FitForQiita runs the calibration fit from Qiita-shaped inputs: a
// prep-info metadata table, the syndna count matrix, and a config
// declaring the pool compositions. It returns a two-entry string map: the
// per-sample model block and the newline-joined log messages (empty when
// nothing notable happened).
//
// Exactly one syndna pool number may appear in the prep; more than one is
// an error naming every distinct value found.
func FitForQiita(prepInfo *syndnaquant.SampleInfo, reads *syndnaquant.Table, minSyndnaReads float64, cfg *syndnaquant.Config) (map[string]string, error) {
	if cfg == nil {
		cfg = syndnaquant.DefaultConfig()
	}

	if err := prepInfo.RequireColumns("prep info", requiredPrepColumns...); err != nil {
		return nil, err
	}

	pools := prepInfo.DistinctValues(SyndnaPoolNumKey)
	if len(pools) > 1 {
		return nil, fmt.Errorf("Multiple syndna_pool_numbers found in prep info: %v", pools)
	}
	if len(pools) == 0 {
		return nil, fmt.Errorf("No syndna_pool_number values found in prep info")
	}

	pool, err := cfg.PoolConcentrations(pools[0])
	if err != nil {
		return nil, err
	}
	concs := ConcsFromPool(pool)

	samples := make([]SampleSyndna, 0, len(prepInfo.SampleIDs()))
	for _, sampleID := range prepInfo.SampleIDs() {
		poolMass, err := prepInfo.Float(sampleID, SyndnaPoolMassNgKey)
		if err != nil {
			return nil, err
		}
		totalReads, err := prepInfo.Float(sampleID, SyndnaTotalReadsKey)
		if err != nil {
			return nil, err
		}
		samples = append(samples, SampleSyndna{
			SampleID:   sampleID,
			PoolMassNg: poolMass,
			TotalReads: totalReads,
		})
	}

	models, msgs, err := FitLinearModels(concs, samples, reads, minSyndnaReads)
	if err != nil {
		return nil, err
	}

	return map[string]string{
		LinRegressResultKey: FormatModels(models),
		FitLogKey:           strings.Join(msgs, "\n"),
	}, nil
}
