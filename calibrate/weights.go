package calibrate

import (
	"fmt"
	"sort"
)

// SyndnaConc is one syndna feature's individual concentration within the
// spike-in pool mixture.
type SyndnaConc struct {
	SyndnaID string  `csv:"syndna_id"`
	NgPerUL  float64 `csv:"syndna_indiv_ng_ul"`
}

// SampleSyndna is the per-sample spike-in bookkeeping: the total mass of
// pool mixture added to the sample and the total number of reads that
// aligned to any syndna in that sample.
type SampleSyndna struct {
	SampleID   string  `csv:"sample_name"`
	PoolMassNg float64 `csv:"mass_syndna_input_ng"`
	TotalReads float64 `csv:"raw_reads_r1r2"`
}

// PoolMassFractions returns each syndna's fraction of the pool's total
// mass. Because all syndnas in a pool share the same volume, mass
// fractions equal concentration fractions.
func PoolMassFractions(concs []SyndnaConc) (map[string]float64, error) {
	total := 0.0
	for _, c := range concs {
		if c.NgPerUL <= 0 {
			return nil, fmt.Errorf("syndna %q has non-positive concentration %v", c.SyndnaID, c.NgPerUL)
		}
		total += c.NgPerUL
	}
	if total <= 0 {
		return nil, fmt.Errorf("syndna pool has no concentrations")
	}

	out := make(map[string]float64, len(concs))
	for _, c := range concs {
		if _, exists := out[c.SyndnaID]; exists {
			return nil, fmt.Errorf("duplicate syndna id %q in concentrations", c.SyndnaID)
		}
		out[c.SyndnaID] = c.NgPerUL / total
	}

	return out, nil
}

// SyndnaMassesNg returns the individual input mass of every syndna in
// every sample: the syndna's fraction of the pool times the pool mass
// added to that sample. This is computed per (sample, syndna) pair because
// pool mass varies by sample.
func SyndnaMassesNg(concs []SyndnaConc, samples []SampleSyndna) (map[string]map[string]float64, error) {
	fractions, err := PoolMassFractions(concs)
	if err != nil {
		return nil, err
	}

	out := make(map[string]map[string]float64, len(samples))
	for _, s := range samples {
		if _, exists := out[s.SampleID]; exists {
			return nil, fmt.Errorf("duplicate sample id %q in sample info", s.SampleID)
		}

		masses := make(map[string]float64, len(fractions))
		for syndnaID, fraction := range fractions {
			masses[syndnaID] = fraction * s.PoolMassNg
		}
		out[s.SampleID] = masses
	}

	return out, nil
}

// ConcsFromPool flattens a pool's id→concentration map into a sorted
// concentration slice.
func ConcsFromPool(pool map[string]float64) []SyndnaConc {
	out := make([]SyndnaConc, 0, len(pool))
	for id, ngPerUL := range pool {
		out = append(out, SyndnaConc{SyndnaID: id, NgPerUL: ngPerUL})
	}

	// map iteration order is random; keep the slice reproducible
	sort.Slice(out, func(i, j int) bool { return out[i].SyndnaID < out[j].SyndnaID })

	return out
}
