package syndnaquant

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/carbocation/pfx"
)

// Table is a sparse feature×sample count matrix. Only nonzero cells are
// stored, so transforms touch stored entries only and never materialize a
// dense intermediate. Feature and sample IDs are each unique within a
// table. Tables are not mutated by transforms; each transform allocates a
// fresh Table.
type Table struct {
	features   []string
	samples    []string
	featureIdx map[string]int
	sampleIdx  map[string]int

	// rows[i] holds the stored cells of feature i, keyed by sample index.
	rows []map[int]float64
}

// NewTable creates an empty table over the given feature and sample IDs.
func NewTable(featureIDs, sampleIDs []string) (*Table, error) {
	t := &Table{
		features:   append([]string{}, featureIDs...),
		samples:    append([]string{}, sampleIDs...),
		featureIdx: make(map[string]int, len(featureIDs)),
		sampleIdx:  make(map[string]int, len(sampleIDs)),
		rows:       make([]map[int]float64, len(featureIDs)),
	}

	for i, id := range t.features {
		if _, exists := t.featureIdx[id]; exists {
			return nil, fmt.Errorf("duplicate feature id %q", id)
		}
		t.featureIdx[id] = i
	}

	for j, id := range t.samples {
		if _, exists := t.sampleIdx[id]; exists {
			return nil, fmt.Errorf("duplicate sample id %q", id)
		}
		t.sampleIdx[id] = j
	}

	return t, nil
}

// Set stores a cell value. Zero values are not stored.
func (t *Table) Set(featureID, sampleID string, value float64) error {
	i, exists := t.featureIdx[featureID]
	if !exists {
		return fmt.Errorf("unknown feature id %q", featureID)
	}
	j, exists := t.sampleIdx[sampleID]
	if !exists {
		return fmt.Errorf("unknown sample id %q", sampleID)
	}

	if value == 0 {
		delete(t.rows[i], j)
		return nil
	}

	if t.rows[i] == nil {
		t.rows[i] = make(map[int]float64)
	}
	t.rows[i][j] = value

	return nil
}

// At returns the stored value for a cell, or 0 if the cell is empty or the
// IDs are unknown.
func (t *Table) At(featureID, sampleID string) float64 {
	i, exists := t.featureIdx[featureID]
	if !exists {
		return 0
	}
	j, exists := t.sampleIdx[sampleID]
	if !exists {
		return 0
	}

	return t.rows[i][j]
}

// FeatureIDs returns the feature IDs in table order.
func (t *Table) FeatureIDs() []string {
	return append([]string{}, t.features...)
}

// SampleIDs returns the sample IDs in table order.
func (t *Table) SampleIDs() []string {
	return append([]string{}, t.samples...)
}

// FeatureSums returns the per-feature total across all samples.
func (t *Table) FeatureSums() map[string]float64 {
	out := make(map[string]float64, len(t.features))
	for i, id := range t.features {
		sum := 0.0
		for _, v := range t.rows[i] {
			sum += v
		}
		out[id] = sum
	}

	return out
}

// SampleSums returns the per-sample total across all features.
func (t *Table) SampleSums() map[string]float64 {
	out := make(map[string]float64, len(t.samples))
	for _, id := range t.samples {
		out[id] = 0
	}
	for i := range t.features {
		for j, v := range t.rows[i] {
			out[t.samples[j]] += v
		}
	}

	return out
}

// SampleValues returns the stored (nonzero) cells of one sample, keyed by
// feature ID.
func (t *Table) SampleValues(sampleID string) map[string]float64 {
	out := make(map[string]float64)
	j, exists := t.sampleIdx[sampleID]
	if !exists {
		return out
	}
	for i, id := range t.features {
		if v, stored := t.rows[i][j]; stored {
			out[id] = v
		}
	}

	return out
}

// WithoutFeatures returns a new table with the given features removed.
func (t *Table) WithoutFeatures(drop map[string]bool) *Table {
	kept := make([]string, 0, len(t.features))
	for _, id := range t.features {
		if !drop[id] {
			kept = append(kept, id)
		}
	}

	out, _ := NewTable(kept, t.samples)
	for i, id := range t.features {
		if drop[id] {
			continue
		}
		oi := out.featureIdx[id]
		for j, v := range t.rows[i] {
			if out.rows[oi] == nil {
				out.rows[oi] = make(map[int]float64, len(t.rows[i]))
			}
			out.rows[oi][j] = v
		}
	}

	return out
}

// KeepSamples returns a new table restricted to the given samples, in the
// original table order.
func (t *Table) KeepSamples(keep map[string]bool) *Table {
	kept := make([]string, 0, len(t.samples))
	for _, id := range t.samples {
		if keep[id] {
			kept = append(kept, id)
		}
	}

	out, _ := NewTable(t.features, kept)
	for i := range t.features {
		for j, v := range t.rows[i] {
			sid := t.samples[j]
			if !keep[sid] {
				continue
			}
			if out.rows[i] == nil {
				out.rows[i] = make(map[int]float64)
			}
			out.rows[i][out.sampleIdx[sid]] = v
		}
	}

	return out
}

// ScaleBySample multiplies every stored cell by the factor registered for
// the cell's sample. A stored cell whose sample has no factor is an error:
// the caller is expected to have validated sample consistency first.
func (t *Table) ScaleBySample(factors map[string]float64) (*Table, error) {
	out, _ := NewTable(t.features, t.samples)
	for i := range t.features {
		for j, v := range t.rows[i] {
			f, exists := factors[t.samples[j]]
			if !exists {
				return nil, fmt.Errorf("no scale factor for sample id %q", t.samples[j])
			}
			if out.rows[i] == nil {
				out.rows[i] = make(map[int]float64, len(t.rows[i]))
			}
			out.rows[i][j] = v * f
		}
	}

	return out, nil
}

// ScaleByFeature multiplies every stored cell by the factor registered for
// the cell's feature.
func (t *Table) ScaleByFeature(factors map[string]float64) (*Table, error) {
	out, _ := NewTable(t.features, t.samples)
	for i, id := range t.features {
		if len(t.rows[i]) == 0 {
			continue
		}
		f, exists := factors[id]
		if !exists {
			return nil, fmt.Errorf("no scale factor for feature id %q", id)
		}
		out.rows[i] = make(map[int]float64, len(t.rows[i]))
		for j, v := range t.rows[i] {
			out.rows[i][j] = v * f
		}
	}

	return out, nil
}

// ReadCountsTSV reads a tab-delimited count matrix whose header row is the
// feature ID column name followed by sample IDs, and whose subsequent rows
// are a feature ID followed by one count per sample.
func ReadCountsTSV(r io.Reader) (*Table, error) {
	c := csv.NewReader(r)
	c.Comma = '\t'

	header, err := c.Read()
	if err != nil {
		if err == io.EOF {
			return nil, pfx.Err(io.ErrUnexpectedEOF)
		}
		return nil, pfx.Err(err)
	}
	if len(header) < 2 {
		return nil, pfx.Err(fmt.Errorf("count matrix header has no sample columns"))
	}
	sampleIDs := header[1:]

	var featureIDs []string
	var cells [][]float64

	for {
		record, err := c.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, pfx.Err(err)
		}

		row := make([]float64, len(sampleIDs))
		for j, raw := range record[1:] {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, pfx.Err(fmt.Errorf("feature %q, sample %q: %v", record[0], sampleIDs[j], err))
			}
			row[j] = v
		}

		featureIDs = append(featureIDs, record[0])
		cells = append(cells, row)
	}

	t, err := NewTable(featureIDs, sampleIDs)
	if err != nil {
		return nil, pfx.Err(err)
	}
	for i, row := range cells {
		for j, v := range row {
			if v != 0 {
				if t.rows[i] == nil {
					t.rows[i] = make(map[int]float64)
				}
				t.rows[i][j] = v
			}
		}
	}

	return t, nil
}

// WriteTSV writes the table in the same layout ReadCountsTSV consumes,
// with empty cells written as 0.
func (t *Table) WriteTSV(w io.Writer) error {
	c := csv.NewWriter(w)
	c.Comma = '\t'

	if err := c.Write(append([]string{"feature_id"}, t.samples...)); err != nil {
		return pfx.Err(err)
	}

	record := make([]string, 1+len(t.samples))
	for i, id := range t.features {
		record[0] = id
		for j := range t.samples {
			record[1+j] = strconv.FormatFloat(t.rows[i][j], 'g', -1, 64)
		}
		if err := c.Write(record); err != nil {
			return pfx.Err(err)
		}
	}

	c.Flush()
	return pfx.Err(c.Error())
}
