package syndnaquant

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
)

// SampleInfo is a per-sample metadata table with one row per sample ID and
// free-form string-valued columns. Values stay raw strings so that the
// sample filter can distinguish a missing value from a present-but-invalid
// one.
type SampleInfo struct {
	idColumn string
	columns  []string
	order    []string
	rows     map[string]map[string]string
}

// NewSampleInfo creates an empty metadata table keyed by idColumn. The
// column list must include idColumn.
func NewSampleInfo(idColumn string, columns []string) (*SampleInfo, error) {
	si := &SampleInfo{
		idColumn: idColumn,
		columns:  append([]string{}, columns...),
		rows:     make(map[string]map[string]string),
	}

	found := false
	seen := make(map[string]bool, len(columns))
	for _, col := range columns {
		if seen[col] {
			return nil, fmt.Errorf("duplicate column %q", col)
		}
		seen[col] = true
		if col == idColumn {
			found = true
		}
	}
	if !found {
		return nil, fmt.Errorf("id column %q not among columns %v", idColumn, columns)
	}

	return si, nil
}

// Append adds one sample row. The row must carry a nonempty ID value, and
// sample IDs must be unique.
func (si *SampleInfo) Append(values map[string]string) error {
	id := values[si.idColumn]
	if id == "" {
		return fmt.Errorf("row has no value for id column %q", si.idColumn)
	}
	if _, exists := si.rows[id]; exists {
		return fmt.Errorf("duplicate sample id %q", id)
	}

	row := make(map[string]string, len(si.columns))
	for _, col := range si.columns {
		row[col] = values[col]
	}

	si.order = append(si.order, id)
	si.rows[id] = row

	return nil
}

// IDColumn returns the name of the sample ID column.
func (si *SampleInfo) IDColumn() string {
	return si.idColumn
}

// Columns returns the column names in table order.
func (si *SampleInfo) Columns() []string {
	return append([]string{}, si.columns...)
}

// HasColumn reports whether the table has the named column.
func (si *SampleInfo) HasColumn(col string) bool {
	for _, c := range si.columns {
		if c == col {
			return true
		}
	}
	return false
}

// SampleIDs returns the sample IDs in row order.
func (si *SampleInfo) SampleIDs() []string {
	return append([]string{}, si.order...)
}

// Has reports whether the table has a row for the given sample.
func (si *SampleInfo) Has(sampleID string) bool {
	_, exists := si.rows[sampleID]
	return exists
}

// Value returns the raw string value of a cell and whether the sample row
// exists.
func (si *SampleInfo) Value(sampleID, col string) (string, bool) {
	row, exists := si.rows[sampleID]
	if !exists {
		return "", false
	}
	return row[col], true
}

// Float parses a cell as a float64.
func (si *SampleInfo) Float(sampleID, col string) (float64, error) {
	raw, exists := si.Value(sampleID, col)
	if !exists {
		return 0, fmt.Errorf("no sample info row for sample id %q", sampleID)
	}
	if isMissingValue(raw) {
		return 0, fmt.Errorf("sample %q has no value in the %q column", sampleID, col)
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("sample %q has non-numeric value %q in the %q column", sampleID, raw, col)
	}

	return v, nil
}

// RequireColumns errors if any of the named columns is absent, naming the
// table via desc. A missing column is a configuration error, not a data
// error.
func (si *SampleInfo) RequireColumns(desc string, cols ...string) error {
	var missing []string
	for _, col := range cols {
		if !si.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%s is missing required column(s): %v", desc, missing)
	}

	return nil
}

// DistinctValues returns the sorted distinct non-missing values of a
// column across all rows.
func (si *SampleInfo) DistinctValues(col string) []string {
	seen := make(map[string]bool)
	for _, row := range si.rows {
		v := strings.TrimSpace(row[col])
		if v != "" {
			seen[v] = true
		}
	}

	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)

	return out
}

// InnerJoin joins two metadata tables on their sample ID, keeping only
// samples present in both. Rows keep this table's row order; columns are
// this table's columns followed by the other table's additional columns.
// Both tables must use the same ID column name.
func (si *SampleInfo) InnerJoin(other *SampleInfo) (*SampleInfo, error) {
	if si.idColumn != other.idColumn {
		return nil, fmt.Errorf("cannot join on differing id columns %q and %q", si.idColumn, other.idColumn)
	}

	columns := append([]string{}, si.columns...)
	for _, col := range other.columns {
		if !si.HasColumn(col) {
			columns = append(columns, col)
		}
	}

	out, err := NewSampleInfo(si.idColumn, columns)
	if err != nil {
		return nil, err
	}

	for _, id := range si.order {
		if !other.Has(id) {
			continue
		}
		values := make(map[string]string, len(columns))
		for col, v := range si.rows[id] {
			values[col] = v
		}
		for col, v := range other.rows[id] {
			if _, taken := values[col]; !taken || values[col] == "" {
				values[col] = v
			}
		}
		if err := out.Append(values); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// ReadSampleInfo reads a delimited metadata table whose header row names
// the columns, one of which must be idColumn.
func ReadSampleInfo(r io.Reader, comma rune, idColumn string) (*SampleInfo, error) {
	c := csv.NewReader(r)
	c.Comma = comma

	header, err := c.Read()
	if err != nil {
		if err == io.EOF {
			return nil, pfx.Err(io.ErrUnexpectedEOF)
		}
		return nil, pfx.Err(err)
	}

	si, err := NewSampleInfo(idColumn, header)
	if err != nil {
		return nil, pfx.Err(err)
	}

	for {
		record, err := c.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, pfx.Err(err)
		}

		values := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				values[col] = record[i]
			}
		}
		if err := si.Append(values); err != nil {
			return nil, pfx.Err(err)
		}
	}

	return si, nil
}

// isMissingValue reports whether a raw metadata cell should be treated as
// absent rather than invalid.
func isMissingValue(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "na", "nan", "null", "none":
		return true
	}
	return false
}

// parseCell classifies a raw metadata cell as a usable float, a missing
// value, or an invalid (non-numeric) value.
func parseCell(raw string) (v float64, missing, invalid bool) {
	if isMissingValue(raw) {
		return 0, true, false
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false, true
	}
	if math.IsNaN(v) {
		return 0, true, false
	}

	return v, false, false
}
