package syndnaquant

import (
	"fmt"
	"sort"
)

// FilterBySampleInfo removes from a count table every sample whose
// metadata is unusable for the calculation at hand: the sample has no
// metadata row at all, or its value in any of the named columns is missing
// or non-numeric. Dropped samples are reported in the returned log
// messages, one consolidated message per reason, never raised. The only
// error case is a named column being absent from the metadata table
// entirely, which is a configuration problem rather than a data problem.
func FilterBySampleInfo(info *SampleInfo, counts *Table, columns []string) (*Table, []string, error) {
	if err := info.RequireColumns("sample info", columns...); err != nil {
		return nil, nil, err
	}

	var noInfo []string
	missingByCol := make(map[string][]string)
	invalidByCol := make(map[string][]string)

	keep := make(map[string]bool)
	for _, sampleID := range counts.SampleIDs() {
		if !info.Has(sampleID) {
			noInfo = append(noInfo, sampleID)
			continue
		}

		usable := true
		for _, col := range columns {
			raw, _ := info.Value(sampleID, col)
			if _, missing, invalid := parseCell(raw); missing {
				missingByCol[col] = append(missingByCol[col], sampleID)
				usable = false
				break
			} else if invalid {
				invalidByCol[col] = append(invalidByCol[col], sampleID)
				usable = false
				break
			}
		}

		if usable {
			keep[sampleID] = true
		}
	}

	var msgs []string
	if len(noInfo) > 0 {
		sort.Strings(noInfo)
		msgs = append(msgs, fmt.Sprintf(
			"The following samples were dropped because they had no sample info: %v", noInfo))
	}
	for _, col := range columns {
		if ids := missingByCol[col]; len(ids) > 0 {
			sort.Strings(ids)
			msgs = append(msgs, fmt.Sprintf(
				"The following samples were dropped because their '%s' value was missing: %v", col, ids))
		}
		if ids := invalidByCol[col]; len(ids) > 0 {
			sort.Strings(ids)
			msgs = append(msgs, fmt.Sprintf(
				"The following samples were dropped because their '%s' value was not numeric: %v", col, ids))
		}
	}

	return counts.KeepSamples(keep), msgs, nil
}
