package syndnaquant

import (
	"fmt"
	"sort"
)

// CheckIDConsistency reconciles the ID sets of a reference collection and a
// data collection.
//
// IDs that appear in the data but not in the reference are always fatal: a
// model cannot be computed for an entity the reference never declared. IDs
// that appear in the reference but not in the data are fatal only when
// exact is true; otherwise they are returned, sorted, for the caller to
// log (for example, samples that simply failed sequencing).
//
// refName and dataName name the two collections in error messages; idKind
// names the kind of ID being compared (e.g. "syndna feature").
func CheckIDConsistency(refIDs, dataIDs []string, refName, dataName, idKind string, exact bool) ([]string, error) {
	ref := make(map[string]bool, len(refIDs))
	for _, id := range refIDs {
		ref[id] = true
	}
	data := make(map[string]bool, len(dataIDs))
	for _, id := range dataIDs {
		data[id] = true
	}

	var extraData []string
	for id := range data {
		if !ref[id] {
			extraData = append(extraData, id)
		}
	}
	if len(extraData) > 0 {
		sort.Strings(extraData)
		return nil, fmt.Errorf("Detected %d %s(s) in the %s that were not in the %s: %v",
			len(extraData), idKind, dataName, refName, extraData)
	}

	var extraRef []string
	for id := range ref {
		if !data[id] {
			extraRef = append(extraRef, id)
		}
	}
	sort.Strings(extraRef)

	if exact && len(extraRef) > 0 {
		return nil, fmt.Errorf("Missing the following %d required %s(s) in the %s: %v",
			len(extraRef), idKind, dataName, extraRef)
	}

	return extraRef, nil
}
