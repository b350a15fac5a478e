package analytics

import "sort"

// DistributionEntry is one named slice of a categorical distribution.
type DistributionEntry struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// OtherEntryName is the label of the merged long-tail entry.
const OtherEntryName = "Other"

// CollapsePolicy controls long-tail collapsing. Rank keeps at most Rank named
// entries (0 disables); Share additionally collapses entries holding less
// than that fraction of the total (0 disables).
type CollapsePolicy struct {
	Rank  int
	Share float64
}

// Collapse merges the long tail of a distribution into a single "Other"
// entry. Tail membership is decided on entries ordered by value ascending,
// then name ascending, so ties at the rank boundary resolve deterministically.
// The sum of the returned values always equals the sum of the input values.
// An "Other" entry that would be 0 is omitted. Named entries come back in
// display order: value descending, name ascending.
func Collapse(entries []DistributionEntry, p CollapsePolicy) []DistributionEntry {
	if len(entries) == 0 {
		return nil
	}

	var total int64
	for _, e := range entries {
		total += e.Value
	}

	asc := make([]DistributionEntry, len(entries))
	copy(asc, entries)
	sort.SliceStable(asc, func(i, j int) bool {
		if asc[i].Value != asc[j].Value {
			return asc[i].Value < asc[j].Value
		}
		return asc[i].Name < asc[j].Name
	})

	// Group keys are unique, so the name identifies an entry.
	inTail := make(map[string]bool)
	if p.Rank > 0 && len(asc) > p.Rank {
		for _, e := range asc[:len(asc)-p.Rank] {
			inTail[e.Name] = true
		}
	}
	if p.Share > 0 {
		floor := p.Share * float64(total)
		for _, e := range asc {
			if float64(e.Value) < floor {
				inTail[e.Name] = true
			}
		}
	}

	var kept []DistributionEntry
	var other int64
	for i := len(asc) - 1; i >= 0; i-- { // value descending
		if inTail[asc[i].Name] {
			other += asc[i].Value
		} else {
			kept = append(kept, asc[i])
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Value != kept[j].Value {
			return kept[i].Value > kept[j].Value
		}
		return kept[i].Name < kept[j].Name
	})

	if other > 0 {
		kept = append(kept, DistributionEntry{Name: OtherEntryName, Value: other})
	}
	return kept
}
