package analytics

import "sort"

// TopN returns the n highest rows by the named value, descending, with ties
// broken by row key ascending so repeated calls are reproducible. The input
// is not modified, so the same fetched row set can be ranked by several
// criteria without re-querying the source.
func TopN(rows []Row, n int, key string) []Row {
	ranked := make([]Row, len(rows))
	copy(ranked, rows)

	sort.SliceStable(ranked, func(i, j int) bool {
		vi, vj := ranked[i].Values[key], ranked[j].Values[key]
		if vi != vj {
			return vi > vj
		}
		return ranked[i].Key < ranked[j].Key
	})

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
