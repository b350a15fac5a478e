package analytics

import "math"

// PercentChange computes the percentage change from prior to current.
// Three-way zero policy:
//   - prior > 0: (current-prior)/prior * 100
//   - prior == 0 and current > 0: nil — callers render "new", never Infinity
//   - prior == 0 and current == 0: 0
func PercentChange(current, prior float64) *float64 {
	if prior == 0 {
		if current == 0 {
			zero := 0.0
			return &zero
		}
		return nil
	}
	v := (current - prior) / prior * 100
	return &v
}

// Round1 rounds to one decimal place, matching the dashboard display format.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
