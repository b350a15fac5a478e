package analytics

import "time"

// Weekdays holds the heatmap row labels, Monday first, matching the
// dashboard's layout.
var Weekdays = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// HeatmapGrid is a fully materialized weekday x hour count matrix. Row 0 is
// Monday; every cell exists even when zero.
type HeatmapGrid [7][24]int

// Bin assigns each event to its (weekday, hour) cell in the given location.
// All events are interpreted in the one configured zone; per-event zones
// would make the grid internally inconsistent.
func Bin(events []time.Time, loc *time.Location) HeatmapGrid {
	var grid HeatmapGrid
	if loc == nil {
		loc = time.UTC
	}
	for _, ev := range events {
		local := ev.In(loc)
		row := (int(local.Weekday()) + 6) % 7 // time.Weekday is Sunday-first
		grid[row][local.Hour()]++
	}
	return grid
}

// Rows renders the grid keyed by weekday name for JSON consumers.
func (g HeatmapGrid) Rows() map[string][]int {
	out := make(map[string][]int, len(Weekdays))
	for i, day := range Weekdays {
		hours := make([]int, 24)
		copy(hours, g[i][:])
		out[day] = hours
	}
	return out
}
