package analytics

import (
	"fmt"
	"time"
)

// Granularity is the calendar unit a window is bucketed by.
type Granularity string

const (
	GranularityHour  Granularity = "hour"
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
)

// TimeWindow is a half-open-by-calendar time range: buckets cover every
// calendar unit touched by [Start, End].
type TimeWindow struct {
	Granularity Granularity
	Start       time.Time
	End         time.Time
}

// Validate checks the window invariants.
func (w TimeWindow) Validate() error {
	switch w.Granularity {
	case GranularityHour, GranularityDay, GranularityMonth:
	default:
		return fmt.Errorf("%w: unknown granularity %q", ErrInvalidWindow, w.Granularity)
	}
	if w.End.Before(w.Start) {
		return fmt.Errorf("%w: start %s is after end %s",
			ErrInvalidWindow, w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339))
	}
	return nil
}

// Bucket is one calendar-aligned slot of a continuous series. Key is the
// join key the record source groups by; Label is what charts display.
type Bucket struct {
	Key   string
	Label string
}

// BucketKey formats t as the grouping key for the given granularity. The
// layouts must stay in sync with the record source's time grouping.
func BucketKey(t time.Time, g Granularity) string {
	switch g {
	case GranularityMonth:
		return t.Format("2006-01")
	case GranularityDay:
		return t.Format("2006-01-02")
	default:
		return t.Format("2006-01-02 15:00")
	}
}

// truncate aligns t down to the start of its calendar unit.
func truncate(t time.Time, g Granularity) time.Time {
	switch g {
	case GranularityMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	case GranularityDay:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	}
}

func step(t time.Time, g Granularity) time.Time {
	switch g {
	case GranularityMonth:
		return t.AddDate(0, 1, 0)
	case GranularityDay:
		return t.AddDate(0, 0, 1)
	default:
		return t.Add(time.Hour)
	}
}

// GenerateBuckets produces the continuous, ordered bucket sequence for the
// window, oldest first, independent of data presence. Every calendar unit in
// [Start, End] appears exactly once. Month labels are the month abbreviation,
// with the year appended when the window crosses a year boundary; day and
// hour labels reuse the unambiguous key.
func GenerateBuckets(w TimeWindow) ([]Bucket, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	crossesYear := w.Start.Year() != w.End.Year()
	end := truncate(w.End, w.Granularity)

	var buckets []Bucket
	for cur := truncate(w.Start, w.Granularity); !cur.After(end); cur = step(cur, w.Granularity) {
		b := Bucket{Key: BucketKey(cur, w.Granularity)}
		if w.Granularity == GranularityMonth {
			if crossesYear {
				b.Label = cur.Format("Jan 2006")
			} else {
				b.Label = cur.Format("Jan")
			}
		} else {
			b.Label = b.Key
		}
		buckets = append(buckets, b)
	}
	return buckets, nil
}

// LastMonths builds a month-granularity window covering the current month and
// the n-1 before it, ending at the clock's now.
func LastMonths(clock Clock, n int) TimeWindow {
	now := clock.Now()
	return TimeWindow{
		Granularity: GranularityMonth,
		Start:       truncate(now, GranularityMonth).AddDate(0, -(n - 1), 0),
		End:         now,
	}
}

// LastDays builds a day-granularity sliding window of n days ending now.
func LastDays(clock Clock, n int) TimeWindow {
	now := clock.Now()
	return TimeWindow{
		Granularity: GranularityDay,
		Start:       now.AddDate(0, 0, -n),
		End:         now,
	}
}

// NextDays builds a day-granularity window from now to n days ahead.
func NextDays(clock Clock, n int) TimeWindow {
	now := clock.Now()
	return TimeWindow{
		Granularity: GranularityDay,
		Start:       now,
		End:         now.AddDate(0, 0, n),
	}
}
