package analytics_test

import (
	"errors"
	"testing"
	"time"

	"alumnihub-be/internal/analytics"
)

func mustBuckets(t *testing.T, w analytics.TimeWindow) []analytics.Bucket {
	t.Helper()
	buckets, err := analytics.GenerateBuckets(w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return buckets
}

func TestGenerateBuckets_MonthCountAndOrder(t *testing.T) {
	w := analytics.TimeWindow{
		Granularity: analytics.GranularityMonth,
		Start:       time.Date(2026, 1, 10, 8, 30, 0, 0, time.UTC),
		End:         time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC),
	}

	buckets := mustBuckets(t, w)
	if len(buckets) != 6 {
		t.Fatalf("expected 6 buckets, got %d", len(buckets))
	}

	seen := map[string]bool{}
	expected := []string{"2026-01", "2026-02", "2026-03", "2026-04", "2026-05", "2026-06"}
	for i, b := range buckets {
		if b.Key != expected[i] {
			t.Fatalf("bucket %d: expected key %s, got %s", i, expected[i], b.Key)
		}
		if seen[b.Key] {
			t.Fatalf("duplicate bucket key %s", b.Key)
		}
		seen[b.Key] = true
	}

	if buckets[0].Label != "Jan" || buckets[5].Label != "Jun" {
		t.Fatalf("expected short month labels within one year, got %q..%q", buckets[0].Label, buckets[5].Label)
	}
}

func TestGenerateBuckets_YearCrossingLabels(t *testing.T) {
	w := analytics.TimeWindow{
		Granularity: analytics.GranularityMonth,
		Start:       time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
		End:         time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}

	buckets := mustBuckets(t, w)
	if len(buckets) != 4 {
		t.Fatalf("expected 4 buckets, got %d", len(buckets))
	}
	if buckets[0].Label != "Nov 2025" {
		t.Fatalf("expected year-scoped label, got %q", buckets[0].Label)
	}
	if buckets[3].Label != "Feb 2026" {
		t.Fatalf("expected year-scoped label, got %q", buckets[3].Label)
	}
}

func TestGenerateBuckets_DayAndHour(t *testing.T) {
	day := analytics.TimeWindow{
		Granularity: analytics.GranularityDay,
		Start:       time.Date(2026, 3, 30, 6, 0, 0, 0, time.UTC),
		End:         time.Date(2026, 4, 2, 6, 0, 0, 0, time.UTC),
	}
	buckets := mustBuckets(t, day)
	if len(buckets) != 4 {
		t.Fatalf("expected 4 day buckets, got %d", len(buckets))
	}
	if buckets[1].Key != "2026-03-31" || buckets[2].Key != "2026-04-01" {
		t.Fatalf("day buckets must cross the month boundary unambiguously, got %q, %q", buckets[1].Key, buckets[2].Key)
	}

	hour := analytics.TimeWindow{
		Granularity: analytics.GranularityHour,
		Start:       time.Date(2026, 3, 1, 22, 10, 0, 0, time.UTC),
		End:         time.Date(2026, 3, 2, 1, 0, 0, 0, time.UTC),
	}
	buckets = mustBuckets(t, hour)
	if len(buckets) != 4 {
		t.Fatalf("expected 4 hour buckets, got %d", len(buckets))
	}
	if buckets[0].Key != "2026-03-01 22:00" {
		t.Fatalf("unexpected hour key %q", buckets[0].Key)
	}
}

func TestGenerateBuckets_Idempotent(t *testing.T) {
	w := analytics.TimeWindow{
		Granularity: analytics.GranularityMonth,
		Start:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		End:         time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	first := mustBuckets(t, w)
	second := mustBuckets(t, w)
	if len(first) != len(second) {
		t.Fatalf("bucket counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("bucket %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestGenerateBuckets_StartAfterEnd(t *testing.T) {
	w := analytics.TimeWindow{
		Granularity: analytics.GranularityMonth,
		Start:       time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		End:         time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	_, err := analytics.GenerateBuckets(w)
	if !errors.Is(err, analytics.ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow, got %v", err)
	}
}

func TestGenerateBuckets_UnknownGranularity(t *testing.T) {
	w := analytics.TimeWindow{
		Granularity: "week",
		Start:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		End:         time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	_, err := analytics.GenerateBuckets(w)
	if !errors.Is(err, analytics.ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow, got %v", err)
	}
}
