package analytics_test

import (
	"testing"

	"alumnihub-be/internal/analytics"
)

func sumEntries(entries []analytics.DistributionEntry) int64 {
	var total int64
	for _, e := range entries {
		total += e.Value
	}
	return total
}

func TestCollapse_RankThreshold(t *testing.T) {
	entries := []analytics.DistributionEntry{
		{Name: "CompSci", Value: 50},
		{Name: "EE", Value: 30},
		{Name: "ME", Value: 10},
		{Name: "Civil", Value: 5},
		{Name: "Chem", Value: 3},
		{Name: "Arts", Value: 1},
		{Name: "Math", Value: 1},
		{Name: "Physics", Value: 0},
	}

	out := analytics.Collapse(entries, analytics.CollapsePolicy{Rank: 5})
	if len(out) != 6 {
		t.Fatalf("expected 5 named entries plus Other, got %d", len(out))
	}
	last := out[len(out)-1]
	if last.Name != analytics.OtherEntryName || last.Value != 2 {
		t.Fatalf("expected Other=2 from the collapsed tail, got %s=%d", last.Name, last.Value)
	}
	if got, want := sumEntries(out), sumEntries(entries); got != want {
		t.Fatalf("sum invariant broken: %d != %d", got, want)
	}
}

func TestCollapse_TailTieBreak(t *testing.T) {
	// Three tied entries at the rank boundary: tail membership is decided by
	// value ascending then name ascending, so "apple" and "banana" collapse.
	entries := []analytics.DistributionEntry{
		{Name: "top", Value: 9},
		{Name: "banana", Value: 1},
		{Name: "cherry", Value: 1},
		{Name: "apple", Value: 1},
	}

	out := analytics.Collapse(entries, analytics.CollapsePolicy{Rank: 2})
	if len(out) != 3 {
		t.Fatalf("expected 2 named entries plus Other, got %d", len(out))
	}
	if out[1].Name != "cherry" {
		t.Fatalf("expected cherry to survive the tie, got %s", out[1].Name)
	}
	if out[2].Name != analytics.OtherEntryName || out[2].Value != 2 {
		t.Fatalf("expected Other=2, got %s=%d", out[2].Name, out[2].Value)
	}
}

func TestCollapse_OtherOmittedWhenZero(t *testing.T) {
	entries := []analytics.DistributionEntry{
		{Name: "a", Value: 4},
		{Name: "b", Value: 3},
		{Name: "c", Value: 0},
	}

	out := analytics.Collapse(entries, analytics.CollapsePolicy{Rank: 2})
	for _, e := range out {
		if e.Name == analytics.OtherEntryName {
			t.Fatalf("zero-value Other must be omitted, got %+v", out)
		}
	}
	if got, want := sumEntries(out), sumEntries(entries); got != want {
		t.Fatalf("sum invariant broken: %d != %d", got, want)
	}
}

func TestCollapse_NoThresholdHit(t *testing.T) {
	entries := []analytics.DistributionEntry{
		{Name: "b", Value: 2},
		{Name: "a", Value: 7},
	}

	out := analytics.Collapse(entries, analytics.CollapsePolicy{Rank: 5})
	if len(out) != 2 {
		t.Fatalf("expected all entries kept, got %d", len(out))
	}
	if out[0].Name != "a" || out[1].Name != "b" {
		t.Fatalf("expected display order value desc, got %+v", out)
	}
}

func TestCollapse_ShareThreshold(t *testing.T) {
	entries := []analytics.DistributionEntry{
		{Name: "big", Value: 90},
		{Name: "small", Value: 6},
		{Name: "tiny", Value: 4},
	}

	// 5% of 100 = 5: "tiny" collapses, "small" survives.
	out := analytics.Collapse(entries, analytics.CollapsePolicy{Share: 0.05})
	if len(out) != 3 {
		t.Fatalf("expected big, small and Other, got %+v", out)
	}
	if out[2].Name != analytics.OtherEntryName || out[2].Value != 4 {
		t.Fatalf("expected Other=4, got %s=%d", out[2].Name, out[2].Value)
	}
	if got, want := sumEntries(out), sumEntries(entries); got != want {
		t.Fatalf("sum invariant broken: %d != %d", got, want)
	}
}

func TestCollapse_Empty(t *testing.T) {
	if out := analytics.Collapse(nil, analytics.CollapsePolicy{Rank: 5}); len(out) != 0 {
		t.Fatalf("expected empty result, got %+v", out)
	}
}
