package repository

import (
	"strings"
	"testing"
	"time"

	"alumnihub-be/internal/analytics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildMatch_PredicateAndWindow(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	spec := analytics.QuerySpec{
		Predicate: analytics.Predicate{
			{Field: "status", Op: analytics.OpEq, Value: "approved"},
		},
		TimeField: "submitted_at",
		Window: &analytics.TimeWindow{
			Granularity: analytics.GranularityMonth,
			Start:       start,
			End:         end,
		},
	}

	match := buildMatch(spec)
	if match["status"] != "approved" {
		t.Fatalf("eq condition should match the value directly, got %v", match["status"])
	}

	rng, ok := match["submitted_at"].(bson.M)
	if !ok {
		t.Fatalf("expected range document for the time field, got %T", match["submitted_at"])
	}
	if rng["$gte"] != start || rng["$lte"] != end {
		t.Fatalf("unexpected window bounds: %v", rng)
	}
}

func TestBuildMatch_FoldsSameFieldConditions(t *testing.T) {
	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC)

	spec := analytics.QuerySpec{
		Predicate: analytics.Predicate{
			{Field: "created_at", Op: analytics.OpGte, Value: from},
			{Field: "created_at", Op: analytics.OpLt, Value: to},
		},
	}

	match := buildMatch(spec)
	rng, ok := match["created_at"].(bson.M)
	if !ok {
		t.Fatalf("expected one folded range document, got %T", match["created_at"])
	}
	if rng["$gte"] != from || rng["$lt"] != to {
		t.Fatalf("unexpected folded range: %v", rng)
	}
}

func TestBuildMatch_ExistsAndNe(t *testing.T) {
	spec := analytics.QuerySpec{
		Predicate: analytics.Predicate{
			{Field: "department", Op: analytics.OpExists, Value: true},
			{Field: "department", Op: analytics.OpNe, Value: ""},
		},
	}

	match := buildMatch(spec)
	doc, ok := match["department"].(bson.M)
	if !ok {
		t.Fatalf("expected operator document, got %T", match["department"])
	}
	if doc["$exists"] != true || doc["$ne"] != "" {
		t.Fatalf("unexpected predicate translation: %v", doc)
	}
}

func TestTimeGroupFormat_MatchesBucketKeys(t *testing.T) {
	ts := time.Date(2026, 3, 5, 14, 45, 0, 0, time.UTC)

	cases := []struct {
		g    analytics.Granularity
		want string
	}{
		{analytics.GranularityMonth, "2026-03"},
		{analytics.GranularityDay, "2026-03-05"},
		{analytics.GranularityHour, "2026-03-05 14:00"},
	}
	for _, c := range cases {
		// The Mongo-side format string must produce the same key the
		// bucketer generates, or the left join would find nothing.
		if got := analytics.BucketKey(ts, c.g); got != c.want {
			t.Fatalf("%s: bucket key %q, want %q", c.g, got, c.want)
		}
		format := timeGroupFormat(c.g)
		if rendered := renderMongoFormat(format, ts); rendered != c.want {
			t.Fatalf("%s: mongo format renders %q, want %q", c.g, rendered, c.want)
		}
	}
}

// renderMongoFormat applies the $dateToString directives we use.
func renderMongoFormat(format string, t time.Time) string {
	return strings.NewReplacer(
		"%Y", t.Format("2006"),
		"%m", t.Format("01"),
		"%d", t.Format("02"),
		"%H", t.Format("15"),
	).Replace(format)
}

func TestKeyString(t *testing.T) {
	id := primitive.NewObjectID()

	cases := []struct {
		in   interface{}
		want string
	}{
		{nil, ""},
		{"Engineering", "Engineering"},
		{int32(2019), "2019"},
		{int64(2020), "2020"},
		{float64(2021), "2021"},
		{id, id.Hex()},
	}
	for _, c := range cases {
		if got := keyString(c.in); got != c.want {
			t.Fatalf("keyString(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeAndToFloat(t *testing.T) {
	dt := primitive.NewDateTimeFromTime(time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC))
	v := normalize(dt)
	ts, ok := v.(time.Time)
	if !ok || ts.Hour() != 10 {
		t.Fatalf("expected decoded time.Time, got %T %v", v, v)
	}

	if toFloat(int32(7)) != 7 || toFloat(int64(8)) != 8 || toFloat(3.5) != 3.5 {
		t.Fatalf("numeric conversions broken")
	}
	if toFloat(nil) != 0 || toFloat("n/a") != 0 {
		t.Fatalf("non-numeric values must default to 0")
	}
}
