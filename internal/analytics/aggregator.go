package analytics

import (
	"context"
	"time"
)

// MetricDefinition is the immutable, declarative description of one derivable
// metric. Definitions are created at start-up (see definitions.go) and never
// mutated; the Aggregator translates one definition plus a window into a
// single record-source query.
type MetricDefinition struct {
	Name       string
	Collection string
	Predicate  Predicate
	GroupBy    Grouping
	TimeField  string
	Aggs       []Aggregation
	Fields     []string
	SortBy     string
	SortDesc   bool
	Limit      int
}

// Aggregator executes metric definitions against the record source. Each run
// is one store round trip issued under its own timeout, so a query never
// holds a connection across the caller's lifetime.
type Aggregator struct {
	source  RecordSource
	timeout time.Duration
}

func NewAggregator(source RecordSource, timeout time.Duration) *Aggregator {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Aggregator{source: source, timeout: timeout}
}

// Run executes def over the optional window. A store failure comes back as
// ErrSourceUnavailable with the metric and window attached — never as empty
// rows, so "no data" stays distinguishable from "could not query".
func (a *Aggregator) Run(ctx context.Context, def MetricDefinition, w *TimeWindow) ([]Row, error) {
	if w != nil {
		if err := w.Validate(); err != nil {
			return nil, err
		}
	}

	spec := QuerySpec{
		Collection: def.Collection,
		Predicate:  def.Predicate,
		GroupBy:    def.GroupBy,
		TimeField:  def.TimeField,
		Window:     w,
		Aggs:       def.Aggs,
		Fields:     def.Fields,
		SortBy:     def.SortBy,
		SortDesc:   def.SortDesc,
		Limit:      def.Limit,
	}
	if w != nil && spec.GroupBy.Kind == GroupTime {
		spec.GroupBy.Granularity = w.Granularity
	}

	qctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	rows, err := a.source.Query(qctx, spec)
	if err != nil {
		return nil, sourceErr(def.Name, w, err)
	}
	return rows, nil
}

// SeriesPoint is one fully populated slot of a bucketed series.
type SeriesPoint struct {
	Bucket Bucket
	Values map[string]float64
}

// MergeBuckets left-joins the sparse grouped rows onto the continuous bucket
// sequence. Every bucket appears exactly once; missing values default to 0
// for every requested key (averages included — charting consumers never see
// NaN or absent fields).
func MergeBuckets(buckets []Bucket, rows []Row, keys []string) []SeriesPoint {
	byKey := make(map[string]Row, len(rows))
	for _, r := range rows {
		byKey[r.Key] = r
	}

	points := make([]SeriesPoint, 0, len(buckets))
	for _, b := range buckets {
		values := make(map[string]float64, len(keys))
		for _, k := range keys {
			values[k] = 0
		}
		if r, ok := byKey[b.Key]; ok {
			for _, k := range keys {
				values[k] = r.Values[k]
			}
		}
		points = append(points, SeriesPoint{Bucket: b, Values: values})
	}
	return points
}
