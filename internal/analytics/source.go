package analytics

import "context"

// Op is a predicate comparison operator understood by the record source.
type Op string

const (
	OpEq     Op = "eq"
	OpNe     Op = "ne"
	OpGte    Op = "gte"
	OpLte    Op = "lte"
	OpLt     Op = "lt"
	OpExists Op = "exists" // Value is a bool
)

// Condition is one field constraint of a match predicate.
type Condition struct {
	Field string
	Op    Op
	Value interface{}
}

// Predicate is a conjunction of conditions.
type Predicate []Condition

// GroupKind selects the grouping dimension of a query.
type GroupKind int

const (
	GroupNone GroupKind = iota
	GroupTime           // calendar bucket of the time field
	GroupField          // categorical field value
)

// Grouping describes how matched records are grouped before aggregation.
type Grouping struct {
	Kind        GroupKind
	Field       string      // categorical field when Kind == GroupField
	Granularity Granularity // bucket size when Kind == GroupTime
}

// AggFunc is an aggregation function applied per group.
type AggFunc string

const (
	AggCount AggFunc = "count"
	AggSum   AggFunc = "sum"
	AggAvg   AggFunc = "avg"
	AggMax   AggFunc = "max"
)

// Aggregation computes one named value per group.
type Aggregation struct {
	Func  AggFunc
	Field string // source field for sum/avg/max; unused for count
	As    string // key of the value in the resulting Row
}

// QuerySpec is the single-query translation of a MetricDefinition: predicate
// filtering, optional grouping, optional time-range restriction, aggregations,
// sort and limit. One QuerySpec always maps to exactly one store round trip.
type QuerySpec struct {
	Collection string
	Predicate  Predicate
	GroupBy    Grouping
	TimeField  string      // field the window restricts (and GroupTime buckets)
	Window     *TimeWindow // nil means no time restriction
	Aggs       []Aggregation
	Fields     []string // record fields to return when not aggregating
	SortBy     string   // value key, field name, or "_id"
	SortDesc   bool
	Limit      int
}

// Row is one result row: the grouping key (bucket key, field value, or record
// id for ungrouped fetches), the aggregated numeric values, and any requested
// display fields.
type Row struct {
	Key    string
	Values map[string]float64
	Fields map[string]interface{}
}

// RecordSource is the read-only query capability over the stored domain
// records, implemented by the storage layer. Implementations must report
// "temporarily unavailable" with an error, never with empty rows.
type RecordSource interface {
	Query(ctx context.Context, spec QuerySpec) ([]Row, error)
}
