package repository

import (
	"context"
	"fmt"
	"strconv"

	"alumnihub-be/internal/analytics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RecordSourceRepository implements analytics.RecordSource over MongoDB.
// Each QuerySpec becomes exactly one round trip: an aggregation pipeline when
// grouping or aggregating, a find otherwise. Driver errors are returned as-is;
// the engine classifies them.
type RecordSourceRepository struct {
	db *mongo.Database
}

func NewRecordSourceRepository(db *mongo.Database) *RecordSourceRepository {
	return &RecordSourceRepository{db: db}
}

func (r *RecordSourceRepository) Query(ctx context.Context, spec analytics.QuerySpec) ([]analytics.Row, error) {
	coll := r.db.Collection(spec.Collection)
	match := buildMatch(spec)

	if spec.GroupBy.Kind == analytics.GroupNone && len(spec.Aggs) == 0 {
		return r.find(ctx, coll, spec, match)
	}
	return r.aggregate(ctx, coll, spec, match)
}

// buildMatch merges the predicate and the optional time window into one
// $match document. Conditions on the same field fold into a single operator
// map so ranges like gte+lt work.
func buildMatch(spec analytics.QuerySpec) bson.M {
	match := bson.M{}
	add := func(field, op string, v interface{}) {
		switch cur := match[field].(type) {
		case bson.M:
			cur[op] = v
		case nil:
			match[field] = bson.M{op: v}
		default:
			match[field] = bson.M{"$eq": cur, op: v}
		}
	}

	for _, c := range spec.Predicate {
		switch c.Op {
		case analytics.OpEq:
			if _, exists := match[c.Field]; exists {
				add(c.Field, "$eq", c.Value)
			} else {
				match[c.Field] = c.Value
			}
		case analytics.OpNe:
			add(c.Field, "$ne", c.Value)
		case analytics.OpGte:
			add(c.Field, "$gte", c.Value)
		case analytics.OpLte:
			add(c.Field, "$lte", c.Value)
		case analytics.OpLt:
			add(c.Field, "$lt", c.Value)
		case analytics.OpExists:
			add(c.Field, "$exists", c.Value)
		}
	}

	if spec.Window != nil && spec.TimeField != "" {
		add(spec.TimeField, "$gte", spec.Window.Start)
		add(spec.TimeField, "$lte", spec.Window.End)
	}
	return match
}

// timeGroupFormat must produce the same keys analytics.BucketKey does.
func timeGroupFormat(g analytics.Granularity) string {
	switch g {
	case analytics.GranularityMonth:
		return "%Y-%m"
	case analytics.GranularityDay:
		return "%Y-%m-%d"
	default:
		return "%Y-%m-%d %H:00"
	}
}

func (r *RecordSourceRepository) aggregate(ctx context.Context, coll *mongo.Collection, spec analytics.QuerySpec, match bson.M) ([]analytics.Row, error) {
	var groupID interface{}
	switch spec.GroupBy.Kind {
	case analytics.GroupField:
		groupID = "$" + spec.GroupBy.Field
	case analytics.GroupTime:
		groupID = bson.M{"$dateToString": bson.M{
			"format": timeGroupFormat(spec.GroupBy.Granularity),
			"date":   "$" + spec.TimeField,
		}}
	default:
		groupID = nil
	}

	group := bson.M{"_id": groupID}
	for _, a := range spec.Aggs {
		switch a.Func {
		case analytics.AggCount:
			group[a.As] = bson.M{"$sum": 1}
		case analytics.AggSum:
			group[a.As] = bson.M{"$sum": "$" + a.Field}
		case analytics.AggAvg:
			group[a.As] = bson.M{"$avg": "$" + a.Field}
		case analytics.AggMax:
			group[a.As] = bson.M{"$max": "$" + a.Field}
		default:
			return nil, fmt.Errorf("unsupported aggregation %q", a.Func)
		}
	}

	pipeline := []bson.M{}
	if len(match) > 0 {
		pipeline = append(pipeline, bson.M{"$match": match})
	}
	pipeline = append(pipeline, bson.M{"$group": group})
	if spec.SortBy != "" {
		order := 1
		if spec.SortDesc {
			order = -1
		}
		pipeline = append(pipeline, bson.M{"$sort": bson.M{spec.SortBy: order}})
	}
	if spec.Limit > 0 {
		pipeline = append(pipeline, bson.M{"$limit": spec.Limit})
	}

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	rows := make([]analytics.Row, 0, len(docs))
	for _, doc := range docs {
		row := analytics.Row{
			Key:    keyString(doc["_id"]),
			Values: make(map[string]float64, len(spec.Aggs)),
		}
		for _, a := range spec.Aggs {
			row.Values[a.As] = toFloat(doc[a.As])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (r *RecordSourceRepository) find(ctx context.Context, coll *mongo.Collection, spec analytics.QuerySpec, match bson.M) ([]analytics.Row, error) {
	opts := options.Find()
	if len(spec.Fields) > 0 {
		projection := bson.M{}
		for _, f := range spec.Fields {
			projection[f] = 1
		}
		opts.SetProjection(projection)
	}
	if spec.SortBy != "" {
		order := 1
		if spec.SortDesc {
			order = -1
		}
		opts.SetSort(bson.M{spec.SortBy: order})
	}
	if spec.Limit > 0 {
		opts.SetLimit(int64(spec.Limit))
	}

	cursor, err := coll.Find(ctx, match, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	rows := make([]analytics.Row, 0, len(docs))
	for _, doc := range docs {
		row := analytics.Row{
			Key:    keyString(doc["_id"]),
			Values: make(map[string]float64),
			Fields: make(map[string]interface{}, len(spec.Fields)),
		}
		for _, f := range spec.Fields {
			v := normalize(doc[f])
			row.Fields[f] = v
			if n, ok := asFloat(v); ok {
				row.Values[f] = n
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// keyString renders a grouping key or document id as the engine's string key.
func keyString(v interface{}) string {
	switch k := v.(type) {
	case nil:
		return ""
	case string:
		return k
	case primitive.ObjectID:
		return k.Hex()
	case int32:
		return strconv.FormatInt(int64(k), 10)
	case int64:
		return strconv.FormatInt(k, 10)
	case float64:
		return strconv.FormatInt(int64(k), 10)
	default:
		return fmt.Sprintf("%v", k)
	}
}

// normalize converts BSON decode artifacts to plain Go values.
func normalize(v interface{}) interface{} {
	if dt, ok := v.(primitive.DateTime); ok {
		return dt.Time().UTC()
	}
	return v
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// toFloat is asFloat with a zero default, for aggregation outputs where a
// missing value means 0 (never NaN).
func toFloat(v interface{}) float64 {
	n, _ := asFloat(v)
	return n
}
