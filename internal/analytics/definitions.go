package analytics

import "time"

// Metric definitions for the dashboard reports. Built once at start-up and
// treated as immutable; the few metrics whose predicate depends on the
// request's window use the constructors at the bottom.
var (
	defNewUsersMonthly = MetricDefinition{
		Name:       "users_new_by_month",
		Collection: "users",
		GroupBy:    Grouping{Kind: GroupTime},
		TimeField:  "created_at",
		Aggs:       []Aggregation{{Func: AggCount, As: "count"}},
	}

	defCategoryDistribution = MetricDefinition{
		Name:       "news_by_category",
		Collection: "news",
		Predicate:  Predicate{{Field: "status", Op: OpEq, Value: "approved"}},
		GroupBy:    Grouping{Kind: GroupField, Field: "category"},
		Aggs:       []Aggregation{{Func: AggCount, As: "count"}},
		SortBy:     "count",
		SortDesc:   true,
	}

	defNewsEngagementMonthly = MetricDefinition{
		Name:       "news_engagement_by_month",
		Collection: "news",
		GroupBy:    Grouping{Kind: GroupTime},
		TimeField:  "submitted_at",
		Aggs: []Aggregation{
			{Func: AggSum, Field: "views", As: "views"},
			{Func: AggSum, Field: "reaction_count", As: "reactions"},
		},
	}

	defCommentsMonthly = MetricDefinition{
		Name:       "comments_by_month",
		Collection: "comments",
		GroupBy:    Grouping{Kind: GroupTime},
		TimeField:  "created_at",
		Aggs:       []Aggregation{{Func: AggCount, As: "count"}},
	}

	defAlumniByYear = MetricDefinition{
		Name:       "alumni_by_graduation_year",
		Collection: "alumni",
		Predicate: Predicate{
			{Field: "graduation_year", Op: OpExists, Value: true},
			{Field: "graduation_year", Op: OpNe, Value: nil},
		},
		GroupBy: Grouping{Kind: GroupField, Field: "graduation_year"},
		Aggs:    []Aggregation{{Func: AggCount, As: "count"}},
		SortBy:  "_id",
		Limit:   10,
	}

	defDepartmentDistribution = MetricDefinition{
		Name:       "alumni_by_department",
		Collection: "alumni",
		Predicate: Predicate{
			{Field: "department", Op: OpExists, Value: true},
			{Field: "department", Op: OpNe, Value: nil},
			{Field: "department", Op: OpNe, Value: ""},
		},
		GroupBy:  Grouping{Kind: GroupField, Field: "department"},
		Aggs:     []Aggregation{{Func: AggCount, As: "count"}},
		SortBy:   "count",
		SortDesc: true,
	}

	defRegistrations = MetricDefinition{
		Name:       "users_registered",
		Collection: "users",
		TimeField:  "created_at",
		Aggs:       []Aggregation{{Func: AggCount, As: "count"}},
	}

	defPendingArticles = MetricDefinition{
		Name:       "news_pending",
		Collection: "news",
		Predicate:  Predicate{{Field: "status", Op: OpEq, Value: "pending"}},
		Aggs:       []Aggregation{{Func: AggCount, As: "count"}},
	}

	defUpcomingEvents = MetricDefinition{
		Name:       "events_upcoming",
		Collection: "events",
		TimeField:  "event_date",
		Aggs:       []Aggregation{{Func: AggCount, As: "count"}},
	}

	defTotalUsers = MetricDefinition{
		Name:       "users_total",
		Collection: "users",
		Aggs:       []Aggregation{{Func: AggCount, As: "count"}},
	}

	defTotalArticles = MetricDefinition{
		Name:       "news_total",
		Collection: "news",
		Aggs:       []Aggregation{{Func: AggCount, As: "count"}},
	}

	defApprovedArticles = MetricDefinition{
		Name:       "news_approved",
		Collection: "news",
		Predicate:  Predicate{{Field: "status", Op: OpEq, Value: "approved"}},
		Aggs:       []Aggregation{{Func: AggCount, As: "count"}},
	}

	defActiveUsers = MetricDefinition{
		Name:       "users_active",
		Collection: "users",
		TimeField:  "last_login",
		Aggs:       []Aggregation{{Func: AggCount, As: "count"}},
	}

	defApprovedArticleStats = MetricDefinition{
		Name:       "news_approved_with_stats",
		Collection: "news",
		Predicate:  Predicate{{Field: "status", Op: OpEq, Value: "approved"}},
		Fields:     []string{"title", "views", "reaction_count", "submitted_at"},
	}

	defLoginEvents = MetricDefinition{
		Name:       "user_login_events",
		Collection: "users",
		TimeField:  "last_login",
		Fields:     []string{"last_login"},
	}

	defViewsPerformance = MetricDefinition{
		Name:       "news_views_performance",
		Collection: "news",
		Predicate:  Predicate{{Field: "status", Op: OpEq, Value: "approved"}},
		Aggs: []Aggregation{
			{Func: AggAvg, Field: "views", As: "avg_views"},
			{Func: AggSum, Field: "views", As: "total_views"},
			{Func: AggMax, Field: "views", As: "max_views"},
		},
	}

	defReactionsPerformance = MetricDefinition{
		Name:       "news_reactions_performance",
		Collection: "news",
		Predicate:  Predicate{{Field: "status", Op: OpEq, Value: "approved"}},
		Aggs: []Aggregation{
			{Func: AggAvg, Field: "reaction_count", As: "avg_reactions"},
			{Func: AggSum, Field: "reaction_count", As: "total_reactions"},
		},
	}

	defTotalComments = MetricDefinition{
		Name:       "comments_total",
		Collection: "comments",
		Aggs:       []Aggregation{{Func: AggCount, As: "count"}},
	}

	defTotalAlumni = MetricDefinition{
		Name:       "alumni_total",
		Collection: "alumni",
		Aggs:       []Aggregation{{Func: AggCount, As: "count"}},
	}

	defTotalEvents = MetricDefinition{
		Name:       "events_total",
		Collection: "events",
		Aggs:       []Aggregation{{Func: AggCount, As: "count"}},
	}
)

// defUsersBefore counts accounts created strictly before t; it seeds the
// cumulative total of the growth series.
func defUsersBefore(t time.Time) MetricDefinition {
	return MetricDefinition{
		Name:       "users_total_before",
		Collection: "users",
		Predicate:  Predicate{{Field: "created_at", Op: OpLt, Value: t}},
		Aggs:       []Aggregation{{Func: AggCount, As: "count"}},
	}
}

// defUsersRegisteredBetween counts registrations in [from, to). The half-open
// range keeps adjacent comparison periods from double counting a boundary.
func defUsersRegisteredBetween(from, to time.Time) MetricDefinition {
	return MetricDefinition{
		Name:       "users_registered_between",
		Collection: "users",
		Predicate: Predicate{
			{Field: "created_at", Op: OpGte, Value: from},
			{Field: "created_at", Op: OpLt, Value: to},
		},
		Aggs: []Aggregation{{Func: AggCount, As: "count"}},
	}
}
