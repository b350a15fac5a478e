package models

import "time"

// GrowthPoint - one month of the user growth series
type GrowthPoint struct {
	Month      string `json:"month"`
	TotalUsers int64  `json:"totalUsers"` // cumulative count up to the end of the month
	NewUsers   int64  `json:"newUsers"`
}

// EngagementPoint - one month of views/reactions/comments totals
type EngagementPoint struct {
	Month     string `json:"month"`
	Views     int64  `json:"views"`
	Reactions int64  `json:"reactions"`
	Comments  int64  `json:"comments"`
}

// YearCount - alumni count for one graduation year
type YearCount struct {
	Year  string `json:"year"`
	Count int64  `json:"count"`
}

// ActivityItem - one card of the recent activity feed
type ActivityItem struct {
	Icon string `json:"icon"`
	Text string `json:"text"`
	Time string `json:"time"`
}

// StatsSummary - the stat card bundle. GrowthPercentage is null when the
// prior week had no registrations but the current week does ("new").
type StatsSummary struct {
	TotalUsers          int64    `json:"total_users"`
	TotalArticles       int64    `json:"total_articles"`
	EngagementRate      float64  `json:"engagement_rate"`
	RecentRegistrations int64    `json:"recent_registrations"`
	ActiveUsers         int64    `json:"active_users"`
	GrowthPercentage    *float64 `json:"growth_percentage"`
}

// RankedArticle - one entry of a top-articles ranking
type RankedArticle struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Views       int64      `json:"views"`
	Reactions   int64      `json:"reaction_count"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

// TopArticles - the two rankings computed from one article fetch
type TopArticles struct {
	ByViews     []RankedArticle `json:"top_by_views"`
	ByReactions []RankedArticle `json:"top_by_reactions"`
}

// ContentPerformance - aggregate article performance metrics
type ContentPerformance struct {
	AvgViewsPerArticle     float64 `json:"avg_views_per_article"`
	TotalViews             int64   `json:"total_views"`
	MaxViews               int64   `json:"max_views"`
	AvgReactionsPerArticle float64 `json:"avg_reactions_per_article"`
	TotalReactions         int64   `json:"total_reactions"`
	AvgCommentsPerArticle  float64 `json:"avg_comments_per_article"`
	TotalComments          int64   `json:"total_comments"`
}

// CollectionCounts - raw collection totals for the admin ops card
type CollectionCounts struct {
	TotalUsers      int64     `json:"total_users"`
	TotalAlumni     int64     `json:"total_alumni"`
	TotalArticles   int64     `json:"total_articles"`
	PendingArticles int64     `json:"pending_articles"`
	TotalEvents     int64     `json:"total_events"`
	Timestamp       time.Time `json:"timestamp"`
}
