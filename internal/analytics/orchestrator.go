package analytics

import (
	"context"
	"fmt"
	"time"

	"alumnihub-be/internal/models"

	"golang.org/x/sync/errgroup"
)

// Options carries the engine's policy knobs. Zero values fall back to the
// documented defaults.
type Options struct {
	QueryTimeout time.Duration  // per record-source query; default 15s
	Collapse     CollapsePolicy // long-tail policy for department distribution
	Location     *time.Location // heatmap zone; default UTC
}

// Orchestrator composes the engine primitives into the dashboard reports.
// It is stateless: every report is a pure computation over the supplied
// window and the current record snapshot, and nothing is cached here.
type Orchestrator struct {
	agg      *Aggregator
	clock    Clock
	collapse CollapsePolicy
	loc      *time.Location
}

func NewOrchestrator(source RecordSource, clock Clock, opts Options) *Orchestrator {
	if clock == nil {
		clock = SystemClock()
	}
	collapse := opts.Collapse
	if collapse.Rank == 0 && collapse.Share == 0 {
		collapse.Rank = 5
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Orchestrator{
		agg:      NewAggregator(source, opts.QueryTimeout),
		clock:    clock,
		collapse: collapse,
		loc:      loc,
	}
}

// count runs a single-value count metric and unwraps its result.
func (o *Orchestrator) count(ctx context.Context, def MetricDefinition, w *TimeWindow) (int64, error) {
	rows, err := o.agg.Run(ctx, def, w)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return int64(rows[0].Values["count"]), nil
}

func validateSpan(name string, v, max int) error {
	if v < 1 || v > max {
		return fmt.Errorf("%w: %s must be between 1 and %d, got %d", ErrInvalidWindow, name, max, v)
	}
	return nil
}

// UserGrowth returns the monthly growth series: new registrations per month
// plus the cumulative total. The per-month counts and the pre-window seed
// count are fetched concurrently.
func (o *Orchestrator) UserGrowth(ctx context.Context, months int) ([]models.GrowthPoint, error) {
	if err := validateSpan("months", months, 36); err != nil {
		return nil, err
	}
	w := LastMonths(o.clock, months)
	buckets, err := GenerateBuckets(w)
	if err != nil {
		return nil, err
	}

	var (
		monthly []Row
		seed    int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := o.agg.Run(gctx, defNewUsersMonthly, &w)
		monthly = rows
		return err
	})
	g.Go(func() error {
		n, err := o.count(gctx, defUsersBefore(w.Start), nil)
		seed = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	points := MergeBuckets(buckets, monthly, []string{"count"})
	series := make([]models.GrowthPoint, 0, len(points))
	total := seed
	for _, p := range points {
		n := int64(p.Values["count"])
		total += n
		series = append(series, models.GrowthPoint{
			Month:      p.Bucket.Label,
			TotalUsers: total,
			NewUsers:   n,
		})
	}
	return series, nil
}

// CategoryDistribution returns approved articles grouped by category,
// largest first. Categories are shown verbatim; no long-tail collapsing.
func (o *Orchestrator) CategoryDistribution(ctx context.Context) ([]DistributionEntry, error) {
	rows, err := o.agg.Run(ctx, defCategoryDistribution, nil)
	if err != nil {
		return nil, err
	}
	entries := make([]DistributionEntry, 0, len(rows))
	for _, r := range rows {
		name := r.Key
		if name == "" {
			name = "Uncategorized"
		}
		entries = append(entries, DistributionEntry{Name: name, Value: int64(r.Values["count"])})
	}
	return entries, nil
}

// EngagementMetrics returns monthly totals of article views, reactions and
// comments. The news and comments queries run concurrently against the same
// window and are joined onto one bucket sequence.
func (o *Orchestrator) EngagementMetrics(ctx context.Context, months int) ([]models.EngagementPoint, error) {
	if err := validateSpan("months", months, 36); err != nil {
		return nil, err
	}
	w := LastMonths(o.clock, months)
	buckets, err := GenerateBuckets(w)
	if err != nil {
		return nil, err
	}

	var newsRows, commentRows []Row
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := o.agg.Run(gctx, defNewsEngagementMonthly, &w)
		newsRows = rows
		return err
	})
	g.Go(func() error {
		rows, err := o.agg.Run(gctx, defCommentsMonthly, &w)
		commentRows = rows
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	news := MergeBuckets(buckets, newsRows, []string{"views", "reactions"})
	comments := MergeBuckets(buckets, commentRows, []string{"count"})

	series := make([]models.EngagementPoint, 0, len(buckets))
	for i := range buckets {
		series = append(series, models.EngagementPoint{
			Month:     buckets[i].Label,
			Views:     int64(news[i].Values["views"]),
			Reactions: int64(news[i].Values["reactions"]),
			Comments:  int64(comments[i].Values["count"]),
		})
	}
	return series, nil
}

// AlumniByYear returns alumni counts for the first ten graduation years on
// record, ascending.
func (o *Orchestrator) AlumniByYear(ctx context.Context) ([]models.YearCount, error) {
	rows, err := o.agg.Run(ctx, defAlumniByYear, nil)
	if err != nil {
		return nil, err
	}
	out := make([]models.YearCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.YearCount{Year: r.Key, Count: int64(r.Values["count"])})
	}
	return out, nil
}

// DepartmentDistribution returns alumni grouped by department with the long
// tail collapsed into "Other" per the configured policy.
func (o *Orchestrator) DepartmentDistribution(ctx context.Context) ([]DistributionEntry, error) {
	rows, err := o.agg.Run(ctx, defDepartmentDistribution, nil)
	if err != nil {
		return nil, err
	}
	entries := make([]DistributionEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, DistributionEntry{Name: r.Key, Value: int64(r.Values["count"])})
	}
	return Collapse(entries, o.collapse), nil
}

// RecentActivity returns the dashboard activity feed: registrations in the
// last 7 days, pending articles, and events in the next 30 days, all counted
// concurrently.
func (o *Orchestrator) RecentActivity(ctx context.Context) ([]models.ActivityItem, error) {
	var registrations, pending, upcoming int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		w := LastDays(o.clock, 7)
		n, err := o.count(gctx, defRegistrations, &w)
		registrations = n
		return err
	})
	g.Go(func() error {
		n, err := o.count(gctx, defPendingArticles, nil)
		pending = n
		return err
	})
	g.Go(func() error {
		w := NextDays(o.clock, 30)
		n, err := o.count(gctx, defUpcomingEvents, &w)
		upcoming = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return []models.ActivityItem{
		{Icon: "user-plus", Text: fmt.Sprintf("%d new registrations in 7 days", registrations), Time: "This week"},
		{Icon: "newspaper", Text: fmt.Sprintf("%d articles pending approval", pending), Time: "Today"},
		{Icon: "calendar-alt", Text: fmt.Sprintf("%d upcoming events", upcoming), Time: "This month"},
	}, nil
}

// StatsSummary returns the stat card bundle. All six counts are independent
// and fetched concurrently; the weekly growth percentage follows the
// zero-baseline policy of PercentChange.
func (o *Orchestrator) StatsSummary(ctx context.Context) (*models.StatsSummary, error) {
	now := o.clock.Now()
	weekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)

	var totalUsers, totalArticles, approved, recent, priorWeek, active int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := o.count(gctx, defTotalUsers, nil)
		totalUsers = n
		return err
	})
	g.Go(func() error {
		n, err := o.count(gctx, defTotalArticles, nil)
		totalArticles = n
		return err
	})
	g.Go(func() error {
		n, err := o.count(gctx, defApprovedArticles, nil)
		approved = n
		return err
	})
	g.Go(func() error {
		n, err := o.count(gctx, defUsersRegisteredBetween(weekAgo, now.Add(time.Second)), nil)
		recent = n
		return err
	})
	g.Go(func() error {
		n, err := o.count(gctx, defUsersRegisteredBetween(twoWeeksAgo, weekAgo), nil)
		priorWeek = n
		return err
	})
	g.Go(func() error {
		w := LastDays(o.clock, 30)
		n, err := o.count(gctx, defActiveUsers, &w)
		active = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	denom := totalArticles
	if denom == 0 {
		denom = 1
	}
	growth := PercentChange(float64(recent), float64(priorWeek))
	if growth != nil {
		rounded := Round1(*growth)
		growth = &rounded
	}

	return &models.StatsSummary{
		TotalUsers:          totalUsers,
		TotalArticles:       totalArticles,
		EngagementRate:      Round1(float64(approved) / float64(denom) * 100),
		RecentRegistrations: recent,
		ActiveUsers:         active,
		GrowthPercentage:    growth,
	}, nil
}

// TopArticles fetches approved articles once and ranks the same row set by
// views and by reactions, n entries each.
func (o *Orchestrator) TopArticles(ctx context.Context, n int) (*models.TopArticles, error) {
	if err := validateSpan("limit", n, 100); err != nil {
		return nil, err
	}
	rows, err := o.agg.Run(ctx, defApprovedArticleStats, nil)
	if err != nil {
		return nil, err
	}
	return &models.TopArticles{
		ByViews:     toRankedArticles(TopN(rows, n, "views")),
		ByReactions: toRankedArticles(TopN(rows, n, "reaction_count")),
	}, nil
}

func toRankedArticles(rows []Row) []models.RankedArticle {
	out := make([]models.RankedArticle, 0, len(rows))
	for _, r := range rows {
		a := models.RankedArticle{
			ID:        r.Key,
			Views:     int64(r.Values["views"]),
			Reactions: int64(r.Values["reaction_count"]),
		}
		if title, ok := r.Fields["title"].(string); ok {
			a.Title = title
		}
		if t, ok := r.Fields["submitted_at"].(time.Time); ok {
			a.SubmittedAt = &t
		}
		out = append(out, a)
	}
	return out
}

// ActivityHeatmap bins user logins from the last `days` days into the 7x24
// weekday/hour grid, interpreted in the engine's configured zone.
func (o *Orchestrator) ActivityHeatmap(ctx context.Context, days int) (HeatmapGrid, error) {
	var grid HeatmapGrid
	if err := validateSpan("days", days, 365); err != nil {
		return grid, err
	}
	w := LastDays(o.clock, days)
	rows, err := o.agg.Run(ctx, defLoginEvents, &w)
	if err != nil {
		return grid, err
	}
	events := make([]time.Time, 0, len(rows))
	for _, r := range rows {
		if t, ok := r.Fields["last_login"].(time.Time); ok {
			events = append(events, t)
		}
	}
	return Bin(events, o.loc), nil
}

// ContentPerformance computes the aggregate article performance card. The
// views, reactions and comment figures come from independent queries run
// concurrently; averages are 0 (not NaN) when nothing is approved yet.
func (o *Orchestrator) ContentPerformance(ctx context.Context) (*models.ContentPerformance, error) {
	var (
		viewsRow, reactionsRow Row
		totalComments, approvedArticles int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := o.agg.Run(gctx, defViewsPerformance, nil)
		if err != nil {
			return err
		}
		if len(rows) > 0 {
			viewsRow = rows[0]
		}
		return nil
	})
	g.Go(func() error {
		rows, err := o.agg.Run(gctx, defReactionsPerformance, nil)
		if err != nil {
			return err
		}
		if len(rows) > 0 {
			reactionsRow = rows[0]
		}
		return nil
	})
	g.Go(func() error {
		n, err := o.count(gctx, defTotalComments, nil)
		totalComments = n
		return err
	})
	g.Go(func() error {
		n, err := o.count(gctx, defApprovedArticles, nil)
		approvedArticles = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	denom := approvedArticles
	if denom == 0 {
		denom = 1
	}
	return &models.ContentPerformance{
		AvgViewsPerArticle:     Round1(viewsRow.Values["avg_views"]),
		TotalViews:             int64(viewsRow.Values["total_views"]),
		MaxViews:               int64(viewsRow.Values["max_views"]),
		AvgReactionsPerArticle: Round1(reactionsRow.Values["avg_reactions"]),
		TotalReactions:         int64(reactionsRow.Values["total_reactions"]),
		AvgCommentsPerArticle:  Round1(float64(totalComments) / float64(denom)),
		TotalComments:          totalComments,
	}, nil
}

// CollectionCounts returns the raw totals for the admin ops card.
func (o *Orchestrator) CollectionCounts(ctx context.Context) (*models.CollectionCounts, error) {
	var users, alumni, articles, pending, events int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := o.count(gctx, defTotalUsers, nil)
		users = n
		return err
	})
	g.Go(func() error {
		n, err := o.count(gctx, defTotalAlumni, nil)
		alumni = n
		return err
	})
	g.Go(func() error {
		n, err := o.count(gctx, defTotalArticles, nil)
		articles = n
		return err
	})
	g.Go(func() error {
		n, err := o.count(gctx, defPendingArticles, nil)
		pending = n
		return err
	})
	g.Go(func() error {
		n, err := o.count(gctx, defTotalEvents, nil)
		events = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.CollectionCounts{
		TotalUsers:      users,
		TotalAlumni:     alumni,
		TotalArticles:   articles,
		PendingArticles: pending,
		TotalEvents:     events,
		Timestamp:       o.clock.Now(),
	}, nil
}
