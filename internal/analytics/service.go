package analytics

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Repository exposes the aggregation queries the service relies on. Grouping
// and summation are pushed to the store; derived passes (moving averages,
// trend labels, comparisons) run in memory.
type Repository interface {
	DailyTotalSales(ctx context.Context, date time.Time) (float64, error)
	DailyQuantityByItem(ctx context.Context, date time.Time) ([]QuantityGroup, error)
	DailyQuantityByCategory(ctx context.Context, date time.Time) ([]QuantityGroup, error)
	AvgTransactionAmount(ctx context.Context, r DateRange) (float64, error)
	AveragesByItem(ctx context.Context, r DateRange) ([]AverageGroup, error)
	AveragesByCategory(ctx context.Context, r DateRange) ([]AverageGroup, error)
	TransactionRangeStats(ctx context.Context, r DateRange) (total float64, avg float64, err error)
	DetailRows(ctx context.Context, r DateRange) ([]DetailRow, error)
	TrendRows(ctx context.Context, r DateRange) ([]TrendPoint, error)
	RangeTotals(ctx context.Context, r DateRange) (RangeTotals, error)
}

// Service coordinates read-side sales analytics with the result cache. It
// never mutates the catalog or the ledger.
type Service struct {
	repo  Repository
	cache *Cache
}

// NewService wires a Repository with a Cache helper.
func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// DailySummary reports total sales for the date plus quantity sold grouped by
// item name and by category. Results are memoized for a short TTL.
func (s *Service) DailySummary(ctx context.Context, date time.Time) (DailySummary, error) {
	date = truncateDay(date)
	loader := func(ctx context.Context) (interface{}, error) {
		return s.computeDailySummary(ctx, date)
	}
	var summary DailySummary
	if err := s.cache.FetchJSON(ctx, keyDailySummary(date), summaryTTL, &summary, loader); err != nil {
		return DailySummary{}, err
	}
	return summary, nil
}

// RefreshDailySummary recomputes the summary and overwrites the cached entry.
// It is idempotent and safe for the periodic warmup job to call repeatedly.
func (s *Service) RefreshDailySummary(ctx context.Context, date time.Time) (DailySummary, error) {
	date = truncateDay(date)
	summary, err := s.computeDailySummary(ctx, date)
	if err != nil {
		return DailySummary{}, err
	}
	if err := s.cache.StoreJSON(ctx, keyDailySummary(date), summaryTTL, summary); err != nil {
		return DailySummary{}, err
	}
	return summary, nil
}

func (s *Service) computeDailySummary(ctx context.Context, date time.Time) (DailySummary, error) {
	total, err := s.repo.DailyTotalSales(ctx, date)
	if err != nil {
		return DailySummary{}, err
	}
	items, err := s.repo.DailyQuantityByItem(ctx, date)
	if err != nil {
		return DailySummary{}, err
	}
	categories, err := s.repo.DailyQuantityByCategory(ctx, date)
	if err != nil {
		return DailySummary{}, err
	}
	if items == nil {
		items = []QuantityGroup{}
	}
	if categories == nil {
		categories = []QuantityGroup{}
	}
	return DailySummary{
		Date:       date.Format(dateLayout),
		TotalSales: total,
		Items:      items,
		Categories: categories,
	}, nil
}

// RangeAverages reports the average transaction amount over the range plus
// per-item and per-category averages across line occurrences.
func (s *Service) RangeAverages(ctx context.Context, r DateRange) (RangeAverages, error) {
	if r.Start.After(r.End) {
		return RangeAverages{}, ErrInvalidRange
	}
	loader := func(ctx context.Context) (interface{}, error) {
		avg, err := s.repo.AvgTransactionAmount(ctx, r)
		if err != nil {
			return nil, err
		}
		items, err := s.repo.AveragesByItem(ctx, r)
		if err != nil {
			return nil, err
		}
		categories, err := s.repo.AveragesByCategory(ctx, r)
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = []AverageGroup{}
		}
		if categories == nil {
			categories = []AverageGroup{}
		}
		return RangeAverages{AvgSalesAmount: avg, Items: items, Categories: categories}, nil
	}
	var averages RangeAverages
	if err := s.cache.FetchJSON(ctx, keyRangeAverages(r), reportTTL, &averages, loader); err != nil {
		return RangeAverages{}, err
	}
	return averages, nil
}

// RangeSalesDetail reports scalar total and average-per-transaction sales for
// the range plus a row per (date, item, category) combination ordered by date.
func (s *Service) RangeSalesDetail(ctx context.Context, r DateRange) (SalesDetail, error) {
	if r.Start.After(r.End) {
		return SalesDetail{}, ErrInvalidRange
	}
	loader := func(ctx context.Context) (interface{}, error) {
		total, avg, err := s.repo.TransactionRangeStats(ctx, r)
		if err != nil {
			return nil, err
		}
		rows, err := s.repo.DetailRows(ctx, r)
		if err != nil {
			return nil, err
		}
		if rows == nil {
			rows = []DetailRow{}
		}
		return SalesDetail{TotalSales: total, AvgSales: avg, Rows: rows}, nil
	}
	var detail SalesDetail
	if err := s.cache.FetchJSON(ctx, keyRangeDetail(r), reportTTL, &detail, loader); err != nil {
		return SalesDetail{}, err
	}
	return detail, nil
}

// ItemTrend returns each item's day-by-day quantity and revenue series
// annotated with a trailing moving average and a day-over-day trend label.
// An empty result reports ErrNoSalesData rather than empty aggregates.
func (s *Service) ItemTrend(ctx context.Context, r DateRange) ([]TrendPoint, error) {
	if r.Start.After(r.End) {
		return nil, ErrInvalidRange
	}
	rows, err := s.repo.TrendRows(ctx, r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoSalesData
	}
	applyMovingAverage(rows, movingAvgWindow)
	applyTrendLabels(rows)
	return rows, nil
}

// RangeTotals returns total sales amount and total quantity sold across the
// range, defaulting to zero when empty.
func (s *Service) RangeTotals(ctx context.Context, r DateRange) (RangeTotals, error) {
	if r.Start.After(r.End) {
		return RangeTotals{}, ErrInvalidRange
	}
	return s.repo.RangeTotals(ctx, r)
}

// CompareRanges contrasts two independent ranges: per-range totals and
// average sales per inclusive day, plus their differences and guarded
// percentage changes. The two ranges load concurrently.
func (s *Service) CompareRanges(ctx context.Context, a, b DateRange) (Comparison, error) {
	if a.Start.After(a.End) || b.Start.After(b.End) {
		return Comparison{}, ErrInvalidRange
	}
	loader := func(ctx context.Context) (interface{}, error) {
		var totalsA, totalsB RangeTotals
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			totalsA, err = s.repo.RangeTotals(gctx, a)
			return err
		})
		g.Go(func() error {
			var err error
			totalsB, err = s.repo.RangeTotals(gctx, b)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return buildComparison(a, b, totalsA, totalsB), nil
	}
	var comparison Comparison
	if err := s.cache.FetchJSON(ctx, keyComparison(a, b), reportTTL, &comparison, loader); err != nil {
		return Comparison{}, err
	}
	return comparison, nil
}
