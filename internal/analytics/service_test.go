package analytics

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	dailyTotal      float64
	dailyItems      []QuantityGroup
	dailyCategories []QuantityGroup
	dailyCalls      int

	avgAmount     float64
	avgItems      []AverageGroup
	avgCategories []AverageGroup
	avgCalls      int

	rangeTotal  float64
	rangeAvg    float64
	detailRows  []DetailRow
	detailCalls int

	trendRows  []TrendPoint
	trendCalls int

	totals      map[string]RangeTotals
	totalsCalls int
}

func (m *mockRepo) DailyTotalSales(ctx context.Context, date time.Time) (float64, error) {
	m.dailyCalls++
	return m.dailyTotal, nil
}

func (m *mockRepo) DailyQuantityByItem(ctx context.Context, date time.Time) ([]QuantityGroup, error) {
	return m.dailyItems, nil
}

func (m *mockRepo) DailyQuantityByCategory(ctx context.Context, date time.Time) ([]QuantityGroup, error) {
	return m.dailyCategories, nil
}

func (m *mockRepo) AvgTransactionAmount(ctx context.Context, r DateRange) (float64, error) {
	m.avgCalls++
	return m.avgAmount, nil
}

func (m *mockRepo) AveragesByItem(ctx context.Context, r DateRange) ([]AverageGroup, error) {
	return m.avgItems, nil
}

func (m *mockRepo) AveragesByCategory(ctx context.Context, r DateRange) ([]AverageGroup, error) {
	return m.avgCategories, nil
}

func (m *mockRepo) TransactionRangeStats(ctx context.Context, r DateRange) (float64, float64, error) {
	return m.rangeTotal, m.rangeAvg, nil
}

func (m *mockRepo) DetailRows(ctx context.Context, r DateRange) ([]DetailRow, error) {
	m.detailCalls++
	return m.detailRows, nil
}

func (m *mockRepo) TrendRows(ctx context.Context, r DateRange) ([]TrendPoint, error) {
	m.trendCalls++
	return m.trendRows, nil
}

func (m *mockRepo) RangeTotals(ctx context.Context, r DateRange) (RangeTotals, error) {
	m.totalsCalls++
	key := r.Start.Format(dateLayout) + "/" + r.End.Format(dateLayout)
	if m.totals == nil {
		return RangeTotals{}, nil
	}
	return m.totals[key], nil
}

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewService(repo, NewCache(client))
}

func mustRange(t *testing.T, start, end string) DateRange {
	t.Helper()
	r, err := ParseDateRange(start, end)
	require.NoError(t, err)
	return r
}

func TestDailySummaryCaches(t *testing.T) {
	repo := &mockRepo{
		dailyTotal: 420.5,
		dailyItems: []QuantityGroup{
			{Key: "Burger", Quantity: 12},
			{Key: "Soda", Quantity: 30},
		},
		dailyCategories: []QuantityGroup{
			{Key: "Beverage", Quantity: 30},
			{Key: "Food", Quantity: 12},
		},
	}
	svc := newTestService(t, repo)
	date := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)

	first, err := svc.DailySummary(context.Background(), date)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-15", first.Date)
	assert.Equal(t, 420.5, first.TotalSales)
	require.Len(t, first.Items, 2)
	assert.Equal(t, "Burger", first.Items[0].Key)

	second, err := svc.DailySummary(context.Background(), date)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.dailyCalls, "second read must come from the cache")
}

func TestDailySummaryZeroDay(t *testing.T) {
	svc := newTestService(t, &mockRepo{})

	summary, err := svc.DailySummary(context.Background(), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Zero(t, summary.TotalSales)
	assert.NotNil(t, summary.Items)
	assert.Empty(t, summary.Items)
	assert.NotNil(t, summary.Categories)
}

func TestRefreshDailySummaryOverwritesCache(t *testing.T) {
	repo := &mockRepo{dailyTotal: 100}
	svc := newTestService(t, repo)
	date := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	_, err := svc.DailySummary(context.Background(), date)
	require.NoError(t, err)

	repo.dailyTotal = 250
	refreshed, err := svc.RefreshDailySummary(context.Background(), date)
	require.NoError(t, err)
	assert.Equal(t, 250.0, refreshed.TotalSales)

	cached, err := svc.DailySummary(context.Background(), date)
	require.NoError(t, err)
	assert.Equal(t, 250.0, cached.TotalSales, "refresh must replace the cached value")
}

func TestRangeAveragesCaches(t *testing.T) {
	repo := &mockRepo{
		avgAmount: 52.5,
		avgItems:  []AverageGroup{{Key: "Burger", AvgQuantity: 2.5, AvgRevenue: 31.25}},
	}
	svc := newTestService(t, repo)
	r := mustRange(t, "2026-08-01", "2026-08-15")

	first, err := svc.RangeAverages(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, 52.5, first.AvgSalesAmount)
	assert.NotNil(t, first.Categories)

	_, err = svc.RangeAverages(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.avgCalls)
}

func TestRangeSalesDetail(t *testing.T) {
	repo := &mockRepo{
		rangeTotal: 900,
		rangeAvg:   45,
		detailRows: []DetailRow{
			{Date: "2026-08-01", ItemName: "Burger", Category: "Food", TotalQuantity: 10, TotalSales: 125},
		},
	}
	svc := newTestService(t, repo)
	r := mustRange(t, "2026-08-01", "2026-08-15")

	detail, err := svc.RangeSalesDetail(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, 900.0, detail.TotalSales)
	assert.Equal(t, 45.0, detail.AvgSales)
	require.Len(t, detail.Rows, 1)

	_, err = svc.RangeSalesDetail(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.detailCalls)
}

func TestItemTrendEmpty(t *testing.T) {
	svc := newTestService(t, &mockRepo{})
	r := mustRange(t, "2026-08-01", "2026-08-15")

	_, err := svc.ItemTrend(context.Background(), r)
	assert.ErrorIs(t, err, ErrNoSalesData)
}

func TestItemTrendAnnotates(t *testing.T) {
	repo := &mockRepo{trendRows: []TrendPoint{
		{Date: "2026-08-01", ItemName: "Burger", Revenue: 100},
		{Date: "2026-08-02", ItemName: "Burger", Revenue: 200},
		{Date: "2026-08-03", ItemName: "Burger", Revenue: 150},
	}}
	svc := newTestService(t, repo)
	r := mustRange(t, "2026-08-01", "2026-08-15")

	points, err := svc.ItemTrend(context.Background(), r)
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, TrendFlat, points[0].Trend)
	assert.Equal(t, TrendIncreasing, points[1].Trend)
	assert.Equal(t, TrendDecreasing, points[2].Trend)
	assert.Equal(t, 150.0, points[2].MovingAvg)
}

func TestCompareRanges(t *testing.T) {
	repo := &mockRepo{totals: map[string]RangeTotals{
		"2026-07-01/2026-07-10": {TotalSales: 1000, TotalQuantity: 50},
		"2026-08-01/2026-08-10": {TotalSales: 1500, TotalQuantity: 60},
	}}
	svc := newTestService(t, repo)
	a := mustRange(t, "2026-08-01", "2026-08-10")
	b := mustRange(t, "2026-07-01", "2026-07-10")

	cmp, err := svc.CompareRanges(context.Background(), a, b)
	require.NoError(t, err)
	assert.Equal(t, 500.0, cmp.SalesDifference)
	assert.Equal(t, int64(10), cmp.QuantityDifference)
	assert.InDelta(t, 50.0, cmp.PctChangeSales, 1e-9)
	assert.Equal(t, 150.0, cmp.RangeA.AvgSalesPerDay)

	_, err = svc.CompareRanges(context.Background(), a, b)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.totalsCalls, "second comparison must come from the cache")
}

func TestInvalidRangeRejected(t *testing.T) {
	svc := newTestService(t, &mockRepo{})

	_, err := ParseDateRange("2026-08-15", "2026-08-01")
	assert.ErrorIs(t, err, ErrInvalidRange)

	bad := DateRange{
		Start: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
	_, err = svc.RangeAverages(context.Background(), bad)
	assert.ErrorIs(t, err, ErrInvalidRange)
	_, err = svc.RangeSalesDetail(context.Background(), bad)
	assert.ErrorIs(t, err, ErrInvalidRange)
	_, err = svc.ItemTrend(context.Background(), bad)
	assert.ErrorIs(t, err, ErrInvalidRange)
	_, err = svc.RangeTotals(context.Background(), bad)
	assert.ErrorIs(t, err, ErrInvalidRange)
}
