package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildComparison(t *testing.T) {
	a := DateRange{Start: day(2026, 8, 1), End: day(2026, 8, 10)}
	b := DateRange{Start: day(2026, 7, 1), End: day(2026, 7, 5)}

	cmp := buildComparison(a, b,
		RangeTotals{TotalSales: 2000, TotalQuantity: 80},
		RangeTotals{TotalSales: 1000, TotalQuantity: 100},
	)

	assert.Equal(t, 1000.0, cmp.SalesDifference)
	assert.Equal(t, int64(-20), cmp.QuantityDifference)
	assert.InDelta(t, 100.0, cmp.PctChangeSales, 1e-9)
	assert.InDelta(t, -20.0, cmp.PctChangeQuantity, 1e-9)
	assert.Equal(t, 200.0, cmp.RangeA.AvgSalesPerDay, "10 inclusive days")
	assert.Equal(t, 200.0, cmp.RangeB.AvgSalesPerDay, "5 inclusive days")
	assert.Equal(t, "2026-08-01", cmp.RangeA.StartDate)
	assert.Equal(t, "2026-07-05", cmp.RangeB.EndDate)
}

func TestBuildComparisonZeroBaseline(t *testing.T) {
	a := DateRange{Start: day(2026, 8, 1), End: day(2026, 8, 1)}
	b := DateRange{Start: day(2026, 7, 1), End: day(2026, 7, 1)}

	cmp := buildComparison(a, b,
		RangeTotals{TotalSales: 500, TotalQuantity: 10},
		RangeTotals{},
	)

	assert.Equal(t, 0.0, cmp.PctChangeSales, "zero baseline yields zero, not a division error")
	assert.Equal(t, 0.0, cmp.PctChangeQuantity)
	assert.Equal(t, 500.0, cmp.SalesDifference)
}

func TestDateRangeDays(t *testing.T) {
	r := DateRange{Start: day(2026, 8, 1), End: day(2026, 8, 1)}
	assert.Equal(t, 1, r.Days())

	r = DateRange{Start: day(2026, 8, 1), End: day(2026, 8, 31)}
	assert.Equal(t, 31, r.Days())
}
