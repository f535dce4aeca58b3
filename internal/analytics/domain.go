package analytics

import (
	"errors"
	"time"
)

const dateLayout = "2006-01-02"

// ErrInvalidRange indicates a range query with start after end.
var ErrInvalidRange = errors.New("analytics: start date must not be after end date")

// ErrNoSalesData indicates an empty result for a trend query.
var ErrNoSalesData = errors.New("analytics: no sales data found for the given date range")

// DateRange is an inclusive calendar date range.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange validates and builds a range.
func NewDateRange(start, end time.Time) (DateRange, error) {
	start = truncateDay(start)
	end = truncateDay(end)
	if start.After(end) {
		return DateRange{}, ErrInvalidRange
	}
	return DateRange{Start: start, End: end}, nil
}

// ParseDateRange parses YYYY-MM-DD boundaries and validates their order.
func ParseDateRange(startStr, endStr string) (DateRange, error) {
	start, err := time.ParseInLocation(dateLayout, startStr, time.UTC)
	if err != nil {
		return DateRange{}, errors.New("analytics: invalid date format, use YYYY-MM-DD")
	}
	end, err := time.ParseInLocation(dateLayout, endStr, time.UTC)
	if err != nil {
		return DateRange{}, errors.New("analytics: invalid date format, use YYYY-MM-DD")
	}
	return NewDateRange(start, end)
}

// Days returns the inclusive day count of the range.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// QuantityGroup is the total quantity sold for one grouping key (item name or
// category label).
type QuantityGroup struct {
	Key      string `json:"key"`
	Quantity int64  `json:"total_quantity_sold"`
}

// DailySummary aggregates one day of sales.
type DailySummary struct {
	Date       string          `json:"date"`
	TotalSales float64         `json:"total_sales"`
	Items      []QuantityGroup `json:"items_quantity"`
	Categories []QuantityGroup `json:"categories_quantity"`
}

// AverageGroup carries per-group averages across line occurrences.
type AverageGroup struct {
	Key         string  `json:"key"`
	AvgQuantity float64 `json:"avg_quantity_sold"`
	AvgRevenue  float64 `json:"avg_sales"`
}

// RangeAverages aggregates averages over a date range.
type RangeAverages struct {
	AvgSalesAmount float64        `json:"avg_sales_amount"`
	Items          []AverageGroup `json:"items"`
	Categories     []AverageGroup `json:"categories"`
}

// DetailRow is one (date, item, category) combination with summed quantity
// and revenue.
type DetailRow struct {
	Date          string  `json:"transaction_date"`
	ItemName      string  `json:"name"`
	Category      string  `json:"category"`
	TotalQuantity int64   `json:"total_quantity_sold"`
	TotalSales    float64 `json:"total_sales"`
}

// SalesDetail is the full range report: scalar totals plus per-combination rows.
type SalesDetail struct {
	TotalSales float64     `json:"total_sales"`
	AvgSales   float64     `json:"average_sales"`
	Rows       []DetailRow `json:"rows"`
}

// Trend labels derived from the day-over-day revenue delta.
const (
	TrendIncreasing = "Increasing"
	TrendDecreasing = "Decreasing"
	TrendFlat       = "-"
)

// TrendPoint is one day of one item's sales series, annotated with a trailing
// moving average and a day-over-day trend.
type TrendPoint struct {
	Date          string  `json:"transaction_date"`
	ItemName      string  `json:"name"`
	Category      string  `json:"category"`
	TotalQuantity int64   `json:"total_quantity_sold"`
	Revenue       float64 `json:"total_sales"`
	MovingAvg     float64 `json:"moving_avg_sales"`
	Delta         float64 `json:"sales_trend"`
	Trend         string  `json:"trend"`
}

// RangeTotals are the scalar totals over a range, the primitive used by
// range comparison.
type RangeTotals struct {
	TotalSales    float64 `json:"total_sales"`
	TotalQuantity int64   `json:"total_quantity_sold"`
}

// RangeSummary describes one compared range.
type RangeSummary struct {
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	TotalSales     float64 `json:"total_sales"`
	TotalQuantity  int64   `json:"total_quantity_sold"`
	AvgSalesPerDay float64 `json:"average_sales"`
}

// Comparison contrasts two date ranges.
type Comparison struct {
	RangeA             RangeSummary `json:"range_a"`
	RangeB             RangeSummary `json:"range_b"`
	SalesDifference    float64      `json:"sales_difference"`
	QuantityDifference int64        `json:"quantity_difference"`
	PctChangeSales     float64      `json:"percentage_change_sales"`
	PctChangeQuantity  float64      `json:"percentage_change_quantity"`
}
