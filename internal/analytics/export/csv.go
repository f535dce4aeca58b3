package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/meridian-pos/meridian-pos/internal/analytics"
)

// WriteSalesReportCSV serialises the range sales detail to CSV: one row per
// (date, item, category) combination followed by the range totals.
func WriteSalesReportCSV(w io.Writer, detail analytics.SalesDetail) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Transaction Date", "Item Name", "Category", "Total Quantity Sold", "Total Sales"}); err != nil {
		return err
	}
	for _, row := range detail.Rows {
		if err := writer.Write([]string{
			row.Date,
			row.ItemName,
			row.Category,
			strconv.FormatInt(row.TotalQuantity, 10),
			formatFloat(row.TotalSales),
		}); err != nil {
			return err
		}
	}
	records := [][]string{
		{"Total Sales", "", "", "", formatFloat(detail.TotalSales)},
		{"Average Sales", "", "", "", formatFloat(detail.AvgSales)},
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteTrendCSV emits the per-item trend series as CSV.
func WriteTrendCSV(w io.Writer, points []analytics.TrendPoint) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"Transaction Date", "Item Name", "Category", "Total Quantity Sold", "Total Sales", "Moving Avg Sales", "Trend"}); err != nil {
		return err
	}
	for _, point := range points {
		if err := writer.Write([]string{
			point.Date,
			point.ItemName,
			point.Category,
			strconv.FormatInt(point.TotalQuantity, 10),
			formatFloat(point.Revenue),
			formatFloat(point.MovingAvg),
			point.Trend,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
