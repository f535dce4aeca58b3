package analytics

// buildComparison assembles the comparison block for two ranges from their
// precomputed totals.
func buildComparison(a, b DateRange, totalsA, totalsB RangeTotals) Comparison {
	return Comparison{
		RangeA:             summarizeRange(a, totalsA),
		RangeB:             summarizeRange(b, totalsB),
		SalesDifference:    totalsA.TotalSales - totalsB.TotalSales,
		QuantityDifference: totalsA.TotalQuantity - totalsB.TotalQuantity,
		PctChangeSales:     percentChange(totalsA.TotalSales, totalsB.TotalSales),
		PctChangeQuantity:  percentChange(float64(totalsA.TotalQuantity), float64(totalsB.TotalQuantity)),
	}
}

func summarizeRange(r DateRange, totals RangeTotals) RangeSummary {
	return RangeSummary{
		StartDate:      r.Start.Format(dateLayout),
		EndDate:        r.End.Format(dateLayout),
		TotalSales:     totals.TotalSales,
		TotalQuantity:  totals.TotalQuantity,
		AvgSalesPerDay: totals.TotalSales / float64(r.Days()),
	}
}

// percentChange returns (current-baseline)/baseline*100, guarding a zero
// baseline with 0 instead of dividing.
func percentChange(current, baseline float64) float64 {
	if baseline == 0 {
		return 0
	}
	return (current - baseline) / baseline * 100
}
