package analytics

// movingAvgWindow is the trailing row count for the moving average.
const movingAvgWindow = 3

// applyMovingAverage annotates each row with the trailing mean of revenue
// over at most window rows of the same item's series. Rows must be ordered by
// item then date; a series shorter than the window uses every available row,
// so the first row of each series carries its own revenue.
func applyMovingAverage(rows []TrendPoint, window int) {
	if window < 1 {
		window = 1
	}
	seriesStart := 0
	for i := range rows {
		if i > 0 && rows[i].ItemName != rows[i-1].ItemName {
			seriesStart = i
		}
		lo := i - window + 1
		if lo < seriesStart {
			lo = seriesStart
		}
		var sum float64
		for j := lo; j <= i; j++ {
			sum += rows[j].Revenue
		}
		rows[i].MovingAvg = sum / float64(i-lo+1)
	}
}

// applyTrendLabels annotates each row with the day-over-day revenue delta
// within its item's series and the derived direction label. The first row of
// each series has delta 0 and a flat label.
func applyTrendLabels(rows []TrendPoint) {
	for i := range rows {
		if i == 0 || rows[i].ItemName != rows[i-1].ItemName {
			rows[i].Delta = 0
			rows[i].Trend = TrendFlat
			continue
		}
		delta := rows[i].Revenue - rows[i-1].Revenue
		rows[i].Delta = delta
		switch {
		case delta > 0:
			rows[i].Trend = TrendIncreasing
		case delta < 0:
			rows[i].Trend = TrendDecreasing
		default:
			rows[i].Trend = TrendFlat
		}
	}
}
