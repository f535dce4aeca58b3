package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyMovingAverageSingleSeries(t *testing.T) {
	rows := []TrendPoint{
		{ItemName: "Burger", Revenue: 100},
		{ItemName: "Burger", Revenue: 200},
		{ItemName: "Burger", Revenue: 300},
		{ItemName: "Burger", Revenue: 400},
	}
	applyMovingAverage(rows, 3)

	assert.Equal(t, 100.0, rows[0].MovingAvg)
	assert.Equal(t, 150.0, rows[1].MovingAvg)
	assert.Equal(t, 200.0, rows[2].MovingAvg)
	assert.Equal(t, 300.0, rows[3].MovingAvg, "window slides once full")
}

func TestApplyMovingAverageResetsPerItem(t *testing.T) {
	rows := []TrendPoint{
		{ItemName: "Burger", Revenue: 100},
		{ItemName: "Burger", Revenue: 200},
		{ItemName: "Soda", Revenue: 50},
		{ItemName: "Soda", Revenue: 150},
	}
	applyMovingAverage(rows, 3)

	assert.Equal(t, 150.0, rows[1].MovingAvg)
	assert.Equal(t, 50.0, rows[2].MovingAvg, "new item restarts the window")
	assert.Equal(t, 100.0, rows[3].MovingAvg)
}

func TestApplyTrendLabels(t *testing.T) {
	rows := []TrendPoint{
		{ItemName: "Burger", Revenue: 100},
		{ItemName: "Burger", Revenue: 180},
		{ItemName: "Burger", Revenue: 120},
		{ItemName: "Burger", Revenue: 120},
		{ItemName: "Soda", Revenue: 60},
	}
	applyTrendLabels(rows)

	assert.Equal(t, TrendFlat, rows[0].Trend)
	assert.Equal(t, 0.0, rows[0].Delta)
	assert.Equal(t, TrendIncreasing, rows[1].Trend)
	assert.Equal(t, 80.0, rows[1].Delta)
	assert.Equal(t, TrendDecreasing, rows[2].Trend)
	assert.Equal(t, -60.0, rows[2].Delta)
	assert.Equal(t, TrendFlat, rows[3].Trend)
	assert.Equal(t, TrendFlat, rows[4].Trend, "first row of a new item is flat")
	assert.Equal(t, 0.0, rows[4].Delta)
}

func TestApplyMovingAverageEmpty(t *testing.T) {
	applyMovingAverage(nil, 3)
	applyTrendLabels(nil)
}
