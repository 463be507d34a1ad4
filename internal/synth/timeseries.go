package synth

import (
	"math"
	"time"

	"sample-dashboard/internal/models"
)

const DateLayout = "2006-01-02"

const (
	BaseValue     = 10000.0
	GrowthRate    = 0.02
	Volatility    = 0.15
	WeekendFactor = 0.8
	MidweekBoost  = 1.1
	ChartLabel    = "Usuários Ativos"
	ChartColor    = "#3b82f6"
)

func isWeekend(d time.Weekday) bool {
	return d == time.Sunday || d == time.Saturday
}

func isMidweek(d time.Weekday) bool {
	return d == time.Wednesday || d == time.Thursday
}

func weekdayFactor(d time.Weekday) float64 {
	weekend := 1.0
	if isWeekend(d) {
		weekend = WeekendFactor
	}
	boost := 1.0
	if isMidweek(d) {
		boost = MidweekBoost
	}
	return weekend * boost
}

// dateVariation perturbs a value by a factor in [1-v/2, 1+v/2) keyed on the
// calendar date, so a given day moves the same way in every period.
func dateVariation(date string, volatility float64) float64 {
	return 1 + (NormalizeHash(HashCode(date))-0.5)*volatility
}

func linearGrowth(base, rate float64, totalPeriods, currentPeriod int) float64 {
	return base * (1 + rate*(float64(currentPeriod)/float64(totalPeriods)))
}

// TimeSeriesPoint builds position index of a totalDays series ending at end.
// Index 0 is the oldest day.
func TimeSeriesPoint(end time.Time, totalDays, index int) models.TimeSeriesPoint {
	end = end.UTC()
	daysBack := totalDays - 1 - index
	date := end.AddDate(0, 0, -daysBack)
	dateString := date.Format(DateLayout)

	trend := linearGrowth(BaseValue, GrowthRate, totalDays, index+1)
	variation := dateVariation(dateString, Volatility)
	factor := weekdayFactor(date.Weekday())

	return models.TimeSeriesPoint{
		Date:  dateString,
		Value: int64(math.Round(trend * variation * factor)),
	}
}

// TimeSeries returns days points in ascending date order, the last one on end's date.
func TimeSeries(end time.Time, days int) []models.TimeSeriesPoint {
	if days <= 0 {
		return []models.TimeSeriesPoint{}
	}
	points := make([]models.TimeSeriesPoint, days)
	for i := range points {
		points[i] = TimeSeriesPoint(end, days, i)
	}
	return points
}
