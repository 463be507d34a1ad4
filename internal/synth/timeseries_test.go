package synth

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.January, 15, 14, 30, 45, 123_000_000, time.UTC)

func TestTimeSeries_Lengths(t *testing.T) {
	for _, days := range []int{7, 30, 90} {
		assert.Len(t, TimeSeries(fixedNow, days), days)
	}
	assert.Empty(t, TimeSeries(fixedNow, 0))
}

func TestTimeSeries_AscendingAndEndsToday(t *testing.T) {
	points := TimeSeries(fixedNow, 30)
	require.Len(t, points, 30)

	assert.Equal(t, "2024-01-15", points[len(points)-1].Date)
	assert.Equal(t, "2023-12-17", points[0].Date)

	for i := 1; i < len(points); i++ {
		prev, err := time.Parse(DateLayout, points[i-1].Date)
		require.NoError(t, err)
		cur, err := time.Parse(DateLayout, points[i].Date)
		require.NoError(t, err)
		assert.Equal(t, 24*time.Hour, cur.Sub(prev), "gap at %d", i)
	}
}

func TestTimeSeriesPoint_Formula(t *testing.T) {
	// 2024-01-15 is a Monday: no weekend dampening and no midweek boost.
	p := TimeSeriesPoint(fixedNow, 7, 6)
	assert.Equal(t, "2024-01-15", p.Date)

	trend := BaseValue * (1 + GrowthRate*(7.0/7.0))
	variation := 1 + (NormalizeHash(HashCode("2024-01-15"))-0.5)*Volatility
	assert.Equal(t, int64(math.Round(trend*variation)), p.Value)
}

func TestTimeSeriesPoint_WeekdayFactors(t *testing.T) {
	// 2024-01-13 is a Saturday, 2024-01-10 a Wednesday.
	sat := TimeSeriesPoint(fixedNow, 7, 4)
	assert.Equal(t, "2024-01-13", sat.Date)
	trend := linearGrowth(BaseValue, GrowthRate, 7, 5)
	want := math.Round(trend * dateVariation("2024-01-13", Volatility) * WeekendFactor)
	assert.Equal(t, int64(want), sat.Value)

	wed := TimeSeriesPoint(fixedNow, 7, 1)
	assert.Equal(t, "2024-01-10", wed.Date)
	trend = linearGrowth(BaseValue, GrowthRate, 7, 2)
	want = math.Round(trend * dateVariation("2024-01-10", Volatility) * MidweekBoost)
	assert.Equal(t, int64(want), wed.Value)
}

func TestTimeSeries_ValuesWithinBounds(t *testing.T) {
	lo := BaseValue * (1 - Volatility/2) * WeekendFactor
	hi := BaseValue * (1 + GrowthRate) * (1 + Volatility/2) * MidweekBoost
	for _, p := range TimeSeries(fixedNow, 90) {
		assert.GreaterOrEqual(t, float64(p.Value), math.Floor(lo))
		assert.LessOrEqual(t, float64(p.Value), math.Ceil(hi))
	}
}

func TestTimeSeries_Deterministic(t *testing.T) {
	assert.Equal(t, TimeSeries(fixedNow, 30), TimeSeries(fixedNow, 30))
}

func TestDateVariation_StableAcrossPeriods(t *testing.T) {
	// The same calendar day receives the same perturbation in every window.
	short := TimeSeries(fixedNow, 7)
	long := TimeSeries(fixedNow, 30)
	assert.Equal(t, short[6].Date, long[29].Date)
	assert.Equal(t, dateVariation(short[6].Date, Volatility), dateVariation(long[29].Date, Volatility))
}

func TestWeekdayFactor(t *testing.T) {
	assert.Equal(t, WeekendFactor, weekdayFactor(time.Sunday))
	assert.Equal(t, WeekendFactor, weekdayFactor(time.Saturday))
	assert.Equal(t, MidweekBoost, weekdayFactor(time.Wednesday))
	assert.Equal(t, MidweekBoost, weekdayFactor(time.Thursday))
	assert.Equal(t, 1.0, weekdayFactor(time.Monday))
	assert.Equal(t, 1.0, weekdayFactor(time.Friday))
}
