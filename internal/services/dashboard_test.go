package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sample-dashboard/internal/models"
)

var testNow = time.Date(2024, time.January, 15, 14, 30, 45, 123_000_000, time.UTC)

func fixedClock() time.Time { return testNow }

func TestNewDashboard(t *testing.T) {
	d := NewDashboard(nil)
	require.NotNil(t, d)
	assert.NotNil(t, d.clock, "nil clock should fall back to the system clock")
	assert.NotNil(t, d.logger)
	assert.Equal(t, time.UTC, d.Now().Location())
}

func TestBuildMetrics_Counts(t *testing.T) {
	for _, tt := range []struct {
		period models.PeriodFilter
		days   int
	}{
		{models.Period7d, 7},
		{models.Period30d, 30},
		{models.Period90d, 90},
	} {
		t.Run(string(tt.period), func(t *testing.T) {
			resp := BuildMetrics(tt.period, testNow)
			assert.Len(t, resp.ChartData.Data, tt.days)
			assert.Equal(t, "2024-01-15", resp.ChartData.Data[tt.days-1].Date)
		})
	}
}

func TestBuildMetrics_Values(t *testing.T) {
	resp := BuildMetrics(models.Period30d, testNow)
	m := resp.Metrics

	assert.Equal(t, 12547.0, m.ActiveUsers.Value)
	assert.Equal(t, 11203.0, m.ActiveUsers.PreviousValue)
	assert.Equal(t, 89432.50, m.Revenue.Value)
	assert.Equal(t, 76891.20, m.Revenue.PreviousValue)
	assert.Equal(t, 1847.0, m.Conversions.Value)
	assert.Equal(t, 1654.0, m.Conversions.PreviousValue)
	assert.Equal(t, 12.4, m.GrowthRate.Value)
	assert.Equal(t, 10.8, m.GrowthRate.PreviousValue)

	for _, metric := range m.All() {
		assert.Equal(t, models.TrendUp, metric.Trend, metric.ID)
	}

	assert.Equal(t, "active-users", m.ActiveUsers.ID)
	assert.Equal(t, models.FormatCurrency, m.Revenue.Format)
	assert.Equal(t, models.FormatPercentage, m.GrowthRate.Format)
	assert.Equal(t, "Usuários Ativos", resp.ChartData.Label)
	assert.Equal(t, "#3b82f6", resp.ChartData.Color)
}

func TestBuildMetrics_ScalesWithPeriod(t *testing.T) {
	week := BuildMetrics(models.Period7d, testNow).Metrics
	quarter := BuildMetrics(models.Period90d, testNow).Metrics

	assert.Equal(t, 3137.0, week.ActiveUsers.Value)
	assert.Equal(t, 2801.0, week.ActiveUsers.PreviousValue)
	assert.InDelta(t, 22358.125, week.Revenue.Value, 1e-9)
	assert.Equal(t, 462.0, week.Conversions.Value)

	assert.Equal(t, 37641.0, quarter.ActiveUsers.Value)
	assert.InDelta(t, 268297.5, quarter.Revenue.Value, 1e-9)
	assert.Equal(t, 5541.0, quarter.Conversions.Value)
}

func TestBuildMetrics_GrowthRateIgnoresPeriod(t *testing.T) {
	for _, p := range models.Periods {
		g := BuildMetrics(p, testNow).Metrics.GrowthRate
		assert.Equal(t, 12.4, g.Value, string(p))
		assert.Equal(t, 10.8, g.PreviousValue, string(p))
	}
}

func TestBuildTransactions_Totals(t *testing.T) {
	assert.Equal(t, 21, BuildTransactions(models.Period7d, testNow).Total)
	assert.Equal(t, 90, BuildTransactions(models.Period30d, testNow).Total)
	assert.Equal(t, 270, BuildTransactions(models.Period90d, testNow).Total)
}

func TestBuildTransactions_SortedNewestFirst(t *testing.T) {
	resp := BuildTransactions(models.Period90d, testNow)
	require.Len(t, resp.Transactions, resp.Total)

	for i := 1; i < len(resp.Transactions); i++ {
		prev, cur := resp.Transactions[i-1], resp.Transactions[i]
		assert.False(t, cur.Date.After(prev.Date.Time), "%s after %s", cur.ID, prev.ID)
	}
}

func TestSortNewestFirst_Stable(t *testing.T) {
	same := models.NewTimestamp(testNow)
	older := models.NewTimestamp(testNow.Add(-time.Hour))
	txns := []models.Transaction{
		{ID: "a", Date: older},
		{ID: "b", Date: same},
		{ID: "c", Date: same},
		{ID: "d", Date: older},
	}

	SortNewestFirst(txns)

	ids := make([]string, len(txns))
	for i, txn := range txns {
		ids[i] = txn.ID
	}
	assert.Equal(t, []string{"b", "c", "a", "d"}, ids)
}

func TestBuild_DeterministicJSON(t *testing.T) {
	for _, p := range models.Periods {
		a, err := json.Marshal(BuildMetrics(p, testNow))
		require.NoError(t, err)
		b, err := json.Marshal(BuildMetrics(p, testNow))
		require.NoError(t, err)
		assert.Equal(t, a, b)

		a, err = json.Marshal(BuildTransactions(p, testNow))
		require.NoError(t, err)
		b, err = json.Marshal(BuildTransactions(p, testNow))
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestTransactionsResponse_RoundTrip(t *testing.T) {
	original := BuildTransactions(models.Period30d, testNow)

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var parsed models.TransactionsResponse
	require.NoError(t, json.Unmarshal(data, &parsed))

	require.Equal(t, original.Total, parsed.Total)
	require.Len(t, parsed.Transactions, len(original.Transactions))
	for i := range original.Transactions {
		want, got := original.Transactions[i], parsed.Transactions[i]
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.Amount, got.Amount)
		assert.Equal(t, want.CustomerEmail, got.CustomerEmail)
		assert.True(t, want.Date.Equal(got.Date.Time), want.ID)
	}

	again, err := json.Marshal(parsed)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
}

func TestMetricsResponse_RoundTrip(t *testing.T) {
	original := BuildMetrics(models.Period90d, testNow)

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var parsed models.MetricsResponse
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, original, parsed)
}

func TestDashboard_ReadsClockOncePerCall(t *testing.T) {
	calls := 0
	d := NewDashboard(func() time.Time {
		calls++
		return testNow.Add(time.Duration(calls) * time.Hour)
	})

	resp := d.Transactions(models.Period7d)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 21, resp.Total)

	d.Metrics(models.Period7d)
	assert.Equal(t, 2, calls)
}

func TestDashboard_Snapshot(t *testing.T) {
	d := NewDashboard(fixedClock)

	snap, err := d.Snapshot(context.Background(), models.Period7d)
	require.NoError(t, err)

	assert.Equal(t, models.Period7d, snap.Period)
	assert.True(t, snap.GeneratedAt.Equal(testNow))
	assert.Equal(t, BuildMetrics(models.Period7d, testNow), snap.Metrics)
	assert.Equal(t, BuildTransactions(models.Period7d, testNow), snap.Transactions)
}

func TestDashboard_SnapshotCancelled(t *testing.T) {
	d := NewDashboard(fixedClock)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Snapshot(ctx, models.Period30d)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDashboard_ConcurrentCalls(t *testing.T) {
	d := NewDashboard(fixedClock)
	want := BuildTransactions(models.Period30d, testNow)

	var wg sync.WaitGroup
	results := make([]models.TransactionsResponse, 10)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = d.Transactions(models.Period30d)
			d.Metrics(models.Period30d)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, want, r)
	}
	assert.EqualValues(t, 10, d.Stats()["transactions_served"])
	assert.EqualValues(t, 10, d.Stats()["metrics_served"])
}

func TestDashboard_Summary(t *testing.T) {
	d := NewDashboard(fixedClock)
	s := d.Summary(models.Period30d)

	assert.Equal(t, models.Period30d, s.Period)
	assert.Equal(t, 90, s.Transactions.Total)
	assert.Len(t, s.Changes, 4)
	assert.Equal(t, "active-users", s.Changes[0].ID)
	assert.Equal(t, 12.0, s.Changes[0].Change)
	assert.Equal(t, 14.8, s.Changes[3].Change)
	assert.Positive(t, s.Series.Total)
	assert.LessOrEqual(t, s.Series.Min, s.Series.Average)
	assert.GreaterOrEqual(t, s.Series.Max, s.Series.Average)
}
