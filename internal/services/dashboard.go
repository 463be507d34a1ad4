package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"sample-dashboard/internal/models"
	"sample-dashboard/internal/synth"
)

// Base KPI values for a 30 day window; other windows scale them by the
// period multiplier. Growth rate is reported as-is for every period.
const (
	activeUsersCurrent  = 12547
	activeUsersPrevious = 11203
	revenueCurrent      = 89432.50
	revenuePrevious     = 76891.20
	conversionsCurrent  = 1847
	conversionsPrevious = 1654
	growthRateCurrent   = 12.4
	growthRatePrevious  = 10.8
)

// Clock returns the instant a response is generated for.
type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now().UTC()
}

type Snapshot struct {
	Period       models.PeriodFilter         `json:"period"`
	GeneratedAt  models.Timestamp            `json:"generatedAt"`
	Metrics      models.MetricsResponse      `json:"metrics"`
	Transactions models.TransactionsResponse `json:"transactions"`
}

// Dashboard builds responses from the synthetic generators. It holds no
// generated data: every call reads the clock once and derives everything
// from that instant.
type Dashboard struct {
	clock     Clock
	logger    *slog.Logger
	startedAt time.Time

	metricsServed      atomic.Int64
	transactionsServed atomic.Int64
	summariesServed    atomic.Int64
	snapshotsServed    atomic.Int64
}

func NewDashboard(clock Clock) *Dashboard {
	if clock == nil {
		clock = SystemClock
	}
	return &Dashboard{
		clock:     clock,
		logger:    slog.Default(),
		startedAt: time.Now(),
	}
}

func (d *Dashboard) Now() time.Time {
	return d.clock().UTC()
}

func (d *Dashboard) Metrics(period models.PeriodFilter) models.MetricsResponse {
	d.metricsServed.Add(1)
	return BuildMetrics(period, d.Now())
}

func (d *Dashboard) Transactions(period models.PeriodFilter) models.TransactionsResponse {
	d.transactionsServed.Add(1)
	return BuildTransactions(period, d.Now())
}

func (d *Dashboard) Summary(period models.PeriodFilter) models.SummaryResponse {
	d.summariesServed.Add(1)
	return BuildSummary(period, d.Now())
}

// Snapshot generates metrics and transactions concurrently for the same instant.
func (d *Dashboard) Snapshot(ctx context.Context, period models.PeriodFilter) (*Snapshot, error) {
	d.snapshotsServed.Add(1)
	now := d.Now()

	snap := &Snapshot{
		Period:      period,
		GeneratedAt: models.NewTimestamp(now),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		snap.Metrics = BuildMetrics(period, now)
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		snap.Transactions = BuildTransactions(period, now)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build snapshot: %w", err)
	}

	d.logger.Debug("snapshot generated",
		"period", period,
		"points", len(snap.Metrics.ChartData.Data),
		"transactions", snap.Transactions.Total,
	)
	return snap, nil
}

// Utility method for monitoring
func (d *Dashboard) Stats() map[string]any {
	return map[string]any{
		"metrics_served":      d.metricsServed.Load(),
		"transactions_served": d.transactionsServed.Load(),
		"summaries_served":    d.summariesServed.Load(),
		"snapshots_served":    d.snapshotsServed.Load(),
		"uptime_seconds":      int64(time.Since(d.startedAt).Seconds()),
		"periods":             models.Periods,
	}
}

func newMetric(id, label string, current, previous float64, format models.MetricFormat, icon string) models.Metric {
	return models.Metric{
		ID:            id,
		Label:         label,
		Value:         current,
		PreviousValue: previous,
		Format:        format,
		Trend:         CalculateTrend(current, previous),
		Icon:          icon,
	}
}

// BuildMetrics assembles the KPI cards and the active-users series for a
// window ending at now.
func BuildMetrics(period models.PeriodFilter, now time.Time) models.MetricsResponse {
	m := period.Multiplier()

	return models.MetricsResponse{
		Metrics: models.MetricSet{
			ActiveUsers: newMetric("active-users", "Usuários Ativos",
				math.Round(activeUsersCurrent*m), math.Round(activeUsersPrevious*m),
				models.FormatNumber, "users"),
			Revenue: newMetric("revenue", "Receita Total",
				revenueCurrent*m, revenuePrevious*m,
				models.FormatCurrency, "currency-dollar"),
			Conversions: newMetric("conversions", "Conversões",
				math.Round(conversionsCurrent*m), math.Round(conversionsPrevious*m),
				models.FormatNumber, "chart-bar"),
			GrowthRate: newMetric("growth-rate", "Taxa de Crescimento",
				growthRateCurrent, growthRatePrevious,
				models.FormatPercentage, "trending-up"),
		},
		ChartData: models.ChartData{
			Label: synth.ChartLabel,
			Data:  synth.TimeSeries(now, period.Days()),
			Color: synth.ChartColor,
		},
	}
}

// BuildTransactions generates the period's records and orders them newest
// first. Records sharing a timestamp keep their generation order.
func BuildTransactions(period models.PeriodFilter, now time.Time) models.TransactionsResponse {
	txns := synth.Transactions(now, synth.TransactionCount(period.Days()))
	SortNewestFirst(txns)

	return models.TransactionsResponse{
		Transactions: txns,
		Total:        len(txns),
	}
}

func SortNewestFirst(txns []models.Transaction) {
	slices.SortStableFunc(txns, func(a, b models.Transaction) int {
		return b.Date.Compare(a.Date.Time)
	})
}

func BuildSummary(period models.PeriodFilter, now time.Time) models.SummaryResponse {
	metrics := BuildMetrics(period, now)
	txns := BuildTransactions(period, now)

	all := metrics.Metrics.All()
	changes := make([]models.MetricChange, 0, len(all))
	for _, metric := range all {
		changes = append(changes, models.MetricChange{
			ID:     metric.ID,
			Change: PercentageChange(metric.Value, metric.PreviousValue),
		})
	}

	return models.SummaryResponse{
		Period:       period,
		Series:       SummarizeSeries(metrics.ChartData.Data),
		Transactions: SummarizeTransactions(txns.Transactions),
		Changes:      changes,
	}
}
