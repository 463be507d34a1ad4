package services

import (
	"math"

	"github.com/shopspring/decimal"

	"sample-dashboard/internal/models"
)

// StatusAll disables status filtering.
const StatusAll = "all"

func CalculateTrend(current, previous float64) models.MetricTrend {
	switch {
	case current > previous:
		return models.TrendUp
	case current < previous:
		return models.TrendDown
	default:
		return models.TrendNeutral
	}
}

// PercentageChange returns the change from previous to current in percent,
// rounded half up to one decimal. A zero previous value yields 0.
func PercentageChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	change := (current - previous) / previous * 100
	return math.Floor(change*10+0.5) / 10
}

func SummarizeSeries(points []models.TimeSeriesPoint) models.SeriesSummary {
	if len(points) == 0 {
		return models.SeriesSummary{}
	}

	summary := models.SeriesSummary{
		Min: points[0].Value,
		Max: points[0].Value,
	}
	for _, p := range points {
		summary.Total += p.Value
		summary.Min = min(summary.Min, p.Value)
		summary.Max = max(summary.Max, p.Value)
	}
	summary.Average = int64(math.Floor(float64(summary.Total)/float64(len(points)) + 0.5))
	return summary
}

// SummarizeTransactions counts records per status and totals amounts in
// decimal so cents never drift. Every status is present in ByStatus.
func SummarizeTransactions(txns []models.Transaction) models.TransactionStats {
	byStatus := make(map[models.TransactionStatus]int, len(models.TransactionStatuses))
	for _, st := range models.TransactionStatuses {
		byStatus[st] = 0
	}

	total := decimal.Zero
	for _, txn := range txns {
		byStatus[txn.Status]++
		total = total.Add(decimal.NewFromFloat(txn.Amount))
	}

	stats := models.TransactionStats{
		Total:       len(txns),
		ByStatus:    byStatus,
		TotalAmount: total.InexactFloat64(),
	}
	if len(txns) > 0 {
		avg := total.Div(decimal.NewFromInt(int64(len(txns))))
		stats.AverageAmount = roundHalfUpCents(avg).InexactFloat64()
	}
	return stats
}

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.New(5, -1)
)

// roundHalfUpCents rounds to two places with ties going toward +inf, so
// -0.005 becomes 0 rather than -0.01.
func roundHalfUpCents(d decimal.Decimal) decimal.Decimal {
	return d.Mul(hundred).Add(half).Floor().Div(hundred)
}

// FilterByStatus keeps the records with the given status. StatusAll or an
// empty status returns txns unchanged.
func FilterByStatus(txns []models.Transaction, status string) []models.Transaction {
	if status == "" || status == StatusAll {
		return txns
	}
	filtered := make([]models.Transaction, 0, len(txns))
	for _, txn := range txns {
		if string(txn.Status) == status {
			filtered = append(filtered, txn)
		}
	}
	return filtered
}
