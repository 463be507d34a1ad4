package models

type MetricFormat string

const (
	FormatNumber     MetricFormat = "number"
	FormatCurrency   MetricFormat = "currency"
	FormatPercentage MetricFormat = "percentage"
)

type MetricTrend string

const (
	TrendUp      MetricTrend = "up"
	TrendDown    MetricTrend = "down"
	TrendNeutral MetricTrend = "neutral"
)

type Metric struct {
	ID            string       `json:"id"`
	Label         string       `json:"label"`
	Value         float64      `json:"value"`
	PreviousValue float64      `json:"previousValue"`
	Format        MetricFormat `json:"format"`
	Trend         MetricTrend  `json:"trend"`
	Icon          string       `json:"icon"`
}

type TimeSeriesPoint struct {
	Date  string `json:"date"`
	Value int64  `json:"value"`
}

type ChartData struct {
	Label string            `json:"label"`
	Data  []TimeSeriesPoint `json:"data"`
	Color string            `json:"color"`
}

type MetricSet struct {
	ActiveUsers Metric `json:"activeUsers"`
	Revenue     Metric `json:"revenue"`
	Conversions Metric `json:"conversions"`
	GrowthRate  Metric `json:"growthRate"`
}

// All returns the metrics in display order.
func (s MetricSet) All() []Metric {
	return []Metric{s.ActiveUsers, s.Revenue, s.Conversions, s.GrowthRate}
}

type MetricsResponse struct {
	Metrics   MetricSet `json:"metrics"`
	ChartData ChartData `json:"chartData"`
}

type SeriesSummary struct {
	Total   int64 `json:"total"`
	Average int64 `json:"average"`
	Min     int64 `json:"min"`
	Max     int64 `json:"max"`
}

type MetricChange struct {
	ID     string  `json:"id"`
	Change float64 `json:"change"`
}

type SummaryResponse struct {
	Period       PeriodFilter     `json:"period"`
	Series       SeriesSummary    `json:"series"`
	Transactions TransactionStats `json:"transactions"`
	Changes      []MetricChange   `json:"changes"`
}
