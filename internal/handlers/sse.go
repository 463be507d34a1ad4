package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/starfederation/datastar-go/datastar"

	"sample-dashboard/internal/models"
	"sample-dashboard/internal/observability"
	"sample-dashboard/internal/services"
	"sample-dashboard/internal/ui/templates"
)

type SSEHandlers struct {
	dashboard    *services.Dashboard
	collector    *observability.Collector
	logger       *slog.Logger
	liveInterval time.Duration
}

// DefaultLiveInterval replaces a non-positive live interval.
const DefaultLiveInterval = 5 * time.Second

func NewSSEHandlers(dashboard *services.Dashboard, collector *observability.Collector, logger *slog.Logger, liveInterval time.Duration) *SSEHandlers {
	if liveInterval <= 0 {
		liveInterval = DefaultLiveInterval
	}
	return &SSEHandlers{
		dashboard:    dashboard,
		collector:    collector,
		logger:       logger,
		liveInterval: liveInterval,
	}
}

type periodSignals struct {
	Period string `json:"period"`
}

// period prefers the client's datastar signals, then ?period=, then the default.
func (h *SSEHandlers) period(r *http.Request) models.PeriodFilter {
	var signals periodSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		observability.RequestLogger(r.Context(), h.logger).Debug("read signals", "error", err)
	}
	if signals.Period == "" {
		signals.Period = r.URL.Query().Get("period")
	}
	return models.PeriodOrDefault(signals.Period)
}

// push sends signals followed by a status element for the given stream.
func (h *SSEHandlers) push(r *http.Request, sse *datastar.ServerSentEventGenerator, kind string, signals map[string]any, status string) error {
	payload, err := json.Marshal(signals)
	if err != nil {
		return fmt.Errorf("marshal %s signals: %w", kind, err)
	}
	if err := sse.PatchSignals(payload); err != nil {
		return fmt.Errorf("patch %s signals: %w", kind, err)
	}

	html, err := templates.RenderString(r.Context(), templates.Status(kind+"-status", status))
	if err != nil {
		return fmt.Errorf("render %s status: %w", kind, err)
	}
	if err := sse.PatchElements(html); err != nil {
		return fmt.Errorf("patch %s status: %w", kind, err)
	}
	return nil
}

func (h *SSEHandlers) metricsSignals(period models.PeriodFilter) (map[string]any, string) {
	resp := h.dashboard.Metrics(period)
	h.collector.RecordGenerated("points", period.String(), len(resp.ChartData.Data))
	return map[string]any{
		"period":    period,
		"metrics":   resp.Metrics,
		"chartData": resp.ChartData,
	}, fmt.Sprintf("Metrics loaded for %s", period)
}

func (h *SSEHandlers) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	period := h.period(r)
	sse := datastar.NewSSE(w, r)

	signals, status := h.metricsSignals(period)
	if err := h.push(r, sse, "metrics", signals, status); err != nil {
		observability.RequestLogger(r.Context(), h.logger).Error("push metrics", "error", err)
	}
}

func (h *SSEHandlers) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	period := h.period(r)
	sse := datastar.NewSSE(w, r)

	resp := h.dashboard.Transactions(period)
	h.collector.RecordGenerated("transactions", period.String(), resp.Total)

	signals := map[string]any{
		"period":       period,
		"transactions": resp.Transactions,
		"total":        resp.Total,
	}
	status := fmt.Sprintf("%d transactions loaded for %s", resp.Total, period)
	if err := h.push(r, sse, "transactions", signals, status); err != nil {
		observability.RequestLogger(r.Context(), h.logger).Error("push transactions", "error", err)
	}
}

func (h *SSEHandlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	period := h.period(r)
	sse := datastar.NewSSE(w, r)

	signals := map[string]any{
		"period":  period,
		"summary": h.dashboard.Summary(period),
	}
	if err := h.push(r, sse, "summary", signals, fmt.Sprintf("Summary loaded for %s", period)); err != nil {
		observability.RequestLogger(r.Context(), h.logger).Error("push summary", "error", err)
	}
}

// HandleRefreshAll sends metrics and transactions generated for one instant.
func (h *SSEHandlers) HandleRefreshAll(w http.ResponseWriter, r *http.Request) {
	period := h.period(r)
	sse := datastar.NewSSE(w, r)
	logger := observability.RequestLogger(r.Context(), h.logger)

	snap, err := h.dashboard.Snapshot(r.Context(), period)
	if err != nil {
		logger.Warn("refresh aborted", "error", err)
		return
	}
	h.collector.RecordGenerated("points", period.String(), len(snap.Metrics.ChartData.Data))
	h.collector.RecordGenerated("transactions", period.String(), snap.Transactions.Total)

	signals := map[string]any{
		"period":       period,
		"generatedAt":  snap.GeneratedAt,
		"metrics":      snap.Metrics.Metrics,
		"chartData":    snap.Metrics.ChartData,
		"transactions": snap.Transactions.Transactions,
		"total":        snap.Transactions.Total,
	}
	if err := h.push(r, sse, "refresh", signals, fmt.Sprintf("Dashboard refreshed for %s", period)); err != nil {
		logger.Error("push refresh", "error", err)
	}
}

// HandleLive pushes fresh metrics every liveInterval until the client disconnects.
func (h *SSEHandlers) HandleLive(w http.ResponseWriter, r *http.Request) {
	period := h.period(r)
	sse := datastar.NewSSE(w, r)
	logger := observability.RequestLogger(r.Context(), h.logger)

	// The stream outlives the server write timeout.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		logger.Debug("clear write deadline", "error", err)
	}

	h.collector.LiveStreamOpened()
	defer h.collector.LiveStreamClosed()

	logger.Info("live stream opened", "period", period, "interval", h.liveInterval)
	defer logger.Info("live stream closed", "period", period)

	ticker := time.NewTicker(h.liveInterval)
	defer ticker.Stop()

	for {
		signals, status := h.metricsSignals(period)
		if err := h.push(r, sse, "live", signals, status); err != nil {
			logger.Debug("push live update", "error", err)
			return
		}

		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}
