package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"sample-dashboard/internal/errors"
	"sample-dashboard/internal/models"
	"sample-dashboard/internal/observability"
	"sample-dashboard/internal/services"
)

const Version = "1.0.0"

// Generated data depends on the request instant, so responses are never cached.
var noStore = map[string]string{
	"Cache-Control": "no-store",
}

type APIHandlers struct {
	dashboard *services.Dashboard
	collector *observability.Collector
	logger    *slog.Logger
	delay     time.Duration
}

func NewAPIHandlers(dashboard *services.Dashboard, collector *observability.Collector, logger *slog.Logger, delay time.Duration) *APIHandlers {
	return &APIHandlers{
		dashboard: dashboard,
		collector: collector,
		logger:    logger,
		delay:     delay,
	}
}

// periodFromQuery resolves ?period=, falling back to the default for a
// missing or unknown code.
func periodFromQuery(r *http.Request, logger *slog.Logger) models.PeriodFilter {
	raw := r.URL.Query().Get("period")
	period, ok := models.ParsePeriod(raw)
	if !ok {
		if raw != "" {
			observability.RequestLogger(r.Context(), logger).Debug("unknown period, using default",
				"period", raw,
				"default", models.DefaultPeriod,
			)
		}
		return models.DefaultPeriod
	}
	return period
}

// simulateLatency holds the response for the configured delay unless the
// client goes away first.
func (h *APIHandlers) simulateLatency(ctx context.Context) error {
	if h.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(h.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *APIHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	errors.WriteError(w, h.logger, err, observability.GetRequestID(r.Context()))
}

func (h *APIHandlers) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	period := periodFromQuery(r, h.logger)

	if err := h.simulateLatency(r.Context()); err != nil {
		h.fail(w, r, errors.ServiceUnavailableWrap(err, "request cancelled"))
		return
	}

	resp := h.dashboard.Metrics(period)
	h.collector.RecordGenerated("points", period.String(), len(resp.ChartData.Data))

	errors.WriteJSON(w, http.StatusOK, resp, noStore)
}

func (h *APIHandlers) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	period := periodFromQuery(r, h.logger)

	status := strings.ToLower(r.URL.Query().Get("status"))
	if status != "" && status != services.StatusAll {
		if _, ok := models.ParseStatus(status); !ok {
			h.fail(w, r, errors.Validation("invalid status filter").
				WithDetails(fmt.Sprintf("status %q is not one of completed, pending, failed, refunded, all", status)))
			return
		}
	}

	if err := h.simulateLatency(r.Context()); err != nil {
		h.fail(w, r, errors.ServiceUnavailableWrap(err, "request cancelled"))
		return
	}

	resp := h.dashboard.Transactions(period)
	h.collector.RecordGenerated("transactions", period.String(), resp.Total)

	if filtered := services.FilterByStatus(resp.Transactions, status); len(filtered) != len(resp.Transactions) {
		resp = models.TransactionsResponse{Transactions: filtered, Total: len(filtered)}
	}

	errors.WriteJSON(w, http.StatusOK, resp, noStore)
}

func (h *APIHandlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	period := periodFromQuery(r, h.logger)

	if err := h.simulateLatency(r.Context()); err != nil {
		h.fail(w, r, errors.ServiceUnavailableWrap(err, "request cancelled"))
		return
	}

	resp := h.dashboard.Summary(period)
	errors.WriteJSON(w, http.StatusOK, resp, noStore)
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   Version,
	})
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.dashboard.Stats())
}
