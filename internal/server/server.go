package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"sample-dashboard/internal/config"
	"sample-dashboard/internal/handlers"
	"sample-dashboard/internal/middleware"
	"sample-dashboard/internal/models"
	"sample-dashboard/internal/observability"
	"sample-dashboard/internal/services"
	"sample-dashboard/internal/ui/templates"
)

const renderTimeout = 10 * time.Second

type Server struct {
	dashboard   *services.Dashboard
	collector   *observability.Collector
	mux         *http.ServeMux
	handler     http.Handler
	logger      *slog.Logger
	apiHandlers *handlers.APIHandlers
	sseHandlers *handlers.SSEHandlers
}

func NewServer(dashboard *services.Dashboard, collector *observability.Collector, logger *slog.Logger, cfg config.DashboardConfig) *Server {
	s := &Server{
		dashboard:   dashboard,
		collector:   collector,
		mux:         http.NewServeMux(),
		logger:      logger,
		apiHandlers: handlers.NewAPIHandlers(dashboard, collector, logger, cfg.ResponseDelay),
		sseHandlers: handlers.NewSSEHandlers(dashboard, collector, logger, cfg.LiveInterval),
	}
	s.setupRoutes()
	// Metrics reads the matched pattern, so it must sit directly on the mux.
	s.handler = middleware.Metrics(collector)(s.mux)
	return s
}

var endpoints = []templates.Endpoint{
	{Method: "GET", Path: "/api/metrics", Description: "KPI cards and the active users chart"},
	{Method: "GET", Path: "/api/transactions", Description: "Recent transactions, newest first; optional ?status="},
	{Method: "GET", Path: "/api/summary", Description: "Series summary, transaction stats and KPI changes"},
	{Method: "GET", Path: "/sse/metrics", Description: "Metrics as datastar signals"},
	{Method: "GET", Path: "/sse/transactions", Description: "Transactions as datastar signals"},
	{Method: "GET", Path: "/sse/summary", Description: "Summary as datastar signals"},
	{Method: "GET", Path: "/sse/refresh-all", Description: "Metrics and transactions from one instant"},
	{Method: "GET", Path: "/sse/live", Description: "Metrics pushed on an interval"},
	{Method: "GET", Path: "/health", Description: "Liveness"},
	{Method: "GET", Path: "/admin/stats", Description: "Request counters"},
	{Method: "GET", Path: "/metrics", Description: "Prometheus metrics"},
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)
	s.mux.Handle("GET /metrics", s.collector.Handler())

	// REST API endpoints
	s.mux.HandleFunc("GET /api/metrics", s.apiHandlers.HandleMetrics)
	s.mux.HandleFunc("GET /api/transactions", s.apiHandlers.HandleTransactions)
	s.mux.HandleFunc("GET /api/summary", s.apiHandlers.HandleSummary)

	// Datastar SSE endpoints
	s.mux.HandleFunc("GET /sse/metrics", s.sseHandlers.HandleMetrics)
	s.mux.HandleFunc("GET /sse/transactions", s.sseHandlers.HandleTransactions)
	s.mux.HandleFunc("GET /sse/summary", s.sseHandlers.HandleSummary)
	s.mux.HandleFunc("GET /sse/refresh-all", s.sseHandlers.HandleRefreshAll)
	s.mux.HandleFunc("GET /sse/live", s.sseHandlers.HandleLive)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
	defer cancel()

	periods := make([]string, len(models.Periods))
	for i, p := range models.Periods {
		periods[i] = p.String()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := templates.Index(templates.IndexData{
		Title:     "Sample Dashboard",
		Version:   handlers.Version,
		Periods:   periods,
		Default:   models.DefaultPeriod.String(),
		Endpoints: endpoints,
	}).Render(ctx, w)
	if err != nil {
		observability.RequestLogger(r.Context(), s.logger).Error("render index", "error", err)
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
