package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kapelokal/pos/internal/analytics/usecase/query"
	"github.com/kapelokal/pos/pkg/apperror"
	"github.com/kapelokal/pos/pkg/logger"
)

// Middleware wraps a handler with authentication or authorization
type Middleware func(http.HandlerFunc) http.HandlerFunc

// AnalyticsHandler handles HTTP requests for reporting
type AnalyticsHandler struct {
	reportHandler      *query.GetReportHandler
	dashboardHandler   *query.GetDashboardHandler
	salesByDateHandler *query.SalesByDateHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(
	reportHandler *query.GetReportHandler,
	dashboardHandler *query.GetDashboardHandler,
	salesByDateHandler *query.SalesByDateHandler,
) *AnalyticsHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_service_requests_total",
			Help: "Total number of requests to analytics endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analytics_service_request_duration_seconds",
			Help:    "Duration of analytics endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &AnalyticsHandler{
		reportHandler:      reportHandler,
		dashboardHandler:   dashboardHandler,
		salesByDateHandler: salesByDateHandler,
		requestCounter:     requestCounter,
		requestLatency:     requestLatency,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (h *AnalyticsHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()

		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *AnalyticsHandler) RegisterRoutes(router *mux.Router, authRequired Middleware) {
	router.HandleFunc("/api/analytics", h.metricsMiddleware("/api/analytics", authRequired(h.GetReport))).Methods("GET")
	router.HandleFunc("/api/analytics/dashboard", h.metricsMiddleware("/api/analytics/dashboard", authRequired(h.GetDashboard))).Methods("GET")
	router.HandleFunc("/api/analytics/sales/{date}", h.metricsMiddleware("/api/analytics/sales/{date}", authRequired(h.GetSalesByDate))).Methods("GET")
}

// GetReport handles GET /api/analytics
func (h *AnalyticsHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	qp := r.URL.Query()
	q := query.GetReportQuery{
		Period:    qp.Get("period"),
		StartDate: qp.Get("start_date"),
		EndDate:   qp.Get("end_date"),
	}

	report, err := h.reportHandler.Handle(r.Context(), q)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to build analytics report")
		apperror.HandleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    report,
	})
}

// GetDashboard handles GET /api/analytics/dashboard
func (h *AnalyticsHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboardHandler.Handle(r.Context(), query.GetDashboardQuery{})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to build dashboard summary")
		apperror.HandleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    summary,
	})
}

// GetSalesByDate handles GET /api/analytics/sales/{date}
func (h *AnalyticsHandler) GetSalesByDate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	result, err := h.salesByDateHandler.Handle(r.Context(), query.SalesByDateQuery{Date: vars["date"]})
	if err != nil {
		apperror.HandleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
