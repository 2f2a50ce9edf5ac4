package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kapelokal/pos/internal/order/domain"
	"github.com/kapelokal/pos/internal/order/usecase/command"
	"github.com/kapelokal/pos/internal/order/usecase/query"
	"github.com/kapelokal/pos/kafka"
	"github.com/kapelokal/pos/pkg/apperror"
	"github.com/kapelokal/pos/pkg/auth"
	"github.com/kapelokal/pos/pkg/logger"
)

// Middleware wraps a handler with authentication or authorization
type Middleware func(http.HandlerFunc) http.HandlerFunc

// OrderHandler handles HTTP requests for orders using CQRS pattern
type OrderHandler struct {
	// Command handlers
	checkoutHandler *command.CheckoutHandler

	// Query handlers
	getOrderHandler   *query.GetOrderHandler
	listOrdersHandler *query.ListOrdersHandler

	kafkaPublisher *kafka.Publisher

	requestCounter  *prometheus.CounterVec
	requestLatency  *prometheus.HistogramVec
	ordersCompleted prometheus.Counter
	revenueTotal    prometheus.Counter
}

// NewOrderHandler creates a new order handler with CQRS pattern
func NewOrderHandler(repo domain.OrderRepository, publisher *kafka.Publisher) *OrderHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_service_requests_total",
			Help: "Total number of requests to order endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "order_service_request_duration_seconds",
			Help:    "Duration of order endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	ordersCompleted := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "order_service_orders_completed_total",
			Help: "Total number of completed orders",
		},
	)

	revenueTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "order_service_revenue_total",
			Help: "Total revenue from completed orders",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(ordersCompleted)
	prometheus.MustRegister(revenueTotal)

	return &OrderHandler{
		checkoutHandler:   command.NewCheckoutHandler(repo),
		getOrderHandler:   query.NewGetOrderHandler(repo),
		listOrdersHandler: query.NewListOrdersHandler(repo),
		kafkaPublisher:    publisher,
		requestCounter:    requestCounter,
		requestLatency:    requestLatency,
		ordersCompleted:   ordersCompleted,
		revenueTotal:      revenueTotal,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *OrderHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()

		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *OrderHandler) RegisterRoutes(router *mux.Router, authRequired Middleware) {
	router.HandleFunc("/api/orders/checkout", h.metricsMiddleware("/api/orders/checkout", authRequired(h.Checkout))).Methods("POST")
	router.HandleFunc("/api/orders", h.metricsMiddleware("/api/orders", authRequired(h.ListOrders))).Methods("GET")
	router.HandleFunc("/api/orders/{id}", h.metricsMiddleware("/api/orders/{id}", authRequired(h.GetOrder))).Methods("GET")
}

// Checkout handles POST /api/orders/checkout
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items            []domain.CartLine `json:"items"`
		PaymentMethod    string            `json:"payment_method"`
		PaymentReference *string           `json:"payment_reference"`
		CashAmount       *float64          `json:"cash_amount"`
		Notes            string            `json:"notes"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{
			Success: false,
			Error:   "Authentication required",
		})
		return
	}

	cmd := command.CheckoutCommand{
		UserID:           userID,
		Items:            req.Items,
		PaymentMethod:    req.PaymentMethod,
		PaymentReference: req.PaymentReference,
		CashAmount:       req.CashAmount,
		Notes:            req.Notes,
	}

	order, err := h.checkoutHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Checkout failed")
		apperror.HandleError(w, err)
		return
	}

	h.ordersCompleted.Inc()
	h.revenueTotal.Add(order.TotalAmount)

	// Publish event to Kafka (best effort, does not fail the sale)
	if h.kafkaPublisher != nil {
		items := make([]kafka.OrderCompletedItem, 0, len(order.Items))
		for _, it := range order.Items {
			items = append(items, kafka.OrderCompletedItem{
				ProductID:   it.ProductID,
				ProductName: it.ProductName,
				Quantity:    it.Quantity,
				LineTotal:   it.LineTotal,
			})
		}
		event := kafka.OrderCompletedEvent{
			OrderID:       order.ID,
			OrderNumber:   order.OrderNumber,
			UserID:        order.UserID,
			Subtotal:      order.Subtotal,
			TotalAmount:   order.TotalAmount,
			PaymentMethod: order.PaymentMethod,
			Items:         items,
		}
		if err := h.kafkaPublisher.PublishOrderCompleted(r.Context(), event); err != nil {
			logger.Warn(r.Context()).
				Err(err).
				Str("order_number", order.OrderNumber).
				Msg("Failed to publish order completed event")
		}
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Order completed successfully",
		Data:    order,
	})
}

// ListOrders handles GET /api/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	qp := r.URL.Query()

	filter := domain.OrderFilter{
		PaymentMethod: qp.Get("payment_method"),
		Status:        qp.Get("status"),
		Search:        qp.Get("search"),
	}
	if v, err := strconv.Atoi(qp.Get("operator_id")); err == nil {
		filter.OperatorID = uint(v)
	}
	if v, err := strconv.Atoi(qp.Get("page")); err == nil {
		filter.Page = v
	}
	if v, err := strconv.Atoi(qp.Get("per_page")); err == nil {
		filter.PerPage = v
	}
	if from := qp.Get("date_from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filter.DateFrom = &t
		}
	}
	if to := qp.Get("date_to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			// inclusive end of day
			end := t.Add(24*time.Hour - time.Nanosecond)
			filter.DateTo = &end
		}
	}

	page, err := h.listOrdersHandler.Handle(r.Context(), query.ListOrdersQuery{Filter: filter})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list orders")
		apperror.HandleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    page,
	})
}

// GetOrder handles GET /api/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid order ID",
		})
		return
	}

	order, err := h.getOrderHandler.Handle(r.Context(), query.GetOrderQuery{ID: uint(id)})
	if err != nil {
		apperror.HandleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    order,
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
