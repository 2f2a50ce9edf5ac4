package http

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kapelokal/pos/internal/user/domain"
	"github.com/kapelokal/pos/internal/user/usecase/command"
	"github.com/kapelokal/pos/internal/user/usecase/query"
	"github.com/kapelokal/pos/pkg/apperror"
	"github.com/kapelokal/pos/pkg/auth"
	"github.com/kapelokal/pos/pkg/logger"
)

// UserHandler handles HTTP requests for accounts using CQRS pattern
type UserHandler struct {
	// Command handlers
	createHandler     *command.CreateUserHandler
	loginHandler      *command.LoginUserHandler
	updateHandler     *command.UpdateUserHandler
	deactivateHandler *command.DeactivateUserHandler
	deleteHandler     *command.DeleteUserHandler

	// Query handlers
	getUserHandler   *query.GetUserHandler
	listUsersHandler *query.ListUsersHandler
	statsHandler     *query.GetStatsHandler

	repo domain.UserRepository

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	activeUsers    prometheus.Gauge
}

// NewUserHandler creates a new user handler with CQRS pattern
func NewUserHandler(repo domain.UserRepository) *UserHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_service_requests_total",
			Help: "Total number of requests to account endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "user_service_request_duration_seconds",
			Help:    "Duration of account endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	activeUsers := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "user_service_active_users",
			Help: "Number of active accounts",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(activeUsers)

	return &UserHandler{
		createHandler:     command.NewCreateUserHandler(repo),
		loginHandler:      command.NewLoginUserHandler(repo),
		updateHandler:     command.NewUpdateUserHandler(repo),
		deactivateHandler: command.NewDeactivateUserHandler(repo),
		deleteHandler:     command.NewDeleteUserHandler(repo),
		getUserHandler:    query.NewGetUserHandler(repo),
		listUsersHandler:  query.NewListUsersHandler(repo),
		statsHandler:      query.NewGetStatsHandler(repo),
		repo:              repo,
		requestCounter:    requestCounter,
		requestLatency:    requestLatency,
		activeUsers:       activeUsers,
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
func (h *UserHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()

		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	adminOnly := AdminMiddleware(h.repo)
	authRequired := AuthMiddleware(h.repo)

	// Public routes
	router.HandleFunc("/api/users/login", h.metricsMiddleware("/api/users/login", h.Login)).Methods("POST")

	// Authenticated routes
	router.HandleFunc("/api/users/me", h.metricsMiddleware("/api/users/me", authRequired(h.Me))).Methods("GET")

	// Admin routes
	router.HandleFunc("/api/users", h.metricsMiddleware("/api/users", adminOnly(h.ListUsers))).Methods("GET")
	router.HandleFunc("/api/users/stats", h.metricsMiddleware("/api/users/stats", adminOnly(h.GetStats))).Methods("GET")
	router.HandleFunc("/api/users", h.metricsMiddleware("/api/users", adminOnly(h.CreateUser))).Methods("POST")
	router.HandleFunc("/api/users/{id}", h.metricsMiddleware("/api/users/{id}", adminOnly(h.GetUser))).Methods("GET")
	router.HandleFunc("/api/users/{id}", h.metricsMiddleware("/api/users/{id}", adminOnly(h.UpdateUser))).Methods("PUT")
	router.HandleFunc("/api/users/{id}/deactivate", h.metricsMiddleware("/api/users/{id}/deactivate", adminOnly(h.DeactivateUser))).Methods("PATCH")
	router.HandleFunc("/api/users/{id}", h.metricsMiddleware("/api/users/{id}", adminOnly(h.DeleteUser))).Methods("DELETE")
}

// Login handles POST /api/users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var cmd command.LoginUserCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	result, err := h.loginHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Warn(r.Context()).Err(err).Str("email", cmd.Email).Msg("Login failed")
		apperror.HandleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Login successful",
		Data:    result,
	})
}

// Me handles GET /api/users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{
			Success: false,
			Error:   "Authentication required",
		})
		return
	}

	user, err := h.getUserHandler.Handle(r.Context(), query.GetUserQuery{ID: userID})
	if err != nil {
		apperror.HandleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    user,
	})
}

// CreateUser handles POST /api/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var cmd command.CreateUserCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	user, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create user")
		apperror.HandleError(w, err)
		return
	}

	h.updateActiveUsersMetric(r)

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "User created successfully",
		Data:    user,
	})
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.listUsersHandler.Handle(r.Context(), query.ListUsersQuery{})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list users")
		apperror.HandleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    users,
	})
}

// GetUser handles GET /api/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	user, err := h.getUserHandler.Handle(r.Context(), query.GetUserQuery{ID: id})
	if err != nil {
		apperror.HandleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    user,
	})
}

// UpdateUser handles PUT /api/users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var cmd command.UpdateUserCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}
	cmd.ID = id

	user, err := h.updateHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to update user")
		apperror.HandleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "User updated successfully",
		Data:    user,
	})
}

// DeactivateUser handles PATCH /api/users/{id}/deactivate
func (h *UserHandler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	actorID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{
			Success: false,
			Error:   "Authentication required",
		})
		return
	}

	user, err := h.deactivateHandler.Handle(r.Context(), command.DeactivateUserCommand{
		ActorID:  actorID,
		TargetID: id,
	})
	if err != nil {
		logger.Warn(r.Context()).
			Err(err).
			Uint("actor_id", actorID).
			Uint("target_id", id).
			Msg("Failed to deactivate user")
		apperror.HandleError(w, err)
		return
	}

	h.updateActiveUsersMetric(r)

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "User deactivated successfully",
		Data:    user,
	})
}

// DeleteUser handles DELETE /api/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	actorID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{
			Success: false,
			Error:   "Authentication required",
		})
		return
	}

	err := h.deleteHandler.Handle(r.Context(), command.DeleteUserCommand{
		ActorID:  actorID,
		TargetID: id,
	})
	if err != nil {
		logger.Warn(r.Context()).
			Err(err).
			Uint("actor_id", actorID).
			Uint("target_id", id).
			Msg("Failed to delete user")
		apperror.HandleError(w, err)
		return
	}

	h.updateActiveUsersMetric(r)

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "User deleted successfully",
	})
}

// GetStats handles GET /api/users/stats
func (h *UserHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsHandler.Handle(r.Context(), query.GetStatsQuery{})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to get user stats")
		apperror.HandleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    stats,
	})
}

func (h *UserHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Service is healthy",
		})
	}).Methods("GET")
}

// updateActiveUsersMetric refreshes the active accounts gauge
func (h *UserHandler) updateActiveUsersMetric(r *http.Request) {
	stats, err := h.repo.Stats(r.Context())
	if err == nil {
		h.activeUsers.Set(float64(stats.ActiveUsers))
	}
}

// pathID parses the {id} path variable
func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid user ID",
		})
		return 0, false
	}
	return uint(id), true
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
