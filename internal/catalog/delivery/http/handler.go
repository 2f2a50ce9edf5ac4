package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kapelokal/pos/internal/catalog/domain"
	"github.com/kapelokal/pos/internal/catalog/usecase/command"
	"github.com/kapelokal/pos/internal/catalog/usecase/query"
	"github.com/kapelokal/pos/pkg/apperror"
	"github.com/kapelokal/pos/pkg/logger"
)

// Middleware wraps a handler with authentication or authorization
type Middleware func(http.HandlerFunc) http.HandlerFunc

// CatalogHandler handles HTTP requests for the catalog using CQRS pattern
type CatalogHandler struct {
	// Command handlers
	createProductHandler  *command.CreateProductHandler
	updateProductHandler  *command.UpdateProductHandler
	deleteProductHandler  *command.DeleteProductHandler
	createCategoryHandler *command.CreateCategoryHandler
	updateCategoryHandler *command.UpdateCategoryHandler
	deleteCategoryHandler *command.DeleteCategoryHandler

	// Query handlers
	getProductHandler     *query.GetProductHandler
	listProductsHandler   *query.ListProductsHandler
	listCategoriesHandler *query.ListCategoriesHandler
	menuBoardHandler      *query.MenuBoardHandler

	products domain.ProductRepository

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	activeProducts prometheus.Gauge
	lowStockItems  prometheus.Gauge
}

// NewCatalogHandler creates a new catalog handler with CQRS pattern
func NewCatalogHandler(products domain.ProductRepository, categories domain.CategoryRepository) *CatalogHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_service_requests_total",
			Help: "Total number of requests to catalog endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_service_request_duration_seconds",
			Help:    "Duration of catalog endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	activeProducts := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_service_active_products",
			Help: "Number of active products in the catalog",
		},
	)

	lowStockItems := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_service_low_stock_products",
			Help: "Number of tracked products at or below their low stock threshold",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(activeProducts)
	prometheus.MustRegister(lowStockItems)

	return &CatalogHandler{
		createProductHandler:  command.NewCreateProductHandler(products, categories),
		updateProductHandler:  command.NewUpdateProductHandler(products, categories),
		deleteProductHandler:  command.NewDeleteProductHandler(products),
		createCategoryHandler: command.NewCreateCategoryHandler(categories),
		updateCategoryHandler: command.NewUpdateCategoryHandler(categories),
		deleteCategoryHandler: command.NewDeleteCategoryHandler(categories),
		getProductHandler:     query.NewGetProductHandler(products),
		listProductsHandler:   query.NewListProductsHandler(products),
		listCategoriesHandler: query.NewListCategoriesHandler(categories),
		menuBoardHandler:      query.NewMenuBoardHandler(products),
		products:              products,
		requestCounter:        requestCounter,
		requestLatency:        requestLatency,
		activeProducts:        activeProducts,
		lowStockItems:         lowStockItems,
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
func (h *CatalogHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()

		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *CatalogHandler) RegisterRoutes(router *mux.Router, authRequired, adminOnly Middleware) {
	// Public routes
	router.HandleFunc("/api/menu", h.metricsMiddleware("/api/menu", h.MenuBoard)).Methods("GET")

	// Authenticated routes
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", authRequired(h.ListProducts))).Methods("GET")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", authRequired(h.GetProduct))).Methods("GET")
	router.HandleFunc("/api/categories", h.metricsMiddleware("/api/categories", authRequired(h.ListCategories))).Methods("GET")

	// Admin routes
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", adminOnly(h.CreateProduct))).Methods("POST")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", adminOnly(h.UpdateProduct))).Methods("PUT")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", adminOnly(h.DeleteProduct))).Methods("DELETE")
	router.HandleFunc("/api/categories", h.metricsMiddleware("/api/categories", adminOnly(h.CreateCategory))).Methods("POST")
	router.HandleFunc("/api/categories/{id}", h.metricsMiddleware("/api/categories/{id}", adminOnly(h.UpdateCategory))).Methods("PUT")
	router.HandleFunc("/api/categories/{id}", h.metricsMiddleware("/api/categories/{id}", adminOnly(h.DeleteCategory))).Methods("DELETE")
}

type productRequest struct {
	CategoryID        uint               `json:"category_id"`
	Name              string             `json:"name"`
	Description       string             `json:"description"`
	Price             float64            `json:"price"`
	StockQuantity     int                `json:"stock_quantity"`
	LowStockThreshold int                `json:"low_stock_threshold"`
	SKU               *string            `json:"sku"`
	ImageURL          string             `json:"image_url"`
	IsActive          bool               `json:"is_active"`
	TrackInventory    bool               `json:"track_inventory"`
	Sizes             []domain.SizeInput `json:"sizes"`
}

// CreateProduct handles POST /api/products
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.CreateProductCommand{
		CategoryID:        req.CategoryID,
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		StockQuantity:     req.StockQuantity,
		LowStockThreshold: req.LowStockThreshold,
		SKU:               req.SKU,
		ImageURL:          req.ImageURL,
		IsActive:          req.IsActive,
		TrackInventory:    req.TrackInventory,
		Sizes:             req.Sizes,
	}

	product, err := h.createProductHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create product")
		apperror.HandleError(w, err)
		return
	}

	h.updateCatalogMetrics(r)

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

// UpdateProduct handles PUT /api/products/{id}
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Invalid product ID")
	if !ok {
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.UpdateProductCommand{
		ID:                id,
		CategoryID:        req.CategoryID,
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		StockQuantity:     req.StockQuantity,
		LowStockThreshold: req.LowStockThreshold,
		SKU:               req.SKU,
		ImageURL:          req.ImageURL,
		IsActive:          req.IsActive,
		TrackInventory:    req.TrackInventory,
		Sizes:             req.Sizes,
	}

	product, err := h.updateProductHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to update product")
		apperror.HandleError(w, err)
		return
	}

	h.updateCatalogMetrics(r)

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Invalid product ID")
	if !ok {
		return
	}

	if err := h.deleteProductHandler.Handle(r.Context(), command.DeleteProductCommand{ID: id}); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to delete product")
		apperror.HandleError(w, err)
		return
	}

	h.updateCatalogMetrics(r)

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product deleted successfully",
	})
}

// GetProduct handles GET /api/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Invalid product ID")
	if !ok {
		return
	}

	product, err := h.getProductHandler.Handle(r.Context(), query.GetProductQuery{ID: id})
	if err != nil {
		apperror.HandleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    product,
	})
}

// ListProducts handles GET /api/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	activeOnly, _ := strconv.ParseBool(r.URL.Query().Get("active_only"))

	products, err := h.listProductsHandler.Handle(r.Context(), query.ListProductsQuery{ActiveOnly: activeOnly})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list products")
		apperror.HandleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    products,
	})
}

// ListCategories handles GET /api/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	activeOnly, _ := strconv.ParseBool(r.URL.Query().Get("active_only"))

	categories, err := h.listCategoriesHandler.Handle(r.Context(), query.ListCategoriesQuery{ActiveOnly: activeOnly})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list categories")
		apperror.HandleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    categories,
	})
}

// MenuBoard handles GET /api/menu
func (h *CatalogHandler) MenuBoard(w http.ResponseWriter, r *http.Request) {
	menu, err := h.menuBoardHandler.Handle(r.Context(), query.MenuBoardQuery{})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to build menu board")
		apperror.HandleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    menu,
	})
}

// CreateCategory handles POST /api/categories
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var cmd command.CreateCategoryCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	category, err := h.createCategoryHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create category")
		apperror.HandleError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Category created successfully",
		Data:    category,
	})
}

// UpdateCategory handles PUT /api/categories/{id}
func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Invalid category ID")
	if !ok {
		return
	}

	var cmd command.UpdateCategoryCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}
	cmd.ID = id

	category, err := h.updateCategoryHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to update category")
		apperror.HandleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Category updated successfully",
		Data:    category,
	})
}

// DeleteCategory handles DELETE /api/categories/{id}
func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Invalid category ID")
	if !ok {
		return
	}

	if err := h.deleteCategoryHandler.Handle(r.Context(), command.DeleteCategoryCommand{ID: id}); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to delete category")
		apperror.HandleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Category deleted successfully",
	})
}

// updateCatalogMetrics refreshes the catalog gauges
func (h *CatalogHandler) updateCatalogMetrics(r *http.Request) {
	if active, err := h.products.CountActive(r.Context()); err == nil {
		h.activeProducts.Set(float64(active))
	}
	if low, err := h.products.CountLowStock(r.Context()); err == nil {
		h.lowStockItems.Set(float64(low))
	}
}

// pathID parses the {id} path variable
func pathID(w http.ResponseWriter, r *http.Request, message string) (uint, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   message,
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
