package http

// GetReport godoc
// @Summary Sales analytics report
// @Description Aggregate completed orders over a named period or explicit date range
// @Tags Analytics
// @Security BearerAuth
// @Produce json
// @Param period query string false "Named period: 7days, 30days, 3months, 6months, 1year, all"
// @Param start_date query string false "Start date (YYYY-MM-DD), overrides period with end_date"
// @Param end_date query string false "End date (YYYY-MM-DD), overrides period with start_date"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/analytics [get]
func (h *AnalyticsHandler) GetReportDoc() {}

// GetDashboard godoc
// @Summary Dashboard summary
// @Description Today/week/month sales, low stock, recent orders and top products
// @Tags Analytics
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/analytics/dashboard [get]
func (h *AnalyticsHandler) GetDashboardDoc() {}

// GetSalesByDate godoc
// @Summary Sales for one day
// @Description Revenue and order count for a single calendar day
// @Tags Analytics
// @Security BearerAuth
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/analytics/sales/{date} [get]
func (h *AnalyticsHandler) GetSalesByDateDoc() {}
