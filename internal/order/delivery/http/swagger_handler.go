package http

// Checkout godoc
// @Summary Finalize a sale
// @Description Create a completed order from the cart, snapshotting prices and decrementing stock atomically
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{items=array,payment_method=string,payment_reference=string,cash_amount=number,notes=string} true "Cart contents"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/orders/checkout [post]
func (h *OrderHandler) CheckoutDoc() {}

// ListOrders godoc
// @Summary List order history
// @Description Get a filtered, paginated page of orders, most recent first
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param date_from query string false "Start date (YYYY-MM-DD)"
// @Param date_to query string false "End date (YYYY-MM-DD)"
// @Param operator_id query int false "Filter by cashier"
// @Param payment_method query string false "Filter by payment method"
// @Param status query string false "Filter by status"
// @Param search query string false "Match order number, cashier name or product name"
// @Param page query int false "Page number"
// @Param per_page query int false "Page size"
// @Success 200 {object} object{success=bool,data=object{orders=array,total=int,page=int,per_page=int}}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/orders [get]
func (h *OrderHandler) ListOrdersDoc() {}

// GetOrder godoc
// @Summary Get order by ID
// @Description Get a single order with its item snapshots and operator
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/orders/{id} [get]
func (h *OrderHandler) GetOrderDoc() {}
