package http

// MenuBoard godoc
// @Summary Customer menu board
// @Description Active categories with their active products and size options, empty categories omitted
// @Tags Catalog
// @Produce json
// @Success 200 {object} object{success=bool,data=array}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/menu [get]
func (h *CatalogHandler) MenuBoardDoc() {}

// CreateProduct godoc
// @Summary Create a product
// @Description Create a product with optional size variants (Admin only)
// @Tags Catalog
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{category_id=int,name=string,description=string,price=number,stock_quantity=int,low_stock_threshold=int,sku=string,image_url=string,is_active=bool,track_inventory=bool,sizes=array} true "Product data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/products [post]
func (h *CatalogHandler) CreateProductDoc() {}

// ListProducts godoc
// @Summary List products
// @Description Products with stock state flags, optionally active only
// @Tags Catalog
// @Security BearerAuth
// @Produce json
// @Param active_only query bool false "Only active products"
// @Success 200 {object} object{success=bool,data=array}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/products [get]
func (h *CatalogHandler) ListProductsDoc() {}

// GetProduct godoc
// @Summary Get product by ID
// @Description Get a product with its category and size variants
// @Tags Catalog
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id} [get]
func (h *CatalogHandler) GetProductDoc() {}

// UpdateProduct godoc
// @Summary Update a product
// @Description Update a product and replace its size variants (Admin only)
// @Tags Catalog
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body object{category_id=int,name=string,description=string,price=number,stock_quantity=int,low_stock_threshold=int,sku=string,image_url=string,is_active=bool,track_inventory=bool,sizes=array} true "Product data"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id} [put]
func (h *CatalogHandler) UpdateProductDoc() {}

// DeleteProduct godoc
// @Summary Delete a product
// @Description Soft-delete a product and its size variants (Admin only)
// @Tags Catalog
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id} [delete]
func (h *CatalogHandler) DeleteProductDoc() {}

// ListCategories godoc
// @Summary List categories
// @Description Categories, optionally active only
// @Tags Catalog
// @Security BearerAuth
// @Produce json
// @Param active_only query bool false "Only active categories"
// @Success 200 {object} object{success=bool,data=array}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/categories [get]
func (h *CatalogHandler) ListCategoriesDoc() {}
