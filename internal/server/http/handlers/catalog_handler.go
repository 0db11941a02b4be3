package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/meatmarket/internal/domain/model"
	"github.com/polkiloo/meatmarket/internal/domain/repository"
	"github.com/polkiloo/meatmarket/internal/server/http/dto"
)

// CatalogHandler serves the public product catalog and the admin side of it.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// List handles GET /api/products. Customers only see active products; the
// in_stock filter hides sold-out entries.
func (h *CatalogHandler) List(c *gin.Context) {
	filter := repository.ProductFilter{
		Category:   c.Query("category"),
		OnlyActive: true,
		InStock:    c.Query("in_stock") == "true",
	}
	products, err := h.facade.Products(c.Request.Context(), filter)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	resp := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, dto.NewProductResponse(&products[i]))
	}
	respondData(c, http.StatusOK, resp)
}

// Get handles GET /api/products/:id.
func (h *CatalogHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	product, err := h.facade.Product(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewProductResponse(product))
}

// Stock handles GET /api/admin/products/:id/stock.
func (h *CatalogHandler) Stock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	stock, err := h.facade.ProductStock(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewStockResponse(stock))
}

// Create handles POST /api/admin/products.
func (h *CatalogHandler) Create(c *gin.Context) {
	product, ok := bindProduct(c)
	if !ok {
		return
	}
	created, err := h.facade.CreateProduct(c.Request.Context(), product)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusCreated, dto.NewProductResponse(created))
}

// Update handles PUT /api/admin/products/:id.
func (h *CatalogHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	product, ok := bindProduct(c)
	if !ok {
		return
	}
	product.ID = id
	if err := h.facade.UpdateProduct(c.Request.Context(), product); err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewProductResponse(product))
}

// AdjustStock handles POST /api/admin/products/:id/stock.
func (h *CatalogHandler) AdjustStock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.StockAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	delta, ok := parseAmount(c, req.Delta)
	if !ok {
		return
	}
	stock, err := h.facade.AdjustStock(c.Request.Context(), id, delta)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewStockResponse(stock))
}

func bindProduct(c *gin.Context) (*model.Product, bool) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	price, ok := parseAmount(c, req.Price)
	if !ok {
		return nil, false
	}
	product := &model.Product{
		Name:     req.Name,
		Category: req.Category,
		Unit:     model.Unit(req.Unit),
		Price:    price,
		VATable:  true,
		Active:   true,
	}
	if req.CostPrice != "" {
		cost, ok := parseAmount(c, req.CostPrice)
		if !ok {
			return nil, false
		}
		product.CostPrice = cost
	}
	if req.VATable != nil {
		product.VATable = *req.VATable
	}
	if req.Active != nil {
		product.Active = *req.Active
	}
	return product, true
}
