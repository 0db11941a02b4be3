package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/meatmarket/internal/server/http/dto"
	"github.com/polkiloo/meatmarket/internal/server/http/middleware"
)

// BasketHandler manages the customer's open basket.
type BasketHandler struct {
	facade BasketFacade
}

// NewBasketHandler constructs BasketHandler.
func NewBasketHandler(facade BasketFacade) *BasketHandler {
	return &BasketHandler{facade: facade}
}

// Get handles GET /api/basket.
func (h *BasketHandler) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)
	basket, err := h.facade.Basket(c.Request.Context(), user.ID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewBasketResponse(basket))
}

// AddItem handles POST /api/basket/items.
func (h *BasketHandler) AddItem(c *gin.Context) {
	user := middleware.CurrentUser(c)
	var req dto.BasketItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	quantity, ok := parseAmount(c, req.Quantity)
	if !ok {
		return
	}
	if _, err := h.facade.AddToBasket(c.Request.Context(), user.ID, req.ProductID, quantity); err != nil {
		respondDomainError(c, err)
		return
	}
	h.respondBasket(c)
}

// UpdateItem handles PUT /api/basket/items/:id.
func (h *BasketHandler) UpdateItem(c *gin.Context) {
	user := middleware.CurrentUser(c)
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.BasketItemUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	quantity, ok := parseAmount(c, req.Quantity)
	if !ok {
		return
	}
	if err := h.facade.UpdateBasketItem(c.Request.Context(), user.ID, itemID, quantity); err != nil {
		respondDomainError(c, err)
		return
	}
	h.respondBasket(c)
}

// RemoveItem handles DELETE /api/basket/items/:id.
func (h *BasketHandler) RemoveItem(c *gin.Context) {
	user := middleware.CurrentUser(c)
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.facade.RemoveBasketItem(c.Request.Context(), user.ID, itemID); err != nil {
		respondDomainError(c, err)
		return
	}
	h.respondBasket(c)
}

// Quote handles GET /api/basket/quote: prices the basket with the customer's
// tier discount and an optional promo code without placing an order.
func (h *BasketHandler) Quote(c *gin.Context) {
	user := middleware.CurrentUser(c)
	basket, quote, err := h.facade.QuoteBasket(c.Request.Context(), user.ID, c.Query("promo_code"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewQuoteResponse(basket, quote))
}

func (h *BasketHandler) respondBasket(c *gin.Context) {
	user := middleware.CurrentUser(c)
	basket, err := h.facade.Basket(c.Request.Context(), user.ID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewBasketResponse(basket))
}
