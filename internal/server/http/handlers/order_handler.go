package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/meatmarket/internal/domain/model"
	"github.com/polkiloo/meatmarket/internal/server/http/dto"
	"github.com/polkiloo/meatmarket/internal/server/http/middleware"
)

// OrderHandler covers checkout, order history, and the staff status board.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Checkout handles POST /api/orders.
func (h *OrderHandler) Checkout(c *gin.Context) {
	user := middleware.CurrentUser(c)
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	order, err := h.facade.Checkout(c.Request.Context(), user.ID, model.PaymentMethod(req.Method), req.PromoCode, req.Address)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusCreated, dto.NewOrderResponse(order))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)
	orders, err := h.facade.CustomerOrders(c.Request.Context(), user.ID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewOrderResponses(orders))
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.facade.CustomerOrder(c.Request.Context(), user.ID, orderID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewOrderResponse(order))
}

// Cancel handles POST /api/orders/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	user := middleware.CurrentUser(c)
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.facade.CancelOrder(c.Request.Context(), user.ID, orderID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewOrderResponse(order))
}

// AdminList handles GET /api/admin/orders?status=.
func (h *OrderHandler) AdminList(c *gin.Context) {
	orders, err := h.facade.OrdersByStatus(c.Request.Context(), model.OrderStatus(c.Query("status")))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewOrderResponses(orders))
}

// AdminGet handles GET /api/admin/orders/:id.
func (h *OrderHandler) AdminGet(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.facade.Order(c.Request.Context(), orderID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewOrderResponse(order))
}

// UpdateStatus handles PATCH /api/admin/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	order, err := h.facade.UpdateOrderStatus(c.Request.Context(), orderID, model.OrderStatus(req.Status))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewOrderResponse(order))
}
