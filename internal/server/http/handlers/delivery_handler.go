package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/meatmarket/internal/domain/model"
	"github.com/polkiloo/meatmarket/internal/server/http/dto"
	"github.com/polkiloo/meatmarket/internal/server/http/middleware"
)

// DeliveryHandler covers dispatcher assignment, the driver's workflow, and
// customer tracking.
type DeliveryHandler struct {
	facade DeliveryFacade
}

// NewDeliveryHandler constructs DeliveryHandler.
func NewDeliveryHandler(facade DeliveryFacade) *DeliveryHandler {
	return &DeliveryHandler{facade: facade}
}

// Assign handles POST /api/admin/deliveries.
func (h *DeliveryHandler) Assign(c *gin.Context) {
	var req dto.AssignDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	delivery, err := h.facade.AssignDelivery(c.Request.Context(), req.OrderID, req.DriverID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusCreated, dto.NewDeliveryResponse(delivery))
}

// ListMine handles GET /api/driver/deliveries?active=true.
func (h *DeliveryHandler) ListMine(c *gin.Context) {
	user := middleware.CurrentUser(c)
	deliveries, err := h.facade.DriverDeliveries(c.Request.Context(), user.ID, c.Query("active") == "true")
	if err != nil {
		respondDomainError(c, err)
		return
	}
	resp := make([]dto.DeliveryResponse, 0, len(deliveries))
	for i := range deliveries {
		resp = append(resp, dto.NewDeliveryResponse(&deliveries[i]))
	}
	respondData(c, http.StatusOK, resp)
}

// UpdateStatus handles PATCH /api/driver/deliveries/:id/status.
func (h *DeliveryHandler) UpdateStatus(c *gin.Context) {
	user := middleware.CurrentUser(c)
	deliveryID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.DeliveryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	delivery, err := h.facade.UpdateDeliveryStatus(c.Request.Context(), user.ID, deliveryID, model.DeliveryStatus(req.Status))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewDeliveryResponse(delivery))
}

// ReportLocation handles POST /api/driver/deliveries/:id/location.
func (h *DeliveryHandler) ReportLocation(c *gin.Context) {
	user := middleware.CurrentUser(c)
	deliveryID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	point, err := h.facade.ReportLocation(c.Request.Context(), user.ID, deliveryID, req.Latitude, req.Longitude)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.TrackingPointResponse{
		Latitude:   point.Latitude,
		Longitude:  point.Longitude,
		RecordedAt: point.RecordedAt,
	})
}

// Track handles GET /api/orders/:id/tracking for the customer who placed the
// order.
func (h *DeliveryHandler) Track(c *gin.Context) {
	user := middleware.CurrentUser(c)
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	since, ok := parseSince(c)
	if !ok {
		return
	}
	info, err := h.facade.TrackOrder(c.Request.Context(), user.ID, orderID, since)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewTrackingResponse(info))
}
