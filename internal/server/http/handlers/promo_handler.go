package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/meatmarket/internal/domain/model"
	"github.com/polkiloo/meatmarket/internal/server/http/dto"
)

// PromoHandler manages promo codes for the back office.
type PromoHandler struct {
	facade PromoFacade
}

// NewPromoHandler constructs PromoHandler.
func NewPromoHandler(facade PromoFacade) *PromoHandler {
	return &PromoHandler{facade: facade}
}

// List handles GET /api/admin/promos.
func (h *PromoHandler) List(c *gin.Context) {
	promos, err := h.facade.Promos(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	resp := make([]dto.PromoResponse, 0, len(promos))
	for i := range promos {
		resp = append(resp, dto.NewPromoResponse(&promos[i]))
	}
	respondData(c, http.StatusOK, resp)
}

// Create handles POST /api/admin/promos.
func (h *PromoHandler) Create(c *gin.Context) {
	promo, ok := bindPromo(c)
	if !ok {
		return
	}
	created, err := h.facade.CreatePromo(c.Request.Context(), promo)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusCreated, dto.NewPromoResponse(created))
}

// Update handles PUT /api/admin/promos/:id.
func (h *PromoHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	promo, ok := bindPromo(c)
	if !ok {
		return
	}
	promo.ID = id
	if err := h.facade.UpdatePromo(c.Request.Context(), promo); err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewPromoResponse(promo))
}

func bindPromo(c *gin.Context) (*model.PromoCode, bool) {
	var req dto.PromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	value, ok := parseAmount(c, req.Value)
	if !ok {
		return nil, false
	}
	minSubtotal := decimal.Zero
	if req.MinSubtotal != "" {
		minSubtotal, ok = parseAmount(c, req.MinSubtotal)
		if !ok {
			return nil, false
		}
	}
	promo := &model.PromoCode{
		Code:        req.Code,
		Kind:        model.PromoKind(req.Kind),
		Value:       value,
		MinSubtotal: minSubtotal,
		UsageLimit:  req.UsageLimit,
		ExpiresAt:   req.ExpiresAt,
		Active:      true,
	}
	if req.Active != nil {
		promo.Active = *req.Active
	}
	return promo, true
}
