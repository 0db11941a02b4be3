package dto

import (
	"time"

	"github.com/polkiloo/meatmarket/internal/domain/model"
)

// PromoRequest creates or updates a promo code.
type PromoRequest struct {
	Code        string     `json:"code" binding:"required"`
	Kind        string     `json:"kind" binding:"required"`
	Value       string     `json:"value" binding:"required"`
	MinSubtotal string     `json:"min_subtotal"`
	UsageLimit  int        `json:"usage_limit"`
	ExpiresAt   *time.Time `json:"expires_at"`
	Active      *bool      `json:"active"`
}

// PromoResponse is the admin view of a promo code.
type PromoResponse struct {
	ID          int64      `json:"id"`
	Code        string     `json:"code"`
	Kind        string     `json:"kind"`
	Value       string     `json:"value"`
	MinSubtotal string     `json:"min_subtotal"`
	UsageLimit  int        `json:"usage_limit"`
	UsedCount   int        `json:"used_count"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	Active      bool       `json:"active"`
}

// NewPromoResponse converts a promo model.
func NewPromoResponse(p *model.PromoCode) PromoResponse {
	return PromoResponse{
		ID:          p.ID,
		Code:        p.Code,
		Kind:        string(p.Kind),
		Value:       p.Value.String(),
		MinSubtotal: p.MinSubtotal.StringFixed(2),
		UsageLimit:  p.UsageLimit,
		UsedCount:   p.UsedCount,
		ExpiresAt:   p.ExpiresAt,
		Active:      p.Active,
	}
}
