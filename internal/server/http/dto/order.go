package dto

import (
	"time"

	"github.com/polkiloo/meatmarket/internal/domain/model"
)

// CheckoutRequest places the basket as an order.
type CheckoutRequest struct {
	Method    string `json:"method" binding:"required"`
	PromoCode string `json:"promo_code"`
	Address   string `json:"address" binding:"required"`
}

// OrderStatusRequest moves an order along its lifecycle.
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderItemResponse is one purchased line.
type OrderItemResponse struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  string `json:"quantity"`
}

// OrderResponse is the customer view of an order.
type OrderResponse struct {
	ID          int64               `json:"id"`
	Number      string              `json:"number"`
	Status      string              `json:"status"`
	Subtotal    string              `json:"subtotal"`
	Discount    string              `json:"discount"`
	DeliveryFee string              `json:"delivery_fee"`
	VAT         string              `json:"vat"`
	Total       string              `json:"total"`
	PromoCode   string              `json:"promo_code,omitempty"`
	Address     string              `json:"address"`
	Items       []OrderItemResponse `json:"items,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// NewOrderResponse converts an order model.
func NewOrderResponse(o *model.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice.StringFixed(2),
			Quantity:  item.Quantity.String(),
		})
	}
	return OrderResponse{
		ID:          o.ID,
		Number:      o.Number,
		Status:      string(o.Status),
		Subtotal:    o.Subtotal.StringFixed(2),
		Discount:    o.Discount.StringFixed(2),
		DeliveryFee: o.DeliveryFee.StringFixed(2),
		VAT:         o.VAT.StringFixed(2),
		Total:       o.Total.StringFixed(2),
		PromoCode:   o.PromoCode,
		Address:     o.Address,
		Items:       items,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

// NewOrderResponses converts a list of orders without item details.
func NewOrderResponses(orders []model.Order) []OrderResponse {
	resp := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, NewOrderResponse(&orders[i]))
	}
	return resp
}
