package dto

import (
	"github.com/polkiloo/meatmarket/internal/domain/model"
	"github.com/polkiloo/meatmarket/internal/usecase"
)

// BasketItemRequest adds a product to the basket.
type BasketItemRequest struct {
	ProductID int64  `json:"product_id" binding:"required"`
	Quantity  string `json:"quantity" binding:"required"`
}

// BasketItemUpdateRequest changes the quantity of a basket line. Zero removes
// the line.
type BasketItemUpdateRequest struct {
	Quantity string `json:"quantity" binding:"required"`
}

// BasketItemResponse is one basket line.
type BasketItemResponse struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  string `json:"quantity"`
}

// BasketResponse is the customer's open basket.
type BasketResponse struct {
	ID       int64                `json:"id"`
	Items    []BasketItemResponse `json:"items"`
	Subtotal string               `json:"subtotal"`
}

// QuoteResponse prices the basket without placing an order.
type QuoteResponse struct {
	Basket      BasketResponse `json:"basket"`
	Subtotal    string         `json:"subtotal"`
	Discount    string         `json:"discount"`
	DeliveryFee string         `json:"delivery_fee"`
	VAT         string         `json:"vat"`
	Total       string         `json:"total"`
}

// NewBasketResponse converts a basket model.
func NewBasketResponse(b *model.Basket) BasketResponse {
	items := make([]BasketItemResponse, 0, len(b.Items))
	for _, item := range b.Items {
		items = append(items, BasketItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice.StringFixed(2),
			Quantity:  item.Quantity.String(),
		})
	}
	return BasketResponse{
		ID:       b.ID,
		Items:    items,
		Subtotal: b.Subtotal().StringFixed(2),
	}
}

// NewQuoteResponse converts a priced basket.
func NewQuoteResponse(b *model.Basket, q usecase.Quote) QuoteResponse {
	return QuoteResponse{
		Basket:      NewBasketResponse(b),
		Subtotal:    q.Subtotal.StringFixed(2),
		Discount:    q.Discount.StringFixed(2),
		DeliveryFee: q.DeliveryFee.StringFixed(2),
		VAT:         q.VAT.StringFixed(2),
		Total:       q.Total.StringFixed(2),
	}
}
