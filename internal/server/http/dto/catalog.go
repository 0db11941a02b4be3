package dto

import "github.com/polkiloo/meatmarket/internal/domain/model"

// ProductRequest creates or updates a catalog entry.
type ProductRequest struct {
	Name      string `json:"name" binding:"required"`
	Category  string `json:"category" binding:"required"`
	Unit      string `json:"unit" binding:"required"`
	Price     string `json:"price" binding:"required"`
	CostPrice string `json:"cost_price"`
	VATable   *bool  `json:"vatable"`
	Active    *bool  `json:"active"`
}

// ProductResponse is the public view of a catalog entry.
type ProductResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Unit     string `json:"unit"`
	Price    string `json:"price"`
	VATable  bool   `json:"vatable"`
	Active   bool   `json:"active"`
}

// StockResponse reports saleable quantity for a product.
type StockResponse struct {
	ProductID int64  `json:"product_id"`
	Quantity  string `json:"quantity"`
	Reserved  string `json:"reserved"`
	Available string `json:"available"`
}

// StockAdjustRequest changes on-hand quantity by a signed delta.
type StockAdjustRequest struct {
	Delta string `json:"delta" binding:"required"`
}

// NewProductResponse converts a product model.
func NewProductResponse(p *model.Product) ProductResponse {
	return ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Unit:     string(p.Unit),
		Price:    p.Price.StringFixed(2),
		VATable:  p.VATable,
		Active:   p.Active,
	}
}

// NewStockResponse converts a stock model.
func NewStockResponse(s *model.Stock) StockResponse {
	return StockResponse{
		ProductID: s.ProductID,
		Quantity:  s.Quantity.String(),
		Reserved:  s.Reserved.String(),
		Available: s.Available().String(),
	}
}
