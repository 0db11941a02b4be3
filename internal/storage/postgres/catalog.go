package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/meatmarket/internal/domain/errors"
	"github.com/polkiloo/meatmarket/internal/domain/model"
	"github.com/polkiloo/meatmarket/internal/domain/repository"
)

type productRepository struct {
	storage *Storage
}

type basketRepository struct {
	storage *Storage
}

func (r *productRepository) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const query = `INSERT INTO products (name, category, unit, price, cost_price, vatable, active)
                       VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at`
		if err := tx.QueryRow(ctx, query, p.Name, p.Category, p.Unit, p.Price, p.CostPrice, p.VATable, p.Active).
			Scan(&p.ID, &p.CreatedAt); err != nil {
			return err
		}
		const stockQuery = `INSERT INTO stock (product_id, quantity, reserved) VALUES ($1, 0, 0)`
		_, err := tx.Exec(ctx, stockQuery, p.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepository) Update(ctx context.Context, p *model.Product) error {
	const query = `UPDATE products SET name=$1, category=$2, unit=$3, price=$4, cost_price=$5, vatable=$6, active=$7
                   WHERE id=$8`
	tag, err := r.storage.pool.Exec(ctx, query, p.Name, p.Category, p.Unit, p.Price, p.CostPrice, p.VATable, p.Active, p.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	const query = `SELECT id, name, category, unit, price, cost_price, vatable, active, created_at
                   FROM products WHERE id=$1`
	var p model.Product
	err := r.storage.pool.QueryRow(ctx, query, id).
		Scan(&p.ID, &p.Name, &p.Category, &p.Unit, &p.Price, &p.CostPrice, &p.VATable, &p.Active, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	query := `SELECT p.id, p.name, p.category, p.unit, p.price, p.cost_price, p.vatable, p.active, p.created_at
              FROM products p`
	var (
		conds []string
		args  []any
	)
	if filter.InStock {
		query += ` JOIN stock s ON s.product_id = p.id`
		conds = append(conds, `s.quantity - s.reserved > 0`)
	}
	if filter.OnlyActive {
		conds = append(conds, `p.active`)
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, `p.category = $1`)
	}
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY p.category, p.name`

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Unit, &p.Price, &p.CostPrice, &p.VATable, &p.Active, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) GetStock(ctx context.Context, productID int64) (*model.Stock, error) {
	const query = `SELECT product_id, quantity, reserved FROM stock WHERE product_id=$1`
	var st model.Stock
	err := r.storage.pool.QueryRow(ctx, query, productID).Scan(&st.ProductID, &st.Quantity, &st.Reserved)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &st, nil
}

func (r *productRepository) AdjustStock(ctx context.Context, productID int64, delta decimal.Decimal) (*model.Stock, error) {
	var st model.Stock
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const lockQuery = `SELECT product_id, quantity, reserved FROM stock WHERE product_id=$1 FOR UPDATE`
		if err := tx.QueryRow(ctx, lockQuery, productID).Scan(&st.ProductID, &st.Quantity, &st.Reserved); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		next := st.Quantity.Add(delta)
		if next.LessThan(st.Reserved) {
			return domainErrors.ErrInsufficientStock
		}
		const updateQuery = `UPDATE stock SET quantity=$1 WHERE product_id=$2`
		if _, err := tx.Exec(ctx, updateQuery, next, productID); err != nil {
			return err
		}
		st.Quantity = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *basketRepository) GetOrCreate(ctx context.Context, customerID int64) (*model.Basket, error) {
	const upsert = `INSERT INTO baskets (customer_id) VALUES ($1)
                    ON CONFLICT (customer_id) DO UPDATE SET customer_id = EXCLUDED.customer_id
                    RETURNING id, updated_at`
	var b model.Basket
	if err := r.storage.pool.QueryRow(ctx, upsert, customerID).Scan(&b.ID, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.CustomerID = customerID

	const itemsQuery = `SELECT id, basket_id, product_id, name, unit_price, quantity
                        FROM basket_items WHERE basket_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, itemsQuery, b.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item model.BasketItem
		if err := rows.Scan(&item.ID, &item.BasketID, &item.ProductID, &item.Name, &item.UnitPrice, &item.Quantity); err != nil {
			return nil, err
		}
		b.Items = append(b.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *basketRepository) AddItem(ctx context.Context, basketID, productID int64, name string, unitPrice, quantity decimal.Decimal) (*model.BasketItem, error) {
	const query = `INSERT INTO basket_items (basket_id, product_id, name, unit_price, quantity)
                   VALUES ($1, $2, $3, $4, $5)
                   ON CONFLICT (basket_id, product_id) DO UPDATE
                   SET quantity = basket_items.quantity + EXCLUDED.quantity,
                       unit_price = EXCLUDED.unit_price
                   RETURNING id, quantity`
	item := model.BasketItem{BasketID: basketID, ProductID: productID, Name: name, UnitPrice: unitPrice}
	if err := r.storage.pool.QueryRow(ctx, query, basketID, productID, name, unitPrice, quantity).
		Scan(&item.ID, &item.Quantity); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *basketRepository) UpdateItem(ctx context.Context, basketID, itemID int64, quantity decimal.Decimal) error {
	const query = `UPDATE basket_items SET quantity=$1 WHERE id=$2 AND basket_id=$3`
	tag, err := r.storage.pool.Exec(ctx, query, quantity, itemID, basketID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *basketRepository) RemoveItem(ctx context.Context, basketID, itemID int64) error {
	const query = `DELETE FROM basket_items WHERE id=$1 AND basket_id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, itemID, basketID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *basketRepository) Clear(ctx context.Context, basketID int64) error {
	const query = `DELETE FROM basket_items WHERE basket_id=$1`
	_, err := r.storage.pool.Exec(ctx, query, basketID)
	return err
}
