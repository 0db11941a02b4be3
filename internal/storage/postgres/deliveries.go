package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/polkiloo/meatmarket/internal/domain/errors"
	"github.com/polkiloo/meatmarket/internal/domain/model"
)

type deliveryRepository struct {
	storage *Storage
}

// Assign creates a delivery for a READY order. The order row is locked so a
// concurrent assignment or status change loses cleanly.
func (r *deliveryRepository) Assign(ctx context.Context, orderID, driverID int64) (*model.Delivery, error) {
	var d model.Delivery
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const lockOrder = `SELECT status FROM orders WHERE id=$1 FOR UPDATE`
		var status model.OrderStatus
		if err := tx.QueryRow(ctx, lockOrder, orderID).Scan(&status); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if status != model.OrderStatusReady {
			return fmt.Errorf("%w: order is %s", domainErrors.ErrInvalidTransition, status)
		}

		const insert = `INSERT INTO deliveries (order_id, driver_id, status)
                        VALUES ($1, $2, $3) RETURNING id, assigned_at, updated_at`
		if err := tx.QueryRow(ctx, insert, orderID, driverID, model.DeliveryStatusAssigned).
			Scan(&d.ID, &d.AssignedAt, &d.UpdatedAt); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return domainErrors.ErrAlreadyExists
			}
			return err
		}
		d.OrderID = orderID
		d.DriverID = driverID
		d.Status = model.DeliveryStatusAssigned
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

const deliveryColumns = `id, order_id, driver_id, status, assigned_at, updated_at`

func scanDelivery(row pgx.Row) (*model.Delivery, error) {
	var d model.Delivery
	err := row.Scan(&d.ID, &d.OrderID, &d.DriverID, &d.Status, &d.AssignedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *deliveryRepository) GetByID(ctx context.Context, id int64) (*model.Delivery, error) {
	return scanDelivery(r.storage.pool.QueryRow(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE id=$1`, id))
}

func (r *deliveryRepository) GetByOrder(ctx context.Context, orderID int64) (*model.Delivery, error) {
	return scanDelivery(r.storage.pool.QueryRow(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE order_id=$1`, orderID))
}

func (r *deliveryRepository) ListByDriver(ctx context.Context, driverID int64, activeOnly bool) ([]model.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE driver_id=$1`
	if activeOnly {
		query += ` AND status NOT IN ('DELIVERED', 'FAILED')`
	}
	query += ` ORDER BY assigned_at DESC`

	rows, err := r.storage.pool.Query(ctx, query, driverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Delivery
	for rows.Next() {
		var d model.Delivery
		if err := rows.Scan(&d.ID, &d.OrderID, &d.DriverID, &d.Status, &d.AssignedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *deliveryRepository) Transition(ctx context.Context, deliveryID int64, to model.DeliveryStatus) (*model.Delivery, error) {
	var delivery *model.Delivery
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		delivery, err = scanDelivery(tx.QueryRow(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE id=$1 FOR UPDATE`, deliveryID))
		if err != nil {
			return err
		}

		if !model.CanTransitionDelivery(delivery.Status, to) {
			return fmt.Errorf("%w: %s -> %s", domainErrors.ErrInvalidTransition, delivery.Status, to)
		}

		const update = `UPDATE deliveries SET status=$1, updated_at=NOW() WHERE id=$2 RETURNING updated_at`
		if err := tx.QueryRow(ctx, update, to, deliveryID).Scan(&delivery.UpdatedAt); err != nil {
			return err
		}
		delivery.Status = to
		return nil
	})
	if err != nil {
		return nil, err
	}
	return delivery, nil
}

func (r *deliveryRepository) AddTrackingPoint(ctx context.Context, deliveryID int64, lat, lon float64) (*model.TrackingPoint, error) {
	const query = `INSERT INTO tracking_points (delivery_id, latitude, longitude)
                   VALUES ($1, $2, $3) RETURNING id, recorded_at`
	point := model.TrackingPoint{DeliveryID: deliveryID, Latitude: lat, Longitude: lon}
	if err := r.storage.pool.QueryRow(ctx, query, deliveryID, lat, lon).Scan(&point.ID, &point.RecordedAt); err != nil {
		return nil, err
	}
	return &point, nil
}

func (r *deliveryRepository) ListTrackingPoints(ctx context.Context, deliveryID int64, since time.Time) ([]model.TrackingPoint, error) {
	const query = `SELECT id, delivery_id, latitude, longitude, recorded_at
                   FROM tracking_points
                   WHERE delivery_id=$1 AND recorded_at > $2
                   ORDER BY recorded_at`
	rows, err := r.storage.pool.Query(ctx, query, deliveryID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.TrackingPoint
	for rows.Next() {
		var p model.TrackingPoint
		if err := rows.Scan(&p.ID, &p.DeliveryID, &p.Latitude, &p.Longitude, &p.RecordedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
