package repository

import (
	"context"
	"time"

	"github.com/polkiloo/meatmarket/internal/domain/model"
)

// DeliveryRepository describes persistence operations for deliveries and
// driver tracking.
type DeliveryRepository interface {
	Assign(ctx context.Context, orderID, driverID int64) (*model.Delivery, error)
	GetByID(ctx context.Context, id int64) (*model.Delivery, error)
	GetByOrder(ctx context.Context, orderID int64) (*model.Delivery, error)
	ListByDriver(ctx context.Context, driverID int64, activeOnly bool) ([]model.Delivery, error)
	Transition(ctx context.Context, deliveryID int64, to model.DeliveryStatus) (*model.Delivery, error)
	AddTrackingPoint(ctx context.Context, deliveryID int64, lat, lon float64) (*model.TrackingPoint, error)
	ListTrackingPoints(ctx context.Context, deliveryID int64, since time.Time) ([]model.TrackingPoint, error)
}
