package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/polkiloo/meatmarket/internal/cache/redis"
	domainErrors "github.com/polkiloo/meatmarket/internal/domain/errors"
	"github.com/polkiloo/meatmarket/internal/domain/model"
	"github.com/polkiloo/meatmarket/internal/domain/repository"
	"github.com/polkiloo/meatmarket/internal/events"
)

// TrackingInfo is what a customer sees when polling a delivery.
type TrackingInfo struct {
	Delivery *model.Delivery
	Live     *redis.Location
	Points   []model.TrackingPoint
}

// DeliveryUseCase manages driver assignment and the delivery status machine.
// Delivery transitions drive the coupled order transitions: a pickup moves the
// order out for delivery, and the final delivery states settle the order.
type DeliveryUseCase struct {
	deliveries repository.DeliveryRepository
	orders     repository.OrderRepository
	users      repository.UserRepository
	locations  redis.LocationCache
	publisher  events.Publisher
	logger     *slog.Logger
}

// NewDeliveryUseCase constructs DeliveryUseCase.
func NewDeliveryUseCase(
	deliveries repository.DeliveryRepository,
	orders repository.OrderRepository,
	users repository.UserRepository,
	locations redis.LocationCache,
	publisher events.Publisher,
	logger *slog.Logger,
) *DeliveryUseCase {
	return &DeliveryUseCase{
		deliveries: deliveries,
		orders:     orders,
		users:      users,
		locations:  locations,
		publisher:  publisher,
		logger:     logger,
	}
}

// Assign puts a READY order in a driver's hands.
func (u *DeliveryUseCase) Assign(ctx context.Context, orderID, driverID int64) (*model.Delivery, error) {
	driver, err := u.users.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if driver.Role != model.RoleDriver {
		return nil, domainErrors.ErrForbidden
	}

	delivery, err := u.deliveries.Assign(ctx, orderID, driverID)
	if err != nil {
		return nil, err
	}
	u.publishUpdate(delivery)
	return delivery, nil
}

// ListForDriver returns a driver's deliveries, optionally only the unfinished
// ones.
func (u *DeliveryUseCase) ListForDriver(ctx context.Context, driverID int64, activeOnly bool) ([]model.Delivery, error) {
	return u.deliveries.ListByDriver(ctx, driverID, activeOnly)
}

// UpdateStatus advances a delivery on behalf of its driver and mirrors the
// progress onto the order.
func (u *DeliveryUseCase) UpdateStatus(ctx context.Context, driverID, deliveryID int64, to model.DeliveryStatus) (*model.Delivery, error) {
	if !to.Valid() {
		return nil, domainErrors.ErrInvalidTransition
	}

	current, err := u.deliveries.GetByID(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	if current.DriverID != driverID {
		return nil, domainErrors.ErrForbidden
	}

	delivery, err := u.deliveries.Transition(ctx, deliveryID, to)
	if err != nil {
		return nil, err
	}

	if orderStatus, ok := orderStatusFor(to); ok {
		if _, err := u.orders.Transition(ctx, delivery.OrderID, orderStatus); err != nil {
			u.logger.Error("order transition after delivery update failed",
				slog.Int64("order_id", delivery.OrderID),
				slog.String("status", string(orderStatus)),
				slog.String("error", err.Error()))
		}
	}

	u.publishUpdate(delivery)
	return delivery, nil
}

// ReportLocation records a driver position on the tracking trail and in the
// live cache.
func (u *DeliveryUseCase) ReportLocation(ctx context.Context, driverID, deliveryID int64, lat, lon float64) (*model.TrackingPoint, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, domainErrors.ErrInvalidAmount
	}

	delivery, err := u.deliveries.GetByID(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	if delivery.DriverID != driverID {
		return nil, domainErrors.ErrForbidden
	}

	point, err := u.deliveries.AddTrackingPoint(ctx, deliveryID, lat, lon)
	if err != nil {
		return nil, err
	}

	if err := u.locations.Set(ctx, deliveryID, redis.Location{
		Latitude:   lat,
		Longitude:  lon,
		RecordedAt: point.RecordedAt,
	}); err != nil {
		u.logger.Warn("live location cache write failed",
			slog.Int64("delivery_id", deliveryID),
			slog.String("error", err.Error()))
	}

	return point, nil
}

// Track returns delivery progress for the customer who placed the order. The
// live position comes from the cache when fresh, otherwise from the last
// tracking point.
func (u *DeliveryUseCase) Track(ctx context.Context, customerID, orderID int64, since time.Time) (*TrackingInfo, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, domainErrors.ErrNotFound
	}

	delivery, err := u.deliveries.GetByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	points, err := u.deliveries.ListTrackingPoints(ctx, delivery.ID, since)
	if err != nil {
		return nil, err
	}

	info := &TrackingInfo{Delivery: delivery, Points: points}
	live, err := u.locations.Get(ctx, delivery.ID)
	switch {
	case err == nil:
		info.Live = live
	case errors.Is(err, redis.ErrNoLocation):
		if len(points) > 0 {
			last := points[len(points)-1]
			info.Live = &redis.Location{
				Latitude:   last.Latitude,
				Longitude:  last.Longitude,
				RecordedAt: last.RecordedAt,
			}
		}
	default:
		u.logger.Warn("live location cache read failed",
			slog.Int64("delivery_id", delivery.ID),
			slog.String("error", err.Error()))
	}

	return info, nil
}

func (u *DeliveryUseCase) publishUpdate(delivery *model.Delivery) {
	envelope, err := events.Wrap(events.TypeDeliveryUpdated, events.DeliveryEventPayload{
		DeliveryID: delivery.ID,
		OrderID:    delivery.OrderID,
		DriverID:   delivery.DriverID,
		Status:     string(delivery.Status),
	})
	if err == nil {
		u.publisher.Publish(events.TopicDeliveries, strconv.FormatInt(delivery.OrderID, 10), envelope)
	}
}

func orderStatusFor(to model.DeliveryStatus) (model.OrderStatus, bool) {
	switch to {
	case model.DeliveryStatusPickedUp:
		return model.OrderStatusOutForDelivery, true
	case model.DeliveryStatusDelivered:
		return model.OrderStatusDelivered, true
	case model.DeliveryStatusFailed:
		return model.OrderStatusFailed, true
	default:
		return "", false
	}
}
