package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/polkiloo/meatmarket/internal/cache/redis"
	domainErrors "github.com/polkiloo/meatmarket/internal/domain/errors"
	"github.com/polkiloo/meatmarket/internal/domain/model"
	testhelpers "github.com/polkiloo/meatmarket/internal/test"
)

type deliveryFixture struct {
	uc         *DeliveryUseCase
	deliveries *testhelpers.DeliveryRepositoryStub
	orders     *testhelpers.OrderRepositoryStub
	users      *testhelpers.UserRepositoryStub
	locations  *testhelpers.LocationCacheStub
	publisher  *testhelpers.PublisherRecorder
}

func newDeliveryFixture(t *testing.T) deliveryFixture {
	t.Helper()
	deliveries := testhelpers.NewDeliveryRepositoryStub()
	orders := testhelpers.NewOrderRepositoryStub()
	users := testhelpers.NewUserRepositoryStub()
	locations := testhelpers.NewLocationCacheStub()
	publisher := &testhelpers.PublisherRecorder{}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return deliveryFixture{
		uc:         NewDeliveryUseCase(deliveries, orders, users, locations, publisher, logger),
		deliveries: deliveries,
		orders:     orders,
		users:      users,
		locations:  locations,
		publisher:  publisher,
	}
}

func (f deliveryFixture) seedDriver(t *testing.T) *model.User {
	t.Helper()
	driver, err := f.users.Create(context.Background(), "driver@shop.test", "Drv", "", "hash:pw", model.RoleDriver)
	if err != nil {
		t.Fatalf("seed driver: %v", err)
	}
	return driver
}

func (f deliveryFixture) seedOrder(customerID int64, status model.OrderStatus) *model.Order {
	order := &model.Order{ID: f.orders.Next, Number: "ord-1", CustomerID: customerID, Status: status}
	f.orders.Orders[order.ID] = order
	f.orders.Next++
	return order
}

func TestAssignRequiresDriverRole(t *testing.T) {
	f := newDeliveryFixture(t)
	customer, err := f.users.Create(context.Background(), "ana@shop.test", "Ana", "", "hash:pw", model.RoleCustomer)
	if err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	if _, err := f.uc.Assign(context.Background(), 1, customer.ID); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("assign to customer = %v, want forbidden", err)
	}
}

func TestAssignRejectsSecondDelivery(t *testing.T) {
	f := newDeliveryFixture(t)
	driver := f.seedDriver(t)
	order := f.seedOrder(7, model.OrderStatusReady)

	if _, err := f.uc.Assign(context.Background(), order.ID, driver.ID); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if _, err := f.uc.Assign(context.Background(), order.ID, driver.ID); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("second assign = %v, want already exists", err)
	}
}

func TestUpdateStatusMirrorsOrder(t *testing.T) {
	f := newDeliveryFixture(t)
	driver := f.seedDriver(t)
	order := f.seedOrder(7, model.OrderStatusReady)
	delivery, err := f.uc.Assign(context.Background(), order.ID, driver.ID)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}

	if _, err := f.uc.UpdateStatus(context.Background(), driver.ID, delivery.ID, model.DeliveryStatusPickedUp); err != nil {
		t.Fatalf("pickup: %v", err)
	}
	if order.Status != model.OrderStatusOutForDelivery {
		t.Fatalf("order status = %s, want OUT_FOR_DELIVERY", order.Status)
	}

	if _, err := f.uc.UpdateStatus(context.Background(), driver.ID, delivery.ID, model.DeliveryStatusEnRoute); err != nil {
		t.Fatalf("en route: %v", err)
	}
	if _, err := f.uc.UpdateStatus(context.Background(), driver.ID, delivery.ID, model.DeliveryStatusDelivered); err != nil {
		t.Fatalf("delivered: %v", err)
	}
	if order.Status != model.OrderStatusDelivered {
		t.Fatalf("order status = %s, want DELIVERED", order.Status)
	}
}

func TestUpdateStatusOwnership(t *testing.T) {
	f := newDeliveryFixture(t)
	driver := f.seedDriver(t)
	order := f.seedOrder(7, model.OrderStatusReady)
	delivery, err := f.uc.Assign(context.Background(), order.ID, driver.ID)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}

	if _, err := f.uc.UpdateStatus(context.Background(), driver.ID+1, delivery.ID, model.DeliveryStatusPickedUp); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("foreign driver = %v, want forbidden", err)
	}
	if _, err := f.uc.UpdateStatus(context.Background(), driver.ID, delivery.ID, "TELEPORTED"); !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("unknown status = %v, want invalid transition", err)
	}
	if _, err := f.uc.UpdateStatus(context.Background(), driver.ID, delivery.ID, model.DeliveryStatusDelivered); !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("skip ahead = %v, want invalid transition", err)
	}
}

func TestReportLocationWritesTrailAndCache(t *testing.T) {
	f := newDeliveryFixture(t)
	driver := f.seedDriver(t)
	order := f.seedOrder(7, model.OrderStatusReady)
	delivery, err := f.uc.Assign(context.Background(), order.ID, driver.ID)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}

	point, err := f.uc.ReportLocation(context.Background(), driver.ID, delivery.ID, 52.37, 4.89)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if point.Latitude != 52.37 || point.Longitude != 4.89 {
		t.Fatalf("point = %+v", point)
	}
	if loc, ok := f.locations.Locations[delivery.ID]; !ok || loc.Latitude != 52.37 {
		t.Fatalf("cache not updated: %+v", f.locations.Locations)
	}

	if _, err := f.uc.ReportLocation(context.Background(), driver.ID, delivery.ID, 99, 0); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("out-of-range latitude = %v, want invalid amount", err)
	}
	if _, err := f.uc.ReportLocation(context.Background(), driver.ID+1, delivery.ID, 52.37, 4.89); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("foreign driver = %v, want forbidden", err)
	}
}

func TestReportLocationSurvivesCacheFailure(t *testing.T) {
	f := newDeliveryFixture(t)
	driver := f.seedDriver(t)
	order := f.seedOrder(7, model.OrderStatusReady)
	delivery, err := f.uc.Assign(context.Background(), order.ID, driver.ID)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	f.locations.SetErr = errors.New("cache down")

	if _, err := f.uc.ReportLocation(context.Background(), driver.ID, delivery.ID, 52.37, 4.89); err != nil {
		t.Fatalf("report with cache down: %v", err)
	}
	if len(f.deliveries.Points[delivery.ID]) != 1 {
		t.Fatalf("trail not written")
	}
}

func TestTrackPrefersLiveCache(t *testing.T) {
	f := newDeliveryFixture(t)
	driver := f.seedDriver(t)
	order := f.seedOrder(7, model.OrderStatusOutForDelivery)
	delivery, err := f.uc.Assign(context.Background(), order.ID, driver.ID)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	f.locations.Locations[delivery.ID] = redis.Location{Latitude: 52.37, Longitude: 4.89, RecordedAt: time.Now()}

	info, err := f.uc.Track(context.Background(), 7, order.ID, time.Time{})
	if err != nil {
		t.Fatalf("track: %v", err)
	}
	if info.Live == nil || info.Live.Latitude != 52.37 {
		t.Fatalf("live = %+v", info.Live)
	}
}

func TestTrackFallsBackToLastPoint(t *testing.T) {
	f := newDeliveryFixture(t)
	driver := f.seedDriver(t)
	order := f.seedOrder(7, model.OrderStatusOutForDelivery)
	delivery, err := f.uc.Assign(context.Background(), order.ID, driver.ID)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if _, err := f.uc.ReportLocation(context.Background(), driver.ID, delivery.ID, 52.37, 4.89); err != nil {
		t.Fatalf("report: %v", err)
	}
	delete(f.locations.Locations, delivery.ID)

	info, err := f.uc.Track(context.Background(), 7, order.ID, time.Time{})
	if err != nil {
		t.Fatalf("track: %v", err)
	}
	if info.Live == nil || info.Live.Latitude != 52.37 {
		t.Fatalf("live fallback = %+v", info.Live)
	}
	if len(info.Points) != 1 {
		t.Fatalf("points = %d, want 1", len(info.Points))
	}
}

func TestTrackOwnership(t *testing.T) {
	f := newDeliveryFixture(t)
	order := f.seedOrder(7, model.OrderStatusOutForDelivery)

	if _, err := f.uc.Track(context.Background(), 8, order.ID, time.Time{}); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("foreign track = %v, want not found", err)
	}
}
