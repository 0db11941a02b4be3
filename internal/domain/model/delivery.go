package model

import "time"

// Delivery associates an order with a driver and its progress.
type Delivery struct {
	ID         int64
	OrderID    int64
	DriverID   int64
	Status     DeliveryStatus
	AssignedAt time.Time
	UpdatedAt  time.Time
}

// TrackingPoint is a single driver location report.
type TrackingPoint struct {
	ID         int64
	DeliveryID int64
	Latitude   float64
	Longitude  float64
	RecordedAt time.Time
}
