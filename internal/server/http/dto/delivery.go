package dto

import (
	"time"

	"github.com/polkiloo/meatmarket/internal/domain/model"
	"github.com/polkiloo/meatmarket/internal/usecase"
)

// AssignDeliveryRequest hands an order to a driver.
type AssignDeliveryRequest struct {
	OrderID  int64 `json:"order_id" binding:"required"`
	DriverID int64 `json:"driver_id" binding:"required"`
}

// DeliveryStatusRequest advances a delivery.
type DeliveryStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// LocationRequest reports a driver position.
type LocationRequest struct {
	Latitude  float64 `json:"lat" binding:"required"`
	Longitude float64 `json:"lon" binding:"required"`
}

// DeliveryResponse is the state of one delivery assignment.
type DeliveryResponse struct {
	ID         int64     `json:"id"`
	OrderID    int64     `json:"order_id"`
	DriverID   int64     `json:"driver_id"`
	Status     string    `json:"status"`
	AssignedAt time.Time `json:"assigned_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TrackingPointResponse is one recorded driver position.
type TrackingPointResponse struct {
	Latitude   float64   `json:"lat"`
	Longitude  float64   `json:"lon"`
	RecordedAt time.Time `json:"recorded_at"`
}

// TrackingResponse is the customer tracking view: delivery state, the live
// position when known, and the trail since the requested time.
type TrackingResponse struct {
	Delivery DeliveryResponse        `json:"delivery"`
	Live     *TrackingPointResponse  `json:"live,omitempty"`
	Points   []TrackingPointResponse `json:"points"`
}

// NewDeliveryResponse converts a delivery model.
func NewDeliveryResponse(d *model.Delivery) DeliveryResponse {
	return DeliveryResponse{
		ID:         d.ID,
		OrderID:    d.OrderID,
		DriverID:   d.DriverID,
		Status:     string(d.Status),
		AssignedAt: d.AssignedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// NewTrackingResponse converts the tracking aggregate.
func NewTrackingResponse(info *usecase.TrackingInfo) TrackingResponse {
	points := make([]TrackingPointResponse, 0, len(info.Points))
	for _, p := range info.Points {
		points = append(points, TrackingPointResponse{
			Latitude:   p.Latitude,
			Longitude:  p.Longitude,
			RecordedAt: p.RecordedAt,
		})
	}
	resp := TrackingResponse{
		Delivery: NewDeliveryResponse(info.Delivery),
		Points:   points,
	}
	if info.Live != nil {
		resp.Live = &TrackingPointResponse{
			Latitude:   info.Live.Latitude,
			Longitude:  info.Live.Longitude,
			RecordedAt: info.Live.RecordedAt,
		}
	}
	return resp
}
