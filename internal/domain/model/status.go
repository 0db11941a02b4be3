package model

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusNew            OrderStatus = "NEW"
	OrderStatusConfirmed      OrderStatus = "CONFIRMED"
	OrderStatusPreparing      OrderStatus = "PREPARING"
	OrderStatusReady          OrderStatus = "READY"
	OrderStatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
	OrderStatusFailed         OrderStatus = "FAILED"
)

var orderNext = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusNew:            {OrderStatusConfirmed: true, OrderStatusCancelled: true},
	OrderStatusConfirmed:      {OrderStatusPreparing: true, OrderStatusCancelled: true},
	OrderStatusPreparing:      {OrderStatusReady: true, OrderStatusCancelled: true},
	OrderStatusReady:          {OrderStatusOutForDelivery: true},
	OrderStatusOutForDelivery: {OrderStatusDelivered: true, OrderStatusFailed: true},
	OrderStatusDelivered:      {},
	OrderStatusCancelled:      {},
	OrderStatusFailed:         {},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to OrderStatus) bool {
	return orderNext[from][to]
}

// Valid reports whether the status is one of the known lifecycle states.
func (s OrderStatus) Valid() bool {
	_, ok := orderNext[s]
	return ok
}

// TerminalStatus reports whether no further transitions are allowed.
func TerminalStatus(s OrderStatus) bool {
	next, ok := orderNext[s]
	return ok && len(next) == 0
}

// DeliveryStatus is the lifecycle state of a delivery assignment.
type DeliveryStatus string

const (
	DeliveryStatusAssigned  DeliveryStatus = "ASSIGNED"
	DeliveryStatusPickedUp  DeliveryStatus = "PICKED_UP"
	DeliveryStatusEnRoute   DeliveryStatus = "EN_ROUTE"
	DeliveryStatusDelivered DeliveryStatus = "DELIVERED"
	DeliveryStatusFailed    DeliveryStatus = "FAILED"
)

var deliveryNext = map[DeliveryStatus]map[DeliveryStatus]bool{
	DeliveryStatusAssigned:  {DeliveryStatusPickedUp: true, DeliveryStatusFailed: true},
	DeliveryStatusPickedUp:  {DeliveryStatusEnRoute: true, DeliveryStatusFailed: true},
	DeliveryStatusEnRoute:   {DeliveryStatusDelivered: true, DeliveryStatusFailed: true},
	DeliveryStatusDelivered: {},
	DeliveryStatusFailed:    {},
}

// CanTransitionDelivery reports whether a delivery may move between statuses.
func CanTransitionDelivery(from, to DeliveryStatus) bool {
	return deliveryNext[from][to]
}

// Valid reports whether the status is one of the known delivery states.
func (s DeliveryStatus) Valid() bool {
	_, ok := deliveryNext[s]
	return ok
}
