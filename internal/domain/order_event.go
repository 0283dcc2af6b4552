package domain

import "time"

const EventTypeOrderPlaced = "order.placed"

type OrderPlacedEvent struct {
	OrderID       uint64      `json:"orderId"`
	UserID        uint64      `json:"userId"`
	TotalPrice    int64       `json:"totalPrice"`
	PaymentMethod string      `json:"paymentMethod"`
	Status        OrderStatus `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
}
