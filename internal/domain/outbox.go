package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OutboxEvent is a durable publication record written in the same transaction
// as the state change it describes. The relay publishes unprocessed rows to
// the broker and stamps PublishedAt, so a crash between commit and publish is
// re-driven on the next poll.
type OutboxEvent struct {
	ID          uint64     `gorm:"primaryKey;autoIncrement"`
	EventID     string     `gorm:"size:36;uniqueIndex"`
	AggregateID uint64     `gorm:"not null;index"`
	EventType   string     `gorm:"size:64;not null"`
	Payload     []byte     `gorm:"type:json;not null"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	PublishedAt *time.Time `gorm:"index"`
}

func (OutboxEvent) TableName() string {
	return "outbox_events"
}

func NewOrderPlacedOutboxEvent(order *Order) (*OutboxEvent, error) {
	payload, err := json.Marshal(OrderPlacedEvent{
		OrderID:       order.ID,
		UserID:        order.UserID,
		TotalPrice:    order.TotalPrice,
		PaymentMethod: order.PaymentMethod,
		Status:        order.Status,
		CreatedAt:     order.CreatedAt,
	})
	if err != nil {
		return nil, err
	}

	return &OutboxEvent{
		EventID:     uuid.NewString(),
		AggregateID: order.ID,
		EventType:   EventTypeOrderPlaced,
		Payload:     payload,
	}, nil
}
