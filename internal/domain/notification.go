package domain

import (
	"fmt"
	"time"
)

// Notification is the user-visible record of a placed order. Created once
// per successful checkout, in the same transaction as the order itself.
type Notification struct {
	ID        uint64    `json:"_id" gorm:"primaryKey;autoIncrement"`
	UserID    uint64    `json:"-" gorm:"not null;index"`
	Message   string    `json:"message" gorm:"not null"`
	Read      bool      `json:"read" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (Notification) TableName() string {
	return "notifications"
}

func OrderPlacedMessage(orderID uint64) string {
	return fmt.Sprintf("Your order #%d has been placed successfully!", orderID)
}
