package domain

import "time"

type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusPaid      OrderStatus = "Paid"
	StatusCancelled OrderStatus = "Cancelled"
)

// PaymentMethodCOD is the only payment method with deferred payment; every
// other method is treated as settled at checkout. Matching is exact and
// case-sensitive.
const PaymentMethodCOD = "COD"

// OrderItem denormalizes product identity, title and unit price at checkout
// time so a later catalog deletion cannot corrupt historical orders.
type OrderItem struct {
	ID        uint64 `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID   uint64 `json:"-" gorm:"not null;index"`
	ProductID uint64 `json:"productId" gorm:"not null"`
	Title     string `json:"title" gorm:"not null"`
	UnitPrice int64  `json:"price" gorm:"not null"`
	Quantity  int64  `json:"quantity" gorm:"not null"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

type Order struct {
	ID            uint64      `json:"_id" gorm:"primaryKey;autoIncrement"`
	UserID        uint64      `json:"-" gorm:"not null;index"`
	Items         []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	TotalPrice    int64       `json:"totalPrice" gorm:"not null"`
	PaymentMethod string      `json:"paymentMethod" gorm:"not null"`
	Status        OrderStatus `json:"status" gorm:"type:enum('Pending','Paid','Cancelled');default:'Pending'"`
	CreatedAt     time.Time   `json:"createdAt" gorm:"autoCreateTime"`
}

func (Order) TableName() string {
	return "orders"
}
