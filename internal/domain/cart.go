package domain

import "time"

// CartEntry is one (user, product) row prior to checkout. The composite
// unique index makes merge-on-add an upsert instead of a read-then-write.
type CartEntry struct {
	ID        uint64    `json:"_id" gorm:"primaryKey;autoIncrement"`
	UserID    uint64    `json:"-" gorm:"not null;uniqueIndex:idx_cart_user_product"`
	ProductID uint64    `json:"-" gorm:"not null;uniqueIndex:idx_cart_user_product"`
	Quantity  int64     `json:"quantity" gorm:"not null"`
	CreatedAt time.Time `json:"-" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"-" gorm:"autoUpdateTime"`
}

func (CartEntry) TableName() string {
	return "cart_entries"
}

// ProductView is the read-time product snapshot embedded in cart responses.
// It is never a source of truth; it is re-resolved from the catalog on read.
type ProductView struct {
	ID    uint64 `json:"_id"`
	Title string `json:"title"`
	Price int64  `json:"price"`
	Image string `json:"image"`
}

type CartItemView struct {
	ID       uint64      `json:"_id"`
	Quantity int64       `json:"quantity"`
	Product  ProductView `json:"product"`
}

// Placeholder values used when a cart entry references a product that has
// since been removed from the catalog. Read paths must not fail for this.
const (
	PlaceholderTitle = "No Title"
	PlaceholderImage = "placeholder.jpg"
)
