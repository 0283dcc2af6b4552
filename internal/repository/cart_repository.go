package repository

import (
	"context"

	"shop-service/internal/domain"
)

// CartRepository returns (nil, nil) from lookups when no row matches; the
// service layer decides whether that is an error.
type CartRepository interface {
	// AddQuantity merges quantity into the (user, product) entry, creating it
	// if absent. The increment is a single atomic statement, not a
	// read-then-write.
	AddQuantity(ctx context.Context, userID, productID uint64, quantity int64) (*domain.CartEntry, error)
	SetQuantity(ctx context.Context, userID, productID uint64, quantity int64) (*domain.CartEntry, error)
	Delete(ctx context.Context, userID, productID uint64) error
	FindByUser(ctx context.Context, userID uint64) ([]domain.CartEntry, error)
	FindOne(ctx context.Context, userID, productID uint64) (*domain.CartEntry, error)
}
