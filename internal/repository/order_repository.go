package repository

import (
	"context"

	"shop-service/internal/domain"
)

type OrderRepository interface {
	// PlaceOrder commits the whole checkout write set in one transaction:
	// the order with its items, the user notification, the outbox event and
	// the cart clear. Either all of it lands or none of it does.
	PlaceOrder(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, userID, orderID uint64) (*domain.Order, error)
	FindByUser(ctx context.Context, userID uint64) ([]domain.Order, error)
	// UpdateStatusIfPending applies the transition only while the order is
	// still Pending and reports whether it was applied.
	UpdateStatusIfPending(ctx context.Context, userID, orderID uint64, status domain.OrderStatus) (bool, error)
}
