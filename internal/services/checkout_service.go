package services

import (
	"context"
	"log"
	"time"

	"shop-service/internal/apperr"
	"shop-service/internal/domain"
	"shop-service/internal/infra"
	"shop-service/internal/repository"
)

// CheckoutLocker serializes checkouts per user. Acquire blocks for a bounded
// time and its failure is an infrastructure error, never a business one.
type CheckoutLocker interface {
	Acquire(ctx context.Context, userID uint64) (release func(), err error)
}

// CheckoutResult is everything the caller gets back from a placed order.
type CheckoutResult struct {
	Order *domain.Order
	Items []domain.CartItemView
}

type CheckoutService struct {
	carts      repository.CartRepository
	orders     repository.OrderRepository
	prodClient infra.ProductClientInterface
	locker     CheckoutLocker
}

func NewCheckoutService(
	carts repository.CartRepository,
	orders repository.OrderRepository,
	prodClient infra.ProductClientInterface,
	locker CheckoutLocker,
) *CheckoutService {
	return &CheckoutService{
		carts:      carts,
		orders:     orders,
		prodClient: prodClient,
		locker:     locker,
	}
}

// Checkout turns the user's cart into an order in one pass: snapshot the
// cart, price it against live catalog prices, persist the order with its
// notification and outbox event, and clear the cart. Everything before the
// persist leaves the stores untouched; the persist itself is one
// transaction.
func (s *CheckoutService) Checkout(ctx context.Context, userID uint64, paymentMethod string) (*CheckoutResult, error) {
	if paymentMethod == "" {
		return nil, apperr.New(apperr.InvalidArgument, "Payment method is required")
	}

	release, err := s.locker.Acquire(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer release()

	entries, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to load cart", err)
	}
	if len(entries) == 0 {
		return nil, apperr.New(apperr.InvalidState, "Cart is empty")
	}

	// Prices are resolved fresh here, never from the snapshot cache: the
	// total fixed on the order must be the catalog price at checkout time.
	products := make(map[uint64]*infra.ProductInfo, len(entries))
	for _, entry := range entries {
		prod, err := s.prodClient.GetProductByID(ctx, entry.ProductID)
		if err != nil {
			return nil, apperr.Wrap(apperr.Internal, "failed to resolve product", err)
		}
		products[entry.ProductID] = prod
	}

	items, total, err := PriceCart(entries, products)
	if err != nil {
		return nil, err
	}

	status := domain.StatusPaid
	if paymentMethod == domain.PaymentMethodCOD {
		status = domain.StatusPending
	}

	order := &domain.Order{
		UserID:        userID,
		Items:         items,
		TotalPrice:    total,
		PaymentMethod: paymentMethod,
		Status:        status,
		CreatedAt:     time.Now(),
	}

	if err := s.orders.PlaceOrder(ctx, order); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to place order", err)
	}

	log.Printf("order %d placed for user %d, total %d, status %s", order.ID, userID, total, status)

	views := make([]domain.CartItemView, len(entries))
	for i, entry := range entries {
		views[i] = entryView(entry, products[entry.ProductID])
	}

	return &CheckoutResult{Order: order, Items: views}, nil
}
