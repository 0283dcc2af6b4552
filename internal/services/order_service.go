package services

import (
	"context"
	"log"

	"shop-service/internal/apperr"
	"shop-service/internal/domain"
	"shop-service/internal/repository"
)

type OrderService struct {
	repo repository.OrderRepository
}

func NewOrderService(repo repository.OrderRepository) *OrderService {
	return &OrderService{repo: repo}
}

func (s *OrderService) ListByUser(ctx context.Context, userID uint64) ([]domain.Order, error) {
	orders, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to load orders", err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

// Cancel transitions Pending -> Cancelled. The transition is guarded in SQL
// so a concurrent cancel or payment cannot apply it twice.
func (s *OrderService) Cancel(ctx context.Context, userID, orderID uint64) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, userID, orderID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to load order", err)
	}
	if order == nil {
		return nil, apperr.New(apperr.NotFound, "Order not found")
	}
	if order.Status != domain.StatusPending {
		return nil, apperr.New(apperr.InvalidState, "Only pending orders can be cancelled")
	}

	applied, err := s.repo.UpdateStatusIfPending(ctx, userID, orderID, domain.StatusCancelled)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to cancel order", err)
	}
	if !applied {
		return nil, apperr.New(apperr.InvalidState, "Only pending orders can be cancelled")
	}

	log.Printf("order %d cancelled by user %d", orderID, userID)

	order.Status = domain.StatusCancelled
	return order, nil
}
