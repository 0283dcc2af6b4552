package mysql

import (
	"context"
	"errors"
	"log"

	"shop-service/internal/domain"
	"shop-service/internal/repository"

	"gorm.io/gorm"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

// PlaceOrder writes the order with its items, the user notification, the
// outbox event and the cart clear as one transaction. The notification and
// event need the generated order id, so they are built after the insert.
func (r *orderRepo) PlaceOrder(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			log.Printf("order insert error: %v", err)
			return err
		}
		if order.ID == 0 {
			return errors.New("failed to assign order ID")
		}

		notif := &domain.Notification{
			UserID:  order.UserID,
			Message: domain.OrderPlacedMessage(order.ID),
		}
		if err := tx.Create(notif).Error; err != nil {
			log.Printf("notification insert error: %v", err)
			return err
		}

		event, err := domain.NewOrderPlacedOutboxEvent(order)
		if err != nil {
			return err
		}
		if err := tx.Create(event).Error; err != nil {
			log.Printf("outbox insert error: %v", err)
			return err
		}

		if err := tx.Where("user_id = ?", order.UserID).
			Delete(&domain.CartEntry{}).Error; err != nil {
			log.Printf("cart clear error: %v", err)
			return err
		}

		return nil
	})
}

func (r *orderRepo) FindByID(ctx context.Context, userID, orderID uint64) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("FindByID error: %v", err)
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByUser(ctx context.Context, userID uint64) ([]domain.Order, error) {
	var out []domain.Order
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		log.Printf("FindByUser error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) UpdateStatusIfPending(ctx context.Context, userID, orderID uint64, status domain.OrderStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ? AND user_id = ? AND status = ?", orderID, userID, domain.StatusPending).
		Update("status", status)
	if res.Error != nil {
		log.Printf("UpdateStatusIfPending error: %v", res.Error)
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
