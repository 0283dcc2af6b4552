package mysql

import (
	"context"
	"log"
	"time"

	"shop-service/internal/domain"
	"shop-service/internal/repository"

	"gorm.io/gorm"
)

type outboxRepo struct {
	db *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) repository.OutboxRepository {
	return &outboxRepo{db: db}
}

func (r *outboxRepo) FetchUnpublished(ctx context.Context, limit int) ([]domain.OutboxEvent, error) {
	var out []domain.OutboxEvent
	if err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("id ASC").
		Limit(limit).
		Find(&out).Error; err != nil {
		log.Printf("outbox fetch error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *outboxRepo) MarkPublished(ctx context.Context, id uint64) error {
	now := time.Now()
	if err := r.db.WithContext(ctx).Model(&domain.OutboxEvent{}).
		Where("id = ?", id).
		Update("published_at", &now).Error; err != nil {
		log.Printf("outbox mark error: %v", err)
		return err
	}
	return nil
}
