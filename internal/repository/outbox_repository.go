package repository

import (
	"context"

	"shop-service/internal/domain"
)

type OutboxRepository interface {
	FetchUnpublished(ctx context.Context, limit int) ([]domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id uint64) error
}
