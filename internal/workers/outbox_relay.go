package workers

import (
	"context"
	"encoding/json"
	"log"
	"time"

	rabbit "shop-service/internal/infra/rabbitmq"
	"shop-service/internal/repository"
)

// OutboxRelay drains the outbox table to the broker. Events stay in the table
// until the publish succeeds, so a crash between the checkout commit and the
// publish is retried on the next tick rather than lost.
type OutboxRelay struct {
	repo      repository.OutboxRepository
	publisher rabbit.PublisherInterface
	tick      time.Duration
	batchSize int
}

func NewOutboxRelay(repo repository.OutboxRepository, publisher rabbit.PublisherInterface) *OutboxRelay {
	return &OutboxRelay{
		repo:      repo,
		publisher: publisher,
		tick:      time.Second,
		batchSize: 100,
	}
}

func (r *OutboxRelay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.publishPending(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (r *OutboxRelay) publishPending(ctx context.Context) {
	events, err := r.repo.FetchUnpublished(ctx, r.batchSize)
	if err != nil {
		log.Printf("failed to fetch outbox events: %v", err)
		return
	}

	for _, event := range events {
		if err := r.publisher.Publish(ctx, event.EventType, json.RawMessage(event.Payload)); err != nil {
			log.Printf("failed to publish outbox event %d: %v", event.ID, err)
			continue
		}

		if err := r.repo.MarkPublished(ctx, event.ID); err != nil {
			// The event will be re-published next tick; consumers key on the
			// uuid event id to dedupe.
			log.Printf("failed to mark outbox event %d published: %v", event.ID, err)
		}
	}
}
