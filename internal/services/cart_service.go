package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"shop-service/internal/apperr"
	"shop-service/internal/domain"
	"shop-service/internal/infra"
	"shop-service/internal/repository"

	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/errgroup"
)

const (
	productCacheTTL   = time.Minute
	enrichConcurrency = 4
)

type CartService struct {
	repo        repository.CartRepository
	prodClient  infra.ProductClientInterface
	redisClient *redis.Client
}

func NewCartService(repo repository.CartRepository, prodClient infra.ProductClientInterface) *CartService {
	return &CartService{
		repo:       repo,
		prodClient: prodClient,
	}
}

// SetRedisClient enables the product snapshot cache. With no client set the
// service goes straight to the catalog on every read.
func (s *CartService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

// List returns the user's cart with each entry enriched by a live catalog
// lookup. An empty cart is an empty list, and entries whose product has been
// deleted come back with placeholder display fields instead of an error.
func (s *CartService) List(ctx context.Context, userID uint64) ([]domain.CartItemView, error) {
	entries, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to load cart", err)
	}

	views := make([]domain.CartItemView, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)

	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			prod, err := s.getProductCached(gctx, entry.ProductID)
			if err != nil {
				return apperr.Wrap(apperr.Internal, "failed to resolve product", err)
			}
			views[i] = entryView(entry, prod)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return views, nil
}

// Add merges quantity into an existing (user, product) entry or creates one.
// The returned flag reports whether an existing entry was merged into.
func (s *CartService) Add(ctx context.Context, userID, productID uint64, quantity int64) (*domain.CartItemView, bool, error) {
	if productID == 0 || quantity <= 0 {
		return nil, false, apperr.New(apperr.InvalidArgument, "Product and quantity required")
	}

	prod, err := s.getProductCached(ctx, productID)
	if err != nil {
		return nil, false, apperr.Wrap(apperr.Internal, "failed to resolve product", err)
	}
	if prod == nil {
		return nil, false, apperr.New(apperr.NotFound, "Product not found")
	}

	entry, err := s.repo.AddQuantity(ctx, userID, productID, quantity)
	if err != nil {
		return nil, false, apperr.Wrap(apperr.Internal, "failed to add to cart", err)
	}
	if entry == nil {
		return nil, false, apperr.New(apperr.Internal, "cart entry missing after add")
	}

	view := entryView(*entry, prod)
	merged := entry.Quantity != quantity
	return &view, merged, nil
}

// Update sets (not increments) the quantity of an existing entry. A quantity
// of zero or less removes the entry; the returned view is nil in that case.
func (s *CartService) Update(ctx context.Context, userID, productID uint64, quantity int64) (*domain.CartItemView, error) {
	if quantity <= 0 {
		if err := s.repo.Delete(ctx, userID, productID); err != nil {
			return nil, apperr.Wrap(apperr.Internal, "failed to remove from cart", err)
		}
		return nil, nil
	}

	entry, err := s.repo.SetQuantity(ctx, userID, productID, quantity)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to update cart", err)
	}
	if entry == nil {
		return nil, apperr.New(apperr.NotFound, "Item not found")
	}

	prod, err := s.getProductCached(ctx, productID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to resolve product", err)
	}

	view := entryView(*entry, prod)
	return &view, nil
}

// Remove deletes the entry if present. Removing an absent entry is not an
// error.
func (s *CartService) Remove(ctx context.Context, userID, productID uint64) error {
	if err := s.repo.Delete(ctx, userID, productID); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to remove from cart", err)
	}
	return nil
}

func (s *CartService) getProductCached(ctx context.Context, productID uint64) (*infra.ProductInfo, error) {
	cacheKey := fmt.Sprintf("product:%d", productID)

	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var prod infra.ProductInfo
			if err := json.Unmarshal([]byte(cached), &prod); err == nil {
				return &prod, nil
			}
		}
	}

	prod, err := s.prodClient.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil && prod != nil {
		if data, err := json.Marshal(prod); err == nil {
			if err := s.redisClient.Set(ctx, cacheKey, data, productCacheTTL).Err(); err != nil {
				log.Printf("product cache set failed: %v", err)
			}
		}
	}

	return prod, nil
}

func entryView(entry domain.CartEntry, prod *infra.ProductInfo) domain.CartItemView {
	view := domain.CartItemView{
		ID:       entry.ID,
		Quantity: entry.Quantity,
		Product: domain.ProductView{
			ID:    entry.ProductID,
			Title: domain.PlaceholderTitle,
			Image: domain.PlaceholderImage,
		},
	}
	if prod != nil {
		view.Product.Title = prod.Title
		view.Product.Price = prod.Price
		if img := prod.PrimaryImage(); img != "" {
			view.Product.Image = img
		}
	}
	return view
}
