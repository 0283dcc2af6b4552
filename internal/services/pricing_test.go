package services

import (
	"testing"

	"shop-service/internal/apperr"
	"shop-service/internal/domain"
	"shop-service/internal/infra"

	"github.com/stretchr/testify/assert"
)

func TestPriceCart(t *testing.T) {
	t.Run("totals quantity times unit price per line", func(t *testing.T) {
		entries := []domain.CartEntry{
			CreateMockEntry(1, TestUserID, 1, 2),
			CreateMockEntry(2, TestUserID, 2, 1),
		}
		products := map[uint64]*infra.ProductInfo{
			1: CreateMockProduct(1, "Product A", 10),
			2: CreateMockProduct(2, "Product B", 5),
		}

		items, total, err := PriceCart(entries, products)

		assert.NoError(t, err)
		assert.Equal(t, int64(25), total)
		assert.Len(t, items, 2)

		assert.Equal(t, uint64(1), items[0].ProductID)
		assert.Equal(t, "Product A", items[0].Title)
		assert.Equal(t, int64(10), items[0].UnitPrice)
		assert.Equal(t, int64(2), items[0].Quantity)

		assert.Equal(t, uint64(2), items[1].ProductID)
		assert.Equal(t, int64(5), items[1].UnitPrice)
	})

	t.Run("empty cart is invalid state", func(t *testing.T) {
		items, total, err := PriceCart(nil, nil)

		assert.Error(t, err)
		assert.Equal(t, apperr.InvalidState, apperr.KindOf(err))
		assert.Nil(t, items)
		assert.Zero(t, total)
	})

	t.Run("vanished product aborts the whole cart", func(t *testing.T) {
		entries := []domain.CartEntry{
			CreateMockEntry(1, TestUserID, 1, 2),
			CreateMockEntry(2, TestUserID, 2, 1),
		}
		products := map[uint64]*infra.ProductInfo{
			1: CreateMockProduct(1, "Product A", 10),
			// product 2 deleted between cart-add and checkout
		}

		items, total, err := PriceCart(entries, products)

		assert.Error(t, err)
		assert.Equal(t, apperr.InvalidState, apperr.KindOf(err))
		assert.Nil(t, items)
		assert.Zero(t, total)
	})
}
