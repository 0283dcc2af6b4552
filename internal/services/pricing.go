package services

import (
	"shop-service/internal/apperr"
	"shop-service/internal/domain"
	"shop-service/internal/infra"
)

// PriceCart converts cart entries plus the products resolved at checkout time
// into immutable order line items and the order total. Totals are fixed here
// and never recomputed, so the products map must hold live catalog prices.
//
// An empty cart and any entry whose product no longer resolves both abort
// pricing: dropping a vanished line silently would charge the user for a
// different cart than the one they reviewed.
func PriceCart(entries []domain.CartEntry, products map[uint64]*infra.ProductInfo) ([]domain.OrderItem, int64, error) {
	if len(entries) == 0 {
		return nil, 0, apperr.New(apperr.InvalidState, "Cart is empty")
	}

	items := make([]domain.OrderItem, 0, len(entries))
	var total int64

	for _, entry := range entries {
		prod := products[entry.ProductID]
		if prod == nil {
			return nil, 0, apperr.Newf(apperr.InvalidState, "Product %d is no longer available", entry.ProductID)
		}

		items = append(items, domain.OrderItem{
			ProductID: entry.ProductID,
			Title:     prod.Title,
			UnitPrice: prod.Price,
			Quantity:  entry.Quantity,
		})
		total += prod.Price * entry.Quantity
	}

	return items, total, nil
}
