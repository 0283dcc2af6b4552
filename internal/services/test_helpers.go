package services

import (
	"shop-service/internal/domain"
	"shop-service/internal/infra"
)

func CreateMockEntry(id, userID, productID uint64, quantity int64) domain.CartEntry {
	return domain.CartEntry{
		ID:        id,
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
}

func CreateMockProduct(id uint64, title string, price int64, images ...string) *infra.ProductInfo {
	return &infra.ProductInfo{
		ID:     id,
		Title:  title,
		Price:  price,
		Images: images,
	}
}

const (
	TestUserID       = uint64(7)
	TestProductID    = uint64(1)
	TestProductName  = "Test Product"
	TestProductPrice = int64(1000)
)
