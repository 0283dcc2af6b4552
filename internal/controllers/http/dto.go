package http

import "shop-service/internal/domain"

type AddToCartRequest struct {
	ProductID uint64 `json:"productId" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required"`
}

// Quantity is a pointer so a literal 0 still binds: zero means "remove".
type UpdateQuantityRequest struct {
	Quantity *int64 `json:"quantity" binding:"required"`
}

type CheckoutRequest struct {
	PaymentMethod string `json:"paymentMethod" binding:"required"`
}

type CartResponse struct {
	Items []domain.CartItemView `json:"items"`
}

type CartItemResponse struct {
	Message string               `json:"message"`
	Item    *domain.CartItemView `json:"item,omitempty"`
}

type CheckoutResponse struct {
	Message       string                `json:"message"`
	OrderID       uint64                `json:"orderId"`
	PaymentMethod string                `json:"paymentMethod"`
	TotalPrice    int64                 `json:"totalPrice"`
	Items         []domain.CartItemView `json:"items"`
}

type OrdersResponse struct {
	Orders []domain.Order `json:"orders"`
}

type OrderResponse struct {
	Message string        `json:"message"`
	Order   *domain.Order `json:"order"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
