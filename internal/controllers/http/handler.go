package http

import (
	"context"
	"net/http"
	"strconv"

	"shop-service/internal/apperr"
	"shop-service/internal/domain"
	"shop-service/internal/services"

	"github.com/gin-gonic/gin"
)

// Service interfaces are declared on the consumer side so handlers can be
// tested without the concrete services behind them.
type CartAPI interface {
	List(ctx context.Context, userID uint64) ([]domain.CartItemView, error)
	Add(ctx context.Context, userID, productID uint64, quantity int64) (*domain.CartItemView, bool, error)
	Update(ctx context.Context, userID, productID uint64, quantity int64) (*domain.CartItemView, error)
	Remove(ctx context.Context, userID, productID uint64) error
}

type CheckoutAPI interface {
	Checkout(ctx context.Context, userID uint64, paymentMethod string) (*services.CheckoutResult, error)
}

type OrdersAPI interface {
	ListByUser(ctx context.Context, userID uint64) ([]domain.Order, error)
	Cancel(ctx context.Context, userID, orderID uint64) (*domain.Order, error)
}

type Handler struct {
	carts    CartAPI
	checkout CheckoutAPI
	orders   OrdersAPI
}

func NewHandler(carts CartAPI, checkout CheckoutAPI, orders OrdersAPI) *Handler {
	return &Handler{carts: carts, checkout: checkout, orders: orders}
}

func (h *Handler) RegisterRoutes(r *gin.Engine, auth gin.HandlerFunc) {
	cart := r.Group("/cart", auth)
	{
		cart.GET("", h.GetCart)
		cart.POST("/add", h.AddToCart)
		cart.PUT("/update/:productId", h.UpdateQuantity)
		cart.DELETE("/remove/:productId", h.RemoveFromCart)
		cart.POST("/checkout", h.Checkout)
	}

	orders := r.Group("/orders", auth)
	{
		orders.GET("", h.GetOrders)
		orders.PUT("/:id/cancel", h.CancelOrder)
	}
}

func (h *Handler) GetCart(c *gin.Context) {
	items, err := h.carts.List(c.Request.Context(), userFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, CartResponse{Items: items})
}

func (h *Handler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "Product and quantity required"})
		return
	}

	item, merged, err := h.carts.Add(c.Request.Context(), userFrom(c), req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Item added to cart"
	if merged {
		message = "Quantity updated in cart"
	}
	c.JSON(http.StatusOK, CartItemResponse{Message: message, Item: item})
}

func (h *Handler) UpdateQuantity(c *gin.Context) {
	productID, err := parseID(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusNotFound, MessageResponse{Message: "Item not found"})
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "Quantity required"})
		return
	}

	item, err := h.carts.Update(c.Request.Context(), userFrom(c), productID, *req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	if item == nil {
		c.JSON(http.StatusOK, CartItemResponse{Message: "Item removed"})
		return
	}
	c.JSON(http.StatusOK, CartItemResponse{Message: "Quantity updated", Item: item})
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	productID, err := parseID(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusOK, MessageResponse{Message: "Item removed"})
		return
	}

	if err := h.carts.Remove(c.Request.Context(), userFrom(c), productID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Item removed"})
}

func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "Payment method is required"})
		return
	}

	result, err := h.checkout.Checkout(c.Request.Context(), userFrom(c), req.PaymentMethod)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, CheckoutResponse{
		Message:       "Order placed successfully!",
		OrderID:       result.Order.ID,
		PaymentMethod: result.Order.PaymentMethod,
		TotalPrice:    result.Order.TotalPrice,
		Items:         result.Items,
	})
}

func (h *Handler) GetOrders(c *gin.Context) {
	orders, err := h.orders.ListByUser(c.Request.Context(), userFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, OrdersResponse{Orders: orders})
}

func (h *Handler) CancelOrder(c *gin.Context) {
	orderID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, MessageResponse{Message: "Order not found"})
		return
	}

	order, err := h.orders.Cancel(c.Request.Context(), userFrom(c), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, OrderResponse{Message: "Order cancelled successfully", Order: order})
}

func parseID(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), MessageResponse{Message: apperr.MessageOf(err)})
}

func statusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.Unauthorized:
		return http.StatusUnauthorized
	case apperr.InvalidArgument, apperr.InvalidState:
		return http.StatusBadRequest
	case apperr.NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
