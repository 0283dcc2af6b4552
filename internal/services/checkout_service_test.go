package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"shop-service/internal/apperr"
	"shop-service/internal/domain"
	"shop-service/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func grantingLocker() *mocks.MockLocker {
	locker := new(mocks.MockLocker)
	locker.On("Acquire", mock.Anything, mock.AnythingOfType("uint64")).
		Return(func() {}, nil).Maybe()
	return locker
}

func TestCheckoutService_Checkout(t *testing.T) {
	twoLineCart := []domain.CartEntry{
		CreateMockEntry(1, TestUserID, 1, 2),
		CreateMockEntry(2, TestUserID, 2, 1),
	}

	tests := []struct {
		name           string
		paymentMethod  string
		setupMocks     func(*mocks.MockCartRepository, *mocks.MockOrderRepository, *mocks.MockProductClient)
		expectedKind   apperr.Kind
		expectedError  bool
		expectedTotal  int64
		expectedStatus domain.OrderStatus
	}{
		{
			name:          "COD checkout totals the cart and stays pending",
			paymentMethod: domain.PaymentMethodCOD,
			setupMocks: func(carts *mocks.MockCartRepository, orders *mocks.MockOrderRepository, prod *mocks.MockProductClient) {
				carts.On("FindByUser", mock.Anything, TestUserID).Return(twoLineCart, nil)
				prod.On("GetProductByID", mock.Anything, uint64(1)).
					Return(CreateMockProduct(1, "Product A", 10, "a.jpg"), nil)
				prod.On("GetProductByID", mock.Anything, uint64(2)).
					Return(CreateMockProduct(2, "Product B", 5), nil)
				orders.On("PlaceOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).
					Return(nil).
					Run(func(args mock.Arguments) {
						order := args.Get(1).(*domain.Order)
						order.ID = 42
					})
			},
			expectedTotal:  25,
			expectedStatus: domain.StatusPending,
		},
		{
			name:          "card checkout is marked paid",
			paymentMethod: "card",
			setupMocks: func(carts *mocks.MockCartRepository, orders *mocks.MockOrderRepository, prod *mocks.MockProductClient) {
				carts.On("FindByUser", mock.Anything, TestUserID).Return(twoLineCart[:1], nil)
				prod.On("GetProductByID", mock.Anything, uint64(1)).
					Return(CreateMockProduct(1, "Product A", 10), nil)
				orders.On("PlaceOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).
					Return(nil).
					Run(func(args mock.Arguments) {
						args.Get(1).(*domain.Order).ID = 43
					})
			},
			expectedTotal:  20,
			expectedStatus: domain.StatusPaid,
		},
		{
			name:          "missing payment method",
			paymentMethod: "",
			setupMocks: func(carts *mocks.MockCartRepository, orders *mocks.MockOrderRepository, prod *mocks.MockProductClient) {
			},
			expectedError: true,
			expectedKind:  apperr.InvalidArgument,
		},
		{
			name:          "empty cart",
			paymentMethod: domain.PaymentMethodCOD,
			setupMocks: func(carts *mocks.MockCartRepository, orders *mocks.MockOrderRepository, prod *mocks.MockProductClient) {
				carts.On("FindByUser", mock.Anything, TestUserID).Return([]domain.CartEntry{}, nil)
			},
			expectedError: true,
			expectedKind:  apperr.InvalidState,
		},
		{
			name:          "product deleted before checkout aborts",
			paymentMethod: domain.PaymentMethodCOD,
			setupMocks: func(carts *mocks.MockCartRepository, orders *mocks.MockOrderRepository, prod *mocks.MockProductClient) {
				carts.On("FindByUser", mock.Anything, TestUserID).Return(twoLineCart, nil)
				prod.On("GetProductByID", mock.Anything, uint64(1)).
					Return(CreateMockProduct(1, "Product A", 10), nil)
				prod.On("GetProductByID", mock.Anything, uint64(2)).Return(nil, nil)
			},
			expectedError: true,
			expectedKind:  apperr.InvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCarts := new(mocks.MockCartRepository)
			mockOrders := new(mocks.MockOrderRepository)
			mockProd := new(mocks.MockProductClient)
			tt.setupMocks(mockCarts, mockOrders, mockProd)

			service := NewCheckoutService(mockCarts, mockOrders, mockProd, grantingLocker())
			result, err := service.Checkout(context.Background(), TestUserID, tt.paymentMethod)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedKind, apperr.KindOf(err))
				assert.Nil(t, result)
				mockOrders.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)
				assert.NotZero(t, result.Order.ID)
				assert.Equal(t, tt.expectedTotal, result.Order.TotalPrice)
				assert.Equal(t, tt.expectedStatus, result.Order.Status)
				assert.Equal(t, tt.paymentMethod, result.Order.PaymentMethod)
				assert.Len(t, result.Items, len(result.Order.Items))
				assert.WithinDuration(t, time.Now(), result.Order.CreatedAt, time.Second)

				var sum int64
				for _, item := range result.Order.Items {
					sum += item.UnitPrice * item.Quantity
				}
				assert.Equal(t, result.Order.TotalPrice, sum)
			}

			mockCarts.AssertExpectations(t)
			mockOrders.AssertExpectations(t)
			mockProd.AssertExpectations(t)
		})
	}
}

func TestCheckoutService_LockTimeout(t *testing.T) {
	mockCarts := new(mocks.MockCartRepository)
	mockOrders := new(mocks.MockOrderRepository)
	mockProd := new(mocks.MockProductClient)

	locker := new(mocks.MockLocker)
	locker.On("Acquire", mock.Anything, TestUserID).
		Return(nil, apperr.New(apperr.Internal, "checkout lock wait timed out"))

	service := NewCheckoutService(mockCarts, mockOrders, mockProd, locker)
	result, err := service.Checkout(context.Background(), TestUserID, domain.PaymentMethodCOD)

	assert.Error(t, err)
	assert.Equal(t, apperr.Internal, apperr.KindOf(err))
	assert.Nil(t, result)
	mockCarts.AssertNotCalled(t, "FindByUser", mock.Anything, mock.Anything)
	mockOrders.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything)
}

// serialLocker admits one holder at a time, like the redis lock does in
// production. The second of two racing checkouts runs after the first
// committed and must fail on the now-empty cart.
type serialLocker struct {
	mu sync.Mutex
}

func (l *serialLocker) Acquire(_ context.Context, _ uint64) (func(), error) {
	l.mu.Lock()
	return func() { l.mu.Unlock() }, nil
}

func TestCheckoutService_ConcurrentCheckoutsOnlyOneSucceeds(t *testing.T) {
	carts := newMemCartRepo()
	_, err := carts.AddQuantity(context.Background(), TestUserID, 1, 2)
	assert.NoError(t, err)

	mockProd := new(mocks.MockProductClient)
	mockProd.On("GetProductByID", mock.Anything, uint64(1)).
		Return(CreateMockProduct(1, "Product A", 10), nil)

	mockOrders := new(mocks.MockOrderRepository)
	mockOrders.On("PlaceOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).
		Return(nil).
		Run(func(args mock.Arguments) {
			order := args.Get(1).(*domain.Order)
			order.ID = 42
			// PlaceOrder clears the cart in the same transaction.
			_ = carts.Delete(context.Background(), order.UserID, 1)
		})

	service := NewCheckoutService(carts, mockOrders, mockProd, &serialLocker{})

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = service.Checkout(context.Background(), TestUserID, domain.PaymentMethodCOD)
		}(i)
	}
	wg.Wait()

	var failures int
	for _, err := range results {
		if err != nil {
			assert.Equal(t, apperr.InvalidState, apperr.KindOf(err))
			failures++
		}
	}
	assert.Equal(t, 1, failures)
	mockOrders.AssertNumberOfCalls(t, "PlaceOrder", 1)
}
