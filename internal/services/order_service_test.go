package services_test

import (
	"testing"

	"chaviet/internal/models"
	"chaviet/internal/repositories"
	"chaviet/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPublisher is a mock implementation of rabbitmq.Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(routingKey string, body []byte) error {
	args := m.Called(routingKey, body)
	return args.Error(0)
}

// orderFixture wires an OrderService over in-memory repositories with one
// stocked product.
type orderFixture struct {
	orderSvc     *services.OrderService
	inventorySvc *services.InventoryService
	publisher    *MockPublisher
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	orderRepo := repositories.NewMockOrderRepository()
	inventoryRepo := repositories.NewMockInventoryRepository()
	assert.NoError(t, inventoryRepo.Save(&models.InventoryItem{
		ProductID:         "oolong",
		CurrentStock:      30,
		LowStockThreshold: 30,
	}))

	publisher := new(MockPublisher)
	inventorySvc := services.NewInventoryService(inventoryRepo)
	orderSvc := services.NewOrderService(orderRepo, inventorySvc, publisher)

	return &orderFixture{
		orderSvc:     orderSvc,
		inventorySvc: inventorySvc,
		publisher:    publisher,
	}
}

func (f *orderFixture) placeOrder(t *testing.T, qty int) *models.Order {
	t.Helper()

	f.publisher.On("Publish", "order.created", mock.Anything).Return(nil).Once()
	order, err := f.orderSvc.PlaceOrder("user-1",
		[]models.CartLine{{ProductID: "oolong", UnitPrice: 2680, Quantity: qty}},
		"", models.CartTotals{Subtotal: 2680 * int64(qty), Total: 2680 * int64(qty)})
	assert.NoError(t, err)
	return order
}

func TestOrderService_PlaceOrder(t *testing.T) {
	f := newOrderFixture(t)

	order := f.placeOrder(t, 2)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Len(t, order.Timeline, 1)
	assert.Equal(t, models.OrderStatusPending, order.Timeline[0].Status)
	assert.False(t, order.Timeline[0].Completed)
	assert.Equal(t, order.Timeline[0].Status, order.CurrentStep().Status)
	f.publisher.AssertExpectations(t)

	item, err := f.inventorySvc.GetByProductID("oolong")
	assert.NoError(t, err)
	assert.Equal(t, 2, item.ReservedStock)
	assert.Equal(t, 28, item.Available())
}

func TestOrderService_PlaceOrder_InsufficientStock(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.orderSvc.PlaceOrder("user-1",
		[]models.CartLine{{ProductID: "oolong", UnitPrice: 2680, Quantity: 99}},
		"", models.CartTotals{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient stock")

	item, err := f.inventorySvc.GetByProductID("oolong")
	assert.NoError(t, err)
	assert.Equal(t, 0, item.ReservedStock)
}

func TestOrderService_ForwardTransitions(t *testing.T) {
	f := newOrderFixture(t)
	order := f.placeOrder(t, 1)

	// pending -> processing -> shipped -> delivered, one step at a time.
	for _, status := range []string{
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
	} {
		f.publisher.On("Publish", "order.status_changed", mock.Anything).Return(nil).Once()
		updated, err := f.orderSvc.TransitionOrder(order.ID, status)
		assert.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
	f.publisher.AssertExpectations(t)

	// Delivered is terminal: four events, all completed, no current step.
	final, err := f.orderSvc.GetOrderByID(order.ID)
	assert.NoError(t, err)
	assert.Len(t, final.Timeline, 4)
	for _, event := range final.Timeline {
		assert.True(t, event.Completed)
	}
	assert.Nil(t, final.CurrentStep())

	// Timeline timestamps never decrease.
	for i := 1; i < len(final.Timeline); i++ {
		assert.False(t, final.Timeline[i].Timestamp.Before(final.Timeline[i-1].Timestamp))
	}

	// Shipping consumed the reservation: current stock dropped with it.
	item, err := f.inventorySvc.GetByProductID("oolong")
	assert.NoError(t, err)
	assert.Equal(t, 29, item.CurrentStock)
	assert.Equal(t, 0, item.ReservedStock)
}

func TestOrderService_IllegalTransitions(t *testing.T) {
	f := newOrderFixture(t)
	order := f.placeOrder(t, 1)

	// Skipping a step or moving backward is rejected.
	for _, status := range []string{
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
		models.OrderStatusPending,
	} {
		_, err := f.orderSvc.TransitionOrder(order.ID, status)
		assert.ErrorIs(t, err, models.ErrInvalidTransition)
	}

	// Unknown statuses are rejected too.
	_, err := f.orderSvc.TransitionOrder(order.ID, "refunded")
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	// The failed attempts changed nothing.
	unchanged, err := f.orderSvc.GetOrderByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, unchanged.Status)
	assert.Len(t, unchanged.Timeline, 1)
}

func TestOrderService_CancellationWindow(t *testing.T) {
	f := newOrderFixture(t)

	// Cancellation from pending releases the reservation.
	order := f.placeOrder(t, 3)
	f.publisher.On("Publish", "order.status_changed", mock.Anything).Return(nil).Once()
	cancelled, err := f.orderSvc.TransitionOrder(order.ID, models.OrderStatusCancelled)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)
	assert.Nil(t, cancelled.CurrentStep())

	item, err := f.inventorySvc.GetByProductID("oolong")
	assert.NoError(t, err)
	assert.Equal(t, 0, item.ReservedStock)
	assert.Equal(t, 30, item.CurrentStock)

	// The window closes once shipped: cancel fails, deliver succeeds and
	// appends a completed delivered event.
	order = f.placeOrder(t, 1)
	f.publisher.On("Publish", "order.status_changed", mock.Anything).Return(nil).Times(3)
	_, err = f.orderSvc.TransitionOrder(order.ID, models.OrderStatusProcessing)
	assert.NoError(t, err)
	_, err = f.orderSvc.TransitionOrder(order.ID, models.OrderStatusShipped)
	assert.NoError(t, err)

	_, err = f.orderSvc.TransitionOrder(order.ID, models.OrderStatusCancelled)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	delivered, err := f.orderSvc.TransitionOrder(order.ID, models.OrderStatusDelivered)
	assert.NoError(t, err)
	last := delivered.Timeline[len(delivered.Timeline)-1]
	assert.Equal(t, models.OrderStatusDelivered, last.Status)
	assert.True(t, last.Completed)

	// Terminal states permit nothing further.
	_, err = f.orderSvc.TransitionOrder(delivered.ID, models.OrderStatusProcessing)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
	_, err = f.orderSvc.TransitionOrder(cancelled.ID, models.OrderStatusProcessing)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}
