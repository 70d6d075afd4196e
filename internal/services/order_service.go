package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"chaviet/internal/models"
	"chaviet/internal/repositories"
	"chaviet/pkg/rabbitmq"

	"github.com/google/uuid"
)

// OrderService handles the order lifecycle: placement, the forward-only
// status state machine, and the append-only timeline each order carries.
type OrderService struct {
	orderRepo    repositories.OrderRepository
	inventorySvc *InventoryService
	publisher    rabbitmq.Publisher
}

// NewOrderService creates a new OrderService. publisher may be nil, in which
// case lifecycle events are not published.
func NewOrderService(orderRepo repositories.OrderRepository, inventorySvc *InventoryService, publisher rabbitmq.Publisher) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		inventorySvc: inventorySvc,
		publisher:    publisher,
	}
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrdersByUserID retrieves all orders placed by a user.
func (s *OrderService) GetOrdersByUserID(userID string) ([]models.Order, error) {
	return s.orderRepo.GetAllByUserID(userID)
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// PlaceOrder snapshots cart lines into a new pending order, reserves stock
// for every line, and publishes an order.created event. The first timeline
// event is the pending step, left incomplete because it is the current one.
func (s *OrderService) PlaceOrder(userID string, lines []models.CartLine, couponCode string, totals models.CartTotals) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("an order needs at least one line: %w", models.ErrValidation)
	}

	// Reserve before creating the order so a stock shortage surfaces as a
	// clean failure. Roll back earlier reservations if a later line fails.
	var reserved []models.CartLine
	for _, line := range lines {
		if err := s.inventorySvc.Reserve(line.ProductID, line.Quantity); err != nil {
			for _, r := range reserved {
				if relErr := s.inventorySvc.Release(r.ProductID, r.Quantity); relErr != nil {
					log.Printf("Warning: failed to roll back reservation for product %s: %v", r.ProductID, relErr)
				}
			}
			return nil, err
		}
		reserved = append(reserved, line)
	}

	now := time.Now()
	snapshot := make([]models.CartLine, len(lines))
	copy(snapshot, lines)

	newOrder := &models.Order{
		ID:         uuid.New().String(),
		UserID:     userID,
		Lines:      snapshot,
		CouponCode: couponCode,
		Totals:     totals,
		Status:     models.OrderStatusPending,
		Timeline: []models.TimelineEvent{{
			Status:      models.OrderStatusPending,
			Timestamp:   now,
			Description: models.StatusDescription(models.OrderStatusPending),
			Completed:   false,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.orderRepo.Create(newOrder); err != nil {
		for _, r := range reserved {
			if relErr := s.inventorySvc.Release(r.ProductID, r.Quantity); relErr != nil {
				log.Printf("Warning: failed to roll back reservation for product %s: %v", r.ProductID, relErr)
			}
		}
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	s.publishEvent("order.created", newOrder)

	return newOrder, nil
}

// TransitionOrder moves an order to newStatus. Only the forward path
// pending -> processing -> shipped -> delivered and cancellation from
// pending/processing are legal; anything else fails with ErrInvalidTransition
// and the order is untouched. A legal transition completes the previous
// current timeline event and appends one for the new status; terminal events
// are appended already completed so a terminal order has no current step.
func (s *OrderService) TransitionOrder(id, newStatus string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("cannot transition order: %w", err)
	}

	if !models.CanTransition(order.Status, newStatus) {
		return nil, fmt.Errorf("order %s cannot move from %s to %s: %w", id, order.Status, newStatus, models.ErrInvalidTransition)
	}

	// Inventory side effects happen before the status is persisted so a
	// stock failure leaves the order in its prior state.
	switch newStatus {
	case models.OrderStatusShipped:
		for _, line := range order.Lines {
			if err := s.inventorySvc.Fulfill(line.ProductID, line.Quantity); err != nil {
				return nil, fmt.Errorf("failed to fulfill stock for order %s: %w", id, err)
			}
		}
	case models.OrderStatusCancelled:
		for _, line := range order.Lines {
			if err := s.inventorySvc.Release(line.ProductID, line.Quantity); err != nil {
				log.Printf("Warning: failed to release reservation for product %s on cancelled order %s: %v", line.ProductID, id, err)
			}
		}
	}

	for i := range order.Timeline {
		order.Timeline[i].Completed = true
	}
	order.Timeline = append(order.Timeline, models.TimelineEvent{
		Status:      newStatus,
		Timestamp:   time.Now(),
		Description: models.StatusDescription(newStatus),
		Completed:   models.IsTerminalStatus(newStatus),
	})
	order.Status = newStatus

	if err := s.orderRepo.Update(order); err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", id, err)
	}

	s.publishEvent("order.status_changed", order)

	return order, nil
}

// publishEvent publishes an order lifecycle event, logging instead of failing
// when the broker is absent or the publish errors. Order state is already
// persisted at this point; the event stream is best-effort.
func (s *OrderService) publishEvent(routingKey string, order *models.Order) {
	if s.publisher == nil {
		log.Println("RabbitMQ client is not initialized. Skipping message publication.")
		return
	}

	event := rabbitmq.OrderEvent{
		OrderID: order.ID,
		UserID:  order.UserID,
		Status:  order.Status,
		Total:   order.Totals.Total,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal order event to JSON: %v", err)
		return
	}
	if err := s.publisher.Publish(routingKey, body); err != nil {
		log.Printf("Warning: Failed to publish %s event for order %s: %v", routingKey, order.ID, err)
	} else {
		log.Printf("Successfully published %s event for order %s", routingKey, order.ID)
	}
}
