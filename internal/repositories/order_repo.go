package repositories

import (
	"chaviet/internal/models"
)

// OrderRepository defines the interface for order data access. Orders are
// append-only: there is no Delete, and Update exists to persist status and
// timeline changes, never to rewrite snapshotted lines.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetAllByUserID(userID string) ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error
	Update(order *models.Order) error
}
