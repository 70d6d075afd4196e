package repositories

import (
	"chaviet/internal/models"
)

// CartRepository defines the interface for cart data access. Carts are
// session-scoped: one per user, created on first use and deleted when
// checkout completes.
type CartRepository interface {
	GetByUserID(userID string) (*models.Cart, error)
	Save(cart *models.Cart) error
	Delete(userID string) error
}
