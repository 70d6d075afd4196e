package repositories

import (
	"chaviet/internal/models"
)

// InventoryRepository defines the interface for stock counter data access.
// Implementations must make Save atomic per item; the service layer performs
// read-modify-write cycles and last-writer-wins is the accepted outcome for
// concurrent adjustments.
type InventoryRepository interface {
	GetAll() ([]models.InventoryItem, error)
	GetByProductID(productID string) (*models.InventoryItem, error)
	Save(item *models.InventoryItem) error
}
