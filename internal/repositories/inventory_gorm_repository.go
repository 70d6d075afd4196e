package repositories

import (
	"errors"
	"fmt"

	"chaviet/internal/models"

	"gorm.io/gorm"
)

// GORMInventoryRepository is a GORM implementation of InventoryRepository.
type GORMInventoryRepository struct {
	db *gorm.DB
}

// NewGORMInventoryRepository creates a new instance of GORMInventoryRepository.
func NewGORMInventoryRepository(db *gorm.DB) *GORMInventoryRepository {
	return &GORMInventoryRepository{
		db: db,
	}
}

// GetAll retrieves all inventory items from the database.
func (r *GORMInventoryRepository) GetAll() ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := r.db.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get all inventory items: %w", err)
	}
	return items, nil
}

// GetByProductID retrieves the inventory item for a product from the database.
func (r *GORMInventoryRepository) GetByProductID(productID string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.First(&item, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("inventory for product %s: %w", productID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get inventory for product %s: %w", productID, err)
	}
	return &item, nil
}

// Save upserts the inventory item. Save updates all counter columns in a
// single statement, which keeps each adjustment atomic per row.
func (r *GORMInventoryRepository) Save(item *models.InventoryItem) error {
	if err := r.db.Save(item).Error; err != nil {
		return fmt.Errorf("failed to save inventory for product %s: %w", item.ProductID, err)
	}
	return nil
}
