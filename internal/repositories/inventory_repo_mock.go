package repositories

import (
	"fmt"
	"sync"

	"chaviet/internal/models"
)

// MockInventoryRepository is an in-memory implementation of InventoryRepository.
type MockInventoryRepository struct {
	items map[string]models.InventoryItem
	mu    sync.RWMutex
}

// NewMockInventoryRepository creates a new instance of MockInventoryRepository.
func NewMockInventoryRepository() *MockInventoryRepository {
	return &MockInventoryRepository{
		items: make(map[string]models.InventoryItem),
	}
}

// GetAll returns all inventory items.
func (r *MockInventoryRepository) GetAll() ([]models.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	itemList := make([]models.InventoryItem, 0, len(r.items))
	for _, item := range r.items {
		itemList = append(itemList, item)
	}
	return itemList, nil
}

// GetByProductID returns the inventory item for a product.
func (r *MockInventoryRepository) GetByProductID(productID string) (*models.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[productID]
	if !ok {
		return nil, fmt.Errorf("inventory for product %s: %w", productID, models.ErrNotFound)
	}
	return &item, nil
}

// Save stores the inventory item, creating it if absent.
func (r *MockInventoryRepository) Save(item *models.InventoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ProductID] = *item
	return nil
}
