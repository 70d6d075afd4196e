package services

import (
	"fmt"

	"chaviet/internal/models"
	"chaviet/internal/repositories"
)

// InventoryService owns the inventory ledger: stock adjustments for the
// back-office plus the reserve/release/fulfill cycle driven by the order
// lifecycle.
type InventoryService struct {
	repo repositories.InventoryRepository
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(repo repositories.InventoryRepository) *InventoryService {
	return &InventoryService{
		repo: repo,
	}
}

// GetAll retrieves all inventory items.
func (s *InventoryService) GetAll() ([]models.InventoryItem, error) {
	return s.repo.GetAll()
}

// GetByProductID retrieves the inventory item for a product.
func (s *InventoryService) GetByProductID(productID string) (*models.InventoryItem, error) {
	return s.repo.GetByProductID(productID)
}

// EnsureItem creates a zero-stock inventory row for a product if one does not
// exist yet. Called when a product is added to the catalog.
func (s *InventoryService) EnsureItem(productID string, lowStockThreshold int) (*models.InventoryItem, error) {
	if item, err := s.repo.GetByProductID(productID); err == nil {
		return item, nil
	}
	item := &models.InventoryItem{
		ProductID:         productID,
		LowStockThreshold: lowStockThreshold,
	}
	if err := s.repo.Save(item); err != nil {
		return nil, fmt.Errorf("failed to create inventory for product %s: %w", productID, err)
	}
	return item, nil
}

// Adjust applies a stock adjustment. Mode "add" increases current stock,
// "remove" decreases it flooring at 0, "set" overwrites it. Amount must be
// strictly positive for add/remove and non-negative for set; anything else
// fails with ErrInvalidAmount and changes nothing. Reserved stock is clamped
// so it never exceeds the new current stock.
func (s *InventoryService) Adjust(productID, mode string, amount int) (*models.InventoryItem, error) {
	switch mode {
	case models.AdjustModeAdd, models.AdjustModeRemove:
		if amount <= 0 {
			return nil, fmt.Errorf("amount must be a positive integer for %s: %w", mode, models.ErrInvalidAmount)
		}
	case models.AdjustModeSet:
		if amount < 0 {
			return nil, fmt.Errorf("amount must be non-negative for set: %w", models.ErrInvalidAmount)
		}
	default:
		return nil, fmt.Errorf("unknown adjustment mode %q: %w", mode, models.ErrInvalidAmount)
	}

	item, err := s.repo.GetByProductID(productID)
	if err != nil {
		return nil, fmt.Errorf("cannot adjust stock: %w", err)
	}

	switch mode {
	case models.AdjustModeAdd:
		item.CurrentStock += amount
	case models.AdjustModeRemove:
		item.CurrentStock -= amount
		if item.CurrentStock < 0 {
			item.CurrentStock = 0
		}
	case models.AdjustModeSet:
		item.CurrentStock = amount
	}
	if item.ReservedStock > item.CurrentStock {
		item.ReservedStock = item.CurrentStock
	}

	if err := s.repo.Save(item); err != nil {
		return nil, fmt.Errorf("failed to save adjusted stock for product %s: %w", productID, err)
	}
	return item, nil
}

// Reserve holds qty units for an unfulfilled order, reducing available stock
// without touching current stock. Fails when fewer than qty units are
// available.
func (s *InventoryService) Reserve(productID string, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("reserve quantity must be positive: %w", models.ErrInvalidAmount)
	}

	item, err := s.repo.GetByProductID(productID)
	if err != nil {
		return fmt.Errorf("cannot reserve stock: %w", err)
	}
	if item.Available() < qty {
		return fmt.Errorf("insufficient stock for product %s (requested: %d, available: %d)", productID, qty, item.Available())
	}

	item.ReservedStock += qty
	if err := s.repo.Save(item); err != nil {
		return fmt.Errorf("failed to save reservation for product %s: %w", productID, err)
	}
	return nil
}

// Release returns qty reserved units to availability, flooring reserved stock
// at 0. Used when an order is cancelled.
func (s *InventoryService) Release(productID string, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("release quantity must be positive: %w", models.ErrInvalidAmount)
	}

	item, err := s.repo.GetByProductID(productID)
	if err != nil {
		return fmt.Errorf("cannot release stock: %w", err)
	}

	item.ReservedStock -= qty
	if item.ReservedStock < 0 {
		item.ReservedStock = 0
	}
	if err := s.repo.Save(item); err != nil {
		return fmt.Errorf("failed to save release for product %s: %w", productID, err)
	}
	return nil
}

// Fulfill consumes qty reserved units when an order ships: both current and
// reserved stock drop, so available stock is unchanged by the shipment.
func (s *InventoryService) Fulfill(productID string, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("fulfill quantity must be positive: %w", models.ErrInvalidAmount)
	}

	item, err := s.repo.GetByProductID(productID)
	if err != nil {
		return fmt.Errorf("cannot fulfill stock: %w", err)
	}

	item.CurrentStock -= qty
	if item.CurrentStock < 0 {
		item.CurrentStock = 0
	}
	item.ReservedStock -= qty
	if item.ReservedStock < 0 {
		item.ReservedStock = 0
	}
	if err := s.repo.Save(item); err != nil {
		return fmt.Errorf("failed to save fulfillment for product %s: %w", productID, err)
	}
	return nil
}
