package services

import (
	"log"

	"chaviet/internal/models"
	"chaviet/internal/repositories"
)

// defaultLowStockThreshold is used for inventory rows created alongside new
// catalog entries until the back office sets a product-specific threshold.
const defaultLowStockThreshold = 10

// ProductService handles business logic related to the product catalog.
type ProductService struct {
	repo         repositories.ProductRepository
	inventorySvc *InventoryService
}

// NewProductService creates a new ProductService. inventorySvc may be nil;
// then no inventory rows are created for new products.
func NewProductService(repo repositories.ProductRepository, inventorySvc *InventoryService) *ProductService {
	return &ProductService{
		repo:         repo,
		inventorySvc: inventorySvc,
	}
}

// GetAllProducts retrieves all products, optionally filtered by category.
// An empty category returns the whole catalog.
func (s *ProductService) GetAllProducts(category string) ([]models.Product, error) {
	if category == "" {
		return s.repo.GetAll()
	}
	return s.repo.GetByCategory(category)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a new catalog entry and its zero-stock inventory row.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if err := s.repo.Create(product); err != nil {
		return err
	}
	if s.inventorySvc != nil {
		if _, err := s.inventorySvc.EnsureItem(product.ID, defaultLowStockThreshold); err != nil {
			log.Printf("Warning: failed to create inventory row for product %s: %v", product.ID, err)
		}
	}
	return nil
}

// UpdateProduct updates an existing product.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	return s.repo.Update(product)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}
