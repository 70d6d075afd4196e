package models

import "gorm.io/gorm"

// Product categories carried by the storefront.
const (
	CategoryTea    = "tea"
	CategoryLiquor = "liquor"
)

// Product represents a product in the store catalog.
// Names are bilingual: Name holds the Chinese listing name, NameVi the
// Vietnamese one. Price is in integer currency units so monetary math never
// touches floating point.
type Product struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string `json:"name" validate:"required,min=1,max=100"`
	NameVi      string `json:"name_vi" validate:"omitempty,max=100"`
	Category    string `json:"category" validate:"required,oneof=tea liquor"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Price       int64  `json:"price" validate:"required,gt=0"`
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
