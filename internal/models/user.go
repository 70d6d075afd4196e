package models

import "gorm.io/gorm"

// User represents a storefront customer or back-office operator. Locale is
// the preferred UI language ("zh" or "vi") and defaults to "zh".
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	Locale     string `json:"locale" gorm:"type:varchar(8)" validate:"omitempty,oneof=zh vi"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
