package repositories

import (
	"chaviet/internal/models"
)

// CouponRepository defines the interface for coupon lookups.
type CouponRepository interface {
	GetByCode(code string) (*models.Coupon, error)
	Create(coupon *models.Coupon) error
}
