package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"chaviet/internal/models"
	"chaviet/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// CheckoutRequest is the shipping/payment form submitted at checkout.
type CheckoutRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	Phone         string `json:"phone" validate:"required,max=32"`
	Address       string `json:"address" validate:"required,max=255"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=card cod"`
	CardNumber    string `json:"card_number" validate:"required_if=PaymentMethod card,omitempty,numeric,min=12,max=19"`
}

// CartService owns the cart ledger: line mutations, coupon application,
// totals derivation, and checkout. All monetary arithmetic is in integer
// currency units.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
	couponRepo  repositories.CouponRepository
	orderSvc    *OrderService
	validate    *validator.Validate

	freeShippingThreshold int64
	shippingFlatFee       int64
	submitDelay           time.Duration
}

// NewCartService creates a new CartService. freeShippingThreshold and
// shippingFlatFee are in integer currency units; submitDelay models the
// checkout round trip to the payment collaborator.
func NewCartService(
	cartRepo repositories.CartRepository,
	productRepo repositories.ProductRepository,
	couponRepo repositories.CouponRepository,
	orderSvc *OrderService,
	freeShippingThreshold int64,
	shippingFlatFee int64,
	submitDelay time.Duration,
) *CartService {
	return &CartService{
		cartRepo:              cartRepo,
		productRepo:           productRepo,
		couponRepo:            couponRepo,
		orderSvc:              orderSvc,
		validate:              validator.New(),
		freeShippingThreshold: freeShippingThreshold,
		shippingFlatFee:       shippingFlatFee,
		submitDelay:           submitDelay,
	}
}

// GetCart returns the user's cart, or an empty one if none exists yet.
func (s *CartService) GetCart(userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return &models.Cart{UserID: userID}, nil
	}
	return cart, nil
}

// AddOrUpdateLine adds deltaQty to the line for productID, creating the line
// if absent. The resulting quantity is clamped to a minimum of 1: a decrement
// below 1 never removes the line, RemoveLine is the explicit operation for
// that. The unit price is snapshotted from the catalog when the line is first
// created.
func (s *CartService) AddOrUpdateLine(userID, productID string, deltaQty int, giftWrap bool) (*models.Cart, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, fmt.Errorf("cannot add product to cart: %w", err)
	}

	cart, err := s.GetCart(userID)
	if err != nil {
		return nil, err
	}

	if line := cart.FindLine(productID); line != nil {
		line.Quantity += deltaQty
		if line.Quantity < 1 {
			line.Quantity = 1
		}
		line.GiftWrap = giftWrap
	} else {
		qty := deltaQty
		if qty < 1 {
			qty = 1
		}
		cart.Lines = append(cart.Lines, models.CartLine{
			ProductID: productID,
			UnitPrice: product.Price,
			Quantity:  qty,
			GiftWrap:  giftWrap,
		})
	}

	if err := s.cartRepo.Save(cart); err != nil {
		return nil, fmt.Errorf("failed to save cart for user %s: %w", userID, err)
	}
	return cart, nil
}

// RemoveLine deletes the line for productID unconditionally.
func (s *CartService) RemoveLine(userID, productID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("cannot remove line: %w", err)
	}

	kept := cart.Lines[:0]
	for _, line := range cart.Lines {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	cart.Lines = kept

	if err := s.cartRepo.Save(cart); err != nil {
		return nil, fmt.Errorf("failed to save cart for user %s: %w", userID, err)
	}
	return cart, nil
}

// ApplyCoupon applies a coupon code to the cart. An unrecognized code, or a
// cart subtotal below the coupon's minimum order amount, fails with
// ErrInvalidCoupon and leaves the cart unchanged. A recognized code replaces
// any previously applied coupon; at most one is ever active.
func (s *CartService) ApplyCoupon(userID, code string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("cannot apply coupon: %w", err)
	}

	coupon, err := s.couponRepo.GetByCode(code)
	if err != nil {
		return nil, fmt.Errorf("coupon code %q not recognized: %w", code, models.ErrInvalidCoupon)
	}
	if cart.Subtotal() < coupon.MinOrderAmount {
		return nil, fmt.Errorf("coupon %q requires a minimum order of %d: %w", code, coupon.MinOrderAmount, models.ErrInvalidCoupon)
	}

	cart.CouponCode = coupon.Code
	if err := s.cartRepo.Save(cart); err != nil {
		return nil, fmt.Errorf("failed to save cart for user %s: %w", userID, err)
	}
	return cart, nil
}

// ComputeTotals derives the monetary breakdown of the user's cart:
// subtotal is the sum over lines, the discount is the coupon fraction of the
// subtotal rounded down, shipping is waived at or above the free-shipping
// threshold, and total = subtotal - discount + shipping exactly.
func (s *CartService) ComputeTotals(userID string) (models.CartTotals, error) {
	cart, err := s.GetCart(userID)
	if err != nil {
		return models.CartTotals{}, err
	}
	return s.totalsFor(cart), nil
}

func (s *CartService) totalsFor(cart *models.Cart) models.CartTotals {
	if len(cart.Lines) == 0 {
		return models.CartTotals{}
	}

	subtotal := cart.Subtotal()

	var discount int64
	if cart.CouponCode != "" {
		coupon, err := s.couponRepo.GetByCode(cart.CouponCode)
		if err == nil && subtotal >= coupon.MinOrderAmount {
			discount = int64(math.Floor(float64(subtotal) * coupon.DiscountFraction))
		}
	}

	shipping := s.shippingFlatFee
	if subtotal >= s.freeShippingThreshold {
		shipping = 0
	}

	return models.CartTotals{
		Subtotal: subtotal,
		Discount: discount,
		Shipping: shipping,
		Total:    subtotal - discount + shipping,
	}
}

// Checkout validates the shipping form, waits out the submit round trip, and
// converts the cart into a pending order. No state is mutated before the
// round trip resolves, so cancelling ctx mid-submit discards the pending
// result and leaves cart, orders, and inventory untouched.
func (s *CartService) Checkout(ctx context.Context, userID string, req CheckoutRequest) (*models.Order, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("checkout form rejected: %v: %w", err, models.ErrValidation)
	}

	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil || len(cart.Lines) == 0 {
		return nil, fmt.Errorf("cart is empty: %w", models.ErrValidation)
	}

	totals := s.totalsFor(cart)

	// Simulated payment round trip. The only suspension point in the flow;
	// everything after it runs to completion.
	if s.submitDelay > 0 {
		timer := time.NewTimer(s.submitDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("checkout cancelled: %w", ctx.Err())
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("checkout cancelled: %w", err)
	}

	order, err := s.orderSvc.PlaceOrder(userID, cart.Lines, cart.CouponCode, totals)
	if err != nil {
		return nil, err
	}

	// The cart is consumed by a successful checkout.
	if err := s.cartRepo.Delete(userID); err != nil {
		log.Printf("Warning: failed to delete cart for user %s after checkout: %v", userID, err)
	}

	return order, nil
}
