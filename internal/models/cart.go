package models

import "time"

// CartLine represents a single purchasable line in a cart. UnitPrice is the
// product price snapshotted when the line was first added, in integer
// currency units. Quantity is never below 1; removal of a line is a distinct
// operation, not a decrement to zero.
type CartLine struct {
	ProductID string `json:"product_id"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	GiftWrap  bool   `json:"gift_wrap"`
}

// Cart holds the line items and the single applied coupon for one user's
// session. It is mutated only through CartService.
type Cart struct {
	UserID     string     `json:"user_id"`
	Lines      []CartLine `json:"lines"`
	CouponCode string     `json:"coupon_code,omitempty"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// FindLine returns a pointer to the line for productID, or nil.
func (c *Cart) FindLine(productID string) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return &c.Lines[i]
		}
	}
	return nil
}

// Subtotal sums unit price times quantity over all lines.
func (c *Cart) Subtotal() int64 {
	var subtotal int64
	for _, line := range c.Lines {
		subtotal += line.UnitPrice * int64(line.Quantity)
	}
	return subtotal
}

// Coupon represents a discount code. DiscountFraction is applied to the cart
// subtotal and the result floored to integer currency units. MinOrderAmount
// is the smallest subtotal the coupon accepts.
type Coupon struct {
	Code             string  `json:"code"`
	DiscountFraction float64 `json:"discount_fraction"`
	MinOrderAmount   int64   `json:"min_order_amount"`
}

// CartTotals is the derived monetary breakdown of a cart. The invariant
// Total == Subtotal - Discount + Shipping holds exactly in integer units.
type CartTotals struct {
	Subtotal int64 `json:"subtotal"`
	Discount int64 `json:"discount"`
	Shipping int64 `json:"shipping"`
	Total    int64 `json:"total"`
}
