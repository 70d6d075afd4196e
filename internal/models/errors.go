package models

import "errors"

// Domain error kinds. Services wrap these with fmt.Errorf("...: %w", err) so
// handlers can map them to HTTP statuses with errors.Is.
var (
	// ErrInvalidCoupon indicates an unrecognized coupon code, or a coupon
	// whose minimum order amount the cart does not meet.
	ErrInvalidCoupon = errors.New("invalid coupon")

	// ErrInvalidTransition indicates an order status change the lifecycle
	// state machine does not permit.
	ErrInvalidTransition = errors.New("invalid order status transition")

	// ErrInvalidAmount indicates a malformed inventory adjustment quantity.
	ErrInvalidAmount = errors.New("invalid adjustment amount")

	// ErrValidation indicates a missing or malformed required field on a
	// user-submitted form.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")
)
