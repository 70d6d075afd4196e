package models

import "time"

// Order statuses. The lifecycle moves forward one step at a time:
// pending -> processing -> shipped -> delivered. Cancellation is a side
// terminal reachable only while the order is pending or processing.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// OrderStatuses lists every valid status, in lifecycle order.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// orderTransitions encodes the allowed moves of the lifecycle state machine.
// Terminal statuses (delivered, cancelled) have no outgoing transitions.
var orderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
}

// CanTransition reports whether an order may move from one status to another.
// No transition moves backward or skips a step.
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminalStatus reports whether a status permits no further transitions.
func IsTerminalStatus(status string) bool {
	return len(orderTransitions[status]) == 0
}

// statusDescriptions are the human-readable timeline texts per status.
var statusDescriptions = map[string]string{
	OrderStatusPending:    "Order received and awaiting confirmation",
	OrderStatusProcessing: "Order confirmed, preparing your items",
	OrderStatusShipped:    "Package handed to the carrier",
	OrderStatusDelivered:  "Package delivered",
	OrderStatusCancelled:  "Order cancelled",
}

// StatusDescription returns the timeline description for a status.
func StatusDescription(status string) string {
	return statusDescriptions[status]
}

// TimelineEvent is one entry in an order's append-only status timeline.
type TimelineEvent struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
}

// Order represents a customer order. Lines are snapshotted from the cart at
// purchase time and never change afterwards; the timeline only ever grows.
type Order struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	Lines      []CartLine      `json:"lines"`
	CouponCode string          `json:"coupon_code,omitempty"`
	Totals     CartTotals      `json:"totals"`
	Status     string          `json:"status"`
	Timeline   []TimelineEvent `json:"timeline"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CurrentStep returns the first incomplete timeline event, or nil when the
// order is terminal and every event is completed.
func (o *Order) CurrentStep() *TimelineEvent {
	for i := range o.Timeline {
		if !o.Timeline[i].Completed {
			return &o.Timeline[i]
		}
	}
	return nil
}
