// Package domain defines the core types of the order tracker: the Order
// record, its fulfillment Status, and the Menu the pricing and validation
// rules run against.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the fulfillment stage of an order. Orders move through the
// stages strictly forward, one step at a time.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPreparing Status = "PREPARING"
	StatusReady     Status = "READY"
	StatusDelivered Status = "DELIVERED"
)

// statusOrder is the fixed fulfillment sequence. StatusDelivered is terminal.
var statusOrder = []Status{StatusPending, StatusPreparing, StatusReady, StatusDelivered}

// Statuses returns the fulfillment stages in lifecycle order.
func Statuses() []Status {
	out := make([]Status, len(statusOrder))
	copy(out, statusOrder)
	return out
}

// IsValid reports whether s is one of the four fulfillment stages.
func (s Status) IsValid() bool {
	return s.Index() >= 0
}

// Index returns the position of s in the lifecycle sequence, or -1 if s is
// not a known status.
func (s Status) Index() int {
	for i, st := range statusOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// Next returns the status one step after s. The second result is false when
// s is terminal or not a known status.
func (s Status) Next() (Status, bool) {
	i := s.Index()
	if i < 0 || i == len(statusOrder)-1 {
		return "", false
	}
	return statusOrder[i+1], true
}

// Order is one customer's pizza purchase, tracked from creation through
// delivery. ID and CreatedAt are set once at creation and never change;
// Status is the only field that mutates afterwards.
type Order struct {
	ID           string
	CustomerName string
	Size         string
	Toppings     []string // menu whitelist members, insertion order, no duplicates
	Status       Status
	Price        decimal.Decimal
	CreatedAt    time.Time
}

// StatusChange is one entry of the order status history log. From is empty
// for the entry recorded at creation.
type StatusChange struct {
	OrderID   string
	From      Status
	To        Status
	ChangedAt time.Time
}
