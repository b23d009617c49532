// Package engine implements the order rules: input validation against the
// menu, price computation, and the forward-only status transition policy.
// Everything here is pure computation over domain values; persistence is the
// store's concern.
package engine

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pizzetta/internal/domain"
)

// Engine applies the order rules for a single menu. The menu is fixed at
// construction; build a second Engine to serve a different one.
type Engine struct {
	menu domain.Menu
}

// NewEngine creates an Engine that validates and prices against menu.
func NewEngine(menu domain.Menu) *Engine {
	return &Engine{menu: menu}
}

// Menu returns the menu this engine works against.
func (e *Engine) Menu() domain.Menu {
	return e.menu
}

// Validate checks order input against the menu:
//
//   - the customer name must be non-empty after trimming whitespace,
//   - the size must be one of the menu's size names,
//   - every topping must be on the topping whitelist.
//
// The returned *ValidationError names the offending field; when toppings are
// rejected it lists all of the unknown ones at once.
func (e *Engine) Validate(customerName, size string, toppings []string) error {
	if strings.TrimSpace(customerName) == "" {
		return &ValidationError{Field: "customer_name"}
	}
	if _, ok := e.menu.BasePrice(size); !ok {
		return &ValidationError{
			Field:   "pizza_size",
			Values:  []string{size},
			Allowed: e.menu.SizeNames(),
		}
	}
	var unknown []string
	for _, t := range toppings {
		if !e.menu.HasTopping(t) {
			unknown = append(unknown, t)
		}
	}
	if len(unknown) > 0 {
		return &ValidationError{
			Field:   "toppings",
			Values:  unknown,
			Allowed: append([]string(nil), e.menu.Toppings...),
		}
	}
	return nil
}

// Price computes the cost of a pizza: the size's base price plus the
// per-topping surcharge for each topping, rounded to two decimal places.
// Rounding is half away from zero, so a half-cent boundary rounds up for
// positive prices.
func (e *Engine) Price(size string, toppings []string) (decimal.Decimal, error) {
	base, ok := e.menu.BasePrice(size)
	if !ok {
		return decimal.Decimal{}, &ValidationError{
			Field:   "pizza_size",
			Values:  []string{size},
			Allowed: e.menu.SizeNames(),
		}
	}
	count := decimal.NewFromInt(int64(len(toppings)))
	return base.Add(e.menu.ToppingPrice.Mul(count)).Round(2), nil
}

// CreateOrder validates the input and, on success, builds a new Order with a
// fresh ID, the trimmed customer name, status PENDING, the computed price
// and the current time. The input topping slice is copied, not retained.
func (e *Engine) CreateOrder(customerName, size string, toppings []string) (domain.Order, error) {
	if err := e.Validate(customerName, size, toppings); err != nil {
		return domain.Order{}, err
	}
	price, err := e.Price(size, toppings)
	if err != nil {
		return domain.Order{}, err
	}
	return domain.Order{
		ID:           uuid.NewString(),
		CustomerName: strings.TrimSpace(customerName),
		Size:         size,
		Toppings:     append([]string(nil), toppings...),
		Status:       domain.StatusPending,
		Price:        price,
		CreatedAt:    time.Now(),
	}, nil
}

// NextStatus returns the status one step after current. The second result
// is false when current is DELIVERED or not a known status.
func (e *Engine) NextStatus(current domain.Status) (domain.Status, bool) {
	return current.Next()
}

// ApplyStatusTransition returns order with its status moved to next. The
// move must be a no-op (next equals the current status) or exactly one step
// forward; anything else, including an unknown target status, fails with
// *InvalidTransitionError and leaves the order as it was. No other field is
// touched.
func (e *Engine) ApplyStatusTransition(order domain.Order, next domain.Status) (domain.Order, error) {
	if !next.IsValid() {
		return order, &InvalidTransitionError{From: order.Status, To: next}
	}
	if next == order.Status {
		return order, nil
	}
	cur := order.Status.Index()
	if cur < 0 || next.Index() != cur+1 {
		return order, &InvalidTransitionError{From: order.Status, To: next}
	}
	order.Status = next
	return order, nil
}
