package engine

import (
	"fmt"
	"strings"

	"pizzetta/internal/domain"
)

// ValidationError reports order input that breaks a menu rule. Exactly one
// field is at fault per error; for toppings, Values carries every name that
// is off the menu, not just the first one found.
type ValidationError struct {
	Field   string   // "customer_name", "pizza_size" or "toppings"
	Values  []string // offending values, empty for the blank-name case
	Allowed []string // accepted values for the field, when applicable
}

func (e *ValidationError) Error() string {
	switch e.Field {
	case "customer_name":
		return "customer name cannot be empty"
	case "pizza_size":
		return fmt.Sprintf("invalid size %q: choose from %s",
			e.Values[0], strings.Join(e.Allowed, ", "))
	case "toppings":
		return fmt.Sprintf("invalid toppings %s: choose from %s",
			strings.Join(e.Values, ", "), strings.Join(e.Allowed, ", "))
	}
	return "invalid order input"
}

// InvalidTransitionError reports a status change the lifecycle does not
// allow: an unknown target status, or a target that is neither the current
// status nor exactly one step ahead of it.
type InvalidTransitionError struct {
	From domain.Status
	To   domain.Status
}

func (e *InvalidTransitionError) Error() string {
	if !e.To.IsValid() {
		return fmt.Sprintf("unknown status %q: choose from %s",
			string(e.To), joinStatuses(domain.Statuses()))
	}
	next, ok := e.From.Next()
	switch {
	case !e.From.IsValid():
		return fmt.Sprintf("order has unrecognized status %q", string(e.From))
	case !ok:
		return fmt.Sprintf("cannot move order from %s to %s: %s is the final status",
			e.From, e.To, e.From)
	default:
		return fmt.Sprintf("cannot move order from %s to %s: the only allowed next status is %s",
			e.From, e.To, next)
	}
}

func joinStatuses(statuses []domain.Status) string {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
