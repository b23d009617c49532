// Package render formats orders for terminal display. It is shared by the
// interactive client and the command line tools; styling stays with the
// clients, everything here is plain text.
package render

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"pizzetta/internal/domain"
)

// FormatPrice formats a price as $X.XX.
func FormatPrice(p decimal.Decimal) string {
	return "$" + p.StringFixed(2)
}

// ShortID returns the first eight characters of an order ID, with an
// ellipsis when the ID is longer. UUIDs stay recognizable without flooding
// a table row.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8] + "..."
}

// FormatToppings joins topping names for display, or returns "No toppings".
func FormatToppings(toppings []string) string {
	if len(toppings) == 0 {
		return "No toppings"
	}
	return strings.Join(toppings, ", ")
}

// FormatTime formats an order timestamp for display.
func FormatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// Table column widths.
const (
	colID       = 12
	colCustomer = 18
	colSize     = 8
	colToppings = 34
	colStatus   = 11
)

// OrdersTable renders orders as a fixed-width text table with a header row.
func OrdersTable(orders []domain.Order) string {
	var b strings.Builder
	b.WriteString(padOrTrunc("ID", colID))
	b.WriteString(padOrTrunc("CUSTOMER", colCustomer))
	b.WriteString(padOrTrunc("SIZE", colSize))
	b.WriteString(padOrTrunc("TOPPINGS", colToppings))
	b.WriteString(padOrTrunc("STATUS", colStatus))
	b.WriteString("PRICE\n")
	for _, o := range orders {
		b.WriteString(padOrTrunc(ShortID(o.ID), colID))
		b.WriteString(padOrTrunc(o.CustomerName, colCustomer))
		b.WriteString(padOrTrunc(o.Size, colSize))
		b.WriteString(padOrTrunc(FormatToppings(o.Toppings), colToppings))
		b.WriteString(padOrTrunc(string(o.Status), colStatus))
		b.WriteString(FormatPrice(o.Price))
		b.WriteByte('\n')
	}
	return b.String()
}

// padOrTrunc fits s into exactly width characters, truncating or padding
// with spaces as needed.
func padOrTrunc(s string, width int) string {
	if len(s) > width {
		return s[:width-1] + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}
