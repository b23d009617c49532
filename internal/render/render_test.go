package render

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"pizzetta/internal/domain"
)

func TestFormatPrice(t *testing.T) {
	if got := FormatPrice(decimal.NewFromFloat(17.99)); got != "$17.99" {
		t.Errorf("FormatPrice(17.99) = %q, want $17.99", got)
	}
	if got := FormatPrice(decimal.NewFromFloat(10.5)); got != "$10.50" {
		t.Errorf("FormatPrice(10.5) = %q, want $10.50", got)
	}
	if got := FormatPrice(decimal.Zero); got != "$0.00" {
		t.Errorf("FormatPrice(0) = %q, want $0.00", got)
	}
}

func TestShortID(t *testing.T) {
	long := "a3f8c1d2-9b7e-4f01-a2c3-d4e5f6a7b8c9"
	if got := ShortID(long); got != "a3f8c1d2..." {
		t.Errorf("ShortID(%q) = %q, want a3f8c1d2...", long, got)
	}
	if got := ShortID("short"); got != "short" {
		t.Errorf("ShortID(short) = %q, want short", got)
	}
}

func TestFormatToppings(t *testing.T) {
	if got := FormatToppings(nil); got != "No toppings" {
		t.Errorf("FormatToppings(nil) = %q, want No toppings", got)
	}
	if got := FormatToppings([]string{"cheese"}); got != "cheese" {
		t.Errorf("FormatToppings([cheese]) = %q, want cheese", got)
	}
	if got := FormatToppings([]string{"cheese", "olives"}); got != "cheese, olives" {
		t.Errorf("FormatToppings = %q, want %q", got, "cheese, olives")
	}
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2025, 3, 14, 12, 30, 5, 0, time.UTC)
	if got := FormatTime(ts); got != "2025-03-14 12:30:05" {
		t.Errorf("FormatTime = %q, want 2025-03-14 12:30:05", got)
	}
}

func TestOrdersTable(t *testing.T) {
	orders := []domain.Order{
		{
			ID:           "a3f8c1d2-9b7e-4f01-a2c3-d4e5f6a7b8c9",
			CustomerName: "Ann",
			Size:         "medium",
			Toppings:     []string{"cheese", "olives"},
			Status:       domain.StatusPending,
			Price:        decimal.NewFromFloat(17.99),
		},
		{
			ID:           "b1b1b1b1-0000-0000-0000-000000000000",
			CustomerName: "Bob",
			Size:         "small",
			Status:       domain.StatusReady,
			Price:        decimal.NewFromFloat(10.99),
		},
	}

	table := OrdersTable(orders)
	lines := strings.Split(strings.TrimRight(table, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("table has %d lines, want header plus 2 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[0], "PRICE") {
		t.Errorf("header = %q, want ID ... PRICE", lines[0])
	}
	if !strings.Contains(lines[1], "a3f8c1d2...") || !strings.Contains(lines[1], "$17.99") {
		t.Errorf("first row = %q, want short id and price", lines[1])
	}
	if !strings.Contains(lines[2], "No toppings") {
		t.Errorf("second row = %q, want No toppings placeholder", lines[2])
	}
}

func TestPadOrTrunc(t *testing.T) {
	if got := padOrTrunc("abc", 6); got != "abc   " {
		t.Errorf("padOrTrunc(abc, 6) = %q", got)
	}
	if got := padOrTrunc("abcdefgh", 6); got != "abcde " {
		t.Errorf("padOrTrunc(abcdefgh, 6) = %q", got)
	}
	if got := padOrTrunc("abcdef", 6); got != "abcdef" {
		t.Errorf("padOrTrunc(abcdef, 6) = %q", got)
	}
}

func boardOrder(id string, status domain.Status, price float64) domain.Order {
	return domain.Order{
		ID:     id,
		Status: status,
		Price:  decimal.NewFromFloat(price),
	}
}

func TestBuildBoard(t *testing.T) {
	orders := []domain.Order{
		boardOrder("o1", domain.StatusReady, 10.99),
		boardOrder("o2", domain.StatusPending, 17.99),
		boardOrder("o3", domain.StatusPending, 12.49),
		boardOrder("o4", domain.StatusDelivered, 18.99),
	}

	board := BuildBoard(orders)

	// PREPARING is empty and must be omitted; the rest follow lifecycle order.
	wantStatuses := []domain.Status{domain.StatusPending, domain.StatusReady, domain.StatusDelivered}
	if len(board.Groups) != len(wantStatuses) {
		t.Fatalf("board has %d groups, want %d", len(board.Groups), len(wantStatuses))
	}
	for i, want := range wantStatuses {
		if board.Groups[i].Status != want {
			t.Errorf("group[%d].Status = %q, want %q", i, board.Groups[i].Status, want)
		}
	}

	// Store order is preserved within a group.
	pending := board.Groups[0]
	if len(pending.Orders) != 2 || pending.Orders[0].ID != "o2" || pending.Orders[1].ID != "o3" {
		t.Errorf("PENDING group order = %v, want [o2 o3]", pending.Orders)
	}
	if got := pending.Revenue.StringFixed(2); got != "30.48" {
		t.Errorf("PENDING revenue = %s, want 30.48", got)
	}

	if board.Total != 4 {
		t.Errorf("board.Total = %d, want 4", board.Total)
	}
	if got := board.Revenue.StringFixed(2); got != "60.46" {
		t.Errorf("board.Revenue = %s, want 60.46", got)
	}
}

func TestBuildBoardUnknownStatusLast(t *testing.T) {
	orders := []domain.Order{
		boardOrder("o1", "LIMBO", 1.00),
		boardOrder("o2", domain.StatusPending, 2.00),
	}

	board := BuildBoard(orders)
	if len(board.Groups) != 2 {
		t.Fatalf("board has %d groups, want 2", len(board.Groups))
	}
	if board.Groups[0].Status != domain.StatusPending {
		t.Errorf("first group = %q, want PENDING", board.Groups[0].Status)
	}
	if board.Groups[1].Status != "LIMBO" {
		t.Errorf("last group = %q, want LIMBO", board.Groups[1].Status)
	}
	if board.Total != 2 {
		t.Errorf("board.Total = %d, want 2", board.Total)
	}
}

func TestBuildBoardEmpty(t *testing.T) {
	board := BuildBoard(nil)
	if len(board.Groups) != 0 || board.Total != 0 {
		t.Errorf("BuildBoard(nil) = %+v, want empty board", board)
	}
	if got := board.Revenue.StringFixed(2); got != "0.00" {
		t.Errorf("empty board revenue = %s, want 0.00", got)
	}
}
