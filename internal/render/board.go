package render

import (
	"github.com/shopspring/decimal"

	"pizzetta/internal/domain"
)

// StatusGroup holds the orders sitting at one fulfillment stage, with a
// revenue subtotal.
type StatusGroup struct {
	Status  domain.Status
	Orders  []domain.Order
	Revenue decimal.Decimal
}

// Board is the order book grouped by fulfillment stage, with overall
// totals. Stages with no orders are omitted.
type Board struct {
	Groups  []StatusGroup
	Total   int
	Revenue decimal.Decimal
}

// BuildBoard groups orders by status in lifecycle order, keeping store
// order within each group. Orders carrying a status outside the lifecycle
// (possible only with a hand-edited orders file) are appended after the
// known stages, grouped by their literal status value in first-seen order.
func BuildBoard(orders []domain.Order) Board {
	byStatus := make(map[domain.Status][]domain.Order)
	var unknown []domain.Status
	for _, o := range orders {
		if _, seen := byStatus[o.Status]; !seen && !o.Status.IsValid() {
			unknown = append(unknown, o.Status)
		}
		byStatus[o.Status] = append(byStatus[o.Status], o)
	}

	var board Board
	appendGroup := func(s domain.Status) {
		group := byStatus[s]
		if len(group) == 0 {
			return
		}
		revenue := decimal.Zero
		for _, o := range group {
			revenue = revenue.Add(o.Price)
		}
		board.Groups = append(board.Groups, StatusGroup{
			Status:  s,
			Orders:  group,
			Revenue: revenue,
		})
		board.Total += len(group)
		board.Revenue = board.Revenue.Add(revenue)
	}

	for _, s := range domain.Statuses() {
		appendGroup(s)
	}
	for _, s := range unknown {
		appendGroup(s)
	}
	return board
}
