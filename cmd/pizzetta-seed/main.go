// Development tool: fill the orders file with realistic fake orders so the
// list, board and archive tools have something to chew on.
//
// Usage:
//
//	go run cmd/pizzetta-seed/main.go -count 20
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"pizzetta/internal/config"
	"pizzetta/internal/domain"
	"pizzetta/internal/engine"
	"pizzetta/internal/store"
	"pizzetta/internal/util"
)

func main() {
	count := flag.Int("count", 10, "number of fake orders to create")
	advance := flag.Bool("advance", true, "advance orders a random number of steps through the lifecycle")
	flag.Parse()

	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)
	util.SetDefault(logger)

	ctx := context.Background()
	eng := engine.NewEngine(cfg.Menu.ToDomain())
	orders := store.NewFileStore(cfg.Storage.OrdersPath(), logger)

	statusLog, err := store.NewSQLiteStore(cfg.Storage.DBPath())
	if err != nil {
		logger.Warn("status history disabled", "path", cfg.Storage.DBPath(), "error", err)
		statusLog = nil
	} else {
		defer statusLog.Close()
	}

	for i, n := 0, *count; i < n; i++ {
		order, err := generateFakeOrder(eng)
		if err != nil {
			log.Fatalf("failed to generate order: %v", err)
		}
		if err := orders.Add(ctx, order); err != nil {
			log.Fatalf("failed to save order: %v", err)
		}
		recordChange(ctx, statusLog, logger, domain.StatusChange{
			OrderID:   order.ID,
			To:        order.Status,
			ChangedAt: order.CreatedAt,
		})

		if *advance {
			advanceRandomly(ctx, eng, orders, statusLog, logger, order)
		}
	}

	slog.Info("seeding complete", "created", *count, "file", cfg.Storage.OrdersPath())
}

// generateFakeOrder builds a priced, validated order with a fake customer
// and a random size and topping selection.
func generateFakeOrder(eng *engine.Engine) (domain.Order, error) {
	menu := eng.Menu()
	sizes := menu.SizeNames()
	size := sizes[gofakeit.Number(0, len(sizes)-1)]

	order, err := eng.CreateOrder(gofakeit.Name(), size, generateFakeToppings(menu))
	if err != nil {
		return domain.Order{}, err
	}

	// Spread creation dates out so per-year archives have something to split.
	order.CreatedAt = gofakeit.DateRange(time.Now().AddDate(0, -6, 0), time.Now())
	return order, nil
}

func generateFakeToppings(menu domain.Menu) []string {
	toppings := make([]string, 0, len(menu.Toppings))
	for _, t := range menu.Toppings {
		if gofakeit.Bool() {
			toppings = append(toppings, t)
		}
	}
	return toppings
}

// advanceRandomly walks an order zero to three steps along the lifecycle,
// persisting and logging each step.
func advanceRandomly(ctx context.Context, eng *engine.Engine, orders *store.FileStore, statusLog *store.SQLiteStore, logger *slog.Logger, order domain.Order) {
	changedAt := order.CreatedAt
	for i, steps := 0, gofakeit.Number(0, 3); i < steps; i++ {
		next, ok := eng.NextStatus(order.Status)
		if !ok {
			return
		}
		updated, err := eng.ApplyStatusTransition(order, next)
		if err != nil {
			logger.Warn("failed to advance seeded order", "id", order.ID, "error", err)
			return
		}
		if _, err := orders.Update(ctx, order.ID, updated); err != nil {
			logger.Warn("failed to save seeded order", "id", order.ID, "error", err)
			return
		}

		changedAt = changedAt.Add(time.Duration(gofakeit.Number(5, 40)) * time.Minute)
		recordChange(ctx, statusLog, logger, domain.StatusChange{
			OrderID:   order.ID,
			From:      order.Status,
			To:        updated.Status,
			ChangedAt: changedAt,
		})
		order = updated
	}
}

func recordChange(ctx context.Context, statusLog *store.SQLiteStore, logger *slog.Logger, change domain.StatusChange) {
	if statusLog == nil {
		return
	}
	if err := statusLog.Append(ctx, change); err != nil {
		logger.Warn("failed to record status change", "order_id", change.OrderID, "error", err)
	}
}
