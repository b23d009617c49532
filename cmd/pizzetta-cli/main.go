// Scriptable command line front end for the pizzetta order tracker.
//
// Usage:
//
//	pizzetta-cli <command> [arguments]
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"pizzetta/internal/config"
	"pizzetta/internal/domain"
	"pizzetta/internal/engine"
	"pizzetta/internal/render"
	"pizzetta/internal/store"
	"pizzetta/internal/util"
)

const version = "0.1.0"

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: pizzetta-cli <command> [arguments]\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  version                                  Print the CLI version\n")
	fmt.Fprintf(os.Stderr, "  menu                                     Show sizes, prices and toppings\n")
	fmt.Fprintf(os.Stderr, "  create <customer> <size> [topping ...]   Create a new order\n")
	fmt.Fprintf(os.Stderr, "  list [status]                            List orders, optionally filtered by status\n")
	fmt.Fprintf(os.Stderr, "  board                                    Group orders by status\n")
	fmt.Fprintf(os.Stderr, "  show <id>                                Show one order and its status history\n")
	fmt.Fprintf(os.Stderr, "  advance <id> [status]                    Move an order to the next status\n")
	fmt.Fprintf(os.Stderr, "  history <id>                             Show the status history of an order\n")
	fmt.Fprintf(os.Stderr, "  delete <id>                              Delete an order\n")
	fmt.Fprintf(os.Stderr, "\n")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	if os.Args[1] == "version" {
		fmt.Printf("pizzetta-cli %s\n", version)
		return
	}

	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	util.SetDefault(logger)

	eng := engine.NewEngine(cfg.Menu.ToDomain())
	orders := store.NewFileStore(cfg.Storage.OrdersPath(), logger)

	statusLog, err := store.NewSQLiteStore(cfg.Storage.DBPath())
	if err != nil {
		logger.Warn("status history disabled", "path", cfg.Storage.DBPath(), "error", err)
		statusLog = nil
	}

	ctx := context.Background()

	var runErr error
	switch os.Args[1] {
	case "menu":
		runErr = runMenu(eng)
	case "create":
		runErr = runCreate(ctx, os.Args[2:], eng, orders, statusLog, logger)
	case "list":
		runErr = runList(ctx, os.Args[2:], orders)
	case "board":
		runErr = runBoard(ctx, orders)
	case "show":
		runErr = runShow(ctx, os.Args[2:], orders, statusLog)
	case "advance":
		runErr = runAdvance(ctx, os.Args[2:], eng, orders, statusLog, logger)
	case "history":
		runErr = runHistory(ctx, os.Args[2:], orders, statusLog)
	case "delete":
		runErr = runDelete(ctx, os.Args[2:], orders, logger)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if statusLog != nil {
		statusLog.Close()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", runErr)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

func runMenu(eng *engine.Engine) error {
	menu := eng.Menu()

	fmt.Println("Sizes:")
	for _, s := range menu.Sizes {
		fmt.Printf("  %-8s %s\n", s.Name, render.FormatPrice(s.Base))
	}
	fmt.Printf("Toppings (%s each):\n", render.FormatPrice(menu.ToppingPrice))
	for _, t := range menu.Toppings {
		fmt.Printf("  %s\n", t)
	}
	return nil
}

func runCreate(ctx context.Context, args []string, eng *engine.Engine, orders *store.FileStore, statusLog *store.SQLiteStore, logger *slog.Logger) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: pizzetta-cli create <customer> <size> [topping ...]")
	}

	// Normalise input here so the engine sees canonical menu names.
	size := strings.ToLower(args[1])
	toppings := dedupeToppings(args[2:])

	order, err := eng.CreateOrder(args[0], size, toppings)
	if err != nil {
		return err
	}
	if err := orders.Add(ctx, order); err != nil {
		return fmt.Errorf("saving order: %w", err)
	}
	recordChange(ctx, statusLog, logger, domain.StatusChange{
		OrderID:   order.ID,
		To:        order.Status,
		ChangedAt: order.CreatedAt,
	})

	fmt.Printf("Created order %s for %s: %s pizza, %s, %s\n",
		order.ID, order.CustomerName, order.Size,
		render.FormatToppings(order.Toppings), render.FormatPrice(order.Price))
	return nil
}

func runList(ctx context.Context, args []string, orders *store.FileStore) error {
	all, err := orders.LoadAll(ctx)
	if err != nil {
		return err
	}

	if len(args) > 0 {
		st := domain.Status(strings.ToUpper(args[0]))
		if !st.IsValid() {
			return fmt.Errorf("unknown status %q: choose from %s", args[0], statusNames())
		}
		filtered := make([]domain.Order, 0, len(all))
		for _, o := range all {
			if o.Status == st {
				filtered = append(filtered, o)
			}
		}
		all = filtered
	}

	if len(all) == 0 {
		fmt.Println("No orders yet.")
		return nil
	}
	fmt.Print(render.OrdersTable(all))
	return nil
}

func runBoard(ctx context.Context, orders *store.FileStore) error {
	all, err := orders.LoadAll(ctx)
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No orders yet.")
		return nil
	}

	board := render.BuildBoard(all)
	for _, g := range board.Groups {
		fmt.Printf("%s  (%d orders, %s)\n", g.Status, len(g.Orders), render.FormatPrice(g.Revenue))
		for _, o := range g.Orders {
			fmt.Printf("  %-12s %-18s %-8s %s\n",
				render.ShortID(o.ID), o.CustomerName, o.Size, render.FormatPrice(o.Price))
		}
	}
	fmt.Printf("Total: %d orders, %s\n", board.Total, render.FormatPrice(board.Revenue))
	return nil
}

func runShow(ctx context.Context, args []string, orders *store.FileStore, statusLog *store.SQLiteStore) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: pizzetta-cli show <id>")
	}
	order, err := findOrder(ctx, orders, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Order     %s\n", order.ID)
	fmt.Printf("Customer  %s\n", order.CustomerName)
	fmt.Printf("Size      %s\n", order.Size)
	fmt.Printf("Toppings  %s\n", render.FormatToppings(order.Toppings))
	fmt.Printf("Status    %s\n", order.Status)
	fmt.Printf("Price     %s\n", render.FormatPrice(order.Price))
	fmt.Printf("Created   %s\n", render.FormatTime(order.CreatedAt))

	return printHistory(ctx, statusLog, order.ID)
}

func runAdvance(ctx context.Context, args []string, eng *engine.Engine, orders *store.FileStore, statusLog *store.SQLiteStore, logger *slog.Logger) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: pizzetta-cli advance <id> [status]")
	}
	order, err := findOrder(ctx, orders, args[0])
	if err != nil {
		return err
	}

	var target domain.Status
	if len(args) > 1 {
		target = domain.Status(strings.ToUpper(args[1]))
	} else {
		next, ok := eng.NextStatus(order.Status)
		if !ok {
			return fmt.Errorf("order %s is %s and cannot advance further", render.ShortID(order.ID), order.Status)
		}
		target = next
	}

	updated, err := eng.ApplyStatusTransition(*order, target)
	if err != nil {
		return err
	}
	if updated.Status == order.Status {
		fmt.Printf("Order %s is already %s\n", render.ShortID(order.ID), order.Status)
		return nil
	}

	ok, err := orders.Update(ctx, order.ID, updated)
	if err != nil {
		return fmt.Errorf("saving order: %w", err)
	}
	if !ok {
		return fmt.Errorf("order %s disappeared before it could be updated", order.ID)
	}
	recordChange(ctx, statusLog, logger, domain.StatusChange{
		OrderID:   order.ID,
		From:      order.Status,
		To:        updated.Status,
		ChangedAt: time.Now(),
	})

	fmt.Printf("Order %s: %s -> %s\n", render.ShortID(order.ID), order.Status, updated.Status)
	return nil
}

func runHistory(ctx context.Context, args []string, orders *store.FileStore, statusLog *store.SQLiteStore) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: pizzetta-cli history <id>")
	}
	order, err := findOrder(ctx, orders, args[0])
	if err != nil {
		return err
	}
	return printHistory(ctx, statusLog, order.ID)
}

func runDelete(ctx context.Context, args []string, orders *store.FileStore, logger *slog.Logger) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: pizzetta-cli delete <id>")
	}
	order, err := findOrder(ctx, orders, args[0])
	if err != nil {
		return err
	}

	ok, err := orders.DeleteByID(ctx, order.ID)
	if err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}
	if !ok {
		return fmt.Errorf("order %s disappeared before it could be deleted", order.ID)
	}
	logger.Info("order deleted", "id", order.ID, "customer", order.CustomerName)
	fmt.Printf("Deleted order %s for %s\n", render.ShortID(order.ID), order.CustomerName)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// findOrder resolves an order by exact ID, falling back to a unique ID
// prefix so users can paste the short form shown in listings.
func findOrder(ctx context.Context, orders *store.FileStore, id string) (*domain.Order, error) {
	order, err := orders.GetByID(ctx, id)
	if err != nil || order != nil {
		return order, err
	}

	all, err := orders.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	var match *domain.Order
	for i := range all {
		if strings.HasPrefix(all[i].ID, id) {
			if match != nil {
				return nil, fmt.Errorf("order id %q is ambiguous", id)
			}
			match = &all[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("no order with id %q", id)
	}
	return match, nil
}

func printHistory(ctx context.Context, statusLog *store.SQLiteStore, orderID string) error {
	if statusLog == nil {
		return nil
	}
	changes, err := statusLog.History(ctx, orderID)
	if err != nil {
		return fmt.Errorf("reading status history: %w", err)
	}
	if len(changes) == 0 {
		return nil
	}

	fmt.Println("History:")
	for _, c := range changes {
		if c.From == "" {
			fmt.Printf("  %s  created as %s\n", render.FormatTime(c.ChangedAt), c.To)
			continue
		}
		fmt.Printf("  %s  %s -> %s\n", render.FormatTime(c.ChangedAt), c.From, c.To)
	}
	return nil
}

// recordChange appends to the status log when it is available. History is
// best effort; a failure here must not roll back an already saved order.
func recordChange(ctx context.Context, statusLog *store.SQLiteStore, logger *slog.Logger, change domain.StatusChange) {
	if statusLog == nil {
		return
	}
	if err := statusLog.Append(ctx, change); err != nil {
		logger.Warn("failed to record status change", "order_id", change.OrderID, "error", err)
	}
}

// dedupeToppings lowercases and drops repeated toppings, keeping the first
// occurrence of each.
func dedupeToppings(toppings []string) []string {
	seen := make(map[string]struct{}, len(toppings))
	out := make([]string, 0, len(toppings))
	for _, t := range toppings {
		t = strings.ToLower(t)
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func statusNames() string {
	statuses := domain.Statuses()
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
