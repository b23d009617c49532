// One-shot tool: archive orders from the live JSON file into per-year
// parquet files, optionally filtered by status and pruned from the live
// file afterwards.
//
// Usage:
//
//	go run cmd/pizzetta-export/main.go [-status DELIVERED] [-prune]
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"

	"pizzetta/internal/config"
	"pizzetta/internal/domain"
	"pizzetta/internal/store"
	"pizzetta/internal/util"
)

func main() {
	statusFlag := flag.String("status", "", "only archive orders with this status (e.g. DELIVERED)")
	prune := flag.Bool("prune", false, "remove archived orders from the live orders file")
	flag.Parse()

	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)
	util.SetDefault(logger)

	ctx := context.Background()
	orders := store.NewFileStore(cfg.Storage.OrdersPath(), logger)

	all, err := orders.LoadAll(ctx)
	if err != nil {
		log.Fatalf("failed to load orders: %v", err)
	}

	selected := all
	if *statusFlag != "" {
		st := domain.Status(strings.ToUpper(*statusFlag))
		if !st.IsValid() {
			log.Fatalf("unknown status %q", *statusFlag)
		}
		selected = selected[:0:0]
		for _, o := range all {
			if o.Status == st {
				selected = append(selected, o)
			}
		}
	}

	if len(selected) == 0 {
		slog.Info("no orders to archive")
		return
	}

	archive := store.NewParquetStore(cfg.Storage.ArchivePath())
	if err := archive.WriteOrders(ctx, selected); err != nil {
		log.Fatalf("failed to archive orders: %v", err)
	}
	slog.Info("archive complete", "orders", len(selected), "dir", cfg.Storage.ArchivePath())

	if !*prune {
		return
	}

	archived := make(map[string]bool, len(selected))
	for _, o := range selected {
		archived[o.ID] = true
	}
	remaining := make([]domain.Order, 0, len(all))
	for _, o := range all {
		if !archived[o.ID] {
			remaining = append(remaining, o)
		}
	}
	if err := orders.SaveAll(ctx, remaining); err != nil {
		log.Fatalf("failed to prune archived orders: %v", err)
	}
	slog.Info("pruned archived orders from live file",
		"removed", len(all)-len(remaining), "remaining", len(remaining))
}
