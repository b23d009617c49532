package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/shopspring/decimal"

	"pizzetta/internal/domain"
)

// Compile-time interface check.
var _ ArchiveStore = (*ParquetStore)(nil)

// ParquetStore archives the order book to Parquet files, one file per
// creation year. Re-exporting merges with what is already archived, so the
// export tool can run repeatedly without duplicating orders.
type ParquetStore struct {
	ArchiveDir string
}

// NewParquetStore creates a ParquetStore rooted at the given directory.
func NewParquetStore(archiveDir string) *ParquetStore {
	return &ParquetStore{ArchiveDir: archiveDir}
}

// ---------------------------------------------------------------------------
// Parquet record type (on-disk schema)
// ---------------------------------------------------------------------------

// ArchiveRecord is the Parquet schema for one archived order.
type ArchiveRecord struct {
	ID           string   `parquet:"id"`
	CustomerName string   `parquet:"customer_name"`
	PizzaSize    string   `parquet:"pizza_size"`
	Toppings     []string `parquet:"toppings,list"`
	Status       string   `parquet:"status"`
	Price        float64  `parquet:"price"`
	CreatedAt    int64    `parquet:"created_at,timestamp(millisecond)"` // Unix ms
}

func toArchiveRecord(o domain.Order) ArchiveRecord {
	return ArchiveRecord{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		PizzaSize:    o.Size,
		Toppings:     o.Toppings,
		Status:       string(o.Status),
		Price:        o.Price.InexactFloat64(),
		CreatedAt:    o.CreatedAt.UnixMilli(),
	}
}

func fromArchiveRecord(r ArchiveRecord) domain.Order {
	return domain.Order{
		ID:           r.ID,
		CustomerName: r.CustomerName,
		Size:         r.PizzaSize,
		Toppings:     r.Toppings,
		Status:       domain.Status(r.Status),
		Price:        decimal.NewFromFloat(r.Price),
		CreatedAt:    time.UnixMilli(r.CreatedAt),
	}
}

// ---------------------------------------------------------------------------
// ArchiveStore implementation
// ---------------------------------------------------------------------------

// WriteOrders archives orders grouped by creation year, merging each group
// with the existing archive file for that year. Within a year an incoming
// order replaces an archived one with the same ID.
func (s *ParquetStore) WriteOrders(_ context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	groups := make(map[int][]ArchiveRecord)
	for _, o := range orders {
		year := o.CreatedAt.Year()
		groups[year] = append(groups[year], toArchiveRecord(o))
	}

	for year, records := range groups {
		path := s.yearPath(year)

		// Read existing records to merge.
		existing, _ := readParquetFile[ArchiveRecord](path)
		merged := mergeArchiveRecords(existing, records)

		if err := writeParquetFile(path, merged); err != nil {
			return fmt.Errorf("archiving orders for %d: %w", year, err)
		}
	}
	return nil
}

// ReadYear returns the archived orders created in the given year, oldest
// first. A year with no archive file yields an empty result.
func (s *ParquetStore) ReadYear(_ context.Context, year int) ([]domain.Order, error) {
	records, err := readParquetFile[ArchiveRecord](s.yearPath(year))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading archive for %d: %w", year, err)
	}
	orders := make([]domain.Order, len(records))
	for i, r := range records {
		orders[i] = fromArchiveRecord(r)
	}
	return orders, nil
}

// ListYears returns the years that have archive files, ascending.
func (s *ParquetStore) ListYears(_ context.Context) ([]int, error) {
	entries, err := os.ReadDir(s.ArchiveDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var years []int
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".parquet") {
			continue
		}
		year, err := strconv.Atoi(strings.TrimSuffix(e.Name(), ".parquet"))
		if err != nil {
			continue
		}
		years = append(years, year)
	}
	sort.Ints(years)
	return years, nil
}

// yearPath returns the archive file path for a year.
// Layout: <ArchiveDir>/<YYYY>.parquet
func (s *ParquetStore) yearPath(year int) string {
	return filepath.Join(s.ArchiveDir, fmt.Sprintf("%d.parquet", year))
}

// ---------------------------------------------------------------------------
// Parquet file helpers
// ---------------------------------------------------------------------------

func writeParquetFile[T any](path string, records []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return parquet.WriteFile(path, records)
}

func readParquetFile[T any](path string) ([]T, error) {
	rows, err := parquet.ReadFile[T](path)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// mergeArchiveRecords deduplicates records by order ID, preferring incoming
// records over existing ones. Results are sorted by creation time, with the
// ID as a tie-break so the order is deterministic.
func mergeArchiveRecords(existing, incoming []ArchiveRecord) []ArchiveRecord {
	seen := make(map[string]ArchiveRecord, len(existing)+len(incoming))
	for _, r := range existing {
		seen[r.ID] = r
	}
	for _, r := range incoming {
		seen[r.ID] = r
	}

	merged := make([]ArchiveRecord, 0, len(seen))
	for _, r := range seen {
		merged = append(merged, r)
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].CreatedAt != merged[j].CreatedAt {
			return merged[i].CreatedAt < merged[j].CreatedAt
		}
		return merged[i].ID < merged[j].ID
	})
	return merged
}
