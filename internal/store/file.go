package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"pizzetta/internal/domain"
)

// Compile-time interface check.
var _ OrderStore = (*FileStore)(nil)

// FileStore keeps the order collection in a single JSON file, indented so it
// stays readable by hand. Nothing is cached between calls: every operation
// reads the file fresh, applies its one mutation and rewrites the whole
// collection.
type FileStore struct {
	path string
	log  *slog.Logger
}

// NewFileStore creates a FileStore persisting to path.
func NewFileStore(path string, log *slog.Logger) *FileStore {
	return &FileStore{path: path, log: log}
}

// Path returns the location of the orders file.
func (s *FileStore) Path() string {
	return s.path
}

// orderRecord is the JSON schema for one persisted order.
type orderRecord struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customer_name"`
	PizzaSize    string    `json:"pizza_size"`
	Toppings     []string  `json:"toppings"`
	Status       string    `json:"status"`
	Price        float64   `json:"price"`
	CreatedAt    time.Time `json:"created_at"`
}

func toRecord(o domain.Order) orderRecord {
	toppings := o.Toppings
	if toppings == nil {
		toppings = []string{}
	}
	return orderRecord{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		PizzaSize:    o.Size,
		Toppings:     toppings,
		Status:       string(o.Status),
		Price:        o.Price.InexactFloat64(),
		CreatedAt:    o.CreatedAt,
	}
}

func fromRecord(r orderRecord) domain.Order {
	return domain.Order{
		ID:           r.ID,
		CustomerName: r.CustomerName,
		Size:         r.PizzaSize,
		Toppings:     r.Toppings,
		Status:       domain.Status(r.Status),
		Price:        decimal.NewFromFloat(r.Price),
		CreatedAt:    r.CreatedAt,
	}
}

// LoadAll reads the full collection from disk. A missing file is created as
// an empty collection first. A file that no longer parses is reported at
// warning level and treated as empty; the damaged content stays on disk
// untouched so it can be inspected or repaired.
func (s *FileStore) LoadAll(_ context.Context) ([]domain.Order, error) {
	if err := s.ensureFile(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading orders file: %w", err)
	}

	var records []orderRecord
	if err := json.Unmarshal(data, &records); err != nil {
		s.log.Warn("orders file is not valid JSON, treating as empty",
			"path", s.path, "error", err)
		return []domain.Order{}, nil
	}

	orders := make([]domain.Order, len(records))
	for i, r := range records {
		orders[i] = fromRecord(r)
	}
	return orders, nil
}

// SaveAll replaces the persisted collection with orders. The whole file is
// overwritten on every save; there is no partial update.
func (s *FileStore) SaveAll(_ context.Context, orders []domain.Order) error {
	records := make([]orderRecord, len(orders))
	for i, o := range orders {
		records[i] = toRecord(o)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling orders: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.WriteFile(s.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing orders file: %w", err)
	}
	return nil
}

// Add appends order to the collection.
func (s *FileStore) Add(ctx context.Context, order domain.Order) error {
	orders, err := s.LoadAll(ctx)
	if err != nil {
		return err
	}
	return s.SaveAll(ctx, append(orders, order))
}

// Update replaces the order carrying the given id. Nothing is written when
// the id is unknown.
func (s *FileStore) Update(ctx context.Context, id string, updated domain.Order) (bool, error) {
	orders, err := s.LoadAll(ctx)
	if err != nil {
		return false, err
	}
	for i := range orders {
		if orders[i].ID == id {
			orders[i] = updated
			if err := s.SaveAll(ctx, orders); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// GetByID returns the order with the given id, or nil when the store holds
// no such order.
func (s *FileStore) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	orders, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id {
			o := orders[i]
			return &o, nil
		}
	}
	return nil, nil
}

// DeleteByID removes the order with the given id. The file is rewritten only
// when the collection actually shrank.
func (s *FileStore) DeleteByID(ctx context.Context, id string) (bool, error) {
	orders, err := s.LoadAll(ctx)
	if err != nil {
		return false, err
	}
	kept := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	if len(kept) == len(orders) {
		return false, nil
	}
	if err := s.SaveAll(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}

// ensureFile creates the orders file as an empty collection when it does not
// exist yet.
func (s *FileStore) ensureFile() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking orders file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte("[]\n"), 0o644); err != nil {
		return fmt.Errorf("creating orders file: %w", err)
	}
	s.log.Info("created orders file", "path", s.path)
	return nil
}
