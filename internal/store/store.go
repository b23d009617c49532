// Package store persists the order book and its side data. The primary
// store is a single human-readable JSON file holding the whole order
// collection; a SQLite status history log and a Parquet archive sit beside
// it.
//
// Order operations are read-modify-write over the entire collection, loaded
// fresh from disk on every call. The cycle is not transactional: two
// processes sharing a data directory can race and the last writer wins. The
// tracker is a single-user tool and accepts that limitation; do not point
// two instances at the same directory.
package store

import (
	"context"

	"pizzetta/internal/domain"
)

// OrderStore persists and retrieves the order collection. Absence is not an
// error: lookups report unknown IDs with nil or false results.
type OrderStore interface {
	// LoadAll returns every persisted order, in store order.
	LoadAll(ctx context.Context) ([]domain.Order, error)

	// SaveAll replaces the entire persisted collection with orders.
	SaveAll(ctx context.Context, orders []domain.Order) error

	// Add appends one order to the collection.
	Add(ctx context.Context, order domain.Order) error

	// Update replaces the order carrying the given id and reports whether
	// one existed. Nothing is written when the id is unknown.
	Update(ctx context.Context, id string, updated domain.Order) (bool, error)

	// GetByID returns the order with the given id, or nil when there is none.
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// DeleteByID removes the order with the given id and reports whether a
	// removal happened.
	DeleteByID(ctx context.Context, id string) (bool, error)
}

// StatusLogStore records the status change history of orders.
type StatusLogStore interface {
	// Append records one status change.
	Append(ctx context.Context, change domain.StatusChange) error

	// History returns the recorded changes for an order, oldest first.
	History(ctx context.Context, orderID string) ([]domain.StatusChange, error)
}

// ArchiveStore keeps long-term exports of the order book.
type ArchiveStore interface {
	// WriteOrders merges orders into the archive.
	WriteOrders(ctx context.Context, orders []domain.Order) error

	// ReadYear returns the archived orders created in the given year.
	ReadYear(ctx context.Context, year int) ([]domain.Order, error)

	// ListYears returns the years that have archived orders, ascending.
	ListYears(ctx context.Context) ([]int, error)
}
