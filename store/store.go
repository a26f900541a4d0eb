// Package store defines the repository boundary between the service
// layer and persistence. Two implementations exist: a Postgres-backed
// store for production and an in-memory store used in tests and as a
// database-free demo mode. The driver is selected by configuration and
// injected into services; services never reach past the interface.
package store

import (
	"context"
	"fmt"

	"dewode_server/structs"
	"dewode_server/structs/tables"

	"github.com/google/uuid"
)

// ProductListOptions controls catalog listing. Zero values mean no
// filtering and no pagination.
type ProductListOptions struct {
	Search         string // case-insensitive substring match on name
	Tag            string
	IncludeSoldOut bool
	Page           int
	PageSize       int
}

type ProductStore interface {
	ListProducts(ctx context.Context, opts ProductListOptions) ([]tables.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*tables.Product, error)
	CreateProduct(ctx context.Context, product *tables.Product) (*tables.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, fields map[string]any) (*tables.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	// UpdateStock writes the new stock level and the derived sold-out
	// flag in one statement.
	UpdateStock(ctx context.Context, id uuid.UUID, stock int, soldOut bool) error
}

type OrderStore interface {
	// CreateOrder inserts the order header only. Items are inserted
	// separately by CreateOrderItems; there is deliberately no
	// transaction spanning the two calls.
	CreateOrder(ctx context.Context, order *tables.Order) (*tables.Order, error)
	CreateOrderItems(ctx context.Context, items []tables.OrderItem) error

	GetOrder(ctx context.Context, id uuid.UUID) (*tables.Order, error)
	ListOrders(ctx context.Context) ([]tables.Order, error)
	ListOrdersByEmail(ctx context.Context, email string) ([]tables.Order, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, fields map[string]any) (*tables.Order, error)

	// SalesReport aggregates revenue and quantity per product across
	// all non-cancelled orders, sorted by revenue descending.
	SalesReport(ctx context.Context) ([]structs.SalesReportRow, error)
}

type CollectionStore interface {
	ListCollections(ctx context.Context) ([]tables.Collection, error)

	// PutCollection places an image at a grid cell, replacing any
	// previous occupant of the same (row, col).
	PutCollection(ctx context.Context, collection *tables.Collection) (*tables.Collection, error)
	DeleteCollection(ctx context.Context, id uuid.UUID) error
}

type HeroStore interface {
	ListHeroImages(ctx context.Context) ([]tables.HeroImage, error)
	CountHeroImages(ctx context.Context) (int, error)
	CreateHeroImage(ctx context.Context, hero *tables.HeroImage) (*tables.HeroImage, error)
	UpdateHeroImage(ctx context.Context, id uuid.UUID, fields map[string]any) (*tables.HeroImage, error)
	DeleteHeroImage(ctx context.Context, id uuid.UUID) error
}

type SettingsStore interface {
	// GetSettings returns (nil, nil) when the singleton row is absent
	GetSettings(ctx context.Context) (*tables.Settings, error)
	SaveSettings(ctx context.Context, settings *tables.Settings) (*tables.Settings, error)
}

type VerificationStore interface {
	CreateCode(ctx context.Context, code *tables.VerificationCode) error

	// LatestCode returns the most recent unused code for the email, or
	// (nil, nil) when none exists.
	LatestCode(ctx context.Context, email string) (*tables.VerificationCode, error)
	MarkCodeUsed(ctx context.Context, id uuid.UUID) error
}

// Store is the full repository surface consumed by the service layer
type Store interface {
	ProductStore
	OrderStore
	CollectionStore
	HeroStore
	SettingsStore
	VerificationStore

	Health(ctx context.Context) error
}

// Driver names accepted by New
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// New returns the store implementation for the configured driver
func New(driver string) (Store, error) {
	switch driver {
	case DriverPostgres:
		return NewPostgresStore(), nil
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver: %q", driver)
	}
}
