package store

import (
	"context"
	"time"

	"dewode_server/database"
	"dewode_server/lib"
	"dewode_server/structs"
	"dewode_server/structs/tables"

	"github.com/google/uuid"
)

// listQueryTimeout bounds the unboundable reads (catalog and admin
// order listings) so a slow scan cannot hold a handler indefinitely.
const listQueryTimeout = 10 * time.Second

// PostgresStore implements Store on top of the shared database layer.
// All queries go through the retry-wrapped query builder.
type PostgresStore struct {
	db *database.DB
}

func NewPostgresStore() *PostgresStore {
	return &PostgresStore{db: database.GetInstance()}
}

// NewPostgresStoreWithDB allows injecting a specific connection
func NewPostgresStoreWithDB(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Health(ctx context.Context) error {
	return s.db.Health()
}

// Products

func (s *PostgresStore) ListProducts(ctx context.Context, opts ProductListOptions) ([]tables.Product, error) {
	q := database.Query[tables.Product](s.db).
		OrderBy("created_at", "DESC").
		Timeout(listQueryTimeout)

	if opts.Search != "" {
		pattern := "%" + opts.Search + "%"
		q = q.WhereRaw("(name ILIKE ? OR description ILIKE ?)", pattern, pattern)
	}
	if opts.Tag != "" {
		q = q.WhereRaw("? = ANY(tags)", opts.Tag)
	}
	if !opts.IncludeSoldOut {
		q = q.Where("is_sold_out", "=", false)
	}
	if opts.PageSize > 0 {
		result, err := database.Paginate(q, ctx, opts.Page, opts.PageSize)
		if err != nil {
			return nil, lib.MapPgError(err)
		}
		return result.Data, nil
	}

	products, err := q.All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return products, nil
}

func (s *PostgresStore) GetProduct(ctx context.Context, id uuid.UUID) (*tables.Product, error) {
	product, err := database.FindByID[tables.Product](s.db, ctx, id)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if product == nil {
		return nil, lib.ErrNotFound
	}
	return product, nil
}

func (s *PostgresStore) CreateProduct(ctx context.Context, product *tables.Product) (*tables.Product, error) {
	created, err := database.Create(s.db, ctx, product)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return created, nil
}

func (s *PostgresStore) UpdateProduct(ctx context.Context, id uuid.UUID, fields map[string]any) (*tables.Product, error) {
	results, err := database.Query[tables.Product](s.db).
		Where("id", "=", id).
		UpdateReturning(ctx, fields)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if len(results) == 0 {
		return nil, lib.ErrNotFound
	}
	return &results[0], nil
}

func (s *PostgresStore) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	affected, err := database.DeleteByID[tables.Product](s.db, ctx, id)
	if err != nil {
		return lib.MapPgError(err)
	}
	if affected == 0 {
		return lib.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) UpdateStock(ctx context.Context, id uuid.UUID, stock int, soldOut bool) error {
	affected, err := database.UpdateByID[tables.Product](s.db, ctx, id, map[string]any{
		"stock":       stock,
		"is_sold_out": soldOut,
	})
	if err != nil {
		return lib.MapPgError(err)
	}
	if affected == 0 {
		return lib.ErrNotFound
	}
	return nil
}

// Orders

func (s *PostgresStore) CreateOrder(ctx context.Context, order *tables.Order) (*tables.Order, error) {
	created, err := database.Create(s.db, ctx, order)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return created, nil
}

func (s *PostgresStore) CreateOrderItems(ctx context.Context, items []tables.OrderItem) error {
	_, err := database.CreateMany(s.db, ctx, items)
	if err != nil {
		return lib.MapPgError(err)
	}
	return nil
}

func (s *PostgresStore) GetOrder(ctx context.Context, id uuid.UUID) (*tables.Order, error) {
	order, err := database.Query[tables.Order](s.db).
		Where("id", "=", id).
		Relation("Items").
		First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if order == nil {
		return nil, lib.ErrNotFound
	}
	return order, nil
}

func (s *PostgresStore) ListOrders(ctx context.Context) ([]tables.Order, error) {
	orders, err := database.Query[tables.Order](s.db).
		Relation("Items").
		OrderBy("created_at", "DESC").
		Timeout(listQueryTimeout).
		All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return orders, nil
}

func (s *PostgresStore) ListOrdersByEmail(ctx context.Context, email string) ([]tables.Order, error) {
	orders, err := database.Query[tables.Order](s.db).
		Where("email", "=", email).
		Relation("Items").
		OrderBy("created_at", "DESC").
		All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return orders, nil
}

func (s *PostgresStore) UpdateOrder(ctx context.Context, id uuid.UUID, fields map[string]any) (*tables.Order, error) {
	results, err := database.Query[tables.Order](s.db).
		Where("id", "=", id).
		UpdateReturning(ctx, fields)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if len(results) == 0 {
		return nil, lib.ErrNotFound
	}
	return &results[0], nil
}

func (s *PostgresStore) SalesReport(ctx context.Context) ([]structs.SalesReportRow, error) {
	const query = `
		SELECT oi.product_id AS product_id,
		       oi.product_name AS product_name,
		       SUM(oi.price_at_purchase * oi.quantity) AS total_revenue,
		       SUM(oi.quantity) AS total_quantity
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status != 'CANCELLED'
		GROUP BY oi.product_id, oi.product_name
		ORDER BY total_revenue DESC`

	rows, err := database.RawQuery[structs.SalesReportRow](s.db, ctx, query)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return rows, nil
}

// Collections

func (s *PostgresStore) ListCollections(ctx context.Context) ([]tables.Collection, error) {
	collections, err := database.Query[tables.Collection](s.db).
		OrderBy("row").
		OrderBy("col").
		All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return collections, nil
}

func (s *PostgresStore) PutCollection(ctx context.Context, collection *tables.Collection) (*tables.Collection, error) {
	// The (row, col) pair carries a unique constraint: writing to an
	// occupied cell replaces its image instead of erroring.
	saved, err := database.Upsert(s.db, ctx, collection, `"row", "col"`, "image")
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return saved, nil
}

func (s *PostgresStore) DeleteCollection(ctx context.Context, id uuid.UUID) error {
	affected, err := database.DeleteByID[tables.Collection](s.db, ctx, id)
	if err != nil {
		return lib.MapPgError(err)
	}
	if affected == 0 {
		return lib.ErrNotFound
	}
	return nil
}

// Hero images

func (s *PostgresStore) ListHeroImages(ctx context.Context) ([]tables.HeroImage, error) {
	heroes, err := database.Query[tables.HeroImage](s.db).
		OrderBy("display_order").
		All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return heroes, nil
}

func (s *PostgresStore) CountHeroImages(ctx context.Context) (int, error) {
	count, err := database.Query[tables.HeroImage](s.db).Count(ctx)
	if err != nil {
		return 0, lib.MapPgError(err)
	}
	return count, nil
}

func (s *PostgresStore) CreateHeroImage(ctx context.Context, hero *tables.HeroImage) (*tables.HeroImage, error) {
	created, err := database.Create(s.db, ctx, hero)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return created, nil
}

func (s *PostgresStore) UpdateHeroImage(ctx context.Context, id uuid.UUID, fields map[string]any) (*tables.HeroImage, error) {
	results, err := database.Query[tables.HeroImage](s.db).
		Where("id", "=", id).
		UpdateReturning(ctx, fields)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if len(results) == 0 {
		return nil, lib.ErrNotFound
	}
	return &results[0], nil
}

func (s *PostgresStore) DeleteHeroImage(ctx context.Context, id uuid.UUID) error {
	affected, err := database.DeleteByID[tables.HeroImage](s.db, ctx, id)
	if err != nil {
		return lib.MapPgError(err)
	}
	if affected == 0 {
		return lib.ErrNotFound
	}
	return nil
}

// Settings

func (s *PostgresStore) GetSettings(ctx context.Context) (*tables.Settings, error) {
	settings, err := database.Query[tables.Settings](s.db).First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return settings, nil
}

func (s *PostgresStore) SaveSettings(ctx context.Context, settings *tables.Settings) (*tables.Settings, error) {
	saved, err := database.Upsert(s.db, ctx, settings, "id",
		"admin_id", "admin_password_hash", "bank_name", "bank_account", "bank_holder", "updated_at")
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return saved, nil
}

// Verification codes

func (s *PostgresStore) CreateCode(ctx context.Context, code *tables.VerificationCode) error {
	_, err := database.Create(s.db, ctx, code)
	if err != nil {
		return lib.MapPgError(err)
	}
	return nil
}

func (s *PostgresStore) LatestCode(ctx context.Context, email string) (*tables.VerificationCode, error) {
	code, err := database.Query[tables.VerificationCode](s.db).
		Where("email", "=", email).
		Where("used", "=", false).
		OrderBy("created_at", "DESC").
		First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return code, nil
}

func (s *PostgresStore) MarkCodeUsed(ctx context.Context, id uuid.UUID) error {
	affected, err := database.UpdateByID[tables.VerificationCode](s.db, ctx, id, map[string]any{
		"used": true,
	})
	if err != nil {
		return lib.MapPgError(err)
	}
	if affected == 0 {
		return lib.ErrNotFound
	}
	return nil
}
