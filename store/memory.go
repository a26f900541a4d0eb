package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"dewode_server/lib"
	"dewode_server/structs"
	"dewode_server/structs/tables"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store used in tests and as a demo mode
// without a database. It is safe for concurrent use.
type MemoryStore struct {
	mu sync.RWMutex

	products    map[uuid.UUID]*tables.Product
	orders      map[uuid.UUID]*tables.Order
	orderItems  map[uuid.UUID][]tables.OrderItem // keyed by order id
	collections map[uuid.UUID]*tables.Collection
	heroes      map[uuid.UUID]*tables.HeroImage
	settings    *tables.Settings
	codes       []*tables.VerificationCode
}

// NewMemoryStore returns a store pre-seeded with demo catalog data
func NewMemoryStore() *MemoryStore {
	s := NewEmptyMemoryStore()
	s.seed()
	return s
}

// NewEmptyMemoryStore returns a store with no data, for tests that
// want full control over contents
func NewEmptyMemoryStore() *MemoryStore {
	return &MemoryStore{
		products:    make(map[uuid.UUID]*tables.Product),
		orders:      make(map[uuid.UUID]*tables.Order),
		orderItems:  make(map[uuid.UUID][]tables.OrderItem),
		collections: make(map[uuid.UUID]*tables.Collection),
		heroes:      make(map[uuid.UUID]*tables.HeroImage),
	}
}

func (s *MemoryStore) Health(ctx context.Context) error {
	return nil
}

// Products

func (s *MemoryStore) ListProducts(ctx context.Context, opts ProductListOptions) ([]tables.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(opts.Search)

	var out []tables.Product
	for _, p := range s.products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		if opts.Tag != "" && !containsString(p.Tags, opts.Tag) {
			continue
		}
		if !opts.IncludeSoldOut && p.IsSoldOut {
			continue
		}
		out = append(out, *p)
	}

	// Newest first, matching the catalog listing order
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if opts.PageSize > 0 {
		page := opts.Page
		if page < 1 {
			page = 1
		}
		start := (page - 1) * opts.PageSize
		if start >= len(out) {
			return []tables.Product{}, nil
		}
		end := start + opts.PageSize
		if end > len(out) {
			end = len(out)
		}
		out = out[start:end]
	}

	return out, nil
}

func (s *MemoryStore) GetProduct(ctx context.Context, id uuid.UUID) (*tables.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, lib.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *MemoryStore) CreateProduct(ctx context.Context, product *tables.Product) (*tables.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}
	product.IsSoldOut = product.Stock <= 0

	cp := *product
	s.products[product.ID] = &cp
	return product, nil
}

func (s *MemoryStore) UpdateProduct(ctx context.Context, id uuid.UUID, fields map[string]any) (*tables.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, lib.ErrNotFound
	}

	applyProductFields(p, fields)
	cp := *p
	return &cp, nil
}

func (s *MemoryStore) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return lib.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *MemoryStore) UpdateStock(ctx context.Context, id uuid.UUID, stock int, soldOut bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return lib.ErrNotFound
	}
	p.Stock = stock
	p.IsSoldOut = soldOut
	return nil
}

// Orders

func (s *MemoryStore) CreateOrder(ctx context.Context, order *tables.Order) (*tables.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if order.Id == uuid.Nil {
		order.Id = uuid.New()
	}
	now := time.Now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now
	if order.Status == "" {
		order.Status = tables.OrderStatusPending
	}

	cp := *order
	cp.Items = nil
	s.orders[order.Id] = &cp
	return order, nil
}

func (s *MemoryStore) CreateOrderItems(ctx context.Context, items []tables.OrderItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range items {
		if items[i].Id == uuid.Nil {
			items[i].Id = uuid.New()
		}
		s.orderItems[items[i].OrderId] = append(s.orderItems[items[i].OrderId], items[i])
	}
	return nil
}

func (s *MemoryStore) GetOrder(ctx context.Context, id uuid.UUID) (*tables.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, lib.ErrNotFound
	}
	cp := *o
	cp.Items = append([]tables.OrderItem(nil), s.orderItems[id]...)
	return &cp, nil
}

func (s *MemoryStore) ListOrders(ctx context.Context) ([]tables.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []tables.Order
	for id, o := range s.orders {
		cp := *o
		cp.Items = append([]tables.OrderItem(nil), s.orderItems[id]...)
		out = append(out, cp)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) ListOrdersByEmail(ctx context.Context, email string) ([]tables.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []tables.Order
	for id, o := range s.orders {
		if !strings.EqualFold(o.Email, email) {
			continue
		}
		cp := *o
		cp.Items = append([]tables.OrderItem(nil), s.orderItems[id]...)
		out = append(out, cp)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) UpdateOrder(ctx context.Context, id uuid.UUID, fields map[string]any) (*tables.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, lib.ErrNotFound
	}

	if v, ok := fields["status"]; ok {
		switch status := v.(type) {
		case tables.OrderStatus:
			o.Status = status
		case string:
			o.Status = tables.OrderStatus(status)
		}
	}
	if v, ok := fields["tracking_number"]; ok {
		switch tn := v.(type) {
		case *string:
			o.TrackingNumber = tn
		case string:
			o.TrackingNumber = &tn
		}
	}
	if v, ok := fields["updated_at"]; ok {
		if t, ok := v.(time.Time); ok {
			o.UpdatedAt = t
		}
	} else {
		o.UpdatedAt = time.Now()
	}

	cp := *o
	cp.Items = append([]tables.OrderItem(nil), s.orderItems[id]...)
	return &cp, nil
}

func (s *MemoryStore) SalesReport(ctx context.Context) ([]structs.SalesReportRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make(map[uuid.UUID]*structs.SalesReportRow)
	for orderID, items := range s.orderItems {
		o, ok := s.orders[orderID]
		if !ok || o.Status == tables.OrderStatusCancelled {
			continue
		}
		for _, item := range items {
			row, ok := rows[item.ProductId]
			if !ok {
				row = &structs.SalesReportRow{
					ProductID:   item.ProductId,
					ProductName: item.ProductName,
				}
				rows[item.ProductId] = row
			}
			row.TotalRevenue += item.PriceAtPurchase * int64(item.Quantity)
			row.TotalQuantity += item.Quantity
		}
	}

	out := make([]structs.SalesReportRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TotalRevenue > out[j].TotalRevenue
	})
	return out, nil
}

// Collections

func (s *MemoryStore) ListCollections(ctx context.Context) ([]tables.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]tables.Collection, 0, len(s.collections))
	for _, c := range s.collections {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out, nil
}

func (s *MemoryStore) PutCollection(ctx context.Context, collection *tables.Collection) (*tables.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Placing at an occupied cell replaces the previous occupant
	for id, existing := range s.collections {
		if existing.Row == collection.Row && existing.Col == collection.Col {
			delete(s.collections, id)
			break
		}
	}

	if collection.ID == uuid.Nil {
		collection.ID = uuid.New()
	}
	cp := *collection
	s.collections[collection.ID] = &cp
	return collection, nil
}

func (s *MemoryStore) DeleteCollection(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[id]; !ok {
		return lib.ErrNotFound
	}
	delete(s.collections, id)
	return nil
}

// Hero images

func (s *MemoryStore) ListHeroImages(ctx context.Context) ([]tables.HeroImage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]tables.HeroImage, 0, len(s.heroes))
	for _, h := range s.heroes {
		out = append(out, *h)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DisplayOrder < out[j].DisplayOrder
	})
	return out, nil
}

func (s *MemoryStore) CountHeroImages(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.heroes), nil
}

func (s *MemoryStore) CreateHeroImage(ctx context.Context, hero *tables.HeroImage) (*tables.HeroImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if hero.ID == uuid.Nil {
		hero.ID = uuid.New()
	}
	cp := *hero
	s.heroes[hero.ID] = &cp
	return hero, nil
}

func (s *MemoryStore) UpdateHeroImage(ctx context.Context, id uuid.UUID, fields map[string]any) (*tables.HeroImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.heroes[id]
	if !ok {
		return nil, lib.ErrNotFound
	}

	if v, ok := fields["image"].(string); ok {
		h.Image = v
	}
	if v, ok := fields["title"].(string); ok {
		h.Title = v
	}
	if v, ok := fields["display_order"].(int); ok {
		h.DisplayOrder = v
	}

	cp := *h
	return &cp, nil
}

func (s *MemoryStore) DeleteHeroImage(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.heroes[id]; !ok {
		return lib.ErrNotFound
	}
	delete(s.heroes, id)
	return nil
}

// Settings

func (s *MemoryStore) GetSettings(ctx context.Context) (*tables.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.settings == nil {
		return nil, nil
	}
	cp := *s.settings
	return &cp, nil
}

func (s *MemoryStore) SaveSettings(ctx context.Context, settings *tables.Settings) (*tables.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if settings.ID == uuid.Nil {
		settings.ID = uuid.New()
	}
	settings.UpdatedAt = time.Now()
	cp := *settings
	s.settings = &cp
	return settings, nil
}

// Verification codes

func (s *MemoryStore) CreateCode(ctx context.Context, code *tables.VerificationCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if code.Id == uuid.Nil {
		code.Id = uuid.New()
	}
	if code.CreatedAt.IsZero() {
		code.CreatedAt = time.Now()
	}
	cp := *code
	s.codes = append(s.codes, &cp)
	return nil
}

func (s *MemoryStore) LatestCode(ctx context.Context, email string) (*tables.VerificationCode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *tables.VerificationCode
	for _, code := range s.codes {
		if code.Used || !strings.EqualFold(code.Email, email) {
			continue
		}
		if latest == nil || code.CreatedAt.After(latest.CreatedAt) {
			latest = code
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (s *MemoryStore) MarkCodeUsed(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, code := range s.codes {
		if code.Id == id {
			code.Used = true
			return nil
		}
	}
	return lib.ErrNotFound
}

// helpers

func containsString(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

// applyProductFields mirrors the column map updates the Postgres store
// accepts, so both implementations behave identically.
func applyProductFields(p *tables.Product, fields map[string]any) {
	for key, value := range fields {
		switch key {
		case "name":
			if v, ok := value.(string); ok {
				p.Name = v
			}
		case "price":
			switch v := value.(type) {
			case int64:
				p.Price = v
			case int:
				p.Price = int64(v)
			}
		case "image":
			if v, ok := value.(string); ok {
				p.Image = v
			}
		case "detail_images":
			if v, ok := value.([]string); ok {
				p.DetailImages = v
			}
		case "description":
			if v, ok := value.(string); ok {
				p.Description = v
			}
		case "details":
			if v, ok := value.(string); ok {
				p.Details = v
			}
		case "shipping_info":
			if v, ok := value.(string); ok {
				p.ShippingInfo = v
			}
		case "tags":
			if v, ok := value.([]string); ok {
				p.Tags = v
			}
		case "stock":
			if v, ok := value.(int); ok {
				p.Stock = v
			}
		case "is_sold_out":
			if v, ok := value.(bool); ok {
				p.IsSoldOut = v
			}
		}
	}
}
