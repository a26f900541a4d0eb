package store

import (
	"context"
	"testing"
	"time"

	"dewode_server/lib"
	"dewode_server/structs/tables"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(name string, price int64, stock int, tags ...string) *tables.Product {
	return &tables.Product{
		Name:  name,
		Price: price,
		Image: "https://cdn.dew-ode.com/" + name + ".jpg",
		Tags:  tags,
		Stock: stock,
	}
}

func TestListProductsFiltersSoldOut(t *testing.T) {
	s := NewEmptyMemoryStore()
	ctx := context.Background()

	_, err := s.CreateProduct(ctx, newTestProduct("STAINLESS PLATE 240", 48000, 10))
	require.NoError(t, err)
	_, err = s.CreateProduct(ctx, newTestProduct("METAL BASE STAND", 120000, 0))
	require.NoError(t, err)

	visible, err := s.ListProducts(ctx, ProductListOptions{})
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "STAINLESS PLATE 240", visible[0].Name)

	all, err := s.ListProducts(ctx, ProductListOptions{IncludeSoldOut: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListProductsSearchIsCaseInsensitive(t *testing.T) {
	s := NewEmptyMemoryStore()
	ctx := context.Background()

	_, err := s.CreateProduct(ctx, newTestProduct("BRUSHED METAL BOWL", 36000, 5))
	require.NoError(t, err)
	_, err = s.CreateProduct(ctx, newTestProduct("PRECISION FORK", 18000, 5))
	require.NoError(t, err)

	got, err := s.ListProducts(ctx, ProductListOptions{Search: "metal"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "BRUSHED METAL BOWL", got[0].Name)
}

func TestListProductsSearchMatchesDescription(t *testing.T) {
	s := NewEmptyMemoryStore()
	ctx := context.Background()

	withDesc := newTestProduct("STAINLESS PLATE 240", 48000, 5)
	withDesc.Description = "A brushed dinner plate in 304 stainless"
	_, err := s.CreateProduct(ctx, withDesc)
	require.NoError(t, err)
	_, err = s.CreateProduct(ctx, newTestProduct("MINIMAL STEEL CUP", 24000, 5))
	require.NoError(t, err)

	got, err := s.ListProducts(ctx, ProductListOptions{Search: "dinner"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "STAINLESS PLATE 240", got[0].Name)
}

func TestListProductsTagFilter(t *testing.T) {
	s := NewEmptyMemoryStore()
	ctx := context.Background()

	_, err := s.CreateProduct(ctx, newTestProduct("STEEL BREAD TRAY", 64000, 4, "tray", "new"))
	require.NoError(t, err)
	_, err = s.CreateProduct(ctx, newTestProduct("MINIMAL STEEL CUP", 24000, 4, "cup"))
	require.NoError(t, err)

	got, err := s.ListProducts(ctx, ProductListOptions{Tag: "new"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "STEEL BREAD TRAY", got[0].Name)
}

func TestListProductsPagination(t *testing.T) {
	s := NewEmptyMemoryStore()
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < 5; i++ {
		p := newTestProduct("ITEM", 10000, 3)
		p.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		_, err := s.CreateProduct(ctx, p)
		require.NoError(t, err)
	}

	page1, err := s.ListProducts(ctx, ProductListOptions{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, page1, 2)

	page3, err := s.ListProducts(ctx, ProductListOptions{Page: 3, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, page3, 1)

	beyond, err := s.ListProducts(ctx, ProductListOptions{Page: 4, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestCreateProductDerivesSoldOut(t *testing.T) {
	s := NewEmptyMemoryStore()
	ctx := context.Background()

	created, err := s.CreateProduct(ctx, newTestProduct("INDUSTRIAL SPOON", 18000, 0))
	require.NoError(t, err)
	assert.True(t, created.IsSoldOut)
	assert.NotEqual(t, uuid.Nil, created.ID)
}

func TestUpdateStock(t *testing.T) {
	s := NewEmptyMemoryStore()
	ctx := context.Background()

	created, err := s.CreateProduct(ctx, newTestProduct("PRECISION KNIFE", 22000, 5))
	require.NoError(t, err)

	require.NoError(t, s.UpdateStock(ctx, created.ID, 0, true))

	got, err := s.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)
	assert.True(t, got.IsSoldOut)
}

func TestGetProductNotFound(t *testing.T) {
	s := NewEmptyMemoryStore()

	_, err := s.GetProduct(context.Background(), uuid.New())
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestDeleteProductNotFound(t *testing.T) {
	s := NewEmptyMemoryStore()

	err := s.DeleteProduct(context.Background(), uuid.New())
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func newTestOrder(email string, status tables.OrderStatus) *tables.Order {
	return &tables.Order{
		OrderNumber:     "DO-" + uuid.NewString()[:8],
		Email:           email,
		CustomerName:    "Kim Jiwoo",
		CustomerPhone:   "010-1234-5678",
		CustomerAddress: "(04524) 110 Sejong-daero, Jung-gu, Seoul 3F",
		TotalAmount:     96000,
		Status:          status,
	}
}

func TestCreateOrderAndItems(t *testing.T) {
	s := NewEmptyMemoryStore()
	ctx := context.Background()

	order, err := s.CreateOrder(ctx, newTestOrder("jiwoo@example.com", ""))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, order.Id)
	assert.Equal(t, tables.OrderStatusPending, order.Status)

	items := []tables.OrderItem{
		{OrderId: order.Id, ProductId: uuid.New(), Quantity: 2, PriceAtPurchase: 48000, ProductName: "STAINLESS PLATE 240"},
	}
	require.NoError(t, s.CreateOrderItems(ctx, items))

	got, err := s.GetOrder(ctx, order.Id)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, int64(48000), got.Items[0].PriceAtPurchase)
}

func TestListOrdersByEmailIgnoresCase(t *testing.T) {
	s := NewEmptyMemoryStore()
	ctx := context.Background()

	_, err := s.CreateOrder(ctx, newTestOrder("Jiwoo@Example.com", tables.OrderStatusPaid))
	require.NoError(t, err)
	_, err = s.CreateOrder(ctx, newTestOrder("other@example.com", tables.OrderStatusPaid))
	require.NoError(t, err)

	got, err := s.ListOrdersByEmail(ctx, "jiwoo@example.com")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Jiwoo@Example.com", got[0].Email)
}

func TestUpdateOrderStatusAndTracking(t *testing.T) {
	s := NewEmptyMemoryStore()
	ctx := context.Background()

	order, err := s.CreateOrder(ctx, newTestOrder("jiwoo@example.com", tables.OrderStatusPaid))
	require.NoError(t, err)

	updated, err := s.UpdateOrder(ctx, order.Id, map[string]any{
		"status":          tables.OrderStatusShipped,
		"tracking_number": "CJ123456789KR",
	})
	require.NoError(t, err)
	assert.Equal(t, tables.OrderStatusShipped, updated.Status)
	require.NotNil(t, updated.TrackingNumber)
	assert.Equal(t, "CJ123456789KR", *updated.TrackingNumber)
}

func TestUpdateOrderNotFound(t *testing.T) {
	s := NewEmptyMemoryStore()

	_, err := s.UpdateOrder(context.Background(), uuid.New(), map[string]any{"status": tables.OrderStatusPaid})
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestSalesReportSkipsCancelledOrders(t *testing.T) {
	s := NewEmptyMemoryStore()
	ctx := context.Background()

	plateID := uuid.New()
	cupID := uuid.New()

	paid, err := s.CreateOrder(ctx, newTestOrder("a@example.com", tables.OrderStatusPaid))
	require.NoError(t, err)
	require.NoError(t, s.CreateOrderItems(ctx, []tables.OrderItem{
		{OrderId: paid.Id, ProductId: plateID, Quantity: 2, PriceAtPurchase: 48000, ProductName: "STAINLESS PLATE 240"},
		{OrderId: paid.Id, ProductId: cupID, Quantity: 1, PriceAtPurchase: 24000, ProductName: "MINIMAL STEEL CUP"},
	}))

	cancelled, err := s.CreateOrder(ctx, newTestOrder("b@example.com", tables.OrderStatusCancelled))
	require.NoError(t, err)
	require.NoError(t, s.CreateOrderItems(ctx, []tables.OrderItem{
		{OrderId: cancelled.Id, ProductId: plateID, Quantity: 10, PriceAtPurchase: 48000, ProductName: "STAINLESS PLATE 240"},
	}))

	rows, err := s.SalesReport(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Sorted by revenue descending; cancelled quantities never counted
	assert.Equal(t, plateID, rows[0].ProductID)
	assert.Equal(t, int64(96000), rows[0].TotalRevenue)
	assert.Equal(t, 2, rows[0].TotalQuantity)
	assert.Equal(t, cupID, rows[1].ProductID)
	assert.Equal(t, int64(24000), rows[1].TotalRevenue)
}

func TestPutCollectionReplacesCellOccupant(t *testing.T) {
	s := NewEmptyMemoryStore()
	ctx := context.Background()

	first, err := s.PutCollection(ctx, &tables.Collection{Image: "a.jpg", Row: 1, Col: 2})
	require.NoError(t, err)

	second, err := s.PutCollection(ctx, &tables.Collection{Image: "b.jpg", Row: 1, Col: 2})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	all, err := s.ListCollections(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "b.jpg", all[0].Image)
}

func TestListCollectionsSortedByGridPosition(t *testing.T) {
	s := NewEmptyMemoryStore()
	ctx := context.Background()

	_, err := s.PutCollection(ctx, &tables.Collection{Image: "c.jpg", Row: 2, Col: 0})
	require.NoError(t, err)
	_, err = s.PutCollection(ctx, &tables.Collection{Image: "a.jpg", Row: 0, Col: 1})
	require.NoError(t, err)
	_, err = s.PutCollection(ctx, &tables.Collection{Image: "b.jpg", Row: 0, Col: 3})
	require.NoError(t, err)

	all, err := s.ListCollections(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a.jpg", all[0].Image)
	assert.Equal(t, "b.jpg", all[1].Image)
	assert.Equal(t, "c.jpg", all[2].Image)
}

func TestHeroImagesSortedByDisplayOrder(t *testing.T) {
	s := NewEmptyMemoryStore()
	ctx := context.Background()

	_, err := s.CreateHeroImage(ctx, &tables.HeroImage{Image: "second.jpg", DisplayOrder: 2})
	require.NoError(t, err)
	_, err = s.CreateHeroImage(ctx, &tables.HeroImage{Image: "first.jpg", DisplayOrder: 1})
	require.NoError(t, err)

	all, err := s.ListHeroImages(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "first.jpg", all[0].Image)

	count, err := s.CountHeroImages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSettingsSingleton(t *testing.T) {
	s := NewEmptyMemoryStore()
	ctx := context.Background()

	got, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	saved, err := s.SaveSettings(ctx, &tables.Settings{
		AdminID:     "admin",
		BankName:    "KB Kookmin",
		BankAccount: "123-456-789012",
		BankHolder:  "DEW ODE",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID)

	got, err = s.GetSettings(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "KB Kookmin", got.BankName)
}

func TestLatestCodeReturnsNewestUnused(t *testing.T) {
	s := NewEmptyMemoryStore()
	ctx := context.Background()

	old := &tables.VerificationCode{
		Email:     "jiwoo@example.com",
		Code:      "111111",
		ExpiresAt: time.Now().Add(10 * time.Minute),
		CreatedAt: time.Now().Add(-5 * time.Minute),
	}
	require.NoError(t, s.CreateCode(ctx, old))

	newest := &tables.VerificationCode{
		Email:     "jiwoo@example.com",
		Code:      "222222",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	require.NoError(t, s.CreateCode(ctx, newest))

	got, err := s.LatestCode(ctx, "JIWOO@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "222222", got.Code)

	require.NoError(t, s.MarkCodeUsed(ctx, got.Id))

	got, err = s.LatestCode(ctx, "jiwoo@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "111111", got.Code)
}

func TestLatestCodeNoneExists(t *testing.T) {
	s := NewEmptyMemoryStore()

	got, err := s.LatestCode(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSeededStoreHasDemoCatalog(t *testing.T) {
	s := NewMemoryStore()

	products, err := s.ListProducts(context.Background(), ProductListOptions{IncludeSoldOut: true})
	require.NoError(t, err)
	assert.NotEmpty(t, products)
}
