package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"dewode_server/lib"
	"dewode_server/store"
	"dewode_server/structs"
	"dewode_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubMailer records sent mail so tests can assert on it without a
// mail provider.
type stubMailer struct {
	mu            sync.Mutex
	confirmations []string
	shipments     []string
}

func (m *stubMailer) SendOrderConfirmationEmail(email, name, orderNumber string, items []tables.OrderItem, totalAmount int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.confirmations = append(m.confirmations, orderNumber)
	return nil
}

func (m *stubMailer) SendShippingNotificationEmail(email, name, orderNumber, trackingNumber string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shipments = append(m.shipments, trackingNumber)
	return nil
}

type stubVerifier struct {
	verified map[string]bool
}

func (v *stubVerifier) IsVerified(ctx context.Context, email string) (bool, error) {
	return v.verified[strings.ToLower(email)], nil
}

func newOrderServiceForTest(t *testing.T, st store.Store, verified ...string) (*OrderService, *stubMailer) {
	t.Helper()

	verifier := &stubVerifier{verified: make(map[string]bool)}
	for _, email := range verified {
		verifier.verified[strings.ToLower(email)] = true
	}

	mailer := &stubMailer{}
	svc := NewOrderService(gecho.NewDefaultLogger(), &structs.Config{}, st, mailer, verifier)
	return svc, mailer
}

func seedProduct(t *testing.T, st *store.MemoryStore, name string, price int64, stock int) *tables.Product {
	t.Helper()

	p, err := st.CreateProduct(context.Background(), &tables.Product{
		Name:  name,
		Price: price,
		Image: "https://cdn.dew-ode.com/" + name + ".jpg",
		Stock: stock,
	})
	require.NoError(t, err)
	return p
}

func checkoutRequest(email string, items ...structs.CheckoutItem) *structs.CheckoutRequest {
	return &structs.CheckoutRequest{
		Email:         email,
		CustomerName:  "Kim Jiwoo",
		CustomerPhone: "010-1234-5678",
		Postcode:      "04524",
		Address:       "110 Sejong-daero, Jung-gu, Seoul",
		AddressDetail: "3F",
		Items:         items,
	}
}

func TestCreateOrderRequiresVerifiedEmail(t *testing.T) {
	st := store.NewEmptyMemoryStore()
	svc, _ := newOrderServiceForTest(t, st)

	_, err := svc.CreateOrder(context.Background(), checkoutRequest("jiwoo@example.com",
		structs.CheckoutItem{ProductID: uuid.New(), Quantity: 1}))

	assert.ErrorIs(t, err, lib.ErrNotVerified)
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	st := store.NewEmptyMemoryStore()
	svc, _ := newOrderServiceForTest(t, st, "jiwoo@example.com")

	_, err := svc.CreateOrder(context.Background(), checkoutRequest("jiwoo@example.com"))

	assert.ErrorIs(t, err, lib.ErrValidation)
}

func TestCreateOrderRejectsZeroQuantity(t *testing.T) {
	st := store.NewEmptyMemoryStore()
	product := seedProduct(t, st, "STAINLESS PLATE 240", 48000, 10)
	svc, _ := newOrderServiceForTest(t, st, "jiwoo@example.com")

	_, err := svc.CreateOrder(context.Background(), checkoutRequest("jiwoo@example.com",
		structs.CheckoutItem{ProductID: product.ID, Quantity: 0}))

	assert.ErrorIs(t, err, lib.ErrValidation)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	st := store.NewEmptyMemoryStore()
	svc, _ := newOrderServiceForTest(t, st, "jiwoo@example.com")

	_, err := svc.CreateOrder(context.Background(), checkoutRequest("jiwoo@example.com",
		structs.CheckoutItem{ProductID: uuid.New(), Quantity: 1}))

	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestCreateOrderSnapshotsCatalogPrices(t *testing.T) {
	st := store.NewEmptyMemoryStore()
	plate := seedProduct(t, st, "STAINLESS PLATE 240", 48000, 10)
	cup := seedProduct(t, st, "MINIMAL STEEL CUP", 24000, 5)
	svc, _ := newOrderServiceForTest(t, st, "jiwoo@example.com")

	order, err := svc.CreateOrder(context.Background(), checkoutRequest("Jiwoo@Example.com",
		structs.CheckoutItem{ProductID: plate.ID, Quantity: 2},
		structs.CheckoutItem{ProductID: cup.ID, Quantity: 1}))
	require.NoError(t, err)

	assert.Equal(t, "jiwoo@example.com", order.Email)
	assert.Equal(t, tables.OrderStatusPending, order.Status)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "DO-"))
	assert.Equal(t, int64(120000), order.TotalAmount)
	assert.Equal(t, "(04524) 110 Sejong-daero, Jung-gu, Seoul 3F", order.CustomerAddress)

	require.Len(t, order.Items, 2)
	assert.Equal(t, int64(48000), order.Items[0].PriceAtPurchase)
	assert.Equal(t, "STAINLESS PLATE 240", order.Items[0].ProductName)

	stored, err := st.GetOrder(context.Background(), order.Id)
	require.NoError(t, err)
	assert.Len(t, stored.Items, 2)
}

func TestCreateOrderDecrementsStock(t *testing.T) {
	st := store.NewEmptyMemoryStore()
	exact := seedProduct(t, st, "STEEL BREAD TRAY", 64000, 3)
	partial := seedProduct(t, st, "PRECISION FORK", 18000, 5)
	svc, _ := newOrderServiceForTest(t, st, "jiwoo@example.com")

	_, err := svc.CreateOrder(context.Background(), checkoutRequest("jiwoo@example.com",
		structs.CheckoutItem{ProductID: exact.ID, Quantity: 3},
		structs.CheckoutItem{ProductID: partial.ID, Quantity: 2}))
	require.NoError(t, err)

	gotExact, err := st.GetProduct(context.Background(), exact.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, gotExact.Stock)
	assert.True(t, gotExact.IsSoldOut)

	gotPartial, err := st.GetProduct(context.Background(), partial.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, gotPartial.Stock)
	assert.False(t, gotPartial.IsSoldOut)
}

func TestCreateOrderDuplicateLinesAccumulateStockDecrement(t *testing.T) {
	st := store.NewEmptyMemoryStore()
	product := seedProduct(t, st, "STAINLESS PLATE 240", 48000, 10)
	svc, _ := newOrderServiceForTest(t, st, "jiwoo@example.com")

	// Two separate lines for the same product must both be applied.
	_, err := svc.CreateOrder(context.Background(), checkoutRequest("jiwoo@example.com",
		structs.CheckoutItem{ProductID: product.ID, Quantity: 2},
		structs.CheckoutItem{ProductID: product.ID, Quantity: 2}))
	require.NoError(t, err)

	got, err := st.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, got.Stock)
	assert.False(t, got.IsSoldOut)
}

func TestCancelByCustomer(t *testing.T) {
	tests := []struct {
		name    string
		status  tables.OrderStatus
		email   string
		wantErr error
	}{
		{name: "pending is cancellable", status: tables.OrderStatusPending, email: "jiwoo@example.com"},
		{name: "paid is cancellable", status: tables.OrderStatusPaid, email: "jiwoo@example.com"},
		{name: "email match ignores case", status: tables.OrderStatusPending, email: "JIWOO@example.com"},
		{name: "shipped is not cancellable", status: tables.OrderStatusShipped, email: "jiwoo@example.com", wantErr: lib.ErrForbiddenTransition},
		{name: "completed is not cancellable", status: tables.OrderStatusCompleted, email: "jiwoo@example.com", wantErr: lib.ErrForbiddenTransition},
		{name: "already cancelled", status: tables.OrderStatusCancelled, email: "jiwoo@example.com", wantErr: lib.ErrForbiddenTransition},
		{name: "email mismatch reports not found", status: tables.OrderStatusPending, email: "other@example.com", wantErr: lib.ErrNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := store.NewEmptyMemoryStore()
			svc, _ := newOrderServiceForTest(t, st)

			order, err := st.CreateOrder(context.Background(), &tables.Order{
				OrderNumber:     "DO-TEST0001",
				Email:           "jiwoo@example.com",
				CustomerName:    "Kim Jiwoo",
				CustomerPhone:   "010-1234-5678",
				CustomerAddress: "(04524) 110 Sejong-daero, Jung-gu, Seoul",
				TotalAmount:     48000,
				Status:          tc.status,
			})
			require.NoError(t, err)
			require.NoError(t, st.CreateOrderItems(context.Background(), []tables.OrderItem{{
				Id:              uuid.New(),
				OrderId:         order.Id,
				ProductId:       uuid.New(),
				Quantity:        1,
				PriceAtPurchase: 48000,
				ProductName:     "STAINLESS PLATE 240",
			}}))

			cancelled, err := svc.CancelByCustomer(context.Background(), order.Id, tc.email)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tables.OrderStatusCancelled, cancelled.Status)

			// Cancelling flips the status only; the snapshot stays intact.
			got, err := st.GetOrder(context.Background(), order.Id)
			require.NoError(t, err)
			assert.Equal(t, int64(48000), got.TotalAmount)
			require.Len(t, got.Items, 1)
			assert.Equal(t, 1, got.Items[0].Quantity)
			assert.Equal(t, int64(48000), got.Items[0].PriceAtPurchase)
		})
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	st := store.NewEmptyMemoryStore()
	svc, _ := newOrderServiceForTest(t, st)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), tables.OrderStatus("REFUNDED"))

	assert.ErrorIs(t, err, lib.ErrValidation)
}

func TestUpdateStatusAllowsAnyKnownStatus(t *testing.T) {
	st := store.NewEmptyMemoryStore()
	svc, _ := newOrderServiceForTest(t, st)

	order, err := st.CreateOrder(context.Background(), &tables.Order{
		OrderNumber:     "DO-TEST0002",
		Email:           "jiwoo@example.com",
		CustomerName:    "Kim Jiwoo",
		CustomerPhone:   "010-1234-5678",
		CustomerAddress: "(04524) 110 Sejong-daero, Jung-gu, Seoul",
		TotalAmount:     48000,
		Status:          tables.OrderStatusCompleted,
	})
	require.NoError(t, err)

	// Admins may move backwards
	updated, err := svc.UpdateStatus(context.Background(), order.Id, tables.OrderStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, tables.OrderStatusPaid, updated.Status)
}

func TestUpdateTrackingNotifiesCustomer(t *testing.T) {
	st := store.NewEmptyMemoryStore()
	svc, mailer := newOrderServiceForTest(t, st)

	order, err := st.CreateOrder(context.Background(), &tables.Order{
		OrderNumber:     "DO-TEST0003",
		Email:           "jiwoo@example.com",
		CustomerName:    "Kim Jiwoo",
		CustomerPhone:   "010-1234-5678",
		CustomerAddress: "(04524) 110 Sejong-daero, Jung-gu, Seoul",
		TotalAmount:     48000,
		Status:          tables.OrderStatusPaid,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateTracking(context.Background(), order.Id, "CJ123456789KR")
	require.NoError(t, err)
	require.NotNil(t, updated.TrackingNumber)
	assert.Equal(t, "CJ123456789KR", *updated.TrackingNumber)

	// Notification is sent on a goroutine
	assert.Eventually(t, func() bool {
		mailer.mu.Lock()
		defer mailer.mu.Unlock()
		return len(mailer.shipments) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestComposeAddress(t *testing.T) {
	assert.Equal(t, "(04524) 110 Sejong-daero 3F", ComposeAddress("04524", "110 Sejong-daero", "3F"))
	assert.Equal(t, "(04524) 110 Sejong-daero", ComposeAddress("04524", "110 Sejong-daero", ""))
}
