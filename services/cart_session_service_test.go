package services

import (
	"context"
	"testing"

	"dewode_server/cart"
	"dewode_server/lib"
	"dewode_server/store"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapCartStorage replaces Redis with an in-process map for tests.
type mapCartStorage struct {
	carts map[string]*cart.Cart
}

func newMapCartStorage() *mapCartStorage {
	return &mapCartStorage{carts: make(map[string]*cart.Cart)}
}

func (s *mapCartStorage) GetCart(sessionID string) (*cart.Cart, error) {
	if c, ok := s.carts[sessionID]; ok {
		return c, nil
	}
	return cart.New(), nil
}

func (s *mapCartStorage) SetCart(sessionID string, c *cart.Cart) error {
	s.carts[sessionID] = c
	return nil
}

func (s *mapCartStorage) DeleteCart(sessionID string) error {
	delete(s.carts, sessionID)
	return nil
}

func newCartSessionServiceForTest(t *testing.T) (*CartSessionService, *store.MemoryStore) {
	t.Helper()

	st := store.NewEmptyMemoryStore()
	return NewCartSessionService(gecho.NewDefaultLogger(), st, newMapCartStorage()), st
}

func TestCartAddItemSnapshotsProduct(t *testing.T) {
	svc, st := newCartSessionServiceForTest(t)
	ctx := context.Background()

	product := seedProduct(t, st, "STAINLESS PLATE 240", 48000, 10)

	c, err := svc.AddItem(ctx, "session-1", product.ID)
	require.NoError(t, err)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "STAINLESS PLATE 240", items[0].Name)
	assert.Equal(t, int64(48000), items[0].Price)
	assert.Equal(t, 1, items[0].Quantity)

	// The cart is persisted, not just returned
	stored, err := svc.GetCart(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Count())
}

func TestCartAddItemUnknownProduct(t *testing.T) {
	svc, _ := newCartSessionServiceForTest(t)

	_, err := svc.AddItem(context.Background(), "session-1", uuid.New())
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestCartAddItemSoldOutProduct(t *testing.T) {
	svc, st := newCartSessionServiceForTest(t)

	product := seedProduct(t, st, "METAL BASE STAND", 120000, 0)

	_, err := svc.AddItem(context.Background(), "session-1", product.ID)
	assert.ErrorIs(t, err, lib.ErrConflict)
}

func TestCartSessionsAreIsolated(t *testing.T) {
	svc, st := newCartSessionServiceForTest(t)
	ctx := context.Background()

	product := seedProduct(t, st, "PRECISION FORK", 18000, 10)

	_, err := svc.AddItem(ctx, "session-a", product.ID)
	require.NoError(t, err)

	other, err := svc.GetCart(ctx, "session-b")
	require.NoError(t, err)
	assert.True(t, other.IsEmpty())
}

func TestCartUpdateQuantityAndRemove(t *testing.T) {
	svc, st := newCartSessionServiceForTest(t)
	ctx := context.Background()

	product := seedProduct(t, st, "MINIMAL STEEL CUP", 24000, 10)

	_, err := svc.AddItem(ctx, "session-1", product.ID)
	require.NoError(t, err)

	c, err := svc.UpdateQuantity(ctx, "session-1", product.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, c.Count())
	assert.Equal(t, int64(96000), c.Total())

	c, err = svc.RemoveItem(ctx, "session-1", product.ID)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestCartClear(t *testing.T) {
	svc, st := newCartSessionServiceForTest(t)
	ctx := context.Background()

	product := seedProduct(t, st, "STEEL BREAD TRAY", 64000, 10)

	_, err := svc.AddItem(ctx, "session-1", product.ID)
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(ctx, "session-1"))

	c, err := svc.GetCart(ctx, "session-1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}
