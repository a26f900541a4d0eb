package services

import (
	"context"

	"dewode_server/cart"
	"dewode_server/lib"
	"dewode_server/store"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// cartStorage is the slice of CacheService the cart flow needs.
type cartStorage interface {
	GetCart(sessionID string) (*cart.Cart, error)
	SetCart(sessionID string, c *cart.Cart) error
	DeleteCart(sessionID string) error
}

// CartSessionService keeps an anonymous shopping cart per browser session.
// The session id travels in a cookie; the cart itself lives in Redis so it
// survives server restarts without requiring an account.
type CartSessionService struct {
	logger  *gecho.Logger
	store   store.Store
	storage cartStorage
}

func NewCartSessionService(logger *gecho.Logger, st store.Store, storage cartStorage) *CartSessionService {
	return &CartSessionService{
		logger:  logger,
		store:   st,
		storage: storage,
	}
}

// GetCart loads the cart for sessionID. A missing or corrupt payload yields
// an empty cart rather than an error.
func (cs *CartSessionService) GetCart(ctx context.Context, sessionID string) (*cart.Cart, error) {
	return cs.storage.GetCart(sessionID)
}

// AddItem looks up the product, snapshots its name, price, and image into
// the cart, and persists. Unknown products return lib.ErrNotFound; sold-out
// products return lib.ErrConflict.
func (cs *CartSessionService) AddItem(ctx context.Context, sessionID string, productID uuid.UUID) (*cart.Cart, error) {
	product, err := cs.store.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, lib.ErrNotFound
	}
	if product.IsSoldOut {
		return nil, lib.ErrConflict
	}

	c, err := cs.storage.GetCart(sessionID)
	if err != nil {
		return nil, err
	}

	c.AddItem(product.ID, product.Name, product.Price, product.Image)

	if err := cs.storage.SetCart(sessionID, c); err != nil {
		cs.logger.Error("Failed to persist cart", gecho.Field("error", err), gecho.Field("session_id", sessionID))
		return nil, err
	}
	return c, nil
}

// UpdateQuantity sets the quantity for a cart line. Zero or negative removes
// the line; an absent product id is a no-op.
func (cs *CartSessionService) UpdateQuantity(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (*cart.Cart, error) {
	c, err := cs.storage.GetCart(sessionID)
	if err != nil {
		return nil, err
	}

	c.UpdateQuantity(productID, quantity)

	if err := cs.storage.SetCart(sessionID, c); err != nil {
		cs.logger.Error("Failed to persist cart", gecho.Field("error", err), gecho.Field("session_id", sessionID))
		return nil, err
	}
	return c, nil
}

// RemoveItem drops a product from the cart.
func (cs *CartSessionService) RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) (*cart.Cart, error) {
	c, err := cs.storage.GetCart(sessionID)
	if err != nil {
		return nil, err
	}

	c.RemoveItem(productID)

	if err := cs.storage.SetCart(sessionID, c); err != nil {
		cs.logger.Error("Failed to persist cart", gecho.Field("error", err), gecho.Field("session_id", sessionID))
		return nil, err
	}
	return c, nil
}

// ClearCart removes the whole session cart, typically after checkout.
func (cs *CartSessionService) ClearCart(ctx context.Context, sessionID string) error {
	return cs.storage.DeleteCart(sessionID)
}
