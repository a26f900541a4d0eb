package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"dewode_server/lib"
	"dewode_server/store"
	"dewode_server/structs"
	"dewode_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// orderMailer is the slice of the email service the order flow needs.
// Tests substitute a stub so no mail provider is required.
type orderMailer interface {
	SendOrderConfirmationEmail(email, name, orderNumber string, items []tables.OrderItem, totalAmount int64) error
	SendShippingNotificationEmail(email, name, orderNumber, trackingNumber string) error
}

// verifiedChecker reports whether an email passed the verification flow
type verifiedChecker interface {
	IsVerified(ctx context.Context, email string) (bool, error)
}

type OrderService struct {
	logger   *gecho.Logger
	cfg      *structs.Config
	store    store.Store
	mailer   orderMailer
	verifier verifiedChecker
}

func NewOrderService(
	logger *gecho.Logger,
	cfg *structs.Config,
	st store.Store,
	mailer orderMailer,
	verifier verifiedChecker,
) *OrderService {
	return &OrderService{
		logger:   logger,
		cfg:      cfg,
		store:    st,
		mailer:   mailer,
		verifier: verifier,
	}
}

// ComposeAddress builds the single-line shipping address stored on the
// order: "(postcode) address detail".
func ComposeAddress(postcode, address, detail string) string {
	composed := fmt.Sprintf("(%s) %s", postcode, address)
	if detail != "" {
		composed += " " + detail
	}
	return composed
}

// CreateOrder places an order from a checkout request. The email must
// have passed verification first. Pricing is snapshotted from the
// catalog; client-supplied prices are never trusted.
//
// The order header, its items and the stock decrements are three
// separate writes with no surrounding transaction. A failure after the
// header insert leaves a header without items; this mirrors the
// storefront's historical behavior and is logged loudly instead of
// rolled back.
func (os *OrderService) CreateOrder(ctx context.Context, req *structs.CheckoutRequest) (*tables.Order, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	verified, err := os.verifier.IsVerified(ctx, email)
	if err != nil {
		return nil, err
	}
	if !verified {
		return nil, lib.ErrNotVerified
	}

	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order has no items", lib.ErrValidation)
	}

	// Snapshot each product and compute the total
	purchases := make([]purchase, 0, len(req.Items))
	var totalAmount int64

	for _, item := range req.Items {
		product, err := os.store.GetProduct(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", item.ProductID, err)
		}
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1", lib.ErrValidation)
		}
		purchases = append(purchases, purchase{product: product, quantity: item.Quantity})
		totalAmount += product.Price * int64(item.Quantity)
	}

	orderId := uuid.New()
	orderNumber := lib.GenerateOrderNumber()
	now := time.Now()

	order := &tables.Order{
		Id:              orderId,
		OrderNumber:     orderNumber,
		Email:           email,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: ComposeAddress(req.Postcode, req.Address, req.AddressDetail),
		TotalAmount:     totalAmount,
		Status:          tables.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := os.store.CreateOrder(ctx, order); err != nil {
		os.logger.Error("Failed to insert order header",
			gecho.Field("error", err),
			gecho.Field("order_number", orderNumber))
		return nil, err
	}

	items := make([]tables.OrderItem, 0, len(purchases))
	for _, p := range purchases {
		items = append(items, tables.OrderItem{
			Id:              uuid.New(),
			OrderId:         orderId,
			ProductId:       p.product.ID,
			Quantity:        p.quantity,
			PriceAtPurchase: p.product.Price,
			ProductName:     p.product.Name,
			ProductImage:    p.product.Image,
		})
	}

	if err := os.store.CreateOrderItems(ctx, items); err != nil {
		// The header already exists; surface the orphan instead of
		// attempting a rollback.
		os.logger.Error("Order header created but item insert failed, order is incomplete",
			gecho.Field("error", err),
			gecho.Field("order_id", orderId),
			gecho.Field("order_number", orderNumber))
		return nil, err
	}

	os.decrementStock(ctx, purchases, orderId)

	order.Items = items

	go func() {
		emailErr := os.mailer.SendOrderConfirmationEmail(email, req.CustomerName, orderNumber, items, totalAmount)
		if emailErr != nil {
			os.logger.Error("Failed to send order confirmation email",
				gecho.Field("error", emailErr),
				gecho.Field("order_id", orderId),
				gecho.Field("email", email))
		} else {
			os.logger.Info("Order confirmation email sent",
				gecho.Field("order_id", orderId),
				gecho.Field("order_number", orderNumber))
		}
	}()

	os.logger.Info("Order created",
		gecho.Field("order_id", orderId),
		gecho.Field("order_number", orderNumber),
		gecho.Field("total_amount", totalAmount))

	return order, nil
}

// purchase pairs a product snapshot with the ordered quantity
type purchase struct {
	product  *tables.Product
	quantity int
}

// decrementStock applies per-item stock decrements sequentially after
// the order is written. Each line re-reads current stock so duplicate
// lines for one product accumulate instead of overwriting each other.
// Stock may go negative under concurrent checkouts; a failed decrement
// is logged and the rest continue.
func (os *OrderService) decrementStock(ctx context.Context, purchases []purchase, orderId uuid.UUID) {
	for _, p := range purchases {
		product, err := os.store.GetProduct(ctx, p.product.ID)
		if err != nil {
			os.logger.Error("Failed to read product for stock decrement",
				gecho.Field("error", err),
				gecho.Field("order_id", orderId),
				gecho.Field("product_id", p.product.ID))
			continue
		}
		newStock := product.Stock - p.quantity
		soldOut := newStock <= 0
		if err := os.store.UpdateStock(ctx, product.ID, newStock, soldOut); err != nil {
			os.logger.Error("Failed to decrement stock after order",
				gecho.Field("error", err),
				gecho.Field("order_id", orderId),
				gecho.Field("product_id", p.product.ID))
		}
	}
}

// GetOrderById retrieves an order with its items
func (os *OrderService) GetOrderById(ctx context.Context, orderId uuid.UUID) (*tables.Order, error) {
	return os.store.GetOrder(ctx, orderId)
}

// GetOrdersByEmail returns the customer's orders, newest first. The
// caller is responsible for checking that the email was verified.
func (os *OrderService) GetOrdersByEmail(ctx context.Context, email string) ([]tables.Order, error) {
	return os.store.ListOrdersByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// GetAllOrders returns every order, newest first, for the admin console
func (os *OrderService) GetAllOrders(ctx context.Context) ([]tables.Order, error) {
	return os.store.ListOrders(ctx)
}

// customerCancellable are the statuses a customer may cancel from.
// Once an order has shipped, cancellation requires admin contact.
var customerCancellable = []tables.OrderStatus{
	tables.OrderStatusPending,
	tables.OrderStatusPaid,
}

// CancelByCustomer cancels the customer's own order. The email must
// match the order's email; mismatches report not-found rather than
// revealing the order exists.
func (os *OrderService) CancelByCustomer(ctx context.Context, orderId uuid.UUID, email string) (*tables.Order, error) {
	order, err := os.store.GetOrder(ctx, orderId)
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(order.Email, strings.TrimSpace(email)) {
		return nil, lib.ErrNotFound
	}

	if !slices.Contains(customerCancellable, order.Status) {
		return nil, fmt.Errorf("%w: cannot cancel order in status %s", lib.ErrForbiddenTransition, order.Status)
	}

	updated, err := os.store.UpdateOrder(ctx, orderId, map[string]any{
		"status":     tables.OrderStatusCancelled,
		"updated_at": time.Now(),
	})
	if err != nil {
		return nil, err
	}

	os.logger.Info("Order cancelled by customer",
		gecho.Field("order_id", orderId),
		gecho.Field("previous_status", order.Status))

	return updated, nil
}

// UpdateStatus sets an order's status from the admin console. Admins
// may move an order to any known status, including backwards; only
// unknown statuses are rejected.
func (os *OrderService) UpdateStatus(ctx context.Context, orderId uuid.UUID, newStatus tables.OrderStatus) (*tables.Order, error) {
	if !newStatus.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", lib.ErrValidation, newStatus)
	}

	order, err := os.store.GetOrder(ctx, orderId)
	if err != nil {
		return nil, err
	}

	updated, err := os.store.UpdateOrder(ctx, orderId, map[string]any{
		"status":     newStatus,
		"updated_at": time.Now(),
	})
	if err != nil {
		return nil, err
	}

	os.logger.Info("Order status updated",
		gecho.Field("order_id", orderId),
		gecho.Field("old_status", order.Status),
		gecho.Field("new_status", newStatus))

	return updated, nil
}

// UpdateTracking attaches a tracking number and notifies the customer
func (os *OrderService) UpdateTracking(ctx context.Context, orderId uuid.UUID, trackingNumber string) (*tables.Order, error) {
	order, err := os.store.GetOrder(ctx, orderId)
	if err != nil {
		return nil, err
	}

	updated, err := os.store.UpdateOrder(ctx, orderId, map[string]any{
		"tracking_number": trackingNumber,
		"updated_at":      time.Now(),
	})
	if err != nil {
		return nil, err
	}

	go func() {
		emailErr := os.mailer.SendShippingNotificationEmail(order.Email, order.CustomerName, order.OrderNumber, trackingNumber)
		if emailErr != nil {
			os.logger.Error("Failed to send shipping notification email",
				gecho.Field("error", emailErr),
				gecho.Field("order_id", orderId))
		}
	}()

	os.logger.Info("Tracking number attached",
		gecho.Field("order_id", orderId),
		gecho.Field("tracking_number", trackingNumber))

	return updated, nil
}

// SalesReport aggregates revenue per product over non-cancelled orders
func (os *OrderService) SalesReport(ctx context.Context) ([]structs.SalesReportRow, error) {
	return os.store.SalesReport(ctx)
}
