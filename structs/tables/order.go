package tables

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	tableName   struct{}  `bun:"table:orders,alias:o"`
	Id          uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id" validate:"omitempty,uuid4"`
	OrderNumber string    `bun:"order_number,notnull,unique" json:"orderNumber" validate:"omitempty,min=8,max=50"`

	// Customer data, snapshotted at checkout. CustomerAddress is the
	// composed "(postcode) address detail" string the storefront builds.
	Email           string `bun:"email,notnull" json:"email" validate:"required,email"`
	CustomerName    string `bun:"customer_name,notnull" json:"customerName" validate:"required,min=2,max=100"`
	CustomerPhone   string `bun:"customer_phone,notnull" json:"customerPhone" validate:"required,min=9,max=20"`
	CustomerAddress string `bun:"customer_address,notnull" json:"customerAddress" validate:"required,min=5,max=500"`

	// TotalAmount is fixed at creation and never recomputed afterwards.
	TotalAmount int64 `bun:"total_amount,notnull" json:"totalAmount" validate:"required,gte=0"`

	Status         OrderStatus `bun:"status,notnull,default:'PENDING'" json:"status" validate:"required,oneof=PENDING PAID SHIPPED COMPLETED CANCELLED"`
	TrackingNumber *string     `bun:"tracking_number,nullzero" json:"trackingNumber,omitempty"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`

	Items []OrderItem `bun:"rel:has-many,join:id=order_id" json:"items,omitempty"`
}

// OrderItem is an immutable snapshot of a product at purchase time.
// Later catalog edits never touch these rows.
type OrderItem struct {
	tableName       struct{}  `bun:"table:order_items,alias:oi"`
	Id              uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id" validate:"omitempty,uuid4"`
	OrderId         uuid.UUID `bun:"order_id,notnull,type:uuid" json:"orderId" validate:"required,uuid4"`
	ProductId       uuid.UUID `bun:"product_id,notnull,type:uuid" json:"productId" validate:"required,uuid4"`
	Quantity        int       `bun:"quantity,notnull" json:"quantity" validate:"required,min=1"`
	PriceAtPurchase int64     `bun:"price_at_purchase,notnull" json:"priceAtPurchase" validate:"required,gte=0"`
	ProductName     string    `bun:"product_name,notnull" json:"productName" validate:"required,min=1,max=200"`
	ProductImage    string    `bun:"product_image" json:"productImage,omitempty"`
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValid reports whether s is one of the known order statuses.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}
