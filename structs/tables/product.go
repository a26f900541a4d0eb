package tables

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog item. Prices are stored as whole KRW.
// IsSoldOut is a stored derived column: it must equal (Stock <= 0)
// after every stock mutation, and both store implementations maintain
// that invariant on writes.
type Product struct {
	tableName    struct{}  `bun:"table:products,alias:p"`
	ID           uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name         string    `bun:"name,notnull" json:"name"`
	Price        int64     `bun:"price,notnull" json:"price"`
	Image        string    `bun:"image,notnull" json:"image"`
	DetailImages []string  `bun:"detail_images,array" json:"detailImages,omitempty"`
	Description  string    `bun:"description" json:"description,omitempty"`
	Details      string    `bun:"details" json:"details,omitempty"`
	ShippingInfo string    `bun:"shipping_info" json:"shippingInfo,omitempty"`
	Tags         []string  `bun:"tags,array" json:"tags,omitempty"`
	Stock        int       `bun:"stock,notnull" json:"stock"`
	IsSoldOut    bool      `bun:"is_sold_out,notnull" json:"isSoldOut"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:now()" json:"createdAt"`
}

// MaxDetailImages caps the gallery on a product detail page.
const MaxDetailImages = 6
