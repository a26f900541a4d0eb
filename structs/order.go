package structs

import "github.com/google/uuid"

// CheckoutItem is one line of a checkout request. Pricing is not
// accepted from the client: the server snapshots the catalog price.
type CheckoutItem struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type CheckoutRequest struct {
	Email         string `json:"email" validate:"required,email"`
	CustomerName  string `json:"customerName" validate:"required,min=2,max=100"`
	CustomerPhone string `json:"customerPhone" validate:"required,min=9,max=20"`

	// Address parts, composed server-side into "(postcode) address detail".
	Postcode      string `json:"postcode" validate:"required,min=3,max=10"`
	Address       string `json:"address" validate:"required,min=2,max=300"`
	AddressDetail string `json:"addressDetail" validate:"omitempty,max=200"`

	Items []CheckoutItem `json:"items" validate:"required,min=1,dive"`
}

type OrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type TrackingRequest struct {
	TrackingNumber string `json:"trackingNumber" validate:"required,min=4,max=50"`
}

type OrderLookupRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SalesReportRow aggregates revenue and quantity per product across all
// non-cancelled orders.
type SalesReportRow struct {
	ProductID     uuid.UUID `json:"productId"`
	ProductName   string    `json:"productName"`
	TotalRevenue  int64     `json:"totalRevenue"`
	TotalQuantity int       `json:"totalQuantity"`
}
