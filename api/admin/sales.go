package admin

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

// GetSalesReport handles GET /admin/sales-report: revenue and quantity
// per product across non-cancelled orders, best sellers first.
func (arm *AdminRoutesManager) GetSalesReport(w http.ResponseWriter, r *http.Request) {
	rows, err := arm.orderService.SalesReport(r.Context())
	if err != nil {
		arm.logger.Error("Failed to build sales report", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.sales.reportFailed"), gecho.Send())
		return
	}

	var totalRevenue int64
	var totalQuantity int
	for _, row := range rows {
		totalRevenue += row.TotalRevenue
		totalQuantity += row.TotalQuantity
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"rows": rows,
			"totals": map[string]any{
				"revenue":  totalRevenue,
				"quantity": totalQuantity,
			},
		}),
		gecho.Send(),
	)
}
