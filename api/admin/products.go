package admin

import (
	"errors"
	"net/http"

	"dewode_server/handling"
	"dewode_server/lib"
	"dewode_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ListAllProducts handles GET /admin/products. Sold-out items are always
// included in the admin view.
func (arm *AdminRoutesManager) ListAllProducts(w http.ResponseWriter, r *http.Request) {
	opts, err := handling.ParseProductListOptions(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.invalidQueryParameters"), gecho.WithData(err.Error()), gecho.Send())
		return
	}
	opts.IncludeSoldOut = true

	products, err := arm.productService.GetProducts(r.Context(), *opts)
	if err != nil {
		arm.logger.Error("Failed to list products for admin", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.products.failedToFetch"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"products": products,
			"meta":     map[string]any{"count": len(products)},
		}),
		gecho.Send(),
	)
}

// CreateProduct handles POST /admin/products
func (arm *AdminRoutesManager) CreateProduct(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.ProductInput](r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.products.invalidRequestBody"), gecho.WithData(err), gecho.Send())
		return
	}

	product, err := arm.productService.CreateProduct(r.Context(), body)
	if err != nil {
		if errors.Is(err, lib.ErrValidation) {
			gecho.BadRequest(w, gecho.WithMessage("error.products.invalidInput"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to create product", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.products.createFailed"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.products.created"),
		gecho.WithData(map[string]any{"product": product}),
		gecho.Send(),
	)
}

// UpdateProduct handles PUT /admin/products/{id}
func (arm *AdminRoutesManager) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.products.invalidProductId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.ProductInput](r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.products.invalidRequestBody"), gecho.WithData(err), gecho.Send())
		return
	}

	product, err := arm.productService.UpdateProduct(r.Context(), id, body)
	if err != nil {
		switch {
		case errors.Is(err, lib.ErrNotFound):
			gecho.NotFound(w, gecho.WithMessage("error.products.notFound"), gecho.Send())
		case errors.Is(err, lib.ErrValidation):
			gecho.BadRequest(w, gecho.WithMessage("error.products.invalidInput"), gecho.Send())
		default:
			arm.logger.Error("Failed to update product", gecho.Field("error", err), gecho.Field("product_id", id))
			gecho.InternalServerError(w, gecho.WithMessage("error.products.updateFailed"), gecho.Send())
		}
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.products.updated"),
		gecho.WithData(map[string]any{"product": product}),
		gecho.Send(),
	)
}

// DeleteProduct handles DELETE /admin/products/{id}
func (arm *AdminRoutesManager) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.products.invalidProductId"), gecho.Send())
		return
	}

	if err := arm.productService.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("error.products.notFound"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to delete product", gecho.Field("error", err), gecho.Field("product_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("error.products.deleteFailed"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.products.deleted"),
		gecho.Send(),
	)
}
