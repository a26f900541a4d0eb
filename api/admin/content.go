package admin

import (
	"errors"
	"net/http"

	"dewode_server/lib"
	"dewode_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ListHeroImages handles GET /admin/hero
func (arm *AdminRoutesManager) ListHeroImages(w http.ResponseWriter, r *http.Request) {
	heroes, err := arm.contentService.GetHeroImages(r.Context())
	if err != nil {
		arm.logger.Error("Failed to list hero images", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.content.heroFetchFailed"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{"heroImages": heroes}),
		gecho.Send(),
	)
}

// CreateHeroImage handles POST /admin/hero
func (arm *AdminRoutesManager) CreateHeroImage(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.HeroImageInput](r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.content.invalidRequestBody"), gecho.WithData(err), gecho.Send())
		return
	}

	hero, err := arm.contentService.CreateHeroImage(r.Context(), body)
	if err != nil {
		if errors.Is(err, lib.ErrHeroLimit) {
			gecho.BadRequest(w, gecho.WithMessage("error.content.heroLimitReached"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to create hero image", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.content.heroCreateFailed"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.content.heroCreated"),
		gecho.WithData(map[string]any{"heroImage": hero}),
		gecho.Send(),
	)
}

// UpdateHeroImage handles PUT /admin/hero/{id}
func (arm *AdminRoutesManager) UpdateHeroImage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.content.invalidHeroId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.HeroImageInput](r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.content.invalidRequestBody"), gecho.WithData(err), gecho.Send())
		return
	}

	hero, err := arm.contentService.UpdateHeroImage(r.Context(), id, body)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("error.content.heroNotFound"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to update hero image", gecho.Field("error", err), gecho.Field("hero_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("error.content.heroUpdateFailed"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.content.heroUpdated"),
		gecho.WithData(map[string]any{"heroImage": hero}),
		gecho.Send(),
	)
}

// DeleteHeroImage handles DELETE /admin/hero/{id}
func (arm *AdminRoutesManager) DeleteHeroImage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.content.invalidHeroId"), gecho.Send())
		return
	}

	if err := arm.contentService.DeleteHeroImage(r.Context(), id); err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("error.content.heroNotFound"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to delete hero image", gecho.Field("error", err), gecho.Field("hero_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("error.content.heroDeleteFailed"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.content.heroDeleted"),
		gecho.Send(),
	)
}

// ListCollections handles GET /admin/collections
func (arm *AdminRoutesManager) ListCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := arm.contentService.GetCollections(r.Context())
	if err != nil {
		arm.logger.Error("Failed to list collections", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.content.collectionsFetchFailed"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{"collections": collections}),
		gecho.Send(),
	)
}

// PutCollection handles PUT /admin/collections: place an image at a grid
// cell, replacing any previous occupant.
func (arm *AdminRoutesManager) PutCollection(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CollectionInput](r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.content.invalidRequestBody"), gecho.WithData(err), gecho.Send())
		return
	}

	collection, err := arm.contentService.PutCollection(r.Context(), body)
	if err != nil {
		if errors.Is(err, lib.ErrValidation) {
			gecho.BadRequest(w, gecho.WithMessage("error.content.invalidGridCell"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to place collection image", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.content.collectionPutFailed"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.content.collectionPlaced"),
		gecho.WithData(map[string]any{"collection": collection}),
		gecho.Send(),
	)
}

// DeleteCollection handles DELETE /admin/collections/{id}
func (arm *AdminRoutesManager) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.content.invalidCollectionId"), gecho.Send())
		return
	}

	if err := arm.contentService.DeleteCollection(r.Context(), id); err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("error.content.collectionNotFound"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to delete collection image", gecho.Field("error", err), gecho.Field("collection_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("error.content.collectionDeleteFailed"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.content.collectionDeleted"),
		gecho.Send(),
	)
}
