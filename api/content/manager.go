package content

import (
	"net/http"

	"dewode_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type ContentRoutesManager struct {
	logger         *gecho.Logger
	contentService *services.ContentService
}

func NewContentRoutesManager(
	logger *gecho.Logger,
	contentService *services.ContentService,
) *ContentRoutesManager {
	return &ContentRoutesManager{
		logger:         logger,
		contentService: contentService,
	}
}

func (crm *ContentRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/hero", crm.GetHeroImages)
	r.Get("/collections", crm.GetCollections)
}

// GetHeroImages handles GET /hero
func (crm *ContentRoutesManager) GetHeroImages(w http.ResponseWriter, r *http.Request) {
	heroes, err := crm.contentService.GetHeroImages(r.Context())
	if err != nil {
		crm.logger.Error("Failed to fetch hero images", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.content.heroFetchFailed"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{"heroImages": heroes}),
		gecho.Send(),
	)
}

// GetCollections handles GET /collections
func (crm *ContentRoutesManager) GetCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := crm.contentService.GetCollections(r.Context())
	if err != nil {
		crm.logger.Error("Failed to fetch collections", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.content.collectionsFetchFailed"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{"collections": collections}),
		gecho.Send(),
	)
}
