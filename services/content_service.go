package services

import (
	"context"

	"dewode_server/lib"
	"dewode_server/store"
	"dewode_server/structs"
	"dewode_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// ContentService manages landing-page content: the hero banner rotation
// and the 4x4 collection grid.
type ContentService struct {
	logger *gecho.Logger
	store  store.Store
}

func NewContentService(logger *gecho.Logger, st store.Store) *ContentService {
	return &ContentService{
		logger: logger,
		store:  st,
	}
}

// Hero images

func (cs *ContentService) GetHeroImages(ctx context.Context) ([]tables.HeroImage, error) {
	return cs.store.ListHeroImages(ctx)
}

// CreateHeroImage adds a banner. The rotation holds at most
// tables.MaxHeroImages entries; beyond that lib.ErrHeroLimit is returned.
func (cs *ContentService) CreateHeroImage(ctx context.Context, input *structs.HeroImageInput) (*tables.HeroImage, error) {
	count, err := cs.store.CountHeroImages(ctx)
	if err != nil {
		return nil, err
	}
	if count >= tables.MaxHeroImages {
		return nil, lib.ErrHeroLimit
	}

	hero := &tables.HeroImage{
		ID:           uuid.New(),
		Image:        input.Image,
		Title:        input.Title,
		DisplayOrder: input.DisplayOrder,
	}

	created, err := cs.store.CreateHeroImage(ctx, hero)
	if err != nil {
		cs.logger.Error("Failed to create hero image", gecho.Field("error", err))
		return nil, err
	}

	cs.logger.Info("Hero image created", gecho.Field("hero_id", created.ID))
	return created, nil
}

func (cs *ContentService) UpdateHeroImage(ctx context.Context, id uuid.UUID, input *structs.HeroImageInput) (*tables.HeroImage, error) {
	fields := map[string]any{
		"image":         input.Image,
		"title":         input.Title,
		"display_order": input.DisplayOrder,
	}

	updated, err := cs.store.UpdateHeroImage(ctx, id, fields)
	if err != nil {
		cs.logger.Error("Failed to update hero image", gecho.Field("error", err), gecho.Field("hero_id", id))
		return nil, err
	}
	return updated, nil
}

func (cs *ContentService) DeleteHeroImage(ctx context.Context, id uuid.UUID) error {
	if err := cs.store.DeleteHeroImage(ctx, id); err != nil {
		cs.logger.Error("Failed to delete hero image", gecho.Field("error", err), gecho.Field("hero_id", id))
		return err
	}
	cs.logger.Info("Hero image deleted", gecho.Field("hero_id", id))
	return nil
}

// Collections

func (cs *ContentService) GetCollections(ctx context.Context) ([]tables.Collection, error) {
	return cs.store.ListCollections(ctx)
}

// PutCollection places an image at a grid cell. An occupied cell is
// replaced, not rejected.
func (cs *ContentService) PutCollection(ctx context.Context, input *structs.CollectionInput) (*tables.Collection, error) {
	if input.Row < 0 || input.Row >= tables.CollectionGridSize ||
		input.Col < 0 || input.Col >= tables.CollectionGridSize {
		return nil, lib.ErrValidation
	}

	collection := &tables.Collection{
		ID:    uuid.New(),
		Image: input.Image,
		Row:   input.Row,
		Col:   input.Col,
	}

	placed, err := cs.store.PutCollection(ctx, collection)
	if err != nil {
		cs.logger.Error("Failed to place collection image",
			gecho.Field("error", err),
			gecho.Field("row", input.Row),
			gecho.Field("col", input.Col),
		)
		return nil, err
	}

	cs.logger.Info("Collection image placed",
		gecho.Field("collection_id", placed.ID),
		gecho.Field("row", placed.Row),
		gecho.Field("col", placed.Col),
	)
	return placed, nil
}

func (cs *ContentService) DeleteCollection(ctx context.Context, id uuid.UUID) error {
	if err := cs.store.DeleteCollection(ctx, id); err != nil {
		cs.logger.Error("Failed to delete collection image", gecho.Field("error", err), gecho.Field("collection_id", id))
		return err
	}
	cs.logger.Info("Collection image deleted", gecho.Field("collection_id", id))
	return nil
}
