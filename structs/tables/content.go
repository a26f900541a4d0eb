package tables

import (
	"github.com/google/uuid"
)

// Collection is one cell of the storefront's 4x4 image grid. The
// (row, col) pair is unique: writing to an occupied cell replaces the
// previous occupant.
type Collection struct {
	tableName struct{}  `bun:"table:collections,alias:c"`
	ID        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Image     string    `bun:"image,notnull" json:"image"`
	Row       int       `bun:"row,notnull" json:"row" validate:"gte=0,lte=3"`
	Col       int       `bun:"col,notnull" json:"col" validate:"gte=0,lte=3"`
}

// CollectionGridSize is the side length of the collection grid.
const CollectionGridSize = 4

// HeroImage is a landing-page banner. At most MaxHeroImages rows exist;
// the cap is enforced by the content service, not the store.
type HeroImage struct {
	tableName    struct{}  `bun:"table:hero_images,alias:h"`
	ID           uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Image        string    `bun:"image,notnull" json:"image"`
	Title        string    `bun:"title" json:"title,omitempty"`
	DisplayOrder int       `bun:"display_order,notnull" json:"displayOrder"`
}

const MaxHeroImages = 3
