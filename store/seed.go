package store

import (
	"time"

	"dewode_server/structs/tables"

	"github.com/google/uuid"
)

const seedImage = "https://images.unsplash.com/photo-1705948731485-6e4c6c180d0d?q=80&w=1000&auto=format&fit=crop"

type seedProduct struct {
	name  string
	price int64
	image string
	stock int
}

var seedProducts = []seedProduct{
	{"STAINLESS PLATE 240", 48000, seedImage, 10},
	{"BRUSHED METAL BOWL", 36000, seedImage, 15},
	{"INDUSTRIAL CUTLERY SET", 52000, "https://images.unsplash.com/photo-1616447194074-200c22166a5e?q=80&w=1000&auto=format&fit=crop", 20},
	{"CYLINDRICAL STORAGE 01", 42000, "https://images.unsplash.com/photo-1699349360395-58ae635530f8?q=80&w=1000&auto=format&fit=crop", 8},
	{"METAL TRAY LARGE", 85000, "https://images.unsplash.com/photo-1658472326330-2e7bea174f75?q=80&w=1000&auto=format&fit=crop", 5},
	{"PRECISION FORK", 18000, "https://images.unsplash.com/photo-1699484477621-1f6ecb1d153f?q=80&w=1000&auto=format&fit=crop", 50},
	{"MINIMAL STEEL CUP", 24000, "https://images.unsplash.com/photo-1676496220014-43540212ef5b?q=80&w=1000&auto=format&fit=crop", 30},
	{"STAINLESS PLATE 180", 32000, seedImage, 12},
	{"METAL STORAGE JAR S", 28000, "https://images.unsplash.com/photo-1699349360395-58ae635530f8?q=80&w=1000&auto=format&fit=crop", 18},
	{"INDUSTRIAL SPOON", 18000, "https://images.unsplash.com/photo-1699484477621-1f6ecb1d153f?q=80&w=1000&auto=format&fit=crop", 45},
	{"STEEL BREAD TRAY", 64000, "https://images.unsplash.com/photo-1658472326330-2e7bea174f75?q=80&w=1000&auto=format&fit=crop", 7},
	{"MINIMAL CARAFE METAL", 92000, "https://images.unsplash.com/photo-1676496220014-43540212ef5b?q=80&w=1000&auto=format&fit=crop", 4},
	{"PRECISION KNIFE", 22000, "https://images.unsplash.com/photo-1616447194074-200c22166a5e?q=80&w=1000&auto=format&fit=crop", 25},
	{"METAL BASE STAND", 120000, "https://images.unsplash.com/photo-1699349360395-58ae635530f8?q=80&w=1000&auto=format&fit=crop", 3},
	{"STAINLESS PLATE SET", 145000, seedImage, 6},
}

var seedHeroImages = []string{
	"https://images.unsplash.com/photo-1616447194074-200c22166a5e?q=80&w=2000&auto=format&fit=crop",
	"https://images.unsplash.com/photo-1699484477621-1f6ecb1d153f?q=80&w=2000&auto=format&fit=crop",
	"https://images.unsplash.com/photo-1658472326330-2e7bea174f75?q=80&w=2000&auto=format&fit=crop",
}

// seed fills the store with demo catalog data. Creation times are
// staggered so the newest-first listing order is deterministic.
func (s *MemoryStore) seed() {
	base := time.Now().Add(-time.Duration(len(seedProducts)) * time.Minute)

	for i, sp := range seedProducts {
		id := uuid.New()
		s.products[id] = &tables.Product{
			ID:        id,
			Name:      sp.name,
			Price:     sp.price,
			Image:     sp.image,
			Stock:     sp.stock,
			IsSoldOut: sp.stock <= 0,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
	}

	for i, image := range seedHeroImages {
		id := uuid.New()
		s.heroes[id] = &tables.HeroImage{
			ID:           id,
			Image:        image,
			DisplayOrder: i,
		}
	}
}
