package structs

// ProductInput is the admin payload for creating or updating a catalog
// item. IsSoldOut is derived from Stock on write and never accepted
// from the client.
type ProductInput struct {
	Name         string   `json:"name" validate:"required,min=1,max=200"`
	Price        int64    `json:"price" validate:"gte=0"`
	Image        string   `json:"image" validate:"required"`
	DetailImages []string `json:"detailImages" validate:"omitempty,max=6"`
	Description  string   `json:"description" validate:"omitempty,max=2000"`
	Details      string   `json:"details" validate:"omitempty,max=5000"`
	ShippingInfo string   `json:"shippingInfo" validate:"omitempty,max=2000"`
	Tags         []string `json:"tags" validate:"omitempty,max=10"`
	Stock        int      `json:"stock" validate:"gte=0"`
}

// SettingsInput updates the singleton settings row. Empty password
// keeps the current hash.
type SettingsInput struct {
	AdminID     string `json:"adminId" validate:"required,min=2,max=100"`
	Password    string `json:"password" validate:"omitempty,min=4,max=100"`
	BankName    string `json:"bankName" validate:"omitempty,max=100"`
	BankAccount string `json:"bankAccount" validate:"omitempty,max=100"`
	BankHolder  string `json:"bankHolder" validate:"omitempty,max=100"`
}

// HeroImageInput adds or updates a landing-page banner.
type HeroImageInput struct {
	Image        string `json:"image" validate:"required"`
	Title        string `json:"title" validate:"omitempty,max=200"`
	DisplayOrder int    `json:"displayOrder" validate:"gte=0"`
}

// CollectionInput places an image at a grid cell.
type CollectionInput struct {
	Image string `json:"image" validate:"required"`
	Row   int    `json:"row" validate:"gte=0,lte=3"`
	Col   int    `json:"col" validate:"gte=0,lte=3"`
}
