package structs

type ProductRequest struct {
	Name            string   `json:"name" validate:"required,max=200"`
	Description     string   `json:"description" validate:"required"`
	Category        string   `json:"category" validate:"required,max=100"`
	Price           *int64   `json:"price" validate:"required,gte=0"`
	ImageURL        string   `json:"imageUrl" validate:"required"`
	StockStatus     string   `json:"stockStatus" validate:"omitempty,max=50"`
	BrandingOptions []string `json:"brandingOptions" validate:"omitempty,dive,required"`
}

// ProductPatch only writes the fields that are set.
type ProductPatch struct {
	Name            *string   `json:"name" validate:"omitempty,min=1,max=200"`
	Description     *string   `json:"description" validate:"omitempty,min=1"`
	Category        *string   `json:"category" validate:"omitempty,min=1,max=100"`
	Price           *int64    `json:"price" validate:"omitempty,gte=0"`
	ImageURL        *string   `json:"imageUrl" validate:"omitempty,min=1"`
	StockStatus     *string   `json:"stockStatus" validate:"omitempty,min=1,max=50"`
	BrandingOptions *[]string `json:"brandingOptions" validate:"omitempty,dive,required"`
}

func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Category == nil && p.Price == nil &&
		p.ImageURL == nil && p.StockStatus == nil && p.BrandingOptions == nil
}

// ProductFilter predicates are combined with AND.
type ProductFilter struct {
	Category string
	Search   string
}

type CategoryRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Slug     string `json:"slug" validate:"required,max=100,slug"`
	ImageURL string `json:"imageUrl" validate:"required"`
}
