package models

// Variant is a purchasable size option of a cake, carrying its own price
type Variant struct {
	ID     string  `json:"_id,omitempty"`
	Weight float64 `json:"weight"`
	Unit   string  `json:"unit"`
	Price  Money   `json:"price"`
}

// SameAs reports whether two variants denote the same size option
func (v Variant) SameAs(other Variant) bool {
	if v.ID != "" && other.ID != "" {
		return v.ID == other.ID
	}
	return v.Weight == other.Weight && v.Unit == other.Unit
}

// CakeRef is the denormalized cake snapshot carried by cart and wishlist lines,
// so guest-mode rendering never needs a catalog lookup
type CakeRef struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Slug  string `json:"slug,omitempty"`
	Image string `json:"image,omitempty"`
	Price Money  `json:"price"`
}

// Cake full catalog read model
type Cake struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	Images      []string  `json:"images,omitempty"`
	Category    *Category `json:"category,omitempty"`
	Price       Money     `json:"price"`
	Weights     []Variant `json:"weights,omitempty"`
	IsAvailable bool      `json:"isAvailable"`
	IsFeatured  bool      `json:"isFeatured,omitempty"`
	Rating      float64   `json:"rating,omitempty"`
}

// Ref projects the catalog model into the denormalized snapshot form
func (c Cake) Ref() CakeRef {
	return CakeRef{
		ID:    c.ID,
		Name:  c.Name,
		Slug:  c.Slug,
		Image: c.Image,
		Price: c.Price,
	}
}

// Category catalog category read model
type Category struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Slug  string `json:"slug,omitempty"`
	Image string `json:"image,omitempty"`
}
