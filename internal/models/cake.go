package models

import "time"

// Cake is a catalog item as projected by the content queries
type Cake struct {
	ID          string     `json:"_id"`
	CreatedAt   time.Time  `json:"_createdAt"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	Size        string     `json:"size,omitempty"`
	Pricing     Pricing    `json:"pricing"`
	MainImage   *ImageRef  `json:"mainImage,omitempty"`
	Images      []ImageRef `json:"images,omitempty"`
	Category    string     `json:"category,omitempty"`
	Ingredients []string   `json:"ingredients,omitempty"`
	Allergens   []string   `json:"allergens,omitempty"`
	Featured    bool       `json:"featured,omitempty"`
}

// Pricing holds the standard and made-to-order prices in GBP
type Pricing struct {
	Standard   float64 `json:"standard"`
	Individual float64 `json:"individual,omitempty"`
}

// ImageRef points at an image asset stored in the content source
type ImageRef struct {
	Asset AssetRef `json:"asset"`
	Alt   string   `json:"alt,omitempty"`
}

// AssetRef is a reference to a content source asset document
type AssetRef struct {
	Ref string `json:"_ref"`
}
