package model

import "time"

// Category is the top-level catalogue grouping.
type Category string

const (
	CategoryWomen    Category = "Women"
	CategoryGirls    Category = "Girls"
	CategoryChildren Category = "Children"
)

// Valid reports whether c is one of the known catalogue categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryWomen, CategoryGirls, CategoryChildren:
		return true
	}
	return false
}

// Product represents an item in the fashion catalogue.
type Product struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Description    string    `json:"description" db:"description"`
	Price          float64   `json:"price" db:"price"`
	OriginalPrice  float64   `json:"originalPrice" db:"original_price"`
	Category       Category  `json:"category" db:"category"`
	SubCategory    string    `json:"subCategory" db:"sub_category"`
	Images         []string  `json:"images" db:"images"`
	Sizes          []string  `json:"sizes" db:"sizes"`
	Ratings        float64   `json:"ratings" db:"ratings"`
	NumReviews     int       `json:"numReviews" db:"num_reviews"`
	Stock          int       `json:"stock" db:"stock"`
	IsOffer        bool      `json:"isOffer" db:"is_offer"`
	IsCustomizable bool      `json:"isCustomizable" db:"is_customizable"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// Review represents a customer review attached to a product.
type Review struct {
	ID        string    `json:"id" db:"id"`
	ProductID string    `json:"productId" db:"product_id"`
	UserName  string    `json:"userName" db:"user_name"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"date" db:"created_at"`
}

// ProductFilter narrows catalogue listings.
type ProductFilter struct {
	Search   string
	Category Category
	Limit    int
	Offset   int
}
