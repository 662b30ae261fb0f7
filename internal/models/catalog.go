package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Product struct {
	ID                int64           `json:"id"`
	CategoryID        int64           `json:"categoryId"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	Stock             int             `json:"stock"`
	IsDigital         bool            `json:"isDigital"`
	Recipe            string          `json:"recipe,omitempty"`
	MagicalProperties string          `json:"magicalProperties,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

type ProductGallery struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"productId"`
	ImageURL  string    `json:"imageUrl"`
	AltText   string    `json:"altText"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductDetail is the product page payload: the product joined with its
// gallery images and reviews.
type ProductDetail struct {
	Product
	Galleries []ProductGallery `json:"galleries"`
	Reviews   []Review         `json:"reviews"`
}

type AdjustStockRequest struct {
	Stock int `json:"stock" binding:"min=0"`
}
