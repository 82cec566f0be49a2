package models

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// ==============================================
// CATEGORY MODEL
// ==============================================

type Category struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ==============================================
// PRODUCT MODEL
// ==============================================

// Product is a catalog item. Price is stored in kobo (minor units) to avoid
// floating point money.
type Product struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Description pgtype.Text `json:"description"`
	Price       int64       `json:"price"` // Price in kobo
	CategoryID  int         `json:"category_id"`
	IsActive    bool        `json:"is_active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	// Loaded relations
	Images   []ProductImage `json:"images"`
	Category *Category      `json:"category,omitempty"`
}

// ProductImage is one stored image URL for a product
type ProductImage struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	URL       string `json:"url"`
}
