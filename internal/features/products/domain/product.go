package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrProductNotFound is returned when no product matches the lookup.
	ErrProductNotFound = errors.New("product not found")

	// ErrCategoryNotFound is returned when a product references a
	// category href that does not exist.
	ErrCategoryNotFound = errors.New("category not found")
)

// ConflictError reports a uniqueness clash on one of the product's
// human-assigned identifiers.
type ConflictError struct {
	// Field is the display name of the clashing identifier,
	// "product ID" or "design ID".
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("a product with this %s already exists", e.Field)
}

// Color describes a variant color option.
type Color struct {
	Name    string `json:"name"`
	HexCode string `json:"hexCode"`
}

// Variant is a size/color combination of a product with its own stock level.
type Variant struct {
	ID       string `json:"variantId"`
	Size     string `json:"size"`
	Color    Color  `json:"color"`
	Quantity int    `json:"quantity"`
}

// Product is a catalog entry with its full variant set.
type Product struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"productId"`
	DesignID      string    `json:"designId"`
	ProductTitle  string    `json:"productTitle"`
	ProductDesc   string    `json:"productDesc"`
	Category      string    `json:"category"`
	Composition   string    `json:"composition"`
	GSM           string    `json:"gsm"`
	WashCare      string    `json:"washCare"`
	Price         float64   `json:"price"`
	Discount      float64   `json:"discount"`
	Gender        string    `json:"gender,omitempty"`
	ProductImages []string  `json:"productImages"`
	Variants      []Variant `json:"variants"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
