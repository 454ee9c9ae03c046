package domain

import "errors"

var (
	// ErrCategoryNotFound is returned when no category matches the id.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryExists is returned when another category already uses the
	// requested display name or href.
	ErrCategoryExists = errors.New("category with this name or href already exists")
)

// Category is a storefront navigation entry that products hang off of via
// its href.
type Category struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	// Href is the URL slug, restricted to alphanumerics.
	Href string `json:"href"`
	// Page reports whether the category has its own storefront page.
	Page bool `json:"page"`
}
