package models

// Category carries a denormalized product list. The list is appended to in the
// local cache when a product is created; the stored copy is written once at
// creation and not maintained afterward, so it can drift from the products
// collection.
type Category struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Products []Product `json:"products"`
}
