package models

// LineItem is a snapshot of the product at the time it was added. It is never
// re-read from the products collection, so later price changes do not affect a
// saved invoice.
type LineItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
}

// Subtotal returns price times quantity for this line.
func (li LineItem) Subtotal() int64 {
	return li.Price * li.Quantity
}

// Invoice is assembled client-side and pushed in a single write; ID is empty
// until the store assigns a key on save.
type Invoice struct {
	ID         string     `json:"id,omitempty"`
	CustomerID string     `json:"customerId"`
	Products   []LineItem `json:"products"`
	Total      int64      `json:"total"`
	Note       string     `json:"note"`
}
