package models

// Product.Category holds the category name, not its key. The store enforces no
// referential integrity; the reference is checked against the category cache at
// creation time only.
type Product struct {
	ID          string `json:"id"`
	ProductName string `json:"productName"`
	Category    string `json:"category"`
	Quantity    int64  `json:"quantity"`
	ImportPrice int64  `json:"importPrice"`
	Price       int64  `json:"price"`
	ImportDate  string `json:"importDate"`
}
