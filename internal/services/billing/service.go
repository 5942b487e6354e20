// Package billing assembles invoices client-side and pushes them in a single
// write.
package billing

import (
	"context"
	"sync/atomic"

	"github.com/hoangducbinh/duckgoose/internal/cache"
	"github.com/hoangducbinh/duckgoose/internal/models"
	"github.com/hoangducbinh/duckgoose/internal/obs"
	"github.com/hoangducbinh/duckgoose/internal/store"
)

const collection = "invoices"

// AddLineItem adds a snapshot of product to the draft. If a line for the same
// product id already exists the quantities are merged instead of appending a
// second row. The total is recomputed either way.
func AddLineItem(inv *models.Invoice, product models.Product, quantity int64) {
	if quantity <= 0 {
		quantity = 1
	}
	for i := range inv.Products {
		if inv.Products[i].ProductID == product.ID {
			inv.Products[i].Quantity += quantity
			inv.Total = Total(inv.Products)
			return
		}
	}
	inv.Products = append(inv.Products, models.LineItem{
		ProductID: product.ID,
		Name:      product.ProductName,
		Price:     product.Price,
		Quantity:  quantity,
	})
	inv.Total = Total(inv.Products)
}

// RemoveLineItem drops the line for the given product id and recomputes the
// total.
func RemoveLineItem(inv *models.Invoice, productID string) {
	items := inv.Products[:0]
	for _, li := range inv.Products {
		if li.ProductID != productID {
			items = append(items, li)
		}
	}
	inv.Products = items
	inv.Total = Total(inv.Products)
}

// Total is the sum of price times quantity over the line items. It is the only
// way the invoice total is ever produced; the field never drifts from its
// inputs.
func Total(items []models.LineItem) int64 {
	var total int64
	for _, li := range items {
		total += li.Subtotal()
	}
	return total
}

type Service struct {
	st       store.Store
	invoices *cache.Collection[models.Invoice]
	inFlight atomic.Bool
}

func NewService(st store.Store) *Service {
	return &Service{
		st:       st,
		invoices: cache.New[models.Invoice](st, collection),
	}
}

// Save validates the draft, recomputes the total from the line items and
// pushes the whole invoice atomically. The store-assigned key is attached to
// the returned record.
func (s *Service) Save(ctx context.Context, inv models.Invoice) (*models.Invoice, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, models.ErrSubmitInFlight
	}
	defer s.inFlight.Store(false)

	if inv.CustomerID == "" {
		return nil, &models.ValidationError{Field: "customerId"}
	}
	if len(inv.Products) == 0 {
		return nil, &models.ValidationError{Field: "products"}
	}
	inv.Total = Total(inv.Products)
	inv.ID = ""

	key, err := s.st.Push(ctx, collection, inv)
	if err != nil {
		obs.Logger.Error("invoice save failed", "collection", collection, "err", err)
		return nil, &models.RemoteOperationError{Op: "push", Collection: collection, Err: err}
	}
	inv.ID = key
	s.invoices.Insert(key, inv)
	return &inv, nil
}

// List refreshes and returns the invoice snapshot. Stored invoices carry no
// embedded id, so the store key is reattached here.
func (s *Service) List(ctx context.Context) ([]models.Invoice, error) {
	if err := s.invoices.Refresh(ctx); err != nil {
		return nil, err
	}
	entries := s.invoices.Entries()
	out := make([]models.Invoice, 0, len(entries))
	for _, e := range entries {
		inv := e.Value
		inv.ID = e.Key
		out = append(out, inv)
	}
	return out, nil
}
