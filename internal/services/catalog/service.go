// Package catalog manages the categories and products collections, including
// the write-time integrity checks the store itself does not enforce.
package catalog

import (
	"context"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/hoangducbinh/duckgoose/internal/cache"
	"github.com/hoangducbinh/duckgoose/internal/models"
	"github.com/hoangducbinh/duckgoose/internal/obs"
	"github.com/hoangducbinh/duckgoose/internal/store"
)

const (
	categoriesCollection = "categories"
	productsCollection   = "products"
)

// ProductInput is a candidate product record as it arrives from a form: every
// field required, prices possibly carrying display grouping.
type ProductInput struct {
	ProductName string `json:"productName"`
	Category    string `json:"category"`
	Quantity    int64  `json:"quantity"`
	ImportPrice string `json:"importPrice"`
	Price       string `json:"price"`
	ImportDate  string `json:"importDate"`
}

type Service struct {
	st         store.Store
	categories *cache.Collection[models.Category]
	products   *cache.Collection[models.Product]

	categoryInFlight atomic.Bool
	productInFlight  atomic.Bool
	editInFlight     atomic.Bool
}

func NewService(st store.Store) *Service {
	return &Service{
		st:         st,
		categories: cache.New[models.Category](st, categoriesCollection),
		products:   cache.New[models.Product](st, productsCollection),
	}
}

// CreateCategory rejects duplicates against the cached snapshot, then runs one
// confirming equality query against the store immediately before the write.
// The confirming query narrows the race window with concurrent writers; it
// cannot close it, since neither check holds any lock on the store.
func (s *Service) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	if !s.categoryInFlight.CompareAndSwap(false, true) {
		return nil, models.ErrSubmitInFlight
	}
	defer s.categoryInFlight.Store(false)

	if strings.TrimSpace(name) == "" {
		return nil, &models.ValidationError{Field: "name"}
	}
	if _, ok := s.categories.Find(func(c models.Category) bool { return c.Name == name }); ok {
		return nil, &models.DuplicateError{Entity: "category", Name: name}
	}
	recs, err := s.st.QueryEqual(ctx, categoriesCollection, "name", name)
	if err != nil {
		return nil, &models.RemoteOperationError{Op: "query", Collection: categoriesCollection, Err: err}
	}
	if len(recs) > 0 {
		return nil, &models.DuplicateError{Entity: "category", Name: name}
	}

	key := s.st.NewKey(categoriesCollection)
	category := models.Category{ID: key, Name: name, Products: []models.Product{}}
	if err := s.st.Set(ctx, categoriesCollection, key, category); err != nil {
		obs.Logger.Error("category create failed", "collection", categoriesCollection, "key", key, "err", err)
		return nil, &models.RemoteOperationError{Op: "set", Collection: categoriesCollection, Err: err}
	}
	s.categories.Insert(key, category)
	return &category, nil
}

// ListCategories refreshes and returns the category snapshot.
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	if err := s.categories.Refresh(ctx); err != nil {
		return nil, err
	}
	return s.categories.Snapshot(), nil
}

// CreateProduct validates the input, checks the category reference and the
// name-within-category uniqueness against the cached snapshot, normalizes the
// prices and writes the product. The category's product list is appended to in
// the cache only; the stored category record is left as written at creation.
func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if !s.productInFlight.CompareAndSwap(false, true) {
		return nil, models.ErrSubmitInFlight
	}
	defer s.productInFlight.Store(false)

	switch {
	case strings.TrimSpace(in.ProductName) == "":
		return nil, &models.ValidationError{Field: "productName"}
	case strings.TrimSpace(in.Category) == "":
		return nil, &models.ValidationError{Field: "category"}
	case in.Quantity <= 0:
		return nil, &models.ValidationError{Field: "quantity"}
	case strings.TrimSpace(in.ImportPrice) == "":
		return nil, &models.ValidationError{Field: "importPrice"}
	case strings.TrimSpace(in.Price) == "":
		return nil, &models.ValidationError{Field: "price"}
	case strings.TrimSpace(in.ImportDate) == "":
		return nil, &models.ValidationError{Field: "importDate"}
	}

	category, ok := s.categories.Find(func(c models.Category) bool { return c.Name == in.Category })
	if !ok {
		return nil, &models.ReferenceError{Entity: "category", Name: in.Category}
	}
	for _, p := range category.Products {
		if p.ProductName == in.ProductName {
			return nil, &models.DuplicateError{Entity: "product", Name: in.ProductName}
		}
	}

	price, err := models.ParseAmount(in.Price)
	if err != nil {
		return nil, &models.ValidationError{Field: "price"}
	}
	importPrice, err := models.ParseAmount(in.ImportPrice)
	if err != nil {
		return nil, &models.ValidationError{Field: "importPrice"}
	}

	key := s.st.NewKey(productsCollection)
	product := models.Product{
		ID:          key,
		ProductName: in.ProductName,
		Category:    in.Category,
		Quantity:    in.Quantity,
		ImportPrice: importPrice,
		Price:       price,
		ImportDate:  in.ImportDate,
	}
	if err := s.st.Set(ctx, productsCollection, key, product); err != nil {
		obs.Logger.Error("product create failed", "collection", productsCollection, "key", key, "err", err)
		return nil, &models.RemoteOperationError{Op: "set", Collection: productsCollection, Err: err}
	}

	category.Products = append(category.Products, product)
	s.categories.Insert(category.ID, category)
	s.products.Insert(key, product)
	return &product, nil
}

// ListProducts refreshes and returns the full product snapshot.
func (s *Service) ListProducts(ctx context.Context) ([]models.Product, error) {
	if err := s.products.Refresh(ctx); err != nil {
		return nil, err
	}
	return s.products.Snapshot(), nil
}

// ProductsByCategory returns products whose category equals name, via a
// server-side equality query.
func (s *Service) ProductsByCategory(ctx context.Context, name string) ([]models.Product, error) {
	if err := s.products.RefreshEqual(ctx, "category", name); err != nil {
		return nil, err
	}
	return s.products.Snapshot(), nil
}

// SearchProducts returns products whose name starts with prefix, via a
// server-side range query.
func (s *Service) SearchProducts(ctx context.Context, prefix string) ([]models.Product, error) {
	if err := s.products.RefreshPrefix(ctx, "productName", prefix); err != nil {
		return nil, err
	}
	return s.products.Snapshot(), nil
}

// UpdateProduct merge-writes the given fields onto the stored product, last
// writer wins, then re-fetches the collection. Numeric fields arriving as form
// strings are normalized before the write; a string that slipped through would
// corrupt the stored record and break every later decode of the collection.
func (s *Service) UpdateProduct(ctx context.Context, id string, fields map[string]any) (*models.Product, error) {
	if !s.editInFlight.CompareAndSwap(false, true) {
		return nil, models.ErrSubmitInFlight
	}
	defer s.editInFlight.Store(false)

	for _, f := range []string{"price", "importPrice"} {
		if v, ok := fields[f].(string); ok {
			n, err := models.ParseAmount(v)
			if err != nil {
				return nil, &models.ValidationError{Field: f}
			}
			fields[f] = n
		}
	}
	if v, ok := fields["quantity"]; ok {
		switch q := v.(type) {
		case string:
			n, err := strconv.ParseInt(strings.TrimSpace(q), 10, 64)
			if err != nil {
				return nil, &models.ValidationError{Field: "quantity"}
			}
			fields["quantity"] = n
		case float64:
			fields["quantity"] = int64(q)
		}
	}
	if err := s.st.Update(ctx, productsCollection, id, fields); err != nil {
		obs.Logger.Error("product update failed", "collection", productsCollection, "key", id, "err", err)
		return nil, &models.RemoteOperationError{Op: "update", Collection: productsCollection, Err: err}
	}
	if err := s.products.Refresh(ctx); err != nil {
		return nil, err
	}
	product, ok := s.products.Get(id)
	if !ok {
		return nil, &models.ReferenceError{Entity: "product", Name: id}
	}
	return &product, nil
}

// DeleteProduct removes the stored product unconditionally. Category product
// lists and saved invoice line items are not touched: invoices keep their
// snapshot by design, category lists are an accepted dangling-reference risk.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if !s.editInFlight.CompareAndSwap(false, true) {
		return models.ErrSubmitInFlight
	}
	defer s.editInFlight.Store(false)

	if err := s.st.Remove(ctx, productsCollection, id); err != nil {
		obs.Logger.Error("product delete failed", "collection", productsCollection, "key", id, "err", err)
		return &models.RemoteOperationError{Op: "remove", Collection: productsCollection, Err: err}
	}
	s.products.Delete(id)
	return nil
}
