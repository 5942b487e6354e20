// Package directory manages the customers collection.
package directory

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/hoangducbinh/duckgoose/internal/cache"
	"github.com/hoangducbinh/duckgoose/internal/models"
	"github.com/hoangducbinh/duckgoose/internal/obs"
	"github.com/hoangducbinh/duckgoose/internal/store"
)

const collection = "customers"

// CustomerInput is a candidate customer record. Name is the only required
// field.
type CustomerInput struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
	StoreName   string `json:"storeName"`
	Note        string `json:"note"`
}

type Service struct {
	st        store.Store
	customers *cache.Collection[models.Customer]
	inFlight  atomic.Bool
}

func NewService(st store.Store) *Service {
	return &Service{
		st:        st,
		customers: cache.New[models.Customer](st, collection),
	}
}

// Create validates the input, writes the customer with a freshly assigned key
// embedded, and re-fetches the collection.
func (s *Service) Create(ctx context.Context, in CustomerInput) (*models.Customer, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, models.ErrSubmitInFlight
	}
	defer s.inFlight.Store(false)

	if strings.TrimSpace(in.Name) == "" {
		return nil, &models.ValidationError{Field: "name"}
	}

	key := s.st.NewKey(collection)
	customer := models.Customer{
		ID:          key,
		Name:        in.Name,
		Address:     in.Address,
		PhoneNumber: in.PhoneNumber,
		StoreName:   in.StoreName,
		Note:        in.Note,
	}
	if err := s.st.Set(ctx, collection, key, customer); err != nil {
		obs.Logger.Error("customer create failed", "collection", collection, "key", key, "err", err)
		return nil, &models.RemoteOperationError{Op: "set", Collection: collection, Err: err}
	}
	s.customers.Insert(key, customer)

	// Refetch so the snapshot reflects any other writers too.
	if err := s.customers.Refresh(ctx); err != nil {
		obs.Logger.Warn("customer refresh after create failed", "err", err)
	}
	return &customer, nil
}

// List refreshes and returns the customer snapshot.
func (s *Service) List(ctx context.Context) ([]models.Customer, error) {
	if err := s.customers.Refresh(ctx); err != nil {
		return nil, err
	}
	return s.customers.Snapshot(), nil
}

// Search filters the cached snapshot by case-insensitive substring match on
// the customer name. No server-side query; the customer list is small and the
// original filters client-side.
func (s *Service) Search(term string) []models.Customer {
	term = strings.ToLower(term)
	var out []models.Customer
	for _, c := range s.customers.Snapshot() {
		if strings.Contains(strings.ToLower(c.Name), term) {
			out = append(out, c)
		}
	}
	return out
}

// Update is exposed by the UI but has no behavior to implement yet.
func (s *Service) Update(ctx context.Context, id string, in CustomerInput) error {
	return models.ErrNotImplemented
}

// Delete is exposed by the UI but has no behavior to implement yet.
func (s *Service) Delete(ctx context.Context, id string) error {
	return models.ErrNotImplemented
}
