package catalog

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoangducbinh/duckgoose/internal/models"
	"github.com/hoangducbinh/duckgoose/internal/store"
)

func validProduct(name, category string) ProductInput {
	return ProductInput{
		ProductName: name,
		Category:    category,
		Quantity:    10,
		ImportPrice: "3,000",
		Price:       "5,000",
		ImportDate:  "01/06/2024",
	}
}

func TestCreateCategory(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	s := NewService(m)

	created, err := s.CreateCategory(ctx, "Drinks")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Drinks", created.Name)
	assert.Empty(t, created.Products)

	recs, err := m.ReadOnce(ctx, "categories")
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestCreateCategoryRejectsBlank(t *testing.T) {
	s := NewService(store.NewMemory())
	_, err := s.CreateCategory(context.Background(), "  ")
	var validation *models.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestCreateCategoryRejectsCachedDuplicate(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	s := NewService(m)

	_, err := s.CreateCategory(ctx, "Drinks")
	require.NoError(t, err)

	_, err = s.CreateCategory(ctx, "Drinks")
	var duplicate *models.DuplicateError
	require.ErrorAs(t, err, &duplicate)

	// No second remote record was written.
	recs, err := m.ReadOnce(ctx, "categories")
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestCreateCategoryDuplicateCheckIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	s := NewService(store.NewMemory())

	_, err := s.CreateCategory(ctx, "Drinks")
	require.NoError(t, err)
	_, err = s.CreateCategory(ctx, "drinks")
	assert.NoError(t, err)
}

func TestCreateCategoryConfirmingQueryCatchesStaleCache(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	// Another writer created the category; this service's cache has never
	// seen it.
	other := NewService(m)
	_, err := other.CreateCategory(ctx, "Drinks")
	require.NoError(t, err)

	s := NewService(m)
	_, err = s.CreateCategory(ctx, "Drinks")
	var duplicate *models.DuplicateError
	require.ErrorAs(t, err, &duplicate)

	recs, err := m.ReadOnce(ctx, "categories")
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	s := NewService(m)

	_, err := s.CreateCategory(ctx, "Drinks")
	require.NoError(t, err)

	created, err := s.CreateProduct(ctx, validProduct("Soda", "Drinks"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, int64(5000), created.Price)
	assert.Equal(t, int64(3000), created.ImportPrice)

	// Stored payload carries the normalized integer prices.
	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, int64(5000), products[0].Price)
}

func TestCreateProductRequiresAllFields(t *testing.T) {
	ctx := context.Background()
	s := NewService(store.NewMemory())
	_, err := s.CreateCategory(ctx, "Drinks")
	require.NoError(t, err)

	cases := []ProductInput{
		{Category: "Drinks", Quantity: 1, ImportPrice: "1", Price: "1", ImportDate: "d"},
		{ProductName: "Soda", Quantity: 1, ImportPrice: "1", Price: "1", ImportDate: "d"},
		{ProductName: "Soda", Category: "Drinks", ImportPrice: "1", Price: "1", ImportDate: "d"},
		{ProductName: "Soda", Category: "Drinks", Quantity: 1, Price: "1", ImportDate: "d"},
		{ProductName: "Soda", Category: "Drinks", Quantity: 1, ImportPrice: "1", ImportDate: "d"},
		{ProductName: "Soda", Category: "Drinks", Quantity: 1, ImportPrice: "1", Price: "1"},
	}
	for _, in := range cases {
		_, err := s.CreateProduct(ctx, in)
		var validation *models.ValidationError
		assert.ErrorAs(t, err, &validation, "input %+v", in)
	}
}

func TestCreateProductRejectsUnknownCategory(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	s := NewService(m)

	_, err := s.CreateProduct(ctx, validProduct("Soda", "Snacks"))
	var reference *models.ReferenceError
	require.ErrorAs(t, err, &reference)
	assert.Equal(t, "Snacks", reference.Name)

	// No remote write happened.
	recs, err := m.ReadOnce(ctx, "products")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestCreateProductRejectsDuplicateNameWithinCategory(t *testing.T) {
	ctx := context.Background()
	s := NewService(store.NewMemory())

	_, err := s.CreateCategory(ctx, "Drinks")
	require.NoError(t, err)
	_, err = s.CreateCategory(ctx, "Snacks")
	require.NoError(t, err)

	_, err = s.CreateProduct(ctx, validProduct("Soda", "Drinks"))
	require.NoError(t, err)

	_, err = s.CreateProduct(ctx, validProduct("Soda", "Drinks"))
	var duplicate *models.DuplicateError
	assert.ErrorAs(t, err, &duplicate)

	// Same name in a different category is fine.
	_, err = s.CreateProduct(ctx, validProduct("Soda", "Snacks"))
	assert.NoError(t, err)
}

func TestProductsByCategory(t *testing.T) {
	ctx := context.Background()
	s := NewService(store.NewMemory())

	_, err := s.CreateCategory(ctx, "Drinks")
	require.NoError(t, err)
	_, err = s.CreateCategory(ctx, "Snacks")
	require.NoError(t, err)

	_, err = s.CreateProduct(ctx, validProduct("Soda", "Drinks"))
	require.NoError(t, err)
	_, err = s.CreateProduct(ctx, validProduct("Chips", "Snacks"))
	require.NoError(t, err)

	products, err := s.ProductsByCategory(ctx, "Drinks")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Soda", products[0].ProductName)
	assert.Equal(t, int64(5000), products[0].Price)
}

func TestSearchProductsByPrefix(t *testing.T) {
	ctx := context.Background()
	s := NewService(store.NewMemory())

	_, err := s.CreateCategory(ctx, "Drinks")
	require.NoError(t, err)
	for _, name := range []string{"Soda", "Soda Light", "Beer"} {
		_, err = s.CreateProduct(ctx, validProduct(name, "Drinks"))
		require.NoError(t, err)
	}

	products, err := s.SearchProducts(ctx, "Soda")
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestUpdateProductMergesFields(t *testing.T) {
	ctx := context.Background()
	s := NewService(store.NewMemory())

	_, err := s.CreateCategory(ctx, "Drinks")
	require.NoError(t, err)
	created, err := s.CreateProduct(ctx, validProduct("Soda", "Drinks"))
	require.NoError(t, err)

	updated, err := s.UpdateProduct(ctx, created.ID, map[string]any{
		"price":    "7,500",
		"quantity": 20,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7500), updated.Price)
	assert.Equal(t, int64(20), updated.Quantity)
	// Unspecified fields are untouched.
	assert.Equal(t, "Soda", updated.ProductName)
	assert.Equal(t, int64(3000), updated.ImportPrice)
	assert.Equal(t, "Drinks", updated.Category)
}

// Form clients send quantity as a text-input string; it must be normalized to
// an integer before the merge-write or the stored record no longer decodes.
func TestUpdateProductNormalizesStringQuantity(t *testing.T) {
	ctx := context.Background()
	s := NewService(store.NewMemory())

	_, err := s.CreateCategory(ctx, "Drinks")
	require.NoError(t, err)
	created, err := s.CreateProduct(ctx, validProduct("Soda", "Drinks"))
	require.NoError(t, err)

	updated, err := s.UpdateProduct(ctx, created.ID, map[string]any{"quantity": "20"})
	require.NoError(t, err)
	assert.Equal(t, int64(20), updated.Quantity)

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, int64(20), products[0].Quantity)
}

func TestUpdateProductRejectsNonNumericQuantity(t *testing.T) {
	ctx := context.Background()
	s := NewService(store.NewMemory())

	_, err := s.CreateCategory(ctx, "Drinks")
	require.NoError(t, err)
	created, err := s.CreateProduct(ctx, validProduct("Soda", "Drinks"))
	require.NoError(t, err)

	_, err = s.UpdateProduct(ctx, created.ID, map[string]any{"quantity": "lots"})
	var validation *models.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "quantity", validation.Field)

	// The bad value never reached the store; the collection still decodes.
	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, int64(10), products[0].Quantity)
}

// blockingStore parks Update until released, to hold an edit in flight.
type blockingStore struct {
	*store.Memory
	release chan struct{}
	entered chan struct{}
	once    sync.Once
}

func (b *blockingStore) Update(ctx context.Context, collection, key string, fields map[string]any) error {
	b.once.Do(func() { close(b.entered) })
	<-b.release
	return b.Memory.Update(ctx, collection, key, fields)
}

func TestUpdateProductRejectsOverlappingEdit(t *testing.T) {
	ctx := context.Background()
	bs := &blockingStore{
		Memory:  store.NewMemory(),
		release: make(chan struct{}),
		entered: make(chan struct{}),
	}
	s := NewService(bs)

	_, err := s.CreateCategory(ctx, "Drinks")
	require.NoError(t, err)
	created, err := s.CreateProduct(ctx, validProduct("Soda", "Drinks"))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := s.UpdateProduct(ctx, created.ID, map[string]any{"quantity": 20})
		done <- err
	}()

	<-bs.entered
	_, err = s.UpdateProduct(ctx, created.ID, map[string]any{"quantity": 30})
	assert.ErrorIs(t, err, models.ErrSubmitInFlight)
	// Update and delete share the detail-screen guard.
	assert.ErrorIs(t, s.DeleteProduct(ctx, created.ID), models.ErrSubmitInFlight)

	close(bs.release)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("first update did not finish")
	}
}

func TestDeleteProductRemovesFromListing(t *testing.T) {
	ctx := context.Background()
	s := NewService(store.NewMemory())

	_, err := s.CreateCategory(ctx, "Drinks")
	require.NoError(t, err)
	soda, err := s.CreateProduct(ctx, validProduct("Soda", "Drinks"))
	require.NoError(t, err)
	_, err = s.CreateProduct(ctx, validProduct("Beer", "Drinks"))
	require.NoError(t, err)

	require.NoError(t, s.DeleteProduct(ctx, soda.ID))

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.NotEqual(t, soda.ID, products[0].ID)
}
