package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoangducbinh/duckgoose/internal/models"
	"github.com/hoangducbinh/duckgoose/internal/store"
)

func TestCreateAssignsKeyAndKeepsFields(t *testing.T) {
	ctx := context.Background()
	s := NewService(store.NewMemory())

	in := CustomerInput{
		Name:        "Nguyen Van A",
		Address:     "12 Tran Phu",
		PhoneNumber: "0905123456",
		StoreName:   "Tap hoa A",
		Note:        "regular",
	}
	created, err := s.Create(ctx, in)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	customers, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	got := customers[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, in.Name, got.Name)
	assert.Equal(t, in.Address, got.Address)
	assert.Equal(t, in.PhoneNumber, got.PhoneNumber)
	assert.Equal(t, in.StoreName, got.StoreName)
	assert.Equal(t, in.Note, got.Note)
}

func TestCreateRequiresName(t *testing.T) {
	s := NewService(store.NewMemory())

	_, err := s.Create(context.Background(), CustomerInput{Name: "   "})
	var validation *models.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "name", validation.Field)

	customers, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, customers)
}

func TestSearchIsCaseInsensitiveSubstring(t *testing.T) {
	ctx := context.Background()
	s := NewService(store.NewMemory())

	for _, name := range []string{"Nguyen Van A", "Tran Thi B", "Le Van An"} {
		_, err := s.Create(ctx, CustomerInput{Name: name})
		require.NoError(t, err)
	}

	found := s.Search("van")
	require.Len(t, found, 2)

	assert.Empty(t, s.Search("xyz"))
}

func TestUpdateAndDeleteAreNotImplemented(t *testing.T) {
	s := NewService(store.NewMemory())
	assert.ErrorIs(t, s.Update(context.Background(), "k", CustomerInput{}), models.ErrNotImplemented)
	assert.ErrorIs(t, s.Delete(context.Background(), "k"), models.ErrNotImplemented)
}
