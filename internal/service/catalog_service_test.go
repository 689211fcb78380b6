package service

import (
	"context"
	"errors"
	"testing"

	"campus_market/internal/model"
	"campus_market/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog() CatalogService {
	return NewCatalogService(repository.NewMemoryStore().Products())
}

func listingRequest(sellerID int, category string) model.CreateProductRequest {
	return model.CreateProductRequest{
		Title:       "Physics Notes",
		Description: "Complete semester notes",
		Price:       2000,
		Category:    category,
		Condition:   "good",
		SellerID:    sellerID,
	}
}

func TestCatalogService_CreateAndGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	catalog := newCatalog()

	created, err := catalog.CreateProduct(ctx, listingRequest(3, "books"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.IsSold)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := catalog.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, int64(2000), got.Price)
	assert.Equal(t, "books", got.Category)
	assert.Equal(t, "good", got.Condition)
}

func TestCatalogService_GetProduct_NotFound(t *testing.T) {
	catalog := newCatalog()

	_, err := catalog.GetProduct(context.Background(), 99)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_ListRecent_DefaultsAndCapsLimit(t *testing.T) {
	ctx := context.Background()
	catalog := newCatalog()

	for i := 0; i < 12; i++ {
		_, err := catalog.CreateProduct(ctx, listingRequest(1, "misc"))
		require.NoError(t, err)
	}

	byDefault, err := catalog.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, byDefault, DefaultRecentLimit)

	limited, err := catalog.ListRecent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, limited, 3)
}

func TestCatalogService_ListRecent_ExcludesSold(t *testing.T) {
	ctx := context.Background()
	catalog := newCatalog()

	kept, err := catalog.CreateProduct(ctx, listingRequest(1, "misc"))
	require.NoError(t, err)
	sold, err := catalog.CreateProduct(ctx, listingRequest(1, "misc"))
	require.NoError(t, err)

	_, err = catalog.MarkSold(ctx, sold.ID)
	require.NoError(t, err)

	recent, err := catalog.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, kept.ID, recent[0].ID)
}

func TestCatalogService_MarkSold_Idempotent(t *testing.T) {
	ctx := context.Background()
	catalog := newCatalog()

	created, err := catalog.CreateProduct(ctx, listingRequest(1, "books"))
	require.NoError(t, err)

	once, err := catalog.MarkSold(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, once.IsSold)

	twice, err := catalog.MarkSold(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, twice.IsSold)
}

func TestCatalogService_MarkSold_NotFound(t *testing.T) {
	catalog := newCatalog()

	_, err := catalog.MarkSold(context.Background(), 404)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_UpdateProduct_PartialFields(t *testing.T) {
	ctx := context.Background()
	catalog := newCatalog()

	created, err := catalog.CreateProduct(ctx, listingRequest(1, "books"))
	require.NoError(t, err)

	newTitle := "Physics Notes (2nd sem)"
	newPrice := int64(1500)
	updated, err := catalog.UpdateProduct(ctx, created.ID, model.UpdateProductRequest{
		Title: &newTitle,
		Price: &newPrice,
	})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, newPrice, updated.Price)
	assert.Equal(t, created.Description, updated.Description) // untouched field survives
	assert.Equal(t, created.Category, updated.Category)
}

func TestCatalogService_UpdateProduct_NotFound(t *testing.T) {
	catalog := newCatalog()

	title := "anything"
	_, err := catalog.UpdateProduct(context.Background(), 42, model.UpdateProductRequest{Title: &title})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_DeleteProduct(t *testing.T) {
	ctx := context.Background()
	catalog := newCatalog()

	created, err := catalog.CreateProduct(ctx, listingRequest(1, "books"))
	require.NoError(t, err)

	require.NoError(t, catalog.DeleteProduct(ctx, created.ID))

	_, err = catalog.GetProduct(ctx, created.ID)
	assert.True(t, errors.Is(err, ErrProductNotFound))
}

func TestCatalogService_ListByCategory(t *testing.T) {
	ctx := context.Background()
	catalog := newCatalog()

	_, err := catalog.CreateProduct(ctx, listingRequest(1, "books"))
	require.NoError(t, err)
	_, err = catalog.CreateProduct(ctx, listingRequest(1, "electronics"))
	require.NoError(t, err)

	books, err := catalog.ListByCategory(ctx, "books")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "books", books[0].Category)
}

func TestCatalogService_ListBySeller_IncludesSold(t *testing.T) {
	ctx := context.Background()
	catalog := newCatalog()

	first, err := catalog.CreateProduct(ctx, listingRequest(5, "books"))
	require.NoError(t, err)
	_, err = catalog.CreateProduct(ctx, listingRequest(5, "misc"))
	require.NoError(t, err)
	_, err = catalog.CreateProduct(ctx, listingRequest(6, "misc"))
	require.NoError(t, err)

	_, err = catalog.MarkSold(ctx, first.ID)
	require.NoError(t, err)

	mine, err := catalog.ListBySeller(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
