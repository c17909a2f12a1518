package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/database"
	"stockroom/internal/repositories"
	"stockroom/internal/validators"
)

func newServiceDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenAndMigrate(context.Background(), database.DriverSQLite, filepath.Join(t.TempDir(), "products.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newProductService(t *testing.T) *ProductService {
	t.Helper()
	return NewProductService(repositories.NewProductRepository(newServiceDB(t)))
}

func TestProductService_CreateValidation(t *testing.T) {
	svc := newProductService(t)

	_, err := svc.Create("  ", "2024-12-01")
	assert.ErrorIs(t, err, validators.ErrProductNameEmpty)

	_, err = svc.Create("Milk", "12/01/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)

	p, err := svc.Create(" Milk ", "2024-12-01")
	require.NoError(t, err)
	assert.Equal(t, "Milk", p.Name)
	assert.NotZero(t, p.ID)
}

func TestProductService_GetByIDOrName(t *testing.T) {
	svc := newProductService(t)

	sample, err := svc.Create("Sample", "2024-10-25")
	require.NoError(t, err)
	numeric, err := svc.Create("2024", "2025-01-01")
	require.NoError(t, err)

	byID, err := svc.Get("1")
	require.NoError(t, err)
	assert.Equal(t, sample.ID, byID.ID)

	byName, err := svc.Get("Sample")
	require.NoError(t, err)
	assert.Equal(t, "2024-10-25", byName.ExpirationDate.String())

	// no product with id 2024, so the name wins
	byNumericName, err := svc.Get("2024")
	require.NoError(t, err)
	assert.Equal(t, numeric.ID, byNumericName.ID)

	_, err = svc.Get("Cheese")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_DeleteTwice(t *testing.T) {
	svc := newProductService(t)

	p, err := svc.Create("Milk", "2024-12-01")
	require.NoError(t, err)

	deleted, err := svc.Delete(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Milk", deleted.Name)

	_, err = svc.Delete(p.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	list, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}
