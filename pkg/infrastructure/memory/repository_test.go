package memory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales/pkg/domain/model"
)

func TestCustomerRepositoryFirstMatch(t *testing.T) {
	repo := NewCustomerRepository()
	require.NoError(t, repo.Store(model.NewCustomer(1, "Ana", "Calle 1")))
	require.NoError(t, repo.Store(model.NewCustomer(1, "Luis", "Calle 2")))

	customer, err := repo.FindFirst(1)
	require.NoError(t, err)
	assert.Equal(t, "Ana", customer.Name())

	_, err = repo.FindFirst(2)
	assert.ErrorIs(t, err, model.ErrCustomerNotFound)

	all, err := repo.ListAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestProductRepositoryFirstMatch(t *testing.T) {
	repo := NewProductRepository()
	require.NoError(t, repo.Store(model.NewProduct(7, "Pan", decimal.RequireFromString("2.50"))))
	require.NoError(t, repo.Store(model.NewProduct(7, "Pan integral", decimal.RequireFromString("3.10"))))

	product, err := repo.FindFirst(7)
	require.NoError(t, err)
	assert.Equal(t, "Pan", product.Name())

	_, err = repo.FindFirst(99)
	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestSaleRepositoryListIsACopy(t *testing.T) {
	repo := NewSaleRepository()
	require.NoError(t, repo.Store(model.NewSale(1, model.NewCustomer(1, "Ana", "Calle 1"))))

	all, err := repo.ListAll()
	require.NoError(t, err)
	all[0] = nil

	again, err := repo.ListAll()
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.NotNil(t, again[0])
}
