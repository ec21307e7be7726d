package repository_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunrisestore/storefront-backend/internal/models"
	repository "github.com/sunrisestore/storefront-backend/internal/repositories"
)

const testTTL = 72 * time.Hour

func TestCartRepositorySave(t *testing.T) {
	client, mockRedis := redismock.NewClientMock()
	repo := repository.NewCartRepository(client, testTTL)

	cart := &models.Cart{
		ID:    "cart-1",
		Items: map[string]models.CartItem{"A": {SKU: "A", Name: "Scooter", UnitPrice: 2499, Quantity: 1, TotalPrice: 2499}},
		Total: 2499,
	}

	data, err := json.Marshal(cart)
	require.NoError(t, err)

	mockRedis.ExpectSet("cart:cart-1", data, testTTL).SetVal("OK")

	err = repo.Save(t.Context(), cart)

	assert.NoError(t, err)
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestCartRepositoryGet(t *testing.T) {

	t.Run("Success", func(t *testing.T) {
		client, mockRedis := redismock.NewClientMock()
		repo := repository.NewCartRepository(client, testTTL)

		stored := &models.Cart{ID: "cart-1", Items: map[string]models.CartItem{}, Total: 0}
		data, err := json.Marshal(stored)
		require.NoError(t, err)

		mockRedis.ExpectGet("cart:cart-1").SetVal(string(data))

		cart, err := repo.Get(t.Context(), "cart-1")

		require.NoError(t, err)
		assert.Equal(t, "cart-1", cart.ID)
		assert.NoError(t, mockRedis.ExpectationsWereMet())
	})

	t.Run("Failure - Missing Cart", func(t *testing.T) {
		client, mockRedis := redismock.NewClientMock()
		repo := repository.NewCartRepository(client, testTTL)

		mockRedis.ExpectGet("cart:absent").RedisNil()

		_, err := repo.Get(t.Context(), "absent")

		assert.ErrorIs(t, err, repository.ErrCartNotFound)
	})

	t.Run("Failure - Corrupt Payload", func(t *testing.T) {
		client, mockRedis := redismock.NewClientMock()
		repo := repository.NewCartRepository(client, testTTL)

		mockRedis.ExpectGet("cart:bad").SetVal("{not json")

		_, err := repo.Get(t.Context(), "bad")

		assert.Error(t, err)
	})
}

func TestCartRepositoryDelete(t *testing.T) {
	client, mockRedis := redismock.NewClientMock()
	repo := repository.NewCartRepository(client, testTTL)

	mockRedis.ExpectDel("cart:cart-1").SetVal(1)

	err := repo.Delete(t.Context(), "cart-1")

	assert.NoError(t, err)
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}
