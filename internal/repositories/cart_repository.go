package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sunrisestore/storefront-backend/internal/models"
)

var ErrCartNotFound = errors.New("cart not found")

type CartRepository interface {
	Save(ctx context.Context, cart *models.Cart) error
	Get(ctx context.Context, cartID string) (*models.Cart, error)
	Delete(ctx context.Context, cartID string) error
}

type redisCartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCartRepository(client *redis.Client, ttl time.Duration) CartRepository {
	return &redisCartRepository{client: client, ttl: ttl}
}

func cartKey(cartID string) string {
	return "cart:" + cartID
}

// Save implements CartRepository. Every write refreshes the TTL so active
// carts survive, abandoned ones expire.
func (r *redisCartRepository) Save(ctx context.Context, cart *models.Cart) error {

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart %s: %w", cart.ID, err)
	}

	if err := r.client.Set(ctx, cartKey(cart.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store cart %s: %w", cart.ID, err)
	}

	return nil
}

// Get implements CartRepository.
func (r *redisCartRepository) Get(ctx context.Context, cartID string) (*models.Cart, error) {

	data, err := r.client.Get(ctx, cartKey(cartID)).Bytes()
	if err != nil {

		if errors.Is(err, redis.Nil) {
			return nil, ErrCartNotFound
		}

		return nil, fmt.Errorf("failed to fetch cart %s: %w", cartID, err)
	}

	var cart models.Cart

	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart %s: %w", cartID, err)
	}

	return &cart, nil
}

// Delete implements CartRepository.
func (r *redisCartRepository) Delete(ctx context.Context, cartID string) error {

	if err := r.client.Del(ctx, cartKey(cartID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart %s: %w", cartID, err)
	}

	return nil
}
