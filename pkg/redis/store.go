package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisclient "github.com/redis/go-redis/v9"

	"ghorerbazar.top/organic/storefront/pkg/models"
)

const (
	cartTTL         = 7 * 24 * time.Hour
	lastOrderTTL    = 30 * 24 * time.Hour
	productCacheTTL = time.Hour
)

// Store persists per-session storefront state: the cart snapshot, the last
// confirmed order, and a short-lived product-detail cache.
type Store struct {
	client *redisclient.Client
}

func NewStore(client *redisclient.Client) *Store {
	return &Store{client: client}
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("ghorerbazar_cart:%s", sessionID)
}

func lastOrderKey(sessionID string) string {
	return fmt.Sprintf("last_order:%s", sessionID)
}

func productKey(productID int) string {
	return fmt.Sprintf("product:%d", productID)
}

func (s *Store) SaveCart(ctx context.Context, sessionID string, lines []models.CartLine) error {
	payload, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	return s.client.Set(ctx, cartKey(sessionID), payload, cartTTL).Err()
}

// LoadCart returns nil lines for a missing snapshot. A snapshot that no
// longer unmarshals is reported as an error; the aggregate treats that as
// an empty cart.
func (s *Store) LoadCart(ctx context.Context, sessionID string) ([]models.CartLine, error) {
	payload, err := s.client.Get(ctx, cartKey(sessionID)).Result()
	if err == redisclient.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var lines []models.CartLine
	if err := json.Unmarshal([]byte(payload), &lines); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}
	return lines, nil
}

func (s *Store) ClearCart(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, cartKey(sessionID)).Err()
}

func (s *Store) SaveLastOrder(ctx context.Context, sessionID string, order *models.OrderConfirmation) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order confirmation: %w", err)
	}
	return s.client.Set(ctx, lastOrderKey(sessionID), payload, lastOrderTTL).Err()
}

func (s *Store) LoadLastOrder(ctx context.Context, sessionID string) (*models.OrderConfirmation, error) {
	payload, err := s.client.Get(ctx, lastOrderKey(sessionID)).Result()
	if err == redisclient.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var order models.OrderConfirmation
	if err := json.Unmarshal([]byte(payload), &order); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order confirmation: %w", err)
	}
	return &order, nil
}

// CacheProduct keeps a product-detail response warm for repeat views.
func (s *Store) CacheProduct(ctx context.Context, product *models.Product) error {
	if product == nil || product.ID == 0 {
		return fmt.Errorf("cannot cache product without an id")
	}
	payload, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}
	return s.client.Set(ctx, productKey(product.ID), payload, productCacheTTL).Err()
}

func (s *Store) GetCachedProduct(ctx context.Context, productID int) (*models.Product, error) {
	payload, err := s.client.Get(ctx, productKey(productID)).Result()
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal([]byte(payload), &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}
	return &product, nil
}

func (s *Store) RemoveCachedProduct(ctx context.Context, productID int) error {
	return s.client.Del(ctx, productKey(productID)).Err()
}
