package session

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const cartKeyPrefix = "cart:"

// cartRepository implements the domain.CartRepository interface on Redis.
// Each session's cart is one hash keyed by product ID, expiring after the
// configured idle TTL. Every write refreshes the TTL.
type cartRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(client *redis.Client, ttl time.Duration, logger *slog.Logger) repository.CartRepository {
	return &cartRepository{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Read returns the cart for a session, empty when none exists.
func (repo *cartRepository) Read(ctx context.Context, sessionID string) (entity.Cart, error) {
	fields, err := repo.client.HGetAll(ctx, cartKey(sessionID)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read cart")
	}

	cart := entity.NewCart()
	for field, value := range fields {
		productID, err := uuid.Parse(field)
		if err != nil {
			// A malformed field is unreadable, not fatal. Skip it so one bad
			// entry cannot wedge the whole session.
			repo.logger.Warn("skipping malformed cart entry",
				slog.String("session_id", sessionID),
				slog.String("field", field),
			)

			continue
		}

		quantity, err := strconv.Atoi(value)
		if err != nil || quantity < 1 {
			repo.logger.Warn("skipping cart entry with invalid quantity",
				slog.String("session_id", sessionID),
				slog.String("product_id", field),
				slog.String("value", value),
			)

			continue
		}

		cart[productID] = quantity
	}

	return cart, nil
}

// Write replaces the cart for a session and refreshes its TTL.
// Writing an empty cart deletes the key.
func (repo *cartRepository) Write(ctx context.Context, sessionID string, cart entity.Cart) error {
	key := cartKey(sessionID)

	if cart.IsEmpty() {
		if err := repo.client.Del(ctx, key).Err(); err != nil {
			return errors.Wrap(err, "failed to clear cart")
		}

		return nil
	}

	fields := make(map[string]interface{}, len(cart))
	for productID, quantity := range cart {
		fields[productID.String()] = quantity
	}

	// Replace atomically: delete the old hash and write the new one in a
	// single transaction so a concurrent read never sees a partial cart.
	pipe := repo.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, repo.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "failed to write cart")
	}

	return nil
}

// Clear removes the session's cart entirely.
func (repo *cartRepository) Clear(ctx context.Context, sessionID string) error {
	if err := repo.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return errors.Wrap(err, "failed to clear cart")
	}

	return nil
}

func cartKey(sessionID string) string {
	return cartKeyPrefix + sessionID
}
