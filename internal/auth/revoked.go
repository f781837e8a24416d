package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "revoked:"

// Store is a Redis denylist of revoked token IDs. Logout writes the
// token's jti here with a TTL matching the token's remaining lifetime;
// after expiry the JWT is dead on its own and the key can lapse.
type Store struct {
	rdb *redis.Client
}

// NewStore returns a new revocation store.
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Revoke marks the token ID as revoked until its natural expiry.
func (s *Store) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err()
}

// IsRevoked reports whether the token ID has been revoked.
func (s *Store) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
