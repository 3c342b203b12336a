// README: Redis-backed session tokens.
package rider

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"speedyrider/internal/types"
)

var ErrSessionInvalid = errors.New("session invalid or expired")

const sessionKeyPrefix = "sessions:%s"

// Sessions maps opaque bearer tokens to rider ids with a TTL. The token is
// 32 bytes of crypto/rand, hex encoded.
type Sessions struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewSessions(redis *redis.Client, ttl time.Duration) *Sessions {
	return &Sessions{redis: redis, ttl: ttl}
}

func (s *Sessions) Create(ctx context.Context, riderID types.ID) (string, error) {
	var b [32]byte
	_, _ = rand.Read(b[:])
	token := hex.EncodeToString(b[:])
	if err := s.redis.Set(ctx, sessionKey(token), string(riderID), s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *Sessions) Resolve(ctx context.Context, token string) (types.ID, error) {
	id, err := s.redis.Get(ctx, sessionKey(token)).Result()
	if err == redis.Nil {
		return "", ErrSessionInvalid
	}
	if err != nil {
		return "", err
	}
	return types.ID(id), nil
}

func (s *Sessions) Revoke(ctx context.Context, token string) error {
	return s.redis.Del(ctx, sessionKey(token)).Err()
}

func sessionKey(token string) string {
	return fmt.Sprintf(sessionKeyPrefix, token)
}
