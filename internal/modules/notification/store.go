// README: Notification store backed by Redis lists and per-entry hashes.
package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	feedKeyPrefix  = "notifications:%s:feed"
	entryKeyPrefix = "notifications:%s:entry:%s"
)

// Store keeps each rider's feed as a redis list of ids (LPUSH, so the list is
// most-recent-first by construction) with the full record in a per-id key so
// MarkRead can rewrite a single entry.
type Store struct {
	redis *redis.Client
}

func NewStore(redis *redis.Client) *Store {
	return &Store{redis: redis}
}

func (s *Store) Append(ctx context.Context, riderID string, n Notification) error {
	raw, err := json.Marshal(n)
	if err != nil {
		return err
	}
	pipe := s.redis.Pipeline()
	pipe.Set(ctx, entryKey(riderID, n.ID), raw, 0)
	pipe.LPush(ctx, feedKey(riderID), n.ID)
	_, err = pipe.Exec(ctx)
	return err
}

// List returns the feed, most recent first. No pagination and no eviction:
// the feed lives for the session and stays small.
func (s *Store) List(ctx context.Context, riderID string) ([]Notification, error) {
	ids, err := s.redis.LRange(ctx, feedKey(riderID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Notification, 0, len(ids))
	for _, id := range ids {
		raw, err := s.redis.Get(ctx, entryKey(riderID, id)).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, err
		}
		var n Notification
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// MarkRead flips the read flag for one entry. Unknown ids are a no-op.
func (s *Store) MarkRead(ctx context.Context, riderID, id string) error {
	key := entryKey(riderID, id)
	raw, err := s.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}
	var n Notification
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		return err
	}
	n.Read = true
	updated, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, key, updated, 0).Err()
}

func feedKey(riderID string) string {
	return fmt.Sprintf(feedKeyPrefix, riderID)
}

func entryKey(riderID, id string) string {
	return fmt.Sprintf(entryKeyPrefix, riderID, id)
}
