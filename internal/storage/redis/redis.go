package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/HaruSatoru/shareit/internal/domain/models"
	"github.com/HaruSatoru/shareit/internal/storage"
	"github.com/redis/go-redis/v9"
)

// Storage is a read-through cache for item records. Item lookups sit on the
// hot path of every booking create, so cached entries cut a round trip to the
// primary store; entries are invalidated whenever the item is updated.
type Storage struct {
	client *redis.Client
	ttl    time.Duration
}

func New(addr string, ttl time.Duration) *Storage {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "", // no password set
		DB:       0,  // use default DB
	})

	return &Storage{client: client, ttl: ttl}
}

func itemKey(itemID int64) string {
	return fmt.Sprintf("item:%d", itemID)
}

func (s *Storage) Item(ctx context.Context, itemID int64) (models.Item, error) {
	const op = "storage.redis.Item"

	data := s.client.Get(ctx, itemKey(itemID)).Val()

	if len(data) == 0 {
		return models.Item{}, fmt.Errorf("%s: %w", op, storage.ErrItemNotCached)
	}

	var item models.Item
	if err := json.Unmarshal([]byte(data), &item); err != nil {
		return models.Item{}, fmt.Errorf("%s: %w", op, err)
	}

	return item, nil
}

func (s *Storage) SaveItem(ctx context.Context, item models.Item) error {
	const op = "storage.redis.SaveItem"

	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = s.client.Set(ctx, itemKey(item.ID), string(data), s.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) RemoveItem(ctx context.Context, itemID int64) error {
	const op = "storage.redis.RemoveItem"

	if err := s.client.Del(ctx, itemKey(itemID)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) Stop() error {
	const op = "storage.redis.Stop"

	if err := s.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
