package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store persists one feed document per feed date so a refresh can carry
// forward props for games that already started. Load returns (nil, nil)
// when nothing is stored for the date.
type Store interface {
	Load(ctx context.Context, date string) (*Feed, error)
	Save(ctx context.Context, date string, f *Feed) error
}

// RedisStore keeps feed documents in Redis keyed by date with a TTL, so
// stale days age out on their own.
type RedisStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisStore(c *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{Client: c, TTL: ttl}
}

func key(date string) string { return "feed:props:" + date }

func (s *RedisStore) Load(ctx context.Context, date string) (*Feed, error) {
	b, err := s.Client.Get(ctx, key(date)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var f Feed
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("decode cached feed: %w", err)
	}
	return &f, nil
}

func (s *RedisStore) Save(ctx context.Context, date string, f *Feed) error {
	b, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, key(date), b, s.TTL).Err()
}

// FileStore is the filesystem fallback used when no Redis is configured.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (s *FileStore) path(date string) string {
	return filepath.Join(s.Dir, "props-feed-"+date+".json")
}

func (s *FileStore) Load(_ context.Context, date string) (*Feed, error) {
	b, err := os.ReadFile(s.path(date))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var f Feed
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("decode cached feed: %w", err)
	}
	return &f, nil
}

func (s *FileStore) Save(_ context.Context, date string, f *Feed) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	b, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(date), b, 0o644)
}
