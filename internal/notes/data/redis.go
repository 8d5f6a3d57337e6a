package data

import (
	"context"
	"fmt"

	"github.com/lk2023060901/ai-study-backend/internal/notes/types"
	"github.com/lk2023060901/ai-study-backend/internal/pkg/redis"
)

// DefaultRedisKey 笔记列表所在的 key（不含前缀）
const DefaultRedisKey = "notes"

// RedisStore 将整个笔记列表以 JSON 保存在一个 key 中
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		key:    client.Key(DefaultRedisKey),
	}
}

// Load 读取笔记，key 不存在时返回空列表
func (s *RedisStore) Load(ctx context.Context) ([]*types.Note, error) {
	raw, err := s.client.Get(ctx, s.key)
	if redis.IsNil(err) {
		return []*types.Note{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load notes from redis: %w", err)
	}
	return decodeNotes(raw)
}

// Save 覆盖写入整个列表
func (s *RedisStore) Save(ctx context.Context, notes []*types.Note) error {
	raw, err := encodeNotes(notes)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, raw, 0); err != nil {
		return fmt.Errorf("failed to save notes to redis: %w", err)
	}
	return nil
}
