package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrNil key 不存在
var ErrNil = redis.Nil

// IsNil 判断是否是 key 不存在
func IsNil(err error) bool {
	return errors.Is(err, redis.Nil)
}

// IsClosed 判断客户端是否已关闭
func IsClosed(err error) bool {
	return errors.Is(err, redis.ErrClosed)
}

// Get 读取原始字节，key 不存在时返回 ErrNil
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil && !IsNil(err) {
		c.logFailure("get", key, err)
	}
	return val, err
}

// Set 写入原始字节，ttl 为 0 表示不过期
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := c.rdb.Set(ctx, key, value, ttl).Err()
	if err != nil {
		c.logFailure("set", key, err)
	}
	return err
}

// Del 删除 key，返回实际删除的数量
func (c *Client) Del(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	n, err := c.rdb.Del(ctx, keys...).Result()
	if err != nil {
		c.logFailure("del", keys[0], err, zap.Int("keys", len(keys)))
	}
	return n, err
}

// Exists 返回存在的 key 数量
func (c *Client) Exists(ctx context.Context, keys ...string) (int64, error) {
	return c.rdb.Exists(ctx, keys...).Result()
}

func (c *Client) logFailure(op, key string, err error, fields ...zap.Field) {
	c.logger.Error("redis "+op+" failed",
		append([]zap.Field{zap.String("key", key), zap.Error(err)}, fields...)...)
}
