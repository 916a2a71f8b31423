// Package ratelimit throttles chat function calls per user with a Redis
// INCR + EXPIRE fixed window.
package ratelimit

import (
	"context"
	"time"

	"chatgate/chatgate/utils/logging"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Rule struct {
	Key    string        // Redis key prefix
	Limit  int           // max count in the window
	Window time.Duration // window length
}

// ChatRule builds the rule applied to the chat function.
func ChatRule(limit int, window time.Duration) Rule {
	return Rule{Key: "rl:chat:", Limit: limit, Window: window}
}

type Limiter struct {
	client *redis.Client
}

func NewLimiter(client *redis.Client) *Limiter {
	return &Limiter{client: client}
}

// Allow counts one request for identifier. Redis errors fail open: the
// request is allowed and the error returned for logging.
func (l *Limiter) Allow(ctx context.Context, identifier string, rule Rule) (bool, error) {
	key := rule.Key + identifier

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		logging.ErrorLogger.Error("redis INCR failed, failing open", zap.String("key", key), zap.Error(err))
		return true, err
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, rule.Window).Err(); err != nil {
			logging.ErrorLogger.Error("redis EXPIRE failed", zap.String("key", key), zap.Error(err))
		}
	}
	return count <= int64(rule.Limit), nil
}
