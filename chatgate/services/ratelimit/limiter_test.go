package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestChatRule(t *testing.T) {
	r := ChatRule(5, time.Minute)
	assert.Equal(t, "rl:chat:", r.Key)
	assert.Equal(t, 5, r.Limit)
	assert.Equal(t, time.Minute, r.Window)
}

func TestAllow_FailsOpenWhenRedisIsDown(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	allowed, err := NewLimiter(client).Allow(ctx, "auth0|42", ChatRule(1, time.Minute))
	assert.True(t, allowed)
	assert.Error(t, err)
}
