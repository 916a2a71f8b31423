// chatgate/controllers/chat.go
package controllers

import (
	"context"
	"time"

	"chatgate/chatgate/services/metrics"
	"chatgate/chatgate/services/ratelimit"
	"chatgate/chatgate/services/responder"
	"chatgate/chatgate/utils/logging"
	"chatgate/chatgate/utils/types"

	"go.uber.org/zap"
)

type TranscriptSaver interface {
	SaveExchange(ctx context.Context, subject, message, reply string, at time.Time) error
}

type RateLimiter interface {
	Allow(ctx context.Context, identifier string, rule ratelimit.Rule) (bool, error)
}

// ChatController answers the chat function.
type ChatController struct {
	responder   responder.Responder
	transcripts TranscriptSaver
	limiter     RateLimiter
	rule        ratelimit.Rule
	now         func() time.Time
}

func NewChatController(r responder.Responder) *ChatController {
	return &ChatController{
		responder: r,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (c *ChatController) WithTranscripts(t TranscriptSaver) *ChatController {
	c.transcripts = t
	return c
}

func (c *ChatController) WithRateLimit(l RateLimiter, rule ratelimit.Rule) *ChatController {
	c.limiter = l
	c.rule = rule
	return c
}

// Allow reports whether identifier may call the chat function now.
func (c *ChatController) Allow(ctx context.Context, identifier string) bool {
	if c.limiter == nil {
		return true
	}
	allowed, _ := c.limiter.Allow(ctx, identifier, c.rule)
	return allowed
}

func (c *ChatController) Reply(ctx context.Context, subject string, req types.ChatRequest) (*types.ChatResponse, error) {
	start := time.Now()
	reply, err := c.responder.Reply(ctx, req.Message)
	metrics.ReplyLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	at := c.now()
	if c.transcripts != nil {
		if err := c.transcripts.SaveExchange(ctx, subject, req.Message, reply, at); err != nil {
			logging.ErrorLogger.Error("failed to save transcript", zap.Error(err), zap.String("sub", subject))
		}
	}
	return &types.ChatResponse{
		Response:  reply,
		Timestamp: at.Format("2006-01-02T15:04:05.000Z07:00"),
	}, nil
}
