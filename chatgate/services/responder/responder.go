// Package responder produces the bot's side of the conversation.
package responder

import (
	"context"
	"fmt"

	"chatgate/chatgate/config"
)

type Responder interface {
	Reply(ctx context.Context, message string) (string, error)
}

// Echo answers every message by quoting it back.
type Echo struct{}

func (Echo) Reply(_ context.Context, message string) (string, error) {
	return `Hello! You said: "` + message + `"`, nil
}

// New picks the responder named in cfg.Responder.
func New(cfg config.Config) (Responder, error) {
	switch cfg.Responder {
	case "", "echo":
		return Echo{}, nil
	case "ollama":
		return NewOllamaClient(cfg.OllamaURL, cfg.OllamaModel, cfg.RelayTimeout), nil
	default:
		return nil, fmt.Errorf("unknown responder %q", cfg.Responder)
	}
}
