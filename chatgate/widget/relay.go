package widget

import (
	"context"
	"errors"
	"net/http"
	"time"

	httputils "chatgate/chatgate/utils/http"
	"chatgate/chatgate/utils/logging"
	"chatgate/chatgate/utils/types"
)

var ErrEmptyReply = errors.New("chat function returned an empty reply")

// Relay delivers one message to the chat function and returns the bot reply.
type Relay interface {
	Send(ctx context.Context, token string, req types.ChatRequest) (string, error)
}

// Client is the HTTP relay to the chat function endpoint.
type Client struct {
	endpoint string
	http     *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{endpoint: endpoint, http: &http.Client{Timeout: timeout}}
}

func (c *Client) Send(ctx context.Context, token string, req types.ChatRequest) (string, error) {
	defer logging.LogDuration(ctx, "relay_send")()
	headers := map[string]string{"Authorization": "Bearer " + token}
	var resp types.ChatResponse
	if err := httputils.PostJSON(ctx, c.http, c.endpoint, headers, req, &resp); err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", ErrEmptyReply
	}
	return text, nil
}
