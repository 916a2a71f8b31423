package responder

import (
	"context"
	"net/http"
	"strings"
	"time"

	httputils "chatgate/chatgate/utils/http"
	"chatgate/chatgate/utils/logging"
)

type OllamaClient struct {
	baseURL string
	model   string
	http    *http.Client
}

func NewOllamaClient(baseURL, model string, timeout time.Duration) *OllamaClient {
	return &OllamaClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		http:    &http.Client{Timeout: timeout},
	}
}

type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatResponse struct {
	Message Message `json:"message"`
	Done    bool    `json:"done"`
}

func (c *OllamaClient) Reply(ctx context.Context, message string) (string, error) {
	defer logging.LogDuration(ctx, "ollama_reply")()
	req := ChatRequest{
		Model:    c.model,
		Messages: []Message{{Role: "user", Content: message}},
		Stream:   false,
	}
	var resp ChatResponse
	if err := httputils.PostJSON(ctx, c.http, c.baseURL+"/chat", nil, req, &resp); err != nil {
		return "", err
	}
	return resp.Message.Content, nil
}
