package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Transport sends one user message to the inference endpoint and returns the
// bot's reply. The coordinator depends on this interface so tests can
// substitute a fake.
type Transport interface {
	Send(ctx context.Context, userMessage string) (string, error)
}

type chatRequest struct {
	UserMessage string `json:"user_message"`
}

type chatResponse struct {
	BotResponse string `json:"bot_response"`
}

// Client talks to the inference endpoint over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the inference endpoint at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// The backend's own upstream call is capped at 60s; mirror that here.
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// Send posts the user message to /chat and returns the reply text. Any
// non-2xx status is an error; the caller does not see the status code.
func (c *Client) Send(ctx context.Context, userMessage string) (string, error) {
	body, err := json.Marshal(chatRequest{UserMessage: userMessage})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return out.BotResponse, nil
}
