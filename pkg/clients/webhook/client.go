package webhook

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client posts plain-text messages to a chat-style incoming webhook.
type Client interface {
	PostText(ctx context.Context, text string) error
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a webhook client for the given URL.
func NewClient(url string) (*APIClient, error) {
	if url == "" {
		return nil, errors.New("webhook url must not be empty")
	}

	restyClient := resty.New().
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &APIClient{httpClient: restyClient, url: url}, nil
}

type textPayload struct {
	Text string `json:"text"`
}

// PostText sends {"text": text}.
func (c *APIClient) PostText(ctx context.Context, text string) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(textPayload{Text: text}).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("post webhook message: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("webhook error: status=%d, body=%s", resp.StatusCode(), resp.String())
	}

	return nil
}
