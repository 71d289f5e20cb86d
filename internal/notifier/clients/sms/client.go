package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/samandr77/microservices/challenge/pkg/config"
	"github.com/samandr77/microservices/challenge/pkg/transport"
)

var ErrNotConfigured = errors.New("sms gateway is not configured")

// Client sends text messages through an HTTP SMS gateway.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
	sender  string
}

func New(cfg config.SMSConfig) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryAttempts
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.HTTPClient.Transport = transport.NewLoggingRoundTripper(retryClient.HTTPClient.Transport)
	retryClient.Logger = nil

	return &Client{
		client:  retryClient.StandardClient(),
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		sender:  cfg.Sender,
	}
}

type sendRequest struct {
	Sender  string `json:"sender,omitempty"`
	Numbers string `json:"numbers"`
	Message string `json:"message"`
}

// SendMessage delivers text to every number in recipients with one request.
func (c *Client) SendMessage(ctx context.Context, text string, recipients []string) error {
	if c.apiKey == "" || c.baseURL == "" {
		return ErrNotConfigured
	}

	raw, err := json.Marshal(sendRequest{
		Sender:  c.sender,
		Numbers: strings.Join(recipients, ","),
		Message: text,
	})
	if err != nil {
		return fmt.Errorf("marshal request in JSON: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected code %d: %s", resp.StatusCode, body)
	}

	return nil
}
