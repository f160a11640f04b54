// Package smsgateway sends SMS through an HTTP gateway.
//
// The gateway accepts POST requests with a JSON body {"to": ..., "body": ...}
// and answers 2xx when the message was accepted.
package smsgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mmynk/splitpay/internal/platform"
)

var _ platform.SMSSender = (*Client)(nil)

// Client posts messages to an SMS gateway.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// New creates a gateway client. token is sent as a bearer token when non-empty.
// A nil httpClient means http.DefaultClient.
func New(endpoint, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:   endpoint,
		token:      token,
		httpClient: httpClient,
	}
}

type sendRequest struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

// SendSMS posts a single message to the gateway.
func (c *Client) SendSMS(ctx context.Context, phoneNumber, message string) error {
	payload, err := json.Marshal(sendRequest{To: phoneNumber, Body: message})
	if err != nil {
		return fmt.Errorf("failed to encode sms request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sms gateway returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
