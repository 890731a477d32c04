package mpesa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент функции-шлюза M-Pesa (STK push)
type Client struct {
	url        string
	authToken  string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента M-Pesa
func NewClient(url, authToken string, timeout time.Duration, log Logger) *Client {
	return &Client{
		url:       url,
		authToken: authToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// STKPush отправляет запрос на оплату на телефон клиента.
// Оплата подтверждается позже колбэком шлюза.
func (c *Client) STKPush(ctx context.Context, in STKPushRequest) (*STKPushResponse, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	c.log.Info("STKPush: booking=%s, reference=%s", in.BookingID, in.AccountReference)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	var out STKPushResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if !out.Success {
		c.log.Warn("STKPush: rejected for booking=%s: %s", in.BookingID, out.Message)
		if out.Message == "" {
			out.Message = "M-Pesa request failed"
		}
		return &out, fmt.Errorf("%w: %s", ErrRejected, out.Message)
	}

	return &out, nil
}
