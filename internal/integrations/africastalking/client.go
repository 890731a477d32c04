package africastalking

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Config учётные данные Africa's Talking
type Config struct {
	URL      string
	Username string
	APIKey   string
	SenderID string
}

// Client клиент SMS API Africa's Talking
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(cfg Config, timeout time.Duration, log Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Configured заданы ли имя пользователя и ключ
func (c *Client) Configured() bool {
	return c.cfg.Username != "" && c.cfg.APIKey != ""
}

// Send отправляет SMS и возвращает ID сообщения
func (c *Client) Send(ctx context.Context, to, message string) (string, error) {
	if !strings.HasPrefix(to, "+") {
		to = "+" + to
	}

	form := url.Values{}
	form.Set("username", c.cfg.Username)
	form.Set("to", to)
	form.Set("message", message)
	if c.cfg.SenderID != "" {
		form.Set("from", c.cfg.SenderID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("apiKey", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %v", ErrInvalidResponse, err)
	}

	var out SendResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	recipients := out.SMSMessageData.Recipients
	if len(recipients) == 0 || recipients[0].Status != "Success" {
		reason := out.SMSMessageData.Message
		if reason == "" {
			reason = "Unknown error"
		}
		return "", fmt.Errorf("%w: %s", ErrSendFailed, reason)
	}

	c.log.Info("Send: sms sent to %s, message id=%s", to, recipients[0].MessageID)
	return recipients[0].MessageID, nil
}
