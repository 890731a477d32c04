package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client клиент REST API Stripe
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента Stripe
func NewClient(baseURL, secretKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// MinorUnits сумма в минимальных единицах валюты
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateCharge списывает сумму по токену карты
func (c *Client) CreateCharge(ctx context.Context, in ChargeRequest) (*Charge, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(in.Amount, 10))
	form.Set("currency", in.Currency)
	form.Set("source", in.Source)
	if in.Description != "" {
		form.Set("description", in.Description)
	}
	if in.BookingID != "" {
		form.Set("metadata[booking_id]", in.BookingID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/charges", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.SetBasicAuth(c.secretKey, "")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if in.BookingID != "" {
		req.Header.Set("Idempotency-Key", "booking-"+in.BookingID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusPaymentRequired || resp.StatusCode == http.StatusBadRequest:
		var e ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
			return nil, fmt.Errorf("%w: status %d", ErrCardDeclined, resp.StatusCode)
		}
		c.log.Warn("CreateCharge: declined for booking=%s: %s (%s)", in.BookingID, e.Error.Message, e.Error.Code)
		return nil, fmt.Errorf("%w: %s", ErrCardDeclined, e.Error.Message)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var charge Charge
	if err := json.NewDecoder(resp.Body).Decode(&charge); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if !charge.Paid {
		return &charge, fmt.Errorf("%w: charge %s status %s", ErrCardDeclined, charge.ID, charge.Status)
	}

	return &charge, nil
}
