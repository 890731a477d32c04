package mpesa

// STKPushRequest запрос на STK push (оплата с телефона клиента)
type STKPushRequest struct {
	Phone            string  `json:"phone"` // 254XXXXXXXXX
	Amount           float64 `json:"amount"`
	BookingID        string  `json:"booking_id"`
	AccountReference string  `json:"account_reference"`
}

// STKPushResponse ответ шлюза
type STKPushResponse struct {
	Success           bool   `json:"success"`
	CheckoutRequestID string `json:"checkout_request_id"`
	Message           string `json:"message"`
}
