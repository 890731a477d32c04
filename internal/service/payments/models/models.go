package models

// Outcome итог попытки оплаты
type Outcome string

const (
	OutcomePaid    Outcome = "paid"
	OutcomeFailed  Outcome = "failed"
	OutcomeTimeout Outcome = "timeout"
	OutcomePending Outcome = "pending"
)

// Способы оплаты
const (
	MethodMpesa  = "mpesa"
	MethodStripe = "stripe"
	MethodAdmin  = "admin"
)

// Сообщения для клиента
const (
	MsgNetworkError = "Network error. Please try again."
	MsgTimeout      = "Payment confirmation timed out. If money was deducted, please contact us."
	MsgMpesaFailed  = "M-Pesa request failed"
	MsgCardFailed   = "Payment processing error"
)

// Request модели

// MpesaRequest оплата через M-Pesa
type MpesaRequest struct {
	BookingID string `json:"-"`
	Phone     string `json:"phone" validate:"required"`
}

// StripeRequest оплата картой по токену Stripe.js
type StripeRequest struct {
	BookingID string `json:"-"`
	Token     string `json:"token" validate:"required,startswith=tok_"`
}

// MpesaCallbackRequest результат STK push от шлюза
type MpesaCallbackRequest struct {
	BookingID         string `json:"booking_id" validate:"required"`
	CheckoutRequestID string `json:"checkout_request_id"`
	ResultCode        int    `json:"result_code"`
	ResultDesc        string `json:"result_desc"`
	ReceiptNumber     string `json:"mpesa_receipt_number"`
}

// Response модели

// PaymentResponse итог оплаты
type PaymentResponse struct {
	BookingID         string  `json:"bookingId"`
	Method            string  `json:"method"`
	Outcome           Outcome `json:"outcome"`
	Reference         string  `json:"reference,omitempty"`
	CheckoutRequestID string  `json:"checkoutRequestId,omitempty"`
	Message           string  `json:"message,omitempty"`
	CustomerEmail     string  `json:"customerEmail,omitempty"` // для ссылки "Мои записи"
}

// StatusResponse текущий статус оплаты
type StatusResponse struct {
	BookingID     string `json:"bookingId"`
	PaymentStatus string `json:"paymentStatus"`
	Reference     string `json:"reference,omitempty"`
}
