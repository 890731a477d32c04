package stripe

// ChargeRequest списание по токену карты
type ChargeRequest struct {
	Amount      int64 // в минимальных единицах валюты (центы)
	Currency    string
	Source      string // tok_...
	Description string
	BookingID   string
}

// Charge ответ Stripe на создание списания
type Charge struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Paid   bool   `json:"paid"`
}

// ErrorResponse модель ошибки Stripe
type ErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
