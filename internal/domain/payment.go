package domain

import "github.com/shopspring/decimal"

// PaymentResult carries the outcome of a payment initialization or
// verification call. It is a volatile value object and is never persisted.
type PaymentResult struct {
	Success        bool            `json:"success"`
	Reference      string          `json:"reference,omitempty"`
	RedirectURL    string          `json:"redirect_url,omitempty"`
	Message        string          `json:"message,omitempty"`
	TransactionID  string          `json:"transaction_id,omitempty"`
	PayerEmail     string          `json:"payer_email,omitempty"`
	AmountPaid     decimal.Decimal `json:"amount_paid"`
	Currency       string          `json:"currency,omitempty"`
	PurchasedItems []PurchasedItem `json:"purchased_items,omitempty"`
}

// PurchasedItem is one line of the purchase manifest assembled after a
// successful verification.
type PurchasedItem struct {
	MovieID   string          `json:"movie_id"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}
