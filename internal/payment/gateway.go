package payment

import "context"

// InitializeRequest holds the parameters for starting a hosted checkout.
type InitializeRequest struct {
	Email       string
	Amount      int64 // minor units
	CallbackURL string
}

// InitializeResult is the gateway's answer to a successful initialization.
type InitializeResult struct {
	AuthorizationURL string
	Reference        string
}

// VerifyResult is the gateway's answer to a transaction verification call.
// Status is the gateway's own status string; only "success" counts as paid.
type VerifyResult struct {
	Status        string
	Reference     string
	Amount        int64 // minor units
	PayerEmail    string
	TransactionID string
}

// TransactionStatusSuccess is the gateway status string for a settled payment.
const TransactionStatusSuccess = "success"

// Gateway abstracts the external payment provider.
type Gateway interface {
	InitializeTransaction(ctx context.Context, req *InitializeRequest) (*InitializeResult, error)
	VerifyTransaction(ctx context.Context, reference string) (*VerifyResult, error)
}
