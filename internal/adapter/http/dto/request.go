package dto

// EnsureAccountRequest represents a request to provision an account.
type EnsureAccountRequest struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
}

// TransferRequest represents a request to transfer coins. Amount stays
// a string end to end; the domain parser is the only place that
// interprets it.
type TransferRequest struct {
	FromID string `json:"from_id"`
	ToID   string `json:"to_id"`
	Amount string `json:"amount"`
}
