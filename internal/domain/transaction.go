package domain

import "time"

// Transaction is an immutable observed money movement between two accounts.
type Transaction struct {
	ID         string    `json:"transaction_id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Amount     float64   `json:"amount"`
	Timestamp  time.Time `json:"timestamp"`
}

// IsSelfLoop reports whether the transaction's sender and receiver are the same account.
func (t Transaction) IsSelfLoop() bool {
	return t.SenderID == t.ReceiverID
}
