package dto

// AmountRequest is the body of deposit and withdrawal requests.
type AmountRequest struct {
	Amount int64 `json:"amount"`
}
