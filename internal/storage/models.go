package storage

import "time"

// Call outcome values stored in call_records.status.
const (
	CallStatusSuccess   = "success"
	CallStatusNoResult  = "no_result"
	CallStatusTransport = "transport_error"
)

// CallRecord is one audited API call.
type CallRecord struct {
	ID        string        `json:"id"`
	Model     string        `json:"model"`
	Status    string        `json:"status"`
	Duration  time.Duration `json:"duration_ms"`
	Error     string        `json:"error,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}
