package domain

import "context"

type NotifyEvent string

const (
	NotifyConfirmation NotifyEvent = "confirmation"
	NotifyShipped      NotifyEvent = "shipped"
	NotifyDelivered    NotifyEvent = "delivered"
)

// NotifyResult reports the outcome of a notification send. Skipped marks the
// unconfigured-gateway case, which counts as success: the caller treats it
// like a sent email and never retries.
type NotifyResult struct {
	Success bool   `json:"success"`
	Skipped bool   `json:"skipped,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OrderNotifier renders and sends a transactional email for an order event.
// Failures are reported in the result, never as a blocking error: the order
// mutation that triggered the send is already committed.
type OrderNotifier interface {
	Notify(ctx context.Context, event NotifyEvent, order Order) NotifyResult
}
