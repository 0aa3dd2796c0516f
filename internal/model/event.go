package model

import "time"

// EventRecord is the ledger row written for every verified webhook event.
type EventRecord struct {
	EventID    string    `db:"event_id"`
	Type       string    `db:"type"`
	CustomerID string    `db:"customer_id"`
	ObjectID   string    `db:"object_id"`
	Created    int64     `db:"created"` // provider timestamp, unix seconds
	ReceivedAt time.Time `db:"received_at"`
}

// CustomerPaymentStatus is the latest known payment state per provider customer.
type CustomerPaymentStatus struct {
	CustomerID   string    `db:"customer_id"`
	Status       string    `db:"status"`
	LastEventID  string    `db:"last_event_id"`
	EventCreated int64     `db:"event_created"`
	UpdatedAt    time.Time `db:"updated_at"`
}

const (
	PaymentStatusCheckoutCompleted = "checkout_completed"
	PaymentStatusPaid              = "paid"
	PaymentStatusPaymentFailed     = "payment_failed"
	PaymentStatusCanceled          = "canceled"
)
