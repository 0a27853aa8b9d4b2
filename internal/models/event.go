package models

import "time"

// Customer event types
const (
	EventCustomerCreated = "customer.created"
	EventCustomerUpdated = "customer.updated"
	EventCustomerDeleted = "customer.deleted"
)

// CustomerEvent announces a change to a customer record
type CustomerEvent struct {
	Type       string    `json:"type"`
	CustomerID int64     `json:"customer_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewCustomerEvent creates an event stamped with the current time
func NewCustomerEvent(eventType string, customerID int64) *CustomerEvent {
	return &CustomerEvent{
		Type:       eventType,
		CustomerID: customerID,
		OccurredAt: time.Now().UTC(),
	}
}
