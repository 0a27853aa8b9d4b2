package models

import (
	"strings"
	"time"
)

// Customer represents a customer record
type Customer struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at"`
}

// IsActive reports whether the customer has not been soft-deleted
func (c *Customer) IsActive() bool {
	return c.DeletedAt == nil
}

// CustomerPayload holds the writable fields of a customer as sent by a client
type CustomerPayload struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,max=20"`
}

// Normalize trims surrounding whitespace from every field
func (p *CustomerPayload) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
}

// CustomerFilter holds options for listing customers
type CustomerFilter struct {
	Page     int
	PageSize int
}
