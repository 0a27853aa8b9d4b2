package queue

import (
	"context"

	"github.com/Raymond9734/customers-api/internal/models"
)

// Client defines the interface for queue operations
type Client interface {
	// Publish pushes a customer event onto the queue
	Publish(ctx context.Context, event *models.CustomerEvent) error

	// Close closes the queue connection
	Close() error

	// Health checks if the queue is healthy
	Health(ctx context.Context) error
}
