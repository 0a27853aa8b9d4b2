package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Raymond9734/customers-api/internal/models"
	"github.com/Raymond9734/customers-api/internal/queue"
	"github.com/Raymond9734/customers-api/internal/repository"
)

// Client-facing messages for failed writes
const (
	MsgCreateFailed = "Customer creation failed"
	MsgUpdateFailed = "Customer update failed"
	MsgDeleteFailed = "Customer deletion failed"
)

// CustomerService handles customer business logic
type CustomerService interface {
	List(ctx context.Context, filter models.CustomerFilter) (*CustomerListResult, error)
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
	Create(ctx context.Context, body []byte) (*models.Customer, error)
	Update(ctx context.Context, id int64, body []byte) (*models.Customer, error)
	Delete(ctx context.Context, id int64) error
}

type customerService struct {
	customerRepo repository.CustomerRepository
	validator    *CustomerValidator
	queueClient  queue.Client
	logger       *slog.Logger
}

// NewCustomerService creates a new customer service. queueClient may be nil,
// in which case no lifecycle events are published.
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	queueClient queue.Client,
	logger *slog.Logger,
) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		validator:    NewCustomerValidator(customerRepo),
		queueClient:  queueClient,
		logger:       logger,
	}
}

// List retrieves one page of active customers
func (s *customerService) List(ctx context.Context, filter models.CustomerFilter) (*CustomerListResult, error) {
	customers, pagination, err := s.customerRepo.Paginate(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	return &CustomerListResult{
		Customers:  customers,
		Pagination: pagination,
	}, nil
}

// GetByID retrieves an active customer by ID
func (s *customerService) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	return s.customerRepo.Find(ctx, id)
}

// Create validates body against the create rules, inserts it and returns
// the stored record
func (s *customerService) Create(ctx context.Context, body []byte) (*models.Customer, error) {
	payload, err := s.validator.Validate(ctx, CreateRules(), body)
	if err != nil {
		return nil, err
	}

	id, err := s.customerRepo.Insert(ctx, payload)
	if err != nil {
		s.logger.Error("failed to create customer",
			slog.String("email", payload.Email),
			slog.String("phone", payload.Phone),
			slog.String("error", err.Error()),
		)
		return nil, models.ErrInternal(MsgCreateFailed, err)
	}

	customer, err := s.customerRepo.Find(ctx, id)
	if err != nil {
		s.logger.Error("failed to reload created customer",
			slog.Int64("customer_id", id),
			slog.String("error", err.Error()),
		)
		return nil, models.ErrInternal(MsgCreateFailed, err)
	}

	s.logger.Info("customer created",
		slog.Int64("customer_id", customer.ID),
	)
	s.publish(ctx, models.EventCustomerCreated, customer.ID)

	return customer, nil
}

// Update checks that id exists, validates body against the update rules
// for id, applies it and returns the stored record
func (s *customerService) Update(ctx context.Context, id int64, body []byte) (*models.Customer, error) {
	if _, err := s.customerRepo.Find(ctx, id); err != nil {
		return nil, err
	}

	payload, err := s.validator.Validate(ctx, UpdateRules(id), body)
	if err != nil {
		return nil, err
	}

	if err := s.customerRepo.Update(ctx, id, payload); err != nil {
		s.logger.Error("failed to update customer",
			slog.Int64("customer_id", id),
			slog.String("error", err.Error()),
		)
		return nil, models.ErrInternal(MsgUpdateFailed, err)
	}

	customer, err := s.customerRepo.Find(ctx, id)
	if err != nil {
		s.logger.Error("failed to reload updated customer",
			slog.Int64("customer_id", id),
			slog.String("error", err.Error()),
		)
		return nil, models.ErrInternal(MsgUpdateFailed, err)
	}

	s.logger.Info("customer updated",
		slog.Int64("customer_id", id),
	)
	s.publish(ctx, models.EventCustomerUpdated, id)

	return customer, nil
}

// Delete checks that id exists, soft-deletes it and confirms it is gone
func (s *customerService) Delete(ctx context.Context, id int64) error {
	if _, err := s.customerRepo.Find(ctx, id); err != nil {
		return err
	}

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete customer",
			slog.Int64("customer_id", id),
			slog.String("error", err.Error()),
		)
		return models.ErrInternal(MsgDeleteFailed, err)
	}

	_, err := s.customerRepo.Find(ctx, id)
	switch {
	case errors.Is(err, models.ErrNotFound):
	case err != nil:
		s.logger.Error("failed to confirm customer deletion",
			slog.Int64("customer_id", id),
			slog.String("error", err.Error()),
		)
		return models.ErrInternal(MsgDeleteFailed, err)
	default:
		s.logger.Error("customer still present after delete",
			slog.Int64("customer_id", id),
		)
		return models.ErrInternal(MsgDeleteFailed, errors.New("customer still active after delete"))
	}

	s.logger.Info("customer deleted",
		slog.Int64("customer_id", id),
	)
	s.publish(ctx, models.EventCustomerDeleted, id)

	return nil
}

// publish announces a lifecycle event; failures are logged and dropped
func (s *customerService) publish(ctx context.Context, eventType string, customerID int64) {
	if s.queueClient == nil {
		return
	}

	if err := s.queueClient.Publish(ctx, models.NewCustomerEvent(eventType, customerID)); err != nil {
		s.logger.Warn("failed to publish customer event",
			slog.String("type", eventType),
			slog.Int64("customer_id", customerID),
			slog.String("error", err.Error()),
		)
	}
}
