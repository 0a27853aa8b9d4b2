package service

import (
	"github.com/Raymond9734/customers-api/internal/models"
)

// CustomerListResult represents one page of customers
type CustomerListResult struct {
	Customers  []*models.Customer
	Pagination models.PaginationResult
}
