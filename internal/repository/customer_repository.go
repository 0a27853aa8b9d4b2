package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/Raymond9734/customers-api/internal/models"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation
const uniqueViolation = pq.ErrorCode("23505")

// CustomerRepository defines the interface for customer data access.
// Only active (not soft-deleted) rows are visible through it.
type CustomerRepository interface {
	Find(ctx context.Context, id int64) (*models.Customer, error)
	Paginate(ctx context.Context, filter models.CustomerFilter) ([]*models.Customer, models.PaginationResult, error)
	Insert(ctx context.Context, payload *models.CustomerPayload) (int64, error)
	Update(ctx context.Context, id int64, payload *models.CustomerPayload) error
	Delete(ctx context.Context, id int64) error
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	ExistsByPhone(ctx context.Context, phone string, excludeID int64) (bool, error)
}

// customerRepository implements CustomerRepository using PostgreSQL
type customerRepository struct {
	db *sql.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *sql.DB) CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = `id, name, email, phone, created_at, updated_at, deleted_at`

// Find retrieves an active customer by ID
func (r *customerRepository) Find(ctx context.Context, id int64) (*models.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE id = $1 AND deleted_at IS NULL`

	customer, err := scanCustomer(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("customer with ID %d not found", id))
	}
	if err != nil {
		return nil, storageError("failed to get customer", err)
	}

	return customer, nil
}

// Paginate returns one page of active customers ordered by id, together
// with the window computed from the total active count
func (r *customerRepository) Paginate(ctx context.Context, filter models.CustomerFilter) ([]*models.Customer, models.PaginationResult, error) {
	var totalCount int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers WHERE deleted_at IS NULL`).Scan(&totalCount)
	if err != nil {
		return nil, models.PaginationResult{}, storageError("failed to count customers", err)
	}

	result := models.NewPaginationResult(filter.Page, filter.PageSize, totalCount)

	customers := []*models.Customer{}
	if totalCount == 0 {
		return customers, result, nil
	}

	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE deleted_at IS NULL
		ORDER BY id ASC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, result.PageSize, result.Offset())
	if err != nil {
		return nil, models.PaginationResult{}, storageError("failed to list customers", err)
	}
	defer rows.Close()

	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, models.PaginationResult{}, storageError("failed to scan customer", err)
		}
		customers = append(customers, customer)
	}

	if err = rows.Err(); err != nil {
		return nil, models.PaginationResult{}, storageError("error iterating customers", err)
	}

	return customers, result, nil
}

// Insert creates a customer and returns the id assigned by the store
func (r *customerRepository) Insert(ctx context.Context, payload *models.CustomerPayload) (int64, error) {
	query := `
		INSERT INTO customers (name, email, phone)
		VALUES ($1, $2, $3)
		RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query, payload.Name, payload.Email, payload.Phone).Scan(&id)
	if err != nil {
		return 0, translateWriteError("failed to create customer", err)
	}

	return id, nil
}

// Update overwrites name, email and phone of an active customer and
// refreshes updated_at
func (r *customerRepository) Update(ctx context.Context, id int64, payload *models.CustomerPayload) error {
	query := `
		UPDATE customers
		SET name = $1, email = $2, phone = $3, updated_at = NOW()
		WHERE id = $4 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, payload.Name, payload.Email, payload.Phone, id)
	if err != nil {
		return translateWriteError("failed to update customer", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storageError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return models.ErrNotFoundWithMsg(fmt.Sprintf("customer with ID %d not found", id))
	}

	return nil
}

// Delete soft-deletes a customer by stamping deleted_at
func (r *customerRepository) Delete(ctx context.Context, id int64) error {
	query := `
		UPDATE customers
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return storageError("failed to delete customer", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storageError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return models.ErrNotFoundWithMsg(fmt.Sprintf("customer with ID %d not found", id))
	}

	return nil
}

// ExistsByEmail reports whether an active customer other than excludeID
// uses email. Pass 0 to exclude nothing.
func (r *customerRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	return r.exists(ctx, "email", email, excludeID)
}

// ExistsByPhone reports whether an active customer other than excludeID
// uses phone. Pass 0 to exclude nothing.
func (r *customerRepository) ExistsByPhone(ctx context.Context, phone string, excludeID int64) (bool, error) {
	return r.exists(ctx, "phone", phone, excludeID)
}

// column is never user input
func (r *customerRepository) exists(ctx context.Context, column, value string, excludeID int64) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM customers
			WHERE %s = $1 AND id <> $2 AND deleted_at IS NULL
		)`, column)

	var found bool
	if err := r.db.QueryRowContext(ctx, query, value, excludeID).Scan(&found); err != nil {
		return false, storageError(fmt.Sprintf("failed to check customer %s", column), err)
	}

	return found, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (*models.Customer, error) {
	customer := &models.Customer{}
	var deletedAt sql.NullTime
	err := row.Scan(
		&customer.ID,
		&customer.Name,
		&customer.Email,
		&customer.Phone,
		&customer.CreatedAt,
		&customer.UpdatedAt,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}
	if deletedAt.Valid {
		customer.DeletedAt = &deletedAt.Time
	}
	return customer, nil
}

// translateWriteError turns unique violations into conflicts
func translateWriteError(msg string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return models.ErrConflictWithMsg(
			fmt.Sprintf("%s: duplicate %s", msg, conflictingField(pqErr)),
			err,
		)
	}
	return storageError(msg, err)
}

func conflictingField(pqErr *pq.Error) string {
	switch {
	case strings.Contains(pqErr.Constraint, "email"):
		return "email"
	case strings.Contains(pqErr.Constraint, "phone"):
		return "phone"
	default:
		return "value"
	}
}

func storageError(msg string, err error) error {
	return fmt.Errorf("%s: %w: %w", msg, models.ErrStorage, err)
}
