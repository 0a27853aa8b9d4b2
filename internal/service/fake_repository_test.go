package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Raymond9734/customers-api/internal/models"
)

// fakeCustomerRepository is an in-memory CustomerRepository with soft delete
// and active-row uniqueness
type fakeCustomerRepository struct {
	mu        sync.Mutex
	nextID    int64
	customers map[int64]*models.Customer

	insertErr error
	updateErr error
	deleteErr error
	// ignoreDelete makes Delete report success without removing anything
	ignoreDelete bool
	existsErr    error
}

func newFakeCustomerRepository() *fakeCustomerRepository {
	return &fakeCustomerRepository{customers: map[int64]*models.Customer{}}
}

func (f *fakeCustomerRepository) Find(ctx context.Context, id int64) (*models.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.customers[id]
	if !ok || !c.IsActive() {
		return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("customer with ID %d not found", id))
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCustomerRepository) Paginate(ctx context.Context, filter models.CustomerFilter) ([]*models.Customer, models.PaginationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	active := []*models.Customer{}
	for _, c := range f.customers {
		if c.IsActive() {
			copied := *c
			active = append(active, &copied)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })

	result := models.NewPaginationResult(filter.Page, filter.PageSize, int64(len(active)))
	start := result.Offset()
	if start > len(active) {
		start = len(active)
	}
	end := start + result.PageSize
	if end > len(active) {
		end = len(active)
	}

	return active[start:end], result, nil
}

func (f *fakeCustomerRepository) Insert(ctx context.Context, payload *models.CustomerPayload) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.insertErr != nil {
		return 0, f.insertErr
	}
	if err := f.checkUnique(payload, 0); err != nil {
		return 0, err
	}

	f.nextID++
	now := time.Now().UTC()
	f.customers[f.nextID] = &models.Customer{
		ID:        f.nextID,
		Name:      payload.Name,
		Email:     payload.Email,
		Phone:     payload.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return f.nextID, nil
}

func (f *fakeCustomerRepository) Update(ctx context.Context, id int64, payload *models.CustomerPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updateErr != nil {
		return f.updateErr
	}
	c, ok := f.customers[id]
	if !ok || !c.IsActive() {
		return models.ErrNotFoundWithMsg(fmt.Sprintf("customer with ID %d not found", id))
	}
	if err := f.checkUnique(payload, id); err != nil {
		return err
	}

	c.Name, c.Email, c.Phone = payload.Name, payload.Email, payload.Phone
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func (f *fakeCustomerRepository) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.deleteErr != nil {
		return f.deleteErr
	}
	c, ok := f.customers[id]
	if !ok || !c.IsActive() {
		return models.ErrNotFoundWithMsg(fmt.Sprintf("customer with ID %d not found", id))
	}
	if f.ignoreDelete {
		return nil
	}
	now := time.Now().UTC()
	c.DeletedAt = &now
	return nil
}

func (f *fakeCustomerRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	return f.exists(func(c *models.Customer) bool { return c.Email == email }, excludeID)
}

func (f *fakeCustomerRepository) ExistsByPhone(ctx context.Context, phone string, excludeID int64) (bool, error) {
	return f.exists(func(c *models.Customer) bool { return c.Phone == phone }, excludeID)
}

func (f *fakeCustomerRepository) exists(match func(*models.Customer) bool, excludeID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.existsErr != nil {
		return false, f.existsErr
	}
	for id, c := range f.customers {
		if id != excludeID && c.IsActive() && match(c) {
			return true, nil
		}
	}
	return false, nil
}

// checkUnique must be called with mu held
func (f *fakeCustomerRepository) checkUnique(payload *models.CustomerPayload, excludeID int64) error {
	for id, c := range f.customers {
		if id == excludeID || !c.IsActive() {
			continue
		}
		if c.Email == payload.Email {
			return models.ErrConflictWithMsg("duplicate email", nil)
		}
		if c.Phone == payload.Phone {
			return models.ErrConflictWithMsg("duplicate phone", nil)
		}
	}
	return nil
}

// fakeQueueClient records published events
type fakeQueueClient struct {
	mu         sync.Mutex
	events     []*models.CustomerEvent
	publishErr error
}

func (q *fakeQueueClient) Publish(ctx context.Context, event *models.CustomerEvent) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.publishErr != nil {
		return q.publishErr
	}
	q.events = append(q.events, event)
	return nil
}

func (q *fakeQueueClient) Close() error                     { return nil }
func (q *fakeQueueClient) Health(ctx context.Context) error { return nil }

func (q *fakeQueueClient) types() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]string, 0, len(q.events))
	for _, e := range q.events {
		out = append(out, e.Type)
	}
	return out
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
