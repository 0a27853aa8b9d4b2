package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Raymond9734/customers-api/internal/models"
	"github.com/Raymond9734/customers-api/internal/service"
)

const maxBodyBytes = 1 << 20

// CustomerHandlerOptions controls listing and link generation
type CustomerHandlerOptions struct {
	// BaseURL prefixes pager links; empty yields relative links.
	BaseURL     string
	PageSize    int
	MaxPageSize int
}

// CustomerHandler handles customer HTTP requests
type CustomerHandler struct {
	customerService service.CustomerService
	opts            CustomerHandlerOptions
	logger          *slog.Logger
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService service.CustomerService, opts CustomerHandlerOptions, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		opts:            opts,
		logger:          logger,
	}
}

// ListCustomers handles GET /customers
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	pageSize, _ := strconv.Atoi(query.Get("page_size"))
	models.ValidateAndSetDefaults(&page, &pageSize, h.opts.PageSize, h.opts.MaxPageSize)

	result, err := h.customerService.List(r.Context(), models.CustomerFilter{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	respondSuccess(w, CustomerListResponse{
		Customers: result.Customers,
		Pager:     models.NewPager(result.Pagination, h.pageURI(r.URL)),
	})
}

// GetCustomer handles GET /customers/{id}
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(r)
	if !ok {
		respondError(w, http.StatusNotFound, msgCustomerNotFound)
		return
	}

	customer, err := h.customerService.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	respondSuccess(w, CustomerResponse{Customer: customer})
}

// CreateCustomer handles POST /customers
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.customerService.Create(r.Context(), readBody(w, r))
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	respondCreated(w, CustomerResponse{Customer: customer})
}

// UpdateCustomer handles PUT /customers/{id}
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(r)
	if !ok {
		respondError(w, http.StatusNotFound, msgCustomerNotFound)
		return
	}

	customer, err := h.customerService.Update(r.Context(), id, readBody(w, r))
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	respondSuccess(w, CustomerResponse{Customer: customer})
}

// DeleteCustomer handles DELETE /customers/{id}
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(r)
	if !ok {
		respondError(w, http.StatusNotFound, msgCustomerNotFound)
		return
	}

	if err := h.customerService.Delete(r.Context(), id); err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	respondNoContent(w)
}

// pageURI builds pager links from the request URL, replacing only the page
// parameter
func (h *CustomerHandler) pageURI(u *url.URL) models.URIBuilder {
	base := h.opts.BaseURL + u.Path
	return func(page int) string {
		query := u.Query()
		query.Set("page", strconv.Itoa(page))
		return base + "?" + query.Encode()
	}
}

// customerID parses the {id} path parameter; only positive integers are ids
func customerID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// readBody returns the request body, or nil if it cannot be read. The
// validator treats an unreadable body as an empty payload.
func readBody(w http.ResponseWriter, r *http.Request) []byte {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil
	}
	return body
}
