package models

// Pagination defaults
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PaginationResult holds pagination metadata
type PaginationResult struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginationResult creates a pagination result. The requested page is
// clamped into [1, max(TotalPages, 1)].
func NewPaginationResult(page, pageSize int, totalCount int64) PaginationResult {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	totalPages := 0
	if totalCount > 0 {
		totalPages = int(totalCount / int64(pageSize))
		if totalCount%int64(pageSize) > 0 {
			totalPages++
		}
	}

	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	return PaginationResult{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}

// Offset returns the SQL offset of the window
func (p PaginationResult) Offset() int {
	return CalculateOffset(p.Page, p.PageSize)
}

// ValidateAndSetDefaults validates pagination parameters and sets defaults
func ValidateAndSetDefaults(page, pageSize *int, defaultSize, maxSize int) {
	if defaultSize < 1 {
		defaultSize = DefaultPageSize
	}
	if maxSize < 1 {
		maxSize = MaxPageSize
	}
	if *page < 1 {
		*page = 1
	}
	if *pageSize < 1 {
		*pageSize = defaultSize
	}
	if *pageSize > maxSize {
		*pageSize = maxSize
	}
}

// CalculateOffset calculates the SQL offset for pagination
func CalculateOffset(page, pageSize int) int {
	return (page - 1) * pageSize
}

// PageLink addresses one page of a listing
type PageLink struct {
	Page int    `json:"page"`
	Link string `json:"link"`
}

// Pager describes the pagination window and its navigation links
type Pager struct {
	First    string     `json:"first"`
	Last     string     `json:"last"`
	Previous *string    `json:"previous"`
	Next     *string    `json:"next"`
	Pages    []PageLink `json:"pages"`
	Total    int        `json:"total"`
	Current  int        `json:"current"`
}

// URIBuilder returns the address of the given page
type URIBuilder func(page int) string

// NewPager computes navigation links for a pagination result. Total is the
// number of pages. With no pages, First and Last both point at page 1.
func NewPager(result PaginationResult, uri URIBuilder) Pager {
	last := result.TotalPages
	if last < 1 {
		last = 1
	}

	pages := make([]PageLink, 0, result.TotalPages)
	for page := 1; page <= result.TotalPages; page++ {
		pages = append(pages, PageLink{Page: page, Link: uri(page)})
	}

	pager := Pager{
		First:   uri(1),
		Last:    uri(last),
		Pages:   pages,
		Total:   result.TotalPages,
		Current: result.Page,
	}

	if result.Page > 1 {
		prev := uri(result.Page - 1)
		pager.Previous = &prev
	}
	if result.Page < result.TotalPages {
		next := uri(result.Page + 1)
		pager.Next = &next
	}

	return pager
}
