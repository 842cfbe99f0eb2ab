package object

import (
	"fmt"
	"slices"

	"github.com/raywlfun/WeaviateDBCluster/internal/domain"
)

// PageSizes are the page sizes a listing may request.
var PageSizes = []int{100, 500, 1000, 2000, 5000}

// DefaultPageSize is used when a listing names no page size.
const DefaultPageSize = 1000

// PageRequest addresses one page of a collection listing.
type PageRequest struct {
	page int
	size int
}

// NewPageRequest validates a 1-based page number and page size.
// Zero values select the first page and DefaultPageSize.
func NewPageRequest(page, size int) (PageRequest, error) {
	if page == 0 {
		page = 1
	}
	if size == 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		return PageRequest{}, fmt.Errorf("%w: page must be at least 1", domain.ErrValidation)
	}
	if !slices.Contains(PageSizes, size) {
		return PageRequest{}, fmt.Errorf("%w: page size must be one of %v", domain.ErrValidation, PageSizes)
	}
	return PageRequest{page: page, size: size}, nil
}

// Page returns the 1-based page number.
func (r PageRequest) Page() int { return r.page }

// Size returns the page size.
func (r PageRequest) Size() int { return r.size }

// Offset returns the number of objects before the page.
func (r PageRequest) Offset() int { return (r.page - 1) * r.size }

// Page is one page of objects plus the listing totals.
type Page struct {
	Objects    []Object
	Page       int
	Size       int
	Total      int64
	TotalPages int
}

// TotalPages is the number of pages needed for total objects, at least 1.
func TotalPages(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 1
	}
	return int((total + int64(size) - 1) / int64(size))
}

// CheckInRange rejects a page past the end of a non-empty listing.
func (r PageRequest) CheckInRange(total int64) error {
	if n := TotalPages(total, r.size); total > 0 && r.page > n {
		return fmt.Errorf("%w: page %d is beyond the last page %d", domain.ErrValidation, r.page, n)
	}
	return nil
}
