package services

import "github.com/kerbaras/countries/pkg/data"

const PageSize = 24

// VisibleSlice returns the cumulative prefix revealed after page pages.
func VisibleSlice(filtered []data.Country, page, pageSize int) []data.Country {
	if page < 1 {
		page = 1
	}
	end := page * pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[:end]
}

func HasMore(total, page, pageSize int) bool {
	return page*pageSize < total
}

// Paginator tracks the "load more" cursor over a filtered result.
type Paginator struct {
	page     int
	pageSize int
	total    int
	hasMore  bool
}

func NewPaginator(pageSize int) *Paginator {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	return &Paginator{page: 1, pageSize: pageSize}
}

// Reset moves back to the first page for a result of total items.
func (p *Paginator) Reset(total int) {
	p.page = 1
	p.total = total
	p.hasMore = HasMore(total, p.page, p.pageSize)
}

// LoadMore reveals one more page if there is one. Otherwise it only clears the
// has-more flag.
func (p *Paginator) LoadMore() bool {
	if !HasMore(p.total, p.page, p.pageSize) {
		p.hasMore = false
		return false
	}
	p.page++
	p.hasMore = HasMore(p.total, p.page, p.pageSize)
	return true
}

func (p *Paginator) Page() int { return p.page }
func (p *Paginator) PageSize() int { return p.pageSize }
func (p *Paginator) HasMore() bool { return p.hasMore }

func (p *Paginator) Visible(filtered []data.Country) []data.Country {
	return VisibleSlice(filtered, p.page, p.pageSize)
}
