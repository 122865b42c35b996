package query

import "math"

// Pagination is a validated page window. Page and Limit are 1-based and
// already defaulted/bounded by the binding layer.
type Pagination struct {
	Page  int
	Limit int
}

// NewPagination clamps page/limit to their minimums (page 1, limit 10).
func NewPagination(page, limit int) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return Pagination{Page: page, Limit: limit}
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageMeta is the pagination block returned with every list response.
type PageMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewPageMeta derives page counts from the post-filter, pre-pagination total.
func NewPageMeta(p Pagination, total int64) PageMeta {
	return PageMeta{
		Page:  p.Page,
		Limit: p.Limit,
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(p.Limit))),
	}
}

// Window returns the [lo, hi) slice bounds of this page within an
// in-memory result set of length n.
func (p Pagination) Window(n int) (int, int) {
	lo := p.Offset()
	if lo > n {
		lo = n
	}
	hi := lo + p.Limit
	if hi > n {
		hi = n
	}
	return lo, hi
}

type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// Sort carries an allow-listed sort key and direction. Keys arrive in the
// API's camelCase form and are already vetted by the binding layer.
type Sort struct {
	Key   string
	Order SortOrder
}

func NewSort(key, order string) Sort {
	s := Sort{Key: key, Order: SortOrder(order)}
	if s.Order != Desc {
		s.Order = Asc
	}
	return s
}

// Derived reports whether the key is a computed aggregate rather than a
// stored column. Derived keys cannot be pushed into SQL ordering: the full
// candidate set is aggregated first, then sorted and paginated in memory.
func (s Sort) Derived() bool {
	return s.Key == "rating"
}

// Column maps the API sort key to its SQL column.
func (s Sort) Column() string {
	switch s.Key {
	case "createdAt":
		return "created_at"
	case "updatedAt":
		return "updated_at"
	default:
		return s.Key
	}
}

// Clause renders the ORDER BY fragment for stored-column sorts.
func (s Sort) Clause() string {
	dir := "asc"
	if s.Order == Desc {
		dir = "desc"
	}
	return s.Column() + " " + dir
}

// UserFilter narrows the admin user listing. Substring filters are
// case-insensitive; nil/empty fields impose no constraint. MinRating is a
// threshold on the owned store's average and is applied after aggregation,
// never at the storage layer.
type UserFilter struct {
	Name      string
	Email     string
	Address   string
	Role      string
	MinRating *float64
}

// StoreFilter narrows store listings.
type StoreFilter struct {
	Name    string
	Email   string
	Address string
}
