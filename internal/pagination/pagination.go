// Package pagination pages ledger listings. A page is always read in a
// stable column order so that entries sharing a date keep their place
// between requests.
package pagination

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// PageRequest holds paging parameters parsed from query strings. Order is
// "asc" or "desc"; empty means the listing's natural order.
type PageRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=200"`
	Order    string `form:"order" binding:"omitempty,oneof=asc desc"`
}

// Defaults fills in the first page and the default size.
func (p *PageRequest) Defaults() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

// Offset returns the SQL OFFSET for the current page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Descending resolves the requested direction against the listing's
// natural one.
func (p PageRequest) Descending(natural bool) bool {
	switch p.Order {
	case "asc":
		return false
	case "desc":
		return true
	}
	return natural
}

// PageResponse wraps one page of rows with paging metadata.
type PageResponse[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// NewPageResponse builds a PageResponse. Data is never null in JSON.
func NewPageResponse[T any](data []T, page, pageSize int, totalItems int64) PageResponse[T] {
	if data == nil {
		data = []T{}
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((totalItems + int64(pageSize) - 1) / int64(pageSize))
	}
	return PageResponse[T]{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// Paginate returns a GORM scope that orders by columns of the queried table
// and applies OFFSET and LIMIT. natural is the direction used when the
// request names none.
func Paginate(req PageRequest, natural bool, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		desc := req.Descending(natural)
		for _, column := range columns {
			db = db.Order(clause.OrderByColumn{
				Column: clause.Column{Table: clause.CurrentTable, Name: column},
				Desc:   desc,
			})
		}
		return db.Offset(req.Offset()).Limit(req.PageSize)
	}
}
