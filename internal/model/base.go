package model

// Pagination represents common pagination parameters
type Pagination struct {
	Page     int `json:"page" form:"page"`
	PageSize int `json:"page_size" form:"page_size"`
}

// Offset returns the row offset for the current page.
func (p Pagination) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// CategoryCount is a single bucket of a count-by-category breakdown.
type CategoryCount struct {
	Name  string `json:"name" db:"name"`
	Value int    `json:"value" db:"value"`
}
