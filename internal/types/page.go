package types

import "github.com/plateful/recipebook/internal/model"

// Page is the paginated list envelope. Total counts every record matching
// the filter predicate before the page window is applied.
type Page struct {
	Data        []model.Recipe `json:"data"`
	CurrentPage int            `json:"current_page"`
	LastPage    int            `json:"last_page"`
	PerPage     int            `json:"per_page"`
	Total       int64          `json:"total"`
}

// NewPage assembles pagination metadata for a page of records. A request past
// the last page yields an empty Data slice with Total unchanged.
func NewPage(data []model.Recipe, q ListQuery, total int64) Page {
	lastPage := int((total + int64(q.PerPage) - 1) / int64(q.PerPage))
	if lastPage < 1 {
		lastPage = 1
	}
	if data == nil {
		data = []model.Recipe{}
	}
	return Page{
		Data:        data,
		CurrentPage: q.Page,
		LastPage:    lastPage,
		PerPage:     q.PerPage,
		Total:       total,
	}
}
