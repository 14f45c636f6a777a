package types

// Filter - параметры выборки списка: поиск, фильтры, сортировка и пагинация.
type Filter struct {
	Search         string                 `json:"search,omitempty"`
	Sort           map[string]string      `json:"sort,omitempty"`
	SortOrder      []string               `json:"sort_order,omitempty"` // ключи Sort в порядке запроса
	Filter         map[string]interface{} `json:"filter,omitempty"`
	Limit          int                    `json:"limit"`
	Offset         int                    `json:"offset"`
	Page           int                    `json:"page"`
	WithPagination bool                   `json:"with_pagination"`
}

// Pagination - метаданные пагинации в ответе.
type Pagination struct {
	TotalCount uint64 `json:"total_count"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}

// http://localhost:8080/api/devices?search=iphone&sort[created_at]=desc&filter[stock_status]=in_stock,reserved&limit=20&page=1&withPagination=true
