package store

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type OffsetPage struct {
	Items      interface{} `json:"items"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

// NormalizePage clamps a requested page to valid bounds. Pages start at 1.
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// Paginate slices items into the requested page. A page past the end is
// empty, not an error.
func Paginate[T any](items []T, page, pageSize int) OffsetPage {
	page, pageSize = NormalizePage(page, pageSize)

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize

	start := total
	if page-1 < (total+pageSize-1)/pageSize {
		start = (page - 1) * pageSize
	}
	end := total
	if total-start > pageSize {
		end = start + pageSize
	}

	return OffsetPage{
		Items:      append(make([]T, 0, end-start), items[start:end]...),
		Total:      int64(total),
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
