package listing

import (
	"github.com/talentflow/ats/internal/domain/models"
)

// Paginate returns the requested 1-based page of items. A page past the end
// is empty but still reports the real totals.
func Paginate[T any](items []T, page, pageSize int) ([]T, models.PageInfo) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	info := models.PageInfo{
		TotalCount:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}

	start := (page - 1) * pageSize
	if start >= total {
		return []T{}, info
	}
	end := min(start+pageSize, total)

	pageItems := make([]T, end-start)
	copy(pageItems, items[start:end])
	return pageItems, info
}
