package filter

import (
	"fmt"

	"servicecatalog/internal/catalog/models"
	dErrors "servicecatalog/pkg/domain-errors"
)

// PageRequest is a 1-based page selection. Page 0 means the first page and
// size 0 means the configured default.
type PageRequest struct {
	Page int
	Size int
}

// Normalize applies defaults and bounds.
func (p PageRequest) Normalize(defaultSize, maxSize int) (PageRequest, error) {
	if p.Page < 0 {
		return p, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("page must not be negative, got %d", p.Page))
	}
	if p.Size < 0 {
		return p, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("page size must not be negative, got %d", p.Size))
	}
	if p.Page == 0 {
		p.Page = 1
	}
	if p.Size == 0 {
		p.Size = defaultSize
	}
	if maxSize > 0 && p.Size > maxSize {
		return p, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("page size must not exceed %d, got %d", maxSize, p.Size))
	}
	return p, nil
}

// Paginate slices items. Pages past the end are empty but still report the
// real page count.
func Paginate[T any](items []T, req PageRequest) models.PagedResult[T] {
	size := max(req.Size, 1)
	page := max(req.Page, 1)

	total := len(items)
	count := total / size
	if total%size != 0 {
		count++
	}
	res := models.PagedResult[T]{
		Items:      []T{},
		Page:       page,
		PageSize:   size,
		PageCount:  count,
		TotalCount: total,
	}
	// Compared before multiplying so huge page numbers cannot wrap.
	if page > count {
		return res
	}
	start := (page - 1) * size
	end := start + min(size, total-start)
	res.Items = append(res.Items, items[start:end]...)
	return res
}
