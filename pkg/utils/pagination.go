package utils

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"
)

// PaginationParams represents pagination parameters
type PaginationParams struct {
	Page     int
	PageSize int
	Offset   int
	// Enabled is false when the caller sent no limit; listings are then returned whole.
	Enabled bool
}

// GetPaginationParams extracts pagination parameters from request
func GetPaginationParams(c echo.Context) PaginationParams {
	limitParam := c.QueryParam("limit")
	if limitParam == "" {
		return PaginationParams{}
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(limitParam)

	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	return NewPaginationParams(page, pageSize)
}

// NewPaginationParams builds params from an explicit page and limit. A non-positive limit
// disables paging.
func NewPaginationParams(page, pageSize int) PaginationParams {
	if pageSize <= 0 {
		return PaginationParams{}
	}
	if page <= 0 {
		page = 1
	}
	offset := math.MaxInt
	if page-1 <= math.MaxInt/pageSize {
		offset = (page - 1) * pageSize
	}
	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Offset:   offset,
		Enabled:  true,
	}
}

// Window returns the [start,end) slice bounds of this page over total items.
func (p PaginationParams) Window(total int) (int, int) {
	if !p.Enabled {
		return 0, total
	}
	start := p.Offset
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := total
	if p.PageSize >= 0 && p.PageSize < total-start {
		end = start + p.PageSize
	}
	return start, end
}
