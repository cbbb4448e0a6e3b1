package helpers

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/libraria/libraria/internal/app/models/dto"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1 // pages are 1-based

	// DefaultSort is applied when the caller specifies no sort criteria
	DefaultSort = "id,asc"
)

// CalculateOffsetLimit converts a 1-based page number and size into the
// offset and limit for SQL queries.
func CalculateOffsetLimit(page, size int) (offset uint64, limit int) {
	if size <= 0 || size > MaxPageSize {
		limit = DefaultPageSize
	} else {
		limit = size
	}

	if page < 1 {
		page = DefaultPage
	}

	offset = uint64((page - 1) * limit)
	return offset, limit
}

// NewPage wraps an already-computed page of results with its metadata.
// It performs no filtering or mutation; totalPages is ceil(total/size) and
// zero when the result set is empty.
func NewPage(content interface{}, totalElements int64, page, size int, sort string) dto.Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}
	if sort == "" {
		sort = DefaultSort
	}

	totalPages := 0
	if totalElements > 0 {
		totalPages = int(math.Ceil(float64(totalElements) / float64(size)))
	}

	return dto.Page{
		Content:       content,
		PageNumber:    page,
		PageSize:      size,
		TotalElements: totalElements,
		TotalPages:    totalPages,
		Sort:          sort,
	}
}

// ParsePaginationParams extracts page, size and sort query parameters from
// the request, falling back to defaults on missing or invalid values.
func ParsePaginationParams(c *gin.Context) (page, size int, sort string) {
	pageStr := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = DefaultPage
	}

	sizeStr := c.DefaultQuery("size", "10")
	size, err = strconv.Atoi(sizeStr)
	if err != nil || size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}

	sort = strings.TrimSpace(c.DefaultQuery("sort", DefaultSort))
	if sort == "" {
		sort = DefaultSort
	}

	return page, size, sort
}
