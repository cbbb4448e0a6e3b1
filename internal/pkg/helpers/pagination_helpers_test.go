package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	content := []string{"a", "b"}

	t.Run("total pages rounds up", func(t *testing.T) {
		// 5 elements at size 2 need 3 pages
		page := NewPage(content, 5, 1, 2, "id,asc")
		assert.Equal(t, 1, page.PageNumber)
		assert.Equal(t, 2, page.PageSize)
		assert.EqualValues(t, 5, page.TotalElements)
		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, "id,asc", page.Sort)
		assert.Equal(t, content, page.Content)
	})

	t.Run("exact division", func(t *testing.T) {
		page := NewPage(content, 10, 1, 5, "id,asc")
		assert.Equal(t, 2, page.TotalPages)
	})

	t.Run("empty result has zero pages", func(t *testing.T) {
		page := NewPage([]string{}, 0, 1, 10, "id,asc")
		assert.Equal(t, 0, page.TotalPages)
		assert.EqualValues(t, 0, page.TotalElements)
	})

	t.Run("out of range page keeps its number", func(t *testing.T) {
		// The caller asked for page 9; the envelope reports it as-is with
		// whatever (empty) content the store returned.
		page := NewPage([]string{}, 5, 9, 2, "id,asc")
		assert.Equal(t, 9, page.PageNumber)
		assert.Equal(t, 3, page.TotalPages)
	})

	t.Run("defaults for degenerate inputs", func(t *testing.T) {
		page := NewPage(content, 5, 0, 0, "")
		assert.Equal(t, DefaultPage, page.PageNumber)
		assert.Equal(t, DefaultPageSize, page.PageSize)
		assert.Equal(t, DefaultSort, page.Sort)
	})
}

func TestCalculateOffsetLimit(t *testing.T) {
	cases := []struct {
		name       string
		page, size int
		offset     uint64
		limit      int
	}{
		{"first page", 1, 10, 0, 10},
		{"third page", 3, 20, 40, 20},
		{"zero page clamps to first", 0, 10, 0, 10},
		{"zero size uses default", 2, 0, 10, DefaultPageSize},
		{"oversized size uses default", 1, 1000, 0, DefaultPageSize},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tc.page, tc.size)
			assert.Equal(t, tc.offset, offset)
			assert.Equal(t, tc.limit, limit)
		})
	}
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newContext := func(query string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/books?"+query, nil)
		return c
	}

	t.Run("explicit values", func(t *testing.T) {
		page, size, sort := ParsePaginationParams(newContext("page=3&size=25&sort=title,desc"))
		assert.Equal(t, 3, page)
		assert.Equal(t, 25, size)
		assert.Equal(t, "title,desc", sort)
	})

	t.Run("defaults", func(t *testing.T) {
		page, size, sort := ParsePaginationParams(newContext(""))
		assert.Equal(t, DefaultPage, page)
		assert.Equal(t, DefaultPageSize, size)
		assert.Equal(t, DefaultSort, sort)
	})

	t.Run("garbage falls back", func(t *testing.T) {
		page, size, sort := ParsePaginationParams(newContext("page=abc&size=-5&sort="))
		assert.Equal(t, DefaultPage, page)
		assert.Equal(t, DefaultPageSize, size)
		assert.Equal(t, DefaultSort, sort)
	})
}
