package helpers

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/medhashaala/erp/internal/app/models/dto"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	DefaultPage     = 1
)

// PageParams reads the 1-based page and page_size query parameters,
// clamping them to sane bounds.
func PageParams(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	if page < 1 {
		page = DefaultPage
	}
	size, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(DefaultPageSize)))
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return page, size
}

// OffsetLimit converts a 1-based page and size to SQL offset and limit.
func OffsetLimit(page, size int) (offset uint64, limit uint64) {
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}
	return uint64((page - 1) * size), uint64(size)
}

// NewPagedResponse wraps results in the list envelope, deriving next and
// previous page links from the request URL.
func NewPagedResponse(c *gin.Context, count int64, page, size int, results interface{}) dto.PagedResponse {
	resp := dto.PagedResponse{
		Count:   count,
		Results: results,
	}

	if int64(page*size) < count {
		next := pageURL(c, page+1)
		resp.Next = &next
	}
	if page > 1 {
		prev := pageURL(c, page-1)
		resp.Previous = &prev
	}
	return resp
}

func pageURL(c *gin.Context, page int) string {
	u := *c.Request.URL
	q, _ := url.ParseQuery(u.RawQuery)
	q.Set("page", fmt.Sprintf("%d", page))
	u.RawQuery = q.Encode()
	return u.String()
}
