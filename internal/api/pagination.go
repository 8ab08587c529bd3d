package api

import (
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/foodgram/backend/internal/types"
)

const maxPageSize = 100

// pageParams reads the 1-based page and the limit query parameters.
type pageParams struct {
	page  int
	limit int
}

func parsePage(c *gin.Context, defaultLimit int) pageParams {
	p := pageParams{page: 1, limit: defaultLimit}
	if n, err := strconv.Atoi(c.Query("page")); err == nil && n > 0 {
		p.page = n
	}
	if n, err := strconv.Atoi(c.Query("limit")); err == nil && n > 0 {
		p.limit = n
	}
	if p.limit > maxPageSize {
		p.limit = maxPageSize
	}
	return p
}

func (p pageParams) offset() int {
	return (p.page - 1) * p.limit
}

// newPage wraps results with absolute next/previous links.
func newPage[T any](c *gin.Context, p pageParams, total int64, results []T) types.Page[T] {
	if results == nil {
		results = []T{}
	}
	page := types.Page[T]{Count: total, Results: results}
	if int64(p.offset()+len(results)) < total {
		next := pageURL(c, p.page+1)
		page.Next = &next
	}
	if p.page > 1 {
		prev := pageURL(c, p.page-1)
		page.Previous = &prev
	}
	return page
}

func pageURL(c *gin.Context, page int) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	q := c.Request.URL.Query()
	if page == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u := url.URL{Scheme: scheme, Host: c.Request.Host, Path: c.Request.URL.Path, RawQuery: q.Encode()}
	return u.String()
}
