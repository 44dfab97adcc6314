package pagination

import (
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
)

const DefaultPageSize = 6

// PageSize resolves the requested ?limit= value. Anything that does
// not parse as a positive integer silently falls back to def.
func PageSize(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// Page resolves the requested ?page= value, 1-based.
func Page(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Params carries the resolved paging window for repository queries.
type Params struct {
	Page  int
	Limit int
}

func (p Params) Offset() int { return (p.Page - 1) * p.Limit }

// FromRequest reads page/limit query parameters off the gin context.
func FromRequest(c *gin.Context) Params {
	return Params{
		Page:  Page(c.Query("page")),
		Limit: PageSize(c.Query("limit"), DefaultPageSize),
	}
}

// Envelope is the list payload shape: total count plus absolute links
// to the neighbouring pages, null at the edges.
type Envelope struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// Paginate builds the envelope for one page of results. baseURL is the
// absolute URL of the list endpoint without query parameters; query is
// the request's query string, carried into next/previous so filters
// survive page navigation.
func Paginate(baseURL string, query url.Values, p Params, count int64, results interface{}) Envelope {
	env := Envelope{Count: count, Results: results}

	lastPage := int((count + int64(p.Limit) - 1) / int64(p.Limit))
	if p.Page < lastPage {
		next := pageURL(baseURL, query, p.Page+1, p.Limit)
		env.Next = &next
	}
	if p.Page > 1 {
		prev := pageURL(baseURL, query, p.Page-1, p.Limit)
		env.Previous = &prev
	}
	return env
}

func pageURL(baseURL string, query url.Values, page, limit int) string {
	q := url.Values{}
	for k, vs := range query {
		q[k] = append([]string(nil), vs...)
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return baseURL + "?" + q.Encode()
}
