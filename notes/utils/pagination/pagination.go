package pagination

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100

	// MaxPage keeps (page-1)*page_size within int for every page size.
	MaxPage = math.MaxInt / MaxPageSize
)

// Window is a normalized page request. Malformed or out-of-range input is
// never an error: it falls back to defaults or is clamped.
type Window struct {
	Page     int
	PageSize int
}

func FromQuery(q url.Values) Window {
	return Parse(q.Get("page"), q.Get("page_size"))
}

func Parse(rawPage, rawPageSize string) Window {
	page := parsePage(rawPage)
	size := atoiOr(rawPageSize, DefaultPageSize)
	size = max(1, min(size, MaxPageSize))
	return Window{Page: page, PageSize: size}
}

// Offset is the index of the first item on the page.
func (w Window) Offset() int {
	return (w.Page - 1) * w.PageSize
}

func (w Window) Limit() int {
	return w.PageSize
}

// Page is the response envelope for one window of results.
type Page[T any] struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
	Results  []T   `json:"results"`
}

func NewPage[T any](w Window, total int64, results []T) Page[T] {
	if results == nil {
		results = []T{}
	}
	return Page[T]{Page: w.Page, PageSize: w.PageSize, Total: total, Results: results}
}

// parsePage treats a positive page too large for int as past the end rather
// than malformed.
func parsePage(raw string) int {
	raw = strings.TrimSpace(raw)
	n, err := strconv.Atoi(raw)
	switch {
	case errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-"):
		return MaxPage
	case err != nil:
		return DefaultPage
	}
	return max(1, min(n, MaxPage))
}

func atoiOr(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return n
}
