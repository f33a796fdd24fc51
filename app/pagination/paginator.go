// Package pagination splits an ordered result set into fixed-size pages.
package pagination

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

var (
	ErrPageNotAnInteger = errors.New("page number is not an integer")
	ErrEmptyPage        = errors.New("page number is out of range")
)

// Paginator describes Count items split into pages of PerPage.
type Paginator struct {
	Count   int
	PerPage int
}

// New returns a Paginator. A non-positive perPage is treated as 1.
func New(count, perPage int) *Paginator {
	if perPage < 1 {
		perPage = 1
	}
	if count < 0 {
		count = 0
	}
	return &Paginator{Count: count, PerPage: perPage}
}

// NumPages is the number of pages. An empty set still has one (empty) page.
func (p *Paginator) NumPages() int {
	if p.Count == 0 {
		return 1
	}
	return (p.Count + p.PerPage - 1) / p.PerPage
}

// ParseNumber parses a raw page parameter.
func ParseNumber(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, ErrPageNotAnInteger
	}
	return n, nil
}

// Page returns page number n or ErrEmptyPage when n is out of range.
func (p *Paginator) Page(n int) (Page, error) {
	if n < 1 || n > p.NumPages() {
		return Page{}, ErrEmptyPage
	}
	return Page{Number: n, NumPages: p.NumPages(), PerPage: p.PerPage, Count: p.Count}, nil
}

// GetPage resolves a raw page parameter without failing: a missing or
// non-integer value gives the first page and any out-of-range value gives
// the last page.
func (p *Paginator) GetPage(raw string) Page {
	n, err := ParseNumber(raw)
	if err != nil {
		n = 1
	}
	page, err := p.Page(n)
	if errors.Is(err, ErrEmptyPage) {
		page, _ = p.Page(p.NumPages())
	}
	return page
}

// Page is one page of results.
type Page struct {
	Number   int
	NumPages int
	PerPage  int
	Count    int
}

func (pg Page) HasNext() bool     { return pg.Number < pg.NumPages }
func (pg Page) HasPrevious() bool { return pg.Number > 1 }
func (pg Page) HasOtherPages() bool {
	return pg.HasNext() || pg.HasPrevious()
}

func (pg Page) NextPageNumber() int {
	if !pg.HasNext() {
		return pg.Number
	}
	return pg.Number + 1
}

func (pg Page) PreviousPageNumber() int {
	if !pg.HasPrevious() {
		return pg.Number
	}
	return pg.Number - 1
}

// Offset is the zero-based index of the first item on the page.
func (pg Page) Offset() int {
	return (pg.Number - 1) * pg.PerPage
}

// StartIndex is the 1-based index of the first item, 0 for an empty set.
func (pg Page) StartIndex() int {
	if pg.Count == 0 {
		return 0
	}
	return pg.Offset() + 1
}

// EndIndex is the 1-based index of the last item on the page.
func (pg Page) EndIndex() int {
	end := pg.Offset() + pg.PerPage
	if end > pg.Count {
		end = pg.Count
	}
	return end
}

func (pg Page) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Number      int  `json:"number"`
		NumPages    int  `json:"num_pages"`
		PerPage     int  `json:"per_page"`
		Count       int  `json:"count"`
		HasNext     bool `json:"has_next"`
		HasPrevious bool `json:"has_previous"`
	}{
		Number:      pg.Number,
		NumPages:    pg.NumPages,
		PerPage:     pg.PerPage,
		Count:       pg.Count,
		HasNext:     pg.HasNext(),
		HasPrevious: pg.HasPrevious(),
	})
}
