package pagination

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumPages(t *testing.T) {
	tests := []struct {
		count, perPage, want int
	}{
		{0, 3, 1},
		{1, 3, 1},
		{3, 3, 1},
		{4, 3, 2},
		{7, 3, 3},
		{5, 0, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, New(tt.count, tt.perPage).NumPages(), "count=%d perPage=%d", tt.count, tt.perPage)
	}
}

func TestPageOutOfRange(t *testing.T) {
	p := New(7, 3)

	_, err := p.Page(0)
	assert.ErrorIs(t, err, ErrEmptyPage)
	_, err = p.Page(4)
	assert.ErrorIs(t, err, ErrEmptyPage)

	page, err := p.Page(3)
	require.NoError(t, err)
	assert.Equal(t, 6, page.Offset())
	assert.Equal(t, 7, page.StartIndex())
	assert.Equal(t, 7, page.EndIndex())
}

func TestParseNumber(t *testing.T) {
	n, err := ParseNumber(" 2 ")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = ParseNumber("two")
	assert.ErrorIs(t, err, ErrPageNotAnInteger)
	_, err = ParseNumber("")
	assert.ErrorIs(t, err, ErrPageNotAnInteger)
}

func TestGetPage(t *testing.T) {
	p := New(7, 3)
	tests := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"abc", 1},
		{"1", 1},
		{"2", 2},
		{"3", 3},
		{"99", 3},
		{"0", 3},
		{"-1", 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.GetPage(tt.raw).Number, "raw=%q", tt.raw)
	}
}

func TestGetPageEmptySet(t *testing.T) {
	page := New(0, 3).GetPage("5")
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 0, page.StartIndex())
	assert.Equal(t, 0, page.EndIndex())
	assert.False(t, page.HasOtherPages())
}

func TestPageNavigation(t *testing.T) {
	p := New(7, 3)

	first := p.GetPage("1")
	assert.True(t, first.HasNext())
	assert.False(t, first.HasPrevious())
	assert.Equal(t, 2, first.NextPageNumber())
	assert.Equal(t, 1, first.PreviousPageNumber())

	middle := p.GetPage("2")
	assert.True(t, middle.HasNext())
	assert.True(t, middle.HasPrevious())
	assert.Equal(t, 1, middle.PreviousPageNumber())

	last := p.GetPage("3")
	assert.False(t, last.HasNext())
	assert.Equal(t, 3, last.NextPageNumber())
}

func TestPageJSON(t *testing.T) {
	data, err := json.Marshal(New(7, 3).GetPage("2"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"number":2,"num_pages":3,"per_page":3,"count":7,"has_next":true,"has_previous":true}`, string(data))
}
