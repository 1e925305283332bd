package services

import (
	"fmt"
	"testing"

	"github.com/kerbaras/countries/pkg/data"
	"github.com/stretchr/testify/assert"
)

func makeCountries(n int) []data.Country {
	out := make([]data.Country, n)
	for i := range out {
		out[i] = newCountry(fmt.Sprintf("C%02d", i), fmt.Sprintf("Country %02d", i), "Europe", int64(i))
	}
	return out
}

func TestVisibleSlice(t *testing.T) {
	countries := makeCountries(30)

	assert.Len(t, VisibleSlice(countries, 1, PageSize), 24)
	assert.True(t, HasMore(len(countries), 1, PageSize))

	assert.Len(t, VisibleSlice(countries, 2, PageSize), 30)
	assert.False(t, HasMore(len(countries), 2, PageSize))

	assert.Empty(t, VisibleSlice(nil, 1, PageSize))
	assert.False(t, HasMore(0, 1, PageSize))
}

func TestVisibleSliceIsPrefix(t *testing.T) {
	countries := makeCountries(50)
	visible := VisibleSlice(countries, 2, PageSize)
	assert.Equal(t, countries[:48], visible)
}

func TestPaginatorLoadMore(t *testing.T) {
	countries := makeCountries(30)
	p := NewPaginator(PageSize)
	p.Reset(len(countries))

	assert.Equal(t, 1, p.Page())
	assert.True(t, p.HasMore())
	assert.Len(t, p.Visible(countries), 24)

	assert.True(t, p.LoadMore())
	assert.Equal(t, 2, p.Page())
	assert.False(t, p.HasMore())
	assert.Len(t, p.Visible(countries), 30)

	assert.False(t, p.LoadMore())
	assert.Equal(t, 2, p.Page())
}

func TestPaginatorHasMoreMatchesVisible(t *testing.T) {
	for _, total := range []int{0, 1, 23, 24, 25, 48, 49, 250} {
		countries := makeCountries(total)
		p := NewPaginator(0)
		p.Reset(total)
		for {
			assert.Equal(t, len(p.Visible(countries)) < total, p.HasMore(), "total=%d page=%d", total, p.Page())
			if !p.LoadMore() {
				break
			}
		}
		assert.Len(t, p.Visible(countries), total)
	}
}

func TestPaginatorResetReturnsToFirstPage(t *testing.T) {
	p := NewPaginator(PageSize)
	p.Reset(100)
	p.LoadMore()
	p.LoadMore()

	p.Reset(10)
	assert.Equal(t, 1, p.Page())
	assert.False(t, p.HasMore())
	assert.Equal(t, PageSize, p.PageSize())
}
