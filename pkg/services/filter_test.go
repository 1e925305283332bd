package services

import (
	"testing"

	"github.com/kerbaras/countries/pkg/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterCatalog() []data.Country {
	usa := newCountry("USA", "United States", "Americas", 329484123)
	usa.Name.Official = "United States of America"
	usa.Capital = []string{"Washington, D.C."}

	gbr := newCountry("GBR", "United Kingdom", "Europe", 67215293)
	gbr.Name.Official = "United Kingdom of Great Britain and Northern Ireland"
	gbr.Capital = []string{"London"}

	fra := newCountry("FRA", "France", "Europe", 67391582)
	fra.Name.Official = "French Republic"
	fra.Capital = []string{"Paris"}

	zaf := newCountry("ZAF", "South Africa", "Africa", 59308690)
	zaf.Capital = []string{"Pretoria", "Bloemfontein", "Cape Town"}

	tza := newCountry("TZA", "Tanzania", "Africa", 59734213)
	tza.Name.Official = "United Republic of Tanzania"
	tza.Capital = []string{"Dodoma"}

	return []data.Country{fra, zaf, tza, gbr, usa}
}

func TestFilterSearchAcrossNames(t *testing.T) {
	got := Filter(filterCatalog(), Criteria{Search: "uni"})
	assert.Equal(t, []string{"Tanzania", "United Kingdom", "United States"}, names(got))
}

func TestFilterSearchCapitals(t *testing.T) {
	assert.Equal(t, []string{"South Africa"}, names(Filter(filterCatalog(), Criteria{Search: "cape"})))
	assert.Equal(t, []string{"France"}, names(Filter(filterCatalog(), Criteria{Search: "PARIS"})))
}

func TestFilterUsesTermAsTyped(t *testing.T) {
	assert.Empty(t, Filter(filterCatalog(), Criteria{Search: "   "}), "whitespace is part of the term")
	assert.Empty(t, Filter(filterCatalog(), Criteria{Search: " uni"}))
	assert.Equal(t, []string{"South Africa"}, names(Filter(filterCatalog(), Criteria{Search: "h a"})))
	assert.Equal(t, []string{"South Africa"}, names(Filter(filterCatalog(), Criteria{Search: " town"})))
}

func TestFilterRegion(t *testing.T) {
	got := Filter(filterCatalog(), Criteria{Search: "uni", Region: "Europe"})
	assert.Equal(t, []string{"United Kingdom"}, names(got))

	assert.Empty(t, Filter(filterCatalog(), Criteria{Region: "europe"}), "region match is case-sensitive")
}

func TestFilterEmptyCriteriaKeepsEverything(t *testing.T) {
	catalog := filterCatalog()
	assert.Equal(t, catalog, Filter(catalog, Criteria{}))
}

func TestFilterIsSoundAndComplete(t *testing.T) {
	catalog := filterCatalog()
	for _, criteria := range []Criteria{
		{Search: "a"},
		{Search: "re", Region: "Africa"},
		{Region: "Americas"},
		{Search: "zzz"},
	} {
		got := Filter(catalog, criteria)
		for _, c := range got {
			assert.True(t, Matches(c, criteria), "%s should match %+v", c.CCA3, criteria)
		}
		kept := map[string]bool{}
		for _, c := range got {
			kept[c.CCA3] = true
		}
		for _, c := range catalog {
			if !kept[c.CCA3] {
				assert.False(t, Matches(c, criteria), "%s should be dropped for %+v", c.CCA3, criteria)
			}
		}
	}
}

func TestCriteriaEncodeRoundTrip(t *testing.T) {
	criteria := Criteria{Search: "south africa", Region: "Africa"}

	query := criteria.Encode()
	assert.Equal(t, "region=Africa&search=south+africa", query)

	parsed, err := ParseCriteria("?" + query)
	require.NoError(t, err)
	assert.Equal(t, criteria, parsed)
}

func TestCriteriaEncodeOmitsEmpty(t *testing.T) {
	assert.Equal(t, "", Criteria{}.Encode())
	assert.Equal(t, "region=Asia", Criteria{Region: "Asia"}.Encode())
	assert.True(t, Criteria{}.IsEmpty())
	assert.False(t, Criteria{Search: " "}.IsEmpty())
	assert.False(t, Criteria{Region: "Asia"}.IsEmpty())

	parsed, err := ParseCriteria("")
	require.NoError(t, err)
	assert.True(t, parsed.IsEmpty())
}

func TestCriteriaKeepsSurroundingSpaces(t *testing.T) {
	criteria := Criteria{Search: " uni"}
	assert.Equal(t, "search=+uni", criteria.Encode())

	parsed, err := ParseCriteria(criteria.Encode())
	require.NoError(t, err)
	assert.Equal(t, criteria, parsed)
}

func TestParseCriteriaInvalid(t *testing.T) {
	_, err := ParseCriteria("search=%zz")
	assert.Error(t, err)
}
