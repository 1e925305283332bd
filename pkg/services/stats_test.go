package services

import (
	"testing"

	"github.com/kerbaras/countries/pkg/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsCatalog() []data.Country {
	return []data.Country{
		newCountry("CHN", "China", "Asia", 1402112000),
		newCountry("IND", "India", "Asia", 1380004385),
		newCountry("USA", "United States", "Americas", 329484123),
		newCountry("IDN", "Indonesia", "Asia", 273523621),
		newCountry("PAK", "Pakistan", "Asia", 220892331),
		newCountry("FRA", "France", "Europe", 67391582),
		newCountry("DEU", "Germany", "Europe", 83240525),
		newCountry("ATA", "Antarctica", "Antarctic", 1000),
		newCountry("XXX", "Nowhere", "", 5),
	}
}

func TestRegionCounts(t *testing.T) {
	counts := RegionCounts(statsCatalog())
	assert.Equal(t, []RegionCount{
		{Region: "Asia", Count: 4},
		{Region: "Europe", Count: 2},
		{Region: "Americas", Count: 1},
		{Region: "Antarctic", Count: 1},
	}, counts)
}

func TestTopByPopulation(t *testing.T) {
	catalog := statsCatalog()

	top := TopByPopulation(catalog, 3)
	assert.Equal(t, []string{"China", "India", "United States"}, names(top))
	assert.Equal(t, "China", catalog[0].Name.Common)

	assert.Len(t, TopByPopulation(catalog, 100), len(catalog))
}

func TestPopulationComparison(t *testing.T) {
	entries := PopulationComparison(statsCatalog(), "fra")
	require.Len(t, entries, 5)
	assert.Equal(t, "China", entries[0].Name)
	assert.False(t, entries[0].Current)
	assert.Equal(t, PopulationEntry{Name: "France", Population: 67391582, Current: true}, entries[4])

	entries = PopulationComparison(statsCatalog(), "IND")
	require.Len(t, entries, 4)
	assert.True(t, entries[1].Current)

	assert.Empty(t, PopulationComparison(nil, "FRA"))
}

func TestFormatCompact(t *testing.T) {
	tests := map[int64]string{
		1402112000: "1.4B",
		67391582:   "67.4M",
		38928:      "38.9K",
		999:        "999",
		0:          "0",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatCompact(in))
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "67,391,582", FormatNumber(67391582))
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "551,695 km²", FormatArea(551695.2))
}
