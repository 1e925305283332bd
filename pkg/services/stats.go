package services

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/kerbaras/countries/pkg/data"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type RegionCount struct {
	Region string
	Count  int
}

// RegionCounts tallies countries per region, largest first.
func RegionCounts(countries []data.Country) []RegionCount {
	counts := map[string]int{}
	for _, c := range countries {
		if c.Region != "" {
			counts[c.Region]++
		}
	}

	out := make([]RegionCount, 0, len(counts))
	for region, n := range counts {
		out = append(out, RegionCount{Region: region, Count: n})
	}
	slices.SortFunc(out, func(a, b RegionCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Region, b.Region)
	})
	return out
}

func sortByPopulation(countries []data.Country) []data.Country {
	sorted := slices.Clone(countries)
	slices.SortStableFunc(sorted, func(a, b data.Country) int {
		switch {
		case a.Population > b.Population:
			return -1
		case a.Population < b.Population:
			return 1
		}
		return 0
	})
	return sorted
}

func TopByPopulation(countries []data.Country, n int) []data.Country {
	sorted := sortByPopulation(countries)
	n = max(n, 0)
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

type PopulationEntry struct {
	Name       string
	Population int64
	Current    bool
}

// PopulationComparison puts a country next to the four most populous ones. The
// country is appended when it isn't already among them.
func PopulationComparison(countries []data.Country, code string) []PopulationEntry {
	sorted := sortByPopulation(countries)
	top := sorted[:min(4, len(sorted))]

	entries := make([]PopulationEntry, 0, 5)
	found := false
	for _, c := range top {
		current := strings.EqualFold(c.CCA3, code)
		found = found || current
		entries = append(entries, PopulationEntry{Name: c.Name.Common, Population: c.Population, Current: current})
	}

	if !found {
		for _, c := range sorted {
			if strings.EqualFold(c.CCA3, code) {
				entries = append(entries, PopulationEntry{Name: c.Name.Common, Population: c.Population, Current: true})
				break
			}
		}
	}
	return entries
}

// FormatCompact renders 1.2B / 3.4M / 5.6K style labels.
func FormatCompact(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000)
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	}
	return fmt.Sprintf("%d", n)
}

// FormatNumber groups thousands, e.g. 67,391,582.
func FormatNumber(n int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

// FormatArea rounds to whole square kilometres.
func FormatArea(km2 float64) string {
	return FormatNumber(int64(math.Round(km2))) + " km²"
}
