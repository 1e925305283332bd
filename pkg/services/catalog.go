package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/kerbaras/countries/pkg/data"
	"github.com/kerbaras/countries/pkg/sources"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Catalog holds the full country list for the session. It is fetched once; a failed
// fetch leaves it empty so that an explicit retry can try again. Concurrent callers
// share one in-flight request, and readers never wait on it.
type Catalog struct {
	source sources.Source
	fetch  singleflight.Group

	mu        sync.Mutex
	countries []data.Country
	byCode    map[string]int
	loaded    bool
}

func NewCatalog(source sources.Source) *Catalog {
	return &Catalog{source: source}
}

func (c *Catalog) FetchAll(ctx context.Context) ([]data.Country, error) {
	if countries, ok := c.snapshot(); ok {
		return countries, nil
	}

	v, err, _ := c.fetch.Do("all", func() (any, error) {
		if countries, ok := c.snapshot(); ok {
			return countries, nil
		}

		countries, err := c.source.All(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch countries: %w", err)
		}

		SortByName(countries)
		byCode := make(map[string]int, len(countries))
		for i, country := range countries {
			byCode[strings.ToUpper(country.CCA3)] = i
		}

		c.mu.Lock()
		c.countries = countries
		c.byCode = byCode
		c.loaded = true
		c.mu.Unlock()

		slog.Info("catalog loaded", "countries", len(countries))
		return countries, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]data.Country), nil
}

func (c *Catalog) snapshot() ([]data.Country, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.countries, c.loaded
}

func (c *Catalog) Countries() []data.Country {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.countries
}

func (c *Catalog) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

func (c *Catalog) Lookup(code string) (data.Country, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.byCode[strings.ToUpper(code)]
	if !ok {
		return data.Country{}, false
	}
	return c.countries[i], true
}

// SortByName orders countries by common name using English collation, so accented
// names sit next to their unaccented neighbours.
func SortByName(countries []data.Country) {
	col := collate.New(language.English, collate.Loose)
	slices.SortStableFunc(countries, func(a, b data.Country) int {
		return col.CompareString(a.Name.Common, b.Name.Common)
	})
}
