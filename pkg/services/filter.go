package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/kerbaras/countries/pkg/data"
)

// Regions are the choices offered by the region filter.
var Regions = []string{"Africa", "Americas", "Asia", "Europe", "Oceania", "Antarctic"}

type Criteria struct {
	Search string
	Region string
}

func (c Criteria) IsEmpty() bool {
	return c.Search == "" && c.Region == ""
}

// Encode renders the criteria as a shareable query string. Empty fields are omitted.
func (c Criteria) Encode() string {
	params := url.Values{}
	if c.Search != "" {
		params.Set("search", c.Search)
	}
	if c.Region != "" {
		params.Set("region", c.Region)
	}
	return params.Encode()
}

// ParseCriteria reads a query string produced by Encode; a leading "?" is allowed.
func ParseCriteria(query string) (Criteria, error) {
	params, err := url.ParseQuery(strings.TrimPrefix(strings.TrimSpace(query), "?"))
	if err != nil {
		return Criteria{}, fmt.Errorf("invalid query %q: %w", query, err)
	}
	return Criteria{
		Search: params.Get("search"),
		Region: params.Get("region"),
	}, nil
}

// Matches reports whether country passes both predicates: the search term, taken
// as typed, is contained (case-insensitively) in the common name, the official name
// or a capital, and the region is equal (case-sensitively).
func Matches(country data.Country, c Criteria) bool {
	if c.Region != "" && country.Region != c.Region {
		return false
	}

	if c.Search == "" {
		return true
	}
	term := strings.ToLower(c.Search)

	if strings.Contains(strings.ToLower(country.Name.Common), term) ||
		strings.Contains(strings.ToLower(country.Name.Official), term) {
		return true
	}
	for _, capital := range country.Capital {
		if strings.Contains(strings.ToLower(capital), term) {
			return true
		}
	}
	return false
}

// Filter keeps the catalog order of matching countries.
func Filter(catalog []data.Country, c Criteria) []data.Country {
	out := make([]data.Country, 0, len(catalog))
	for _, country := range catalog {
		if Matches(country, c) {
			out = append(out, country)
		}
	}
	return out
}
