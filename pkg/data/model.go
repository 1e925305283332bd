package data

import (
	"fmt"
	"sort"
)

type Country struct {
	CCA3       string              `json:"cca3"`
	Name       CountryName         `json:"name"`
	Flags      Flags               `json:"flags"`
	Capital    []string            `json:"capital"`
	Population int64               `json:"population"`
	Region     string              `json:"region"`
	Subregion  string              `json:"subregion"`
	Languages  map[string]string   `json:"languages"`
	Currencies map[string]Currency `json:"currencies"`
	Timezones  []string            `json:"timezones"`
	Area       float64             `json:"area"`
	Continents []string            `json:"continents"`
	Borders    []string            `json:"borders"`
	Maps       Maps                `json:"maps"`
}

type CountryName struct {
	Common   string `json:"common"`
	Official string `json:"official"`
}

type Flags struct {
	PNG string `json:"png"`
	SVG string `json:"svg"`
	Alt string `json:"alt"`
}

type Currency struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

type Maps struct {
	GoogleMaps     string `json:"googleMaps"`
	OpenStreetMaps string `json:"openStreetMaps"`
}

// LanguageNames returns the language names ordered by their ISO key.
func (c *Country) LanguageNames() []string {
	keys := make([]string, 0, len(c.Languages))
	for k := range c.Languages {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = c.Languages[k]
	}
	return names
}

// CurrencyLabels returns "Name (Symbol)" labels ordered by currency code.
func (c *Country) CurrencyLabels() []string {
	keys := make([]string, 0, len(c.Currencies))
	for k := range c.Currencies {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	labels := make([]string, len(keys))
	for i, k := range keys {
		cur := c.Currencies[k]
		labels[i] = fmt.Sprintf("%s (%s)", cur.Name, cur.Symbol)
	}
	return labels
}

// FlagURL prefers the PNG rendition since terminals and EPUB readers can't use SVG.
func (c *Country) FlagURL() string {
	if c.Flags.PNG != "" {
		return c.Flags.PNG
	}
	return c.Flags.SVG
}
