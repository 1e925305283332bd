package sources

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kerbaras/countries/pkg/data"
	"github.com/kerbaras/countries/pkg/utils"
)

const DefaultBaseURL = "https://restcountries.com/v3.1"

// ListFields is the subset requested by All. The API caps /all at ten fields, so
// detail-only attributes (area, timezones, currencies, maps) come from ByCode.
var ListFields = []string{
	"cca3", "name", "capital", "region", "subregion",
	"population", "flags", "languages", "continents", "borders",
}

type RestCountries struct {
	api *utils.API
}

func NewRestCountries(baseURL string, timeout time.Duration) *RestCountries {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &RestCountries{api: utils.NewAPI(strings.TrimRight(baseURL, "/"), timeout)}
}

func NewRestCountriesWithAPI(api *utils.API) *RestCountries {
	return &RestCountries{api: api}
}

func (r *RestCountries) get(ctx context.Context, op, path string, params url.Values, v any) error {
	if err := r.api.Get(ctx, path, params, v); err != nil {
		return newRequestError(op, r.api.URL(path, params), err)
	}
	return nil
}

func (r *RestCountries) All(ctx context.Context) ([]data.Country, error) {
	params := url.Values{"fields": {strings.Join(ListFields, ",")}}
	var countries []data.Country
	if err := r.get(ctx, "list countries", "/all", params, &countries); err != nil {
		return nil, err
	}
	return countries, nil
}

func (r *RestCountries) ByCode(ctx context.Context, code string) (*data.Country, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("country code cannot be empty")
	}

	path := fmt.Sprintf("/alpha/%s", url.PathEscape(code))
	var countries []data.Country
	if err := r.get(ctx, "get country", path, nil, &countries); err != nil {
		return nil, err
	}
	if len(countries) == 0 {
		return nil, &RequestError{Op: "get country", URL: r.api.URL(path, nil), StatusCode: 404, Err: ErrNotFound}
	}
	return &countries[0], nil
}

func (r *RestCountries) ByCodes(ctx context.Context, codes []string) ([]data.Country, error) {
	if len(codes) == 0 {
		return []data.Country{}, nil
	}

	params := url.Values{"codes": {strings.Join(codes, ",")}}
	var countries []data.Country
	if err := r.get(ctx, "get countries", "/alpha", params, &countries); err != nil {
		return nil, err
	}
	return countries, nil
}
