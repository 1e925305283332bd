package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kerbaras/countries/pkg/data"
	"github.com/kerbaras/countries/pkg/sources"
)

var (
	ErrPrimaryFetch = errors.New("failed to fetch country")
	ErrBorderFetch  = errors.New("failed to fetch border countries")
)

// ResolveError tells which of the two requests failed.
type ResolveError struct {
	Kind error
	Code string
	Err  error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Code, e.Err)
}

func (e *ResolveError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

type DetailResolver struct {
	source sources.Source
}

func NewDetailResolver(source sources.Source) *DetailResolver {
	return &DetailResolver{source: source}
}

// Resolve fetches a country and, if it has any, its bordering countries in one
// batched request. When only the border request fails the primary record is still
// returned together with an ErrBorderFetch error.
func (r *DetailResolver) Resolve(ctx context.Context, code string) (*data.Country, []data.Country, error) {
	country, err := r.source.ByCode(ctx, code)
	if err != nil {
		return nil, nil, &ResolveError{Kind: ErrPrimaryFetch, Code: code, Err: err}
	}

	if len(country.Borders) == 0 {
		return country, []data.Country{}, nil
	}

	borders, err := r.source.ByCodes(ctx, country.Borders)
	if err != nil {
		slog.Warn("border lookup failed", "code", country.CCA3, "error", err)
		return country, []data.Country{}, &ResolveError{Kind: ErrBorderFetch, Code: country.CCA3, Err: err}
	}

	SortByName(borders)
	return country, borders, nil
}
