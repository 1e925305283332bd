package sources

import (
	"context"

	"github.com/kerbaras/countries/pkg/data"
)

type Source interface {
	All(ctx context.Context) ([]data.Country, error)
	ByCode(ctx context.Context, code string) (*data.Country, error)
	ByCodes(ctx context.Context, codes []string) ([]data.Country, error)
}
