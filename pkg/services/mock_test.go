package services

import (
	"context"
	"strings"
	"sync"

	"github.com/kerbaras/countries/pkg/data"
	"github.com/kerbaras/countries/pkg/sources"
)

// mockSource implements sources.Source for testing
type mockSource struct {
	mu sync.Mutex

	allFunc     func(ctx context.Context) ([]data.Country, error)
	byCodeFunc  func(ctx context.Context, code string) (*data.Country, error)
	byCodesFunc func(ctx context.Context, codes []string) ([]data.Country, error)

	allCalls     int
	byCodeCalls  int
	byCodesCalls [][]string
}

func (m *mockSource) All(ctx context.Context) ([]data.Country, error) {
	m.mu.Lock()
	m.allCalls++
	m.mu.Unlock()
	if m.allFunc != nil {
		return m.allFunc(ctx)
	}
	return nil, nil
}

func (m *mockSource) ByCode(ctx context.Context, code string) (*data.Country, error) {
	m.mu.Lock()
	m.byCodeCalls++
	m.mu.Unlock()
	if m.byCodeFunc != nil {
		return m.byCodeFunc(ctx, code)
	}
	return nil, nil
}

func (m *mockSource) ByCodes(ctx context.Context, codes []string) ([]data.Country, error) {
	m.mu.Lock()
	m.byCodesCalls = append(m.byCodesCalls, codes)
	m.mu.Unlock()
	if m.byCodesFunc != nil {
		return m.byCodesFunc(ctx, codes)
	}
	return nil, nil
}

// fixedSource answers every call from a fixed set of countries.
func fixedSource(countries ...data.Country) *mockSource {
	byCode := map[string]data.Country{}
	for _, c := range countries {
		byCode[c.CCA3] = c
	}
	return &mockSource{
		allFunc: func(ctx context.Context) ([]data.Country, error) {
			out := make([]data.Country, len(countries))
			copy(out, countries)
			return out, nil
		},
		byCodeFunc: func(ctx context.Context, code string) (*data.Country, error) {
			c, ok := byCode[strings.ToUpper(code)]
			if !ok {
				return nil, sources.ErrNotFound
			}
			return &c, nil
		},
		byCodesFunc: func(ctx context.Context, codes []string) ([]data.Country, error) {
			var out []data.Country
			for _, code := range codes {
				if c, ok := byCode[strings.ToUpper(code)]; ok {
					out = append(out, c)
				}
			}
			return out, nil
		},
	}
}

type memoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{values: map[string]string{}}
}

func (m *memoryStorage) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memoryStorage) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func newCountry(code, name, region string, population int64, borders ...string) data.Country {
	return data.Country{
		CCA3:       code,
		Name:       data.CountryName{Common: name, Official: name},
		Region:     region,
		Population: population,
		Borders:    borders,
	}
}
