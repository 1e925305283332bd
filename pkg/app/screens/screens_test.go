package screens

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/countries/pkg/app/styles"
	"github.com/kerbaras/countries/pkg/data"
	"github.com/kerbaras/countries/pkg/services"
	"github.com/kerbaras/countries/pkg/sources"
	"github.com/kerbaras/countries/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	countries []data.Country
	release   chan struct{} // when set, All waits for it
}

func (s *stubSource) All(ctx context.Context) ([]data.Country, error) {
	if s.release != nil {
		<-s.release
	}
	out := make([]data.Country, len(s.countries))
	copy(out, s.countries)
	return out, nil
}

func (s *stubSource) ByCode(ctx context.Context, code string) (*data.Country, error) {
	for _, c := range s.countries {
		if strings.EqualFold(c.CCA3, code) {
			return &c, nil
		}
	}
	return nil, sources.ErrNotFound
}

func (s *stubSource) ByCodes(ctx context.Context, codes []string) ([]data.Country, error) {
	var out []data.Country
	for _, code := range codes {
		if c, err := s.ByCode(ctx, code); err == nil {
			out = append(out, *c)
		}
	}
	return out, nil
}

type memoryStorage map[string]string

func (m memoryStorage) Get(key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m memoryStorage) Set(key, value string) error {
	m[key] = value
	return nil
}

func (m memoryStorage) Delete(key string) error {
	delete(m, key)
	return nil
}

func newTestController(t *testing.T, countries ...data.Country) (*services.ExplorerController, memoryStorage) {
	t.Helper()
	store := memoryStorage{}
	c := services.NewExplorerControllerWithSource(&stubSource{countries: countries}, store, utils.NewAPI("", time.Second), services.ControllerConfig{
		ExportDir: t.TempDir(),
		Seed:      1,
	})
	return c, store
}

func numbered(n int) []data.Country {
	out := make([]data.Country, n)
	for i := range out {
		region := "Europe"
		if i%3 == 0 {
			region = "Asia"
		}
		out[i] = data.Country{
			CCA3:   fmt.Sprintf("C%c%c", 'A'+i/26, 'A'+i%26),
			Name:   data.CountryName{Common: fmt.Sprintf("Country %02d", i)},
			Region: region,
		}
	}
	return out
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loadedCountries(t *testing.T, c *services.ExplorerController, criteria services.Criteria) *CountriesScreen {
	t.Helper()
	s := NewCountriesScreen(context.Background(), c, criteria)
	s.Update(tea.WindowSizeMsg{Width: 100, Height: 60})
	require.NotNil(t, s.Init())
	s.Update(s.loadCatalog())
	require.True(t, s.loaded)
	return s
}

func TestCountriesScreenPaginates(t *testing.T) {
	c, _ := newTestController(t, numbered(30)...)
	s := loadedCountries(t, c, services.Criteria{})

	assert.Len(t, s.list.Items, 24)
	assert.True(t, s.paginator.HasMore())
	assert.Contains(t, s.View(), "Showing 24 of 30 countries")

	s.Update(key("m"))
	assert.Len(t, s.list.Items, 30)
	assert.False(t, s.paginator.HasMore())
}

func TestCountriesScreenLoadsMoreAtEnd(t *testing.T) {
	c, _ := newTestController(t, numbered(30)...)
	s := loadedCountries(t, c, services.Criteria{})

	s.list.SelectedIndex = 23
	s.Update(key("down"))
	assert.Len(t, s.list.Items, 30)
	assert.Equal(t, 24, s.list.SelectedIndex)
}

func TestCountriesScreenFilters(t *testing.T) {
	c, _ := newTestController(t, numbered(30)...)
	s := loadedCountries(t, c, services.Criteria{Region: "Asia"})

	assert.Len(t, s.filtered, 10)
	assert.Contains(t, s.View(), "share: ?region=Asia")

	s.Update(key("/"))
	require.True(t, s.Capturing())
	s.Update(key("Country 2"))
	// 21, 24, 27 are in Asia
	assert.Len(t, s.filtered, 3)
	assert.Equal(t, 0, s.list.SelectedIndex)

	s.Update(key("esc"))
	assert.False(t, s.Capturing())

	s.Update(key("x"))
	assert.Len(t, s.filtered, 30)
	assert.Equal(t, "", s.Criteria().Encode())
}

func TestCountriesScreenStaysResponsiveWhileLoading(t *testing.T) {
	source := &stubSource{countries: numbered(30), release: make(chan struct{})}
	c := services.NewExplorerControllerWithSource(source, memoryStorage{}, utils.NewAPI("", time.Second), services.ControllerConfig{
		ExportDir: t.TempDir(),
		Seed:      1,
	})
	s := NewCountriesScreen(context.Background(), c, services.Criteria{})
	s.Update(tea.WindowSizeMsg{Width: 100, Height: 60})
	require.NotNil(t, s.Init())

	loaded := make(chan tea.Msg, 1)
	go func() { loaded <- s.loadCatalog() }()

	handled := make(chan struct{})
	go func() {
		s.Update(key("g"))
		s.Update(key("x"))
		s.Update(key("/"))
		s.Update(key("Country 2"))
		close(handled)
	}()

	select {
	case <-handled:
	case <-time.After(time.Second):
		t.Fatal("key handling blocked on the catalog fetch")
	}
	assert.Empty(t, s.filtered)
	assert.Contains(t, s.View(), "Loading countries...")

	close(source.release)
	s.Update(<-loaded)
	// 20 to 29
	assert.Len(t, s.filtered, 10)
}

func TestCountriesScreenReusesLoadedCatalog(t *testing.T) {
	c, _ := newTestController(t, numbered(30)...)
	_, err := c.Catalog().FetchAll(context.Background())
	require.NoError(t, err)

	s := NewCountriesScreen(context.Background(), c, services.Criteria{Region: "Asia"})
	s.Update(tea.WindowSizeMsg{Width: 100, Height: 60})

	assert.Nil(t, s.Init(), "no second fetch")
	assert.True(t, s.loaded)
	assert.Len(t, s.filtered, 10)
}

func TestCountriesScreenTogglesFavorite(t *testing.T) {
	c, store := newTestController(t, numbered(3)...)
	s := loadedCountries(t, c, services.Criteria{})

	s.Update(key("f"))
	assert.True(t, s.list.Items[0].Favorite)
	assert.Equal(t, `["CAA"]`, store[data.FavoritesKey])

	s.Update(key("f"))
	assert.False(t, s.list.Items[0].Favorite)
}

func TestRootNavigatesDetailsHistory(t *testing.T) {
	fra := data.Country{CCA3: "FRA", Name: data.CountryName{Common: "France"}, Borders: []string{"ESP"}}
	esp := data.Country{CCA3: "ESP", Name: data.CountryName{Common: "Spain"}, Borders: []string{"FRA"}}
	c, _ := newTestController(t, fra, esp)

	root := NewRootScreen(context.Background(), c, services.Criteria{})
	root.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	root.Update(SwitchScreenMsg{Screen: "details", Data: "FRA"})
	require.Equal(t, detailsView, root.currentView)
	root.Update(SwitchScreenMsg{Screen: "details", Data: "ESP"})
	assert.Equal(t, "ESP", root.details.code)

	root.Update(SwitchScreenMsg{Screen: "back"})
	require.Equal(t, detailsView, root.currentView)
	assert.Equal(t, "FRA", root.details.code)

	root.Update(SwitchScreenMsg{Screen: "back"})
	assert.Equal(t, countriesView, root.currentView)
	assert.Nil(t, root.details)
}

func TestRootSearchBoxCapturesKeys(t *testing.T) {
	c, _ := newTestController(t)
	root := NewRootScreen(context.Background(), c, services.Criteria{})
	root.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	root.Update(key("/"))
	root.Update(key("q"))
	root.Update(key("t"))
	assert.Equal(t, "qt", root.countries.input.Value())
}

func TestRootTogglesTheme(t *testing.T) {
	t.Cleanup(func() { styles.Apply(data.DarkTheme) })
	styles.Apply(data.DarkTheme)

	c, store := newTestController(t)
	root := NewRootScreen(context.Background(), c, services.Criteria{})

	root.Update(key("t"))
	assert.Equal(t, data.LightTheme, styles.Current())
	assert.Equal(t, "light", store[data.ThemeKey])

	root.Update(key("t"))
	assert.Equal(t, data.DarkTheme, styles.Current())
}

func TestDetailsScreenRendersCountry(t *testing.T) {
	fra := data.Country{
		CCA3:       "FRA",
		Name:       data.CountryName{Common: "France", Official: "French Republic"},
		Capital:    []string{"Paris"},
		Population: 67391582,
		Borders:    []string{"ESP"},
	}
	esp := data.Country{CCA3: "ESP", Name: data.CountryName{Common: "Spain"}, Population: 47351567}
	c, _ := newTestController(t, fra, esp)

	s := NewDetailsScreen(context.Background(), c, "FRA")
	s.Update(tea.WindowSizeMsg{Width: 100, Height: 80})
	s.Init()
	s.Update(s.loadDetails())

	view := s.View()
	for _, want := range []string{"France (FRA)", "French Republic", "Paris", "67,391,582", "Spain", "Population Comparison"} {
		assert.Contains(t, view, want)
	}

	s.Update(key("f"))
	assert.True(t, c.IsFavorite("FRA"))
	assert.Contains(t, s.View(), "★")
}

func TestDetailsScreenShowsCatalogEntryWhileLoading(t *testing.T) {
	fra := data.Country{CCA3: "FRA", Name: data.CountryName{Common: "France"}, Region: "Europe", Population: 67391582}
	c, _ := newTestController(t, fra)
	_, err := c.Catalog().FetchAll(context.Background())
	require.NoError(t, err)

	s := NewDetailsScreen(context.Background(), c, "FRA")
	s.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	s.Init()

	view := s.View()
	assert.Contains(t, view, "France (FRA)")
	assert.Contains(t, view, "67,391,582")
	assert.Contains(t, view, "Loading FRA...")
}

func TestDetailsScreenNotFound(t *testing.T) {
	c, _ := newTestController(t)

	s := NewDetailsScreen(context.Background(), c, "XXX")
	s.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	s.Init()
	s.Update(s.loadDetails())

	assert.Contains(t, s.View(), "No country with code XXX.")
}

func TestDetailsScreenIgnoresStaleResults(t *testing.T) {
	c, _ := newTestController(t)

	s := NewDetailsScreen(context.Background(), c, "FRA")
	s.Init()
	s.Update(detailsLoadedMsg{code: "ESP", country: &data.Country{CCA3: "ESP"}})
	assert.True(t, s.loading)
	assert.Nil(t, s.country)
}

func TestQuizScreenFlow(t *testing.T) {
	quiz := services.NewQuiz([]services.Question{
		{Prompt: "Capital?", Options: []string{"Paris", "Rome"}, Answer: "Paris"},
		{Prompt: "Island?", Options: []string{"True", "False"}, Answer: "False"},
	})
	s := NewQuizScreen("France", quiz)

	assert.Contains(t, s.View(), "Question 1 of 2")

	s.Update(key("enter"))
	assert.Equal(t, "Correct!", s.feedback)

	s.Update(key("1"))
	assert.Equal(t, "Not quite. The answer was False.", s.feedback)

	require.True(t, quiz.Done())
	view := s.View()
	assert.Contains(t, view, "You scored 1 out of 2")
	assert.Contains(t, view, quiz.Verdict())
}
