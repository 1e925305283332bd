package services

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/kerbaras/countries/pkg/data"
	"github.com/kerbaras/countries/pkg/sources"
	"github.com/kerbaras/countries/pkg/utils"
)

type ControllerConfig struct {
	BaseURL   string
	DBPath    string
	Timeout   time.Duration
	ExportDir string
	Seed      int64 // 0 seeds the quiz from the clock
}

// ExplorerController wires the catalog, preferences and lookups used by both the
// CLI and the TUI.
type ExplorerController struct {
	source    sources.Source
	repo      *data.Repository
	favorites *data.Favorites
	themes    *data.ThemeStore
	catalog   *Catalog
	resolver  *DetailResolver
	exporter  *GuideExporter
	quizzes   *QuizGenerator
	exportDir string
}

func NewExplorerController(config ControllerConfig) (*ExplorerController, error) {
	if config.DBPath == "" {
		homeDir, _ := os.UserHomeDir()
		config.DBPath = filepath.Join(homeDir, ".countries", "countries.db")
	}
	if config.ExportDir == "" {
		homeDir, _ := os.UserHomeDir()
		config.ExportDir = filepath.Join(homeDir, "Downloads")
	}
	if config.Timeout <= 0 {
		config.Timeout = 15 * time.Second
	}

	repo, err := data.NewDuckDBRepository(config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open preferences: %w", err)
	}

	api := utils.NewAPI(config.BaseURL, config.Timeout)
	source := sources.NewRestCountries(config.BaseURL, config.Timeout)

	c := NewExplorerControllerWithSource(source, repo, api, config)
	c.repo = repo
	return c, nil
}

// NewExplorerControllerWithSource wires a controller around an existing source and
// preference store.
func NewExplorerControllerWithSource(source sources.Source, store data.Storage, downloader Downloader, config ControllerConfig) *ExplorerController {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	favorites := data.NewFavorites(store)
	return &ExplorerController{
		source:    source,
		favorites: favorites,
		themes:    data.NewThemeStore(store),
		catalog:   NewCatalog(source),
		resolver:  NewDetailResolver(source),
		exporter:  NewGuideExporter(source, favorites, downloader),
		quizzes:   NewQuizGenerator(rand.New(rand.NewSource(seed))),
		exportDir: config.ExportDir,
	}
}

func (c *ExplorerController) Catalog() *Catalog {
	return c.catalog
}

func (c *ExplorerController) Favorites() *data.Favorites {
	return c.favorites
}

func (c *ExplorerController) Themes() *data.ThemeStore {
	return c.themes
}

func (c *ExplorerController) Exporter() *GuideExporter {
	return c.exporter
}

func (c *ExplorerController) ExportDir() string {
	return c.exportDir
}

// Search filters the session catalog, fetching it first if needed.
func (c *ExplorerController) Search(ctx context.Context, criteria Criteria) ([]data.Country, error) {
	countries, err := c.catalog.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(countries, criteria), nil
}

func (c *ExplorerController) GetCountry(ctx context.Context, code string) (*data.Country, []data.Country, error) {
	return c.resolver.Resolve(ctx, code)
}

// FavoriteCountries fetches the favorite records in one batched request, in the
// order they were favorited. No favorites means no request.
func (c *ExplorerController) FavoriteCountries(ctx context.Context) ([]data.Country, error) {
	codes := c.favorites.Codes()
	if len(codes) == 0 {
		return []data.Country{}, nil
	}

	countries, err := c.source.ByCodes(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch favorite countries: %w", err)
	}
	return orderByCodes(countries, codes), nil
}

// ToggleFavorite returns whether code is a favorite after the toggle.
func (c *ExplorerController) ToggleFavorite(code string) (bool, error) {
	if _, err := c.favorites.Toggle(code); err != nil {
		return false, err
	}
	return c.favorites.IsFavorite(code), nil
}

func (c *ExplorerController) IsFavorite(code string) bool {
	return c.favorites.IsFavorite(code)
}

// NewQuiz builds a quiz for country. The catalog provides decoys for the border
// question; if it cannot be loaded that question is skipped.
func (c *ExplorerController) NewQuiz(ctx context.Context, country data.Country, borders []data.Country) *Quiz {
	pool, err := c.catalog.FetchAll(ctx)
	if err != nil {
		pool = nil
	}
	return NewQuiz(c.quizzes.Generate(country, borders, pool))
}

type Stats struct {
	Total   int
	Regions []RegionCount
	Top     []data.Country
}

func (c *ExplorerController) Stats(ctx context.Context, topN int) (*Stats, error) {
	countries, err := c.catalog.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{
		Total:   len(countries),
		Regions: RegionCounts(countries),
		Top:     TopByPopulation(countries, topN),
	}, nil
}

func (c *ExplorerController) PopulationComparison(ctx context.Context, code string) ([]PopulationEntry, error) {
	countries, err := c.catalog.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return PopulationComparison(countries, code), nil
}

func (c *ExplorerController) Export(ctx context.Context, outputDir string) (string, error) {
	if outputDir == "" {
		outputDir = c.exportDir
	}
	return c.exporter.Export(ctx, outputDir)
}

func (c *ExplorerController) Close() error {
	if c.repo != nil {
		return c.repo.Close()
	}
	return nil
}
