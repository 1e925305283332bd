package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/kerbaras/countries/pkg/data"
	"github.com/kerbaras/countries/pkg/integrations"
	"github.com/kerbaras/countries/pkg/sources"
	"golang.org/x/sync/errgroup"
)

const (
	GuideTitle       = "World Explorer Favorites"
	flagDownloadJobs = 4
)

var ErrNothingToExport = errors.New("no favorite countries to export")

// ExportProgress represents the progress of an export
type ExportProgress struct {
	Code    string
	Current int
	Total   int
	Status  string // "fetching", "flag", "writing", "complete", "error"
	Error   error
}

// Downloader fetches raw bytes such as flag images.
type Downloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

// GuideExporter compiles the favorite countries into an EPUB guide.
type GuideExporter struct {
	source       sources.Source
	favorites    *data.Favorites
	downloader   Downloader
	processor    integrations.Processor
	flagExt      string
	progressChan chan ExportProgress
}

func NewGuideExporter(source sources.Source, favorites *data.Favorites, downloader Downloader) *GuideExporter {
	processor := integrations.NewFlagProcessor(integrations.DefaultFlagSettings())
	return &GuideExporter{
		source:       source,
		favorites:    favorites,
		downloader:   downloader,
		processor:    processor,
		flagExt:      processor.Extension(),
		progressChan: make(chan ExportProgress, 100),
	}
}

// GetProgressChannel returns the channel for receiving export progress updates
func (x *GuideExporter) GetProgressChannel() <-chan ExportProgress {
	return x.progressChan
}

// Export writes the guide into outputDir and returns the file path. Flags that
// fail to download or decode are left out of their section.
func (x *GuideExporter) Export(ctx context.Context, outputDir string) (string, error) {
	codes := x.favorites.Codes()
	if len(codes) == 0 {
		return "", ErrNothingToExport
	}

	x.sendProgress(ExportProgress{Total: len(codes), Status: "fetching"})

	countries, err := x.source.ByCodes(ctx, codes)
	if err != nil {
		x.sendProgress(ExportProgress{Status: "error", Error: err})
		return "", fmt.Errorf("failed to fetch favorites: %w", err)
	}
	countries = orderByCodes(countries, codes)

	neighbors := x.neighborNames(ctx, countries)

	entries := make([]integrations.GuideEntry, len(countries))
	for i, c := range countries {
		entries[i] = integrations.GuideEntry{
			Country:   c,
			FlagExt:   x.flagExt,
			Facts:     Facts(c),
			Neighbors: neighbors(c),
		}
	}

	var done atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(flagDownloadJobs)
	for i := range entries {
		g.Go(func() error {
			entry := &entries[i]
			flag, err := x.fetchFlag(gctx, entry.Country)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				slog.Warn("skipping flag", "code", entry.Country.CCA3, "error", err)
			}
			entry.Flag = flag
			x.sendProgress(ExportProgress{Code: entry.Country.CCA3, Current: int(done.Add(1)), Total: len(entries), Status: "flag"})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	x.sendProgress(ExportProgress{Total: len(entries), Current: len(entries), Status: "writing"})

	path, err := integrations.NewGuideBuilder(outputDir).CreateGuide(GuideTitle, entries)
	if err != nil {
		x.sendProgress(ExportProgress{Status: "error", Error: err})
		return "", err
	}

	x.sendProgress(ExportProgress{Total: len(entries), Current: len(entries), Status: "complete"})
	slog.Info("guide exported", "path", path, "countries", len(entries))
	return path, nil
}

func (x *GuideExporter) fetchFlag(ctx context.Context, country data.Country) ([]byte, error) {
	url := country.Flags.PNG
	if url == "" {
		return nil, fmt.Errorf("no PNG flag")
	}
	raw, err := x.downloader.Download(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch flag: %w", err)
	}
	return x.processor.Process(raw)
}

// neighborNames resolves all border codes of all countries in one batched request.
// On failure the guide is written without neighbour lists.
func (x *GuideExporter) neighborNames(ctx context.Context, countries []data.Country) func(data.Country) []string {
	seen := map[string]bool{}
	var codes []string
	for _, c := range countries {
		for _, b := range c.Borders {
			if !seen[b] {
				seen[b] = true
				codes = append(codes, b)
			}
		}
	}

	names := map[string]string{}
	if len(codes) > 0 {
		borders, err := x.source.ByCodes(ctx, codes)
		if err != nil {
			slog.Warn("skipping border names", "error", err)
		}
		for _, b := range borders {
			names[strings.ToUpper(b.CCA3)] = b.Name.Common
		}
	}

	return func(c data.Country) []string {
		var out []string
		for _, b := range c.Borders {
			if n, ok := names[strings.ToUpper(b)]; ok {
				out = append(out, n)
			}
		}
		return out
	}
}

// sendProgress sends a progress update (non-blocking)
func (x *GuideExporter) sendProgress(progress ExportProgress) {
	select {
	case x.progressChan <- progress:
	default:
		// Channel full, skip this update
	}
}

// Facts lists the labelled attributes shown for a country in exports and the CLI.
func Facts(c data.Country) [][2]string {
	region := c.Region
	if c.Subregion != "" {
		region = fmt.Sprintf("%s (%s)", c.Region, c.Subregion)
	}

	return [][2]string{
		{"Official Name", orNA(c.Name.Official)},
		{"Capital", joinOrNA(c.Capital)},
		{"Population", FormatNumber(c.Population)},
		{"Region", orNA(region)},
		{"Languages", joinOrNA(c.LanguageNames())},
		{"Currencies", joinOrNA(c.CurrencyLabels())},
		{"Timezones", joinOrNA(c.Timezones)},
		{"Area", FormatArea(c.Area)},
		{"Continent", joinOrNA(c.Continents)},
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func joinOrNA(items []string) string {
	return orNA(strings.Join(items, ", "))
}

// orderByCodes returns countries in the order of codes, dropping unknown ones.
func orderByCodes(countries []data.Country, codes []string) []data.Country {
	byCode := make(map[string]data.Country, len(countries))
	for _, c := range countries {
		byCode[strings.ToUpper(c.CCA3)] = c
	}

	out := make([]data.Country, 0, len(countries))
	for _, code := range codes {
		if c, ok := byCode[strings.ToUpper(code)]; ok {
			out = append(out, c)
		}
	}
	return out
}
