package integrations

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-shiori/go-epub"
	"github.com/kerbaras/countries/pkg/data"
)

// GuideEntry is one country section in the guide. Flag holds processed image bytes
// and may be empty.
type GuideEntry struct {
	Country   data.Country
	Flag      []byte
	FlagExt   string
	Facts     [][2]string
	Neighbors []string
}

type GuideBuilder struct {
	outputDir string
}

func NewGuideBuilder(outputDir string) *GuideBuilder {
	return &GuideBuilder{outputDir: outputDir}
}

// CreateGuide writes an EPUB with one section per entry and returns its path.
func (b *GuideBuilder) CreateGuide(title string, entries []GuideEntry) (string, error) {
	if len(entries) == 0 {
		return "", fmt.Errorf("no countries to compile")
	}

	if err := os.MkdirAll(b.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	// go-epub reads images from disk, so flags are staged in a scratch dir
	scratch, err := os.MkdirTemp("", "countries-guide-*")
	if err != nil {
		return "", fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	e, err := epub.NewEpub(title)
	if err != nil {
		return "", fmt.Errorf("failed to create EPub: %w", err)
	}
	e.SetAuthor("REST Countries")
	e.SetDescription(fmt.Sprintf("%d countries", len(entries)))
	e.SetLang("en")

	for _, entry := range entries {
		if err := b.addSection(e, scratch, entry); err != nil {
			return "", fmt.Errorf("failed to add %s: %w", entry.Country.CCA3, err)
		}
	}

	outputPath := filepath.Join(b.outputDir, sanitizeFilename(title)+".epub")
	if err := e.Write(outputPath); err != nil {
		return "", fmt.Errorf("failed to write EPub: %w", err)
	}

	return outputPath, nil
}

func (b *GuideBuilder) addSection(e *epub.Epub, scratch string, entry GuideEntry) error {
	name := entry.Country.Name.Common

	var content strings.Builder
	content.WriteString(fmt.Sprintf("<h1>%s</h1>\n", html.EscapeString(name)))
	if entry.Country.Name.Official != "" && entry.Country.Name.Official != name {
		content.WriteString(fmt.Sprintf("<p><em>%s</em></p>\n", html.EscapeString(entry.Country.Name.Official)))
	}

	if len(entry.Flag) > 0 {
		ext := entry.FlagExt
		if ext == "" {
			ext = ".png"
		}
		filename := strings.ToLower(entry.Country.CCA3) + ext
		imgPath := filepath.Join(scratch, filename)
		if err := os.WriteFile(imgPath, entry.Flag, 0644); err != nil {
			return fmt.Errorf("failed to stage flag: %w", err)
		}

		internalPath, err := e.AddImage(imgPath, filename)
		if err != nil {
			return fmt.Errorf("failed to add flag: %w", err)
		}
		content.WriteString(fmt.Sprintf(
			`<div class="flag"><img src="%s" alt="Flag of %s" style="width:100%%;height:auto;"/></div>%s`,
			internalPath, html.EscapeString(name), "\n",
		))
	}

	if len(entry.Facts) > 0 {
		content.WriteString("<dl>\n")
		for _, fact := range entry.Facts {
			content.WriteString(fmt.Sprintf("<dt>%s</dt><dd>%s</dd>\n",
				html.EscapeString(fact[0]), html.EscapeString(fact[1])))
		}
		content.WriteString("</dl>\n")
	}

	if len(entry.Neighbors) > 0 {
		content.WriteString("<h2>Border Countries</h2>\n<ul>\n")
		for _, n := range entry.Neighbors {
			content.WriteString(fmt.Sprintf("<li>%s</li>\n", html.EscapeString(n)))
		}
		content.WriteString("</ul>\n")
	}

	_, err := e.AddSection(content.String(), name, "", "")
	if err != nil {
		return fmt.Errorf("failed to add section: %w", err)
	}
	return nil
}

// sanitizeFilename removes characters that are invalid in filenames
func sanitizeFilename(name string) string {
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	result := name
	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}
	result = strings.TrimSpace(result)
	result = strings.Trim(result, ".")
	return result
}
