package integrations

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

// FlagSettings bounds flag images embedded in exports.
type FlagSettings struct {
	MaxWidth  int
	MaxHeight int
	Format    string // "png" or "jpeg"
	Quality   int    // JPEG quality (1-100)
}

func DefaultFlagSettings() FlagSettings {
	return FlagSettings{MaxWidth: 600, MaxHeight: 400, Format: "png", Quality: 85}
}

// FlagProcessor scales flag images down to fit the configured box.
type FlagProcessor struct {
	settings FlagSettings
}

func NewFlagProcessor(settings FlagSettings) *FlagProcessor {
	return &FlagProcessor{settings: settings}
}

func (p *FlagProcessor) Process(raw []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := p.calculateDimensions(bounds.Dx(), bounds.Dy())
	if width != bounds.Dx() || height != bounds.Dy() {
		img = p.resize(img, width, height)
	}

	return p.encode(img)
}

// calculateDimensions keeps the aspect ratio while fitting inside the box
func (p *FlagProcessor) calculateDimensions(width, height int) (int, int) {
	if width <= p.settings.MaxWidth && height <= p.settings.MaxHeight {
		return width, height
	}

	widthScale := float64(p.settings.MaxWidth) / float64(width)
	heightScale := float64(p.settings.MaxHeight) / float64(height)

	scale := widthScale
	if heightScale < widthScale {
		scale = heightScale
	}

	return max(1, int(float64(width)*scale)), max(1, int(float64(height)*scale))
}

func (p *FlagProcessor) resize(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

func (p *FlagProcessor) encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer

	switch p.settings.Format {
	case "jpeg", "jpg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.settings.Quality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}
	case "png", "":
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode PNG: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", p.settings.Format)
	}

	return buf.Bytes(), nil
}

// Extension is the file extension matching the output format.
func (p *FlagProcessor) Extension() string {
	if p.settings.Format == "jpeg" || p.settings.Format == "jpg" {
		return ".jpg"
	}
	return ".png"
}
