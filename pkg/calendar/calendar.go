// Package calendar builds Monday-first month grids annotated with events and
// renders them as images.
//
// The pipeline is one-way: Build turns (year, month, events) into a MonthGrid,
// Renderer.Render draws the grid, and EncodePNG hands the surface to a writer.
package calendar

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"sync"

	"emperror.dev/errors"
)

var (
	defaultRenderer    *Renderer
	defaultRendererErr error
	rendererOnce       sync.Once
	renderMu           sync.Mutex
)

// Default returns the shared renderer using the DiscordDark palette.
func Default() (*Renderer, error) {
	rendererOnce.Do(func() {
		defaultRenderer, defaultRendererErr = NewRenderer(DiscordDark)
	})
	return defaultRenderer, defaultRendererErr
}

// Generate builds and renders the calendar for month/year.
func Generate(year, month int, events []RawEvent, today CalendarDate) (image.Image, error) {
	grid, err := Build(year, month, events)
	if err != nil {
		return nil, err
	}

	r, err := Default()
	if err != nil {
		return nil, err
	}

	// Font faces cache glyphs and are not safe for concurrent use.
	renderMu.Lock()
	defer renderMu.Unlock()
	return r.Render(grid, month, year, today)
}

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(w, img); err != nil {
		return errors.Wrap(err, "encode png")
	}
	return nil
}

// GeneratePNG runs Generate and returns the encoded image.
func GeneratePNG(year, month int, events []RawEvent, today CalendarDate) ([]byte, error) {
	img, err := Generate(year, month, events, today)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
