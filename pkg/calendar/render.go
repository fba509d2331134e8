package calendar

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"emperror.dev/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Layout constants, in pixels unless noted.
const (
	CellWidth    = 130
	CellHeight   = 110
	HeaderHeight = CellHeight / 2
	TitleHeight  = 70
	Margin       = 16

	cellPadding = 6

	// WrapColumns is the number of characters an event line may hold.
	WrapColumns = 16
	// MaxEventLines is the number of lines one event may occupy.
	MaxEventLines = 2
	// lineSpacing is the distance between event lines as a fraction of CellHeight.
	lineSpacing = 0.12

	titleSize  = 30
	headerSize = 15
	daySize    = 15
	eventSize  = 12
)

// Width and Height are the dimensions of every rendered calendar.
const (
	Width  = 2*Margin + Columns*CellWidth
	Height = 2*Margin + TitleHeight + HeaderHeight + Rows*CellHeight
)

var weekdayHeaders = [Columns]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Palette holds the colors used by the renderer.
type Palette struct {
	Background color.Color
	Title      color.Color
	Header     color.Color
	Cell       color.Color
	Weekend    color.Color
	Today      color.Color
	Past       color.Color
	OutOfMonth color.Color
	Border     color.Color
	Text       color.Color
	DimText    color.Color
}

// DiscordDark is the default palette, based on Discord's dark theme.
var DiscordDark = Palette{
	Background: hex(0xFFFFFF),
	Title:      hex(0x2C2F33),
	Header:     hex(0x2C2F33),
	Cell:       hex(0x23272A),
	Weekend:    hex(0x2E3338),
	Today:      hex(0x7289DA),
	Past:       hex(0x36393F),
	OutOfMonth: hex(0x36393F),
	Border:     hex(0x000000),
	Text:       hex(0xFFFFFF),
	DimText:    hex(0xB9BBBE),
}

func hex(rgb uint32) color.RGBA {
	return color.RGBA{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb), A: 0xFF}
}

// Renderer draws month grids. A Renderer is safe for sequential reuse only;
// font faces keep internal caches.
type Renderer struct {
	palette Palette

	titleFace  font.Face
	headerFace font.Face
	dayFace    font.Face
	eventFace  font.Face
}

// NewRenderer loads the Go fonts and returns a renderer using palette.
func NewRenderer(palette Palette) (*Renderer, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "parse regular font")
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "parse bold font")
	}

	r := &Renderer{palette: palette}
	faces := []struct {
		dst  *font.Face
		src  *opentype.Font
		size float64
	}{
		{&r.titleFace, bold, titleSize},
		{&r.headerFace, bold, headerSize},
		{&r.dayFace, bold, daySize},
		{&r.eventFace, regular, eventSize},
	}
	for _, f := range faces {
		face, err := opentype.NewFace(f.src, &opentype.FaceOptions{
			Size:    f.size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "create %.0fpt face", f.size)
		}
		*f.dst = face
	}

	return r, nil
}

// Render draws grid for the given month and year, highlighting today.
// It never touches the filesystem; encoding is left to the caller.
func (r *Renderer) Render(grid *MonthGrid, month, year int, today CalendarDate) (*image.RGBA, error) {
	if err := checkShape(grid); err != nil {
		return nil, err
	}
	// The title band needs a real month name.
	if month < 1 || month > 12 {
		return nil, errors.WithMessagef(ErrRender, "cannot title month %d", month)
	}

	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	fill(img, img.Bounds(), r.palette.Background)

	r.drawTitle(img, fmt.Sprintf("%s %d", time.Month(month), year))
	r.drawHeader(img)

	for row, week := range grid.Weeks {
		for col, cell := range week {
			r.drawCell(img, row, col, cell, today)
		}
	}

	return img, nil
}

func checkShape(grid *MonthGrid) error {
	if grid == nil {
		return errors.WithMessage(ErrRender, "grid is nil")
	}
	if len(grid.Weeks) != Rows {
		return errors.WithMessagef(ErrRender, "grid has %d rows, want %d", len(grid.Weeks), Rows)
	}
	for i, week := range grid.Weeks {
		if len(week) != Columns {
			return errors.WithMessagef(ErrRender, "grid row %d has %d columns, want %d", i, len(week), Columns)
		}
	}
	return nil
}

func (r *Renderer) drawTitle(img *image.RGBA, title string) {
	ascent := r.titleFace.Metrics().Ascent.Ceil()
	baseline := Margin + (TitleHeight+ascent)/2
	drawCentered(img, r.titleFace, r.palette.Title, title, Width/2, baseline)
}

func (r *Renderer) drawHeader(img *image.RGBA) {
	top := Margin + TitleHeight
	ascent := r.headerFace.Metrics().Ascent.Ceil()
	for col, name := range weekdayHeaders {
		rect := image.Rect(Margin+col*CellWidth, top, Margin+(col+1)*CellWidth, top+HeaderHeight)
		fill(img, rect, r.palette.Header)
		outline(img, rect, r.palette.Border)
		drawCentered(img, r.headerFace, r.palette.Text, name, rect.Min.X+CellWidth/2, top+(HeaderHeight+ascent)/2)
	}
}

// CellRect returns the pixel rectangle of the cell at row, col.
func CellRect(row, col int) image.Rectangle {
	x := Margin + col*CellWidth
	y := Margin + TitleHeight + HeaderHeight + row*CellHeight
	return image.Rect(x, y, x+CellWidth, y+CellHeight)
}

func (r *Renderer) drawCell(img *image.RGBA, row, col int, cell DayCell, today CalendarDate) {
	rect := CellRect(row, col)
	bg, fg := cellStyle(r.palette, row, col, cell, today)
	fill(img, rect, bg)
	outline(img, rect, r.palette.Border)

	x := rect.Min.X + cellPadding
	y := rect.Min.Y + cellPadding + r.dayFace.Metrics().Ascent.Ceil()
	drawText(img, r.dayFace, fg, fmt.Sprint(cell.Date.Day), x, y)

	step := int(lineSpacing * float64(rect.Dy()))
	y += r.dayFace.Metrics().Descent.Ceil() + step
	for _, entry := range cell.Events {
		for _, line := range EventLines(entry, WrapColumns) {
			drawText(img, r.eventFace, fg, line, x, y)
			y += step
		}
	}
}

// cellStyle picks the background and text colors of a cell. The rules are
// evaluated in order; trailing out-of-month days keep the base colors.
func cellStyle(p Palette, row, col int, cell DayCell, today CalendarDate) (color.Color, color.Color) {
	switch {
	case cell.Membership == InMonth && cell.Date == today:
		return p.Today, p.Text
	case cell.Membership == InMonth && cell.Date.Before(today):
		return p.Past, p.DimText
	case cell.Membership == OutOfMonth && row == 0:
		return p.OutOfMonth, p.DimText
	case col >= Columns-2:
		return p.Weekend, p.Text
	default:
		return p.Cell, p.Text
	}
}

func fill(img draw.Image, rect image.Rectangle, c color.Color) {
	draw.Draw(img, rect, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

func outline(img draw.Image, rect image.Rectangle, c color.Color) {
	for x := rect.Min.X; x < rect.Max.X; x++ {
		img.Set(x, rect.Min.Y, c)
		img.Set(x, rect.Max.Y-1, c)
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		img.Set(rect.Min.X, y, c)
		img.Set(rect.Max.X-1, y, c)
	}
}

func drawText(img draw.Image, face font.Face, c color.Color, s string, x, baseline int) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(s)
}

func drawCentered(img draw.Image, face font.Face, c color.Color, s string, centerX, baseline int) {
	width := font.MeasureString(face, s).Ceil()
	drawText(img, face, c, s, centerX-width/2, baseline)
}
