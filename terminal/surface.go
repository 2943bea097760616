// Package terminal runs a round in a text terminal.
package terminal

import (
	"image"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/draw"

	"github.com/OpticalFlyer/laststanding/gallery"
	"github.com/OpticalFlyer/laststanding/item"
)

// Each terminal cell stands for a CellW x CellH block of virtual pixels. An
// upper-half block splits the cell into two square pixels.
const (
	CellW = 8
	CellH = 16
)

// Screen is the part of tcell.Screen the surface draws with.
type Screen interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
}

type thumb struct {
	w, h int
	img  *image.RGBA
}

// Surface paints items as colored half blocks.
type Surface struct {
	screen Screen
	thumbs map[*gallery.Asset]thumb
}

var _ item.Surface = (*Surface)(nil)

// NewSurface creates a surface drawing to screen.
func NewSurface(screen Screen) *Surface {
	return &Surface{
		screen: screen,
		thumbs: make(map[*gallery.Asset]thumb),
	}
}

// Viewport returns the terminal size in virtual pixels.
func (s *Surface) Viewport() (int, int) {
	cols, rows := s.screen.Size()
	return cols * CellW, rows * CellH
}

// Blit paints a at w x h virtual pixels centered on x, y, darkened by
// opacity toward the black background.
func (s *Surface) Blit(a *gallery.Asset, x, y float64, w, h int, opacity uint8) {
	cols := int(math.Round(float64(w) / CellW))
	rows := int(math.Round(float64(h) / CellH))
	if cols <= 0 || rows <= 0 {
		return
	}
	left := int(math.Round(x/CellW - float64(cols)/2))
	top := int(math.Round(y/CellH - float64(rows)/2))

	img := s.thumbnail(a, cols, rows*2)
	maxCols, maxRows := s.screen.Size()
	for r := 0; r < rows; r++ {
		ty := top + r
		if ty < 0 || ty >= maxRows {
			continue
		}
		for c := 0; c < cols; c++ {
			tx := left + c
			if tx < 0 || tx >= maxCols {
				continue
			}
			upper := fade(img.RGBAAt(c, r*2), opacity)
			lower := fade(img.RGBAAt(c, r*2+1), opacity)
			style := tcell.StyleDefault.Foreground(upper).Background(lower)
			s.screen.SetContent(tx, ty, '▀', nil, style)
		}
	}
}

// thumbnail keeps the most recent downscale of each asset.
func (s *Surface) thumbnail(a *gallery.Asset, w, h int) *image.RGBA {
	if t, ok := s.thumbs[a]; ok && t.w == w && t.h == h {
		return t.img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), a.Pixels, a.Pixels.Bounds(), draw.Src, nil)
	s.thumbs[a] = thumb{w: w, h: h, img: dst}
	return dst
}

// fade composites c over black at the given opacity. c is alpha
// premultiplied, so its own alpha is already applied.
func fade(c color.RGBA, opacity uint8) tcell.Color {
	k := uint32(opacity)
	return tcell.NewRGBColor(
		int32(uint32(c.R)*k/255),
		int32(uint32(c.G)*k/255),
		int32(uint32(c.B)*k/255),
	)
}
