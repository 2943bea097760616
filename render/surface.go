package render

import (
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/OpticalFlyer/laststanding/gallery"
	"github.com/OpticalFlyer/laststanding/item"
	"github.com/OpticalFlyer/laststanding/shape"
)

// Background is the frame clear color.
var Background = color.Black

const (
	frameThickness = 6.0
	frameRadius    = 12.0
	frameSegments  = 12
)

// FrameColor is the winner frame color.
var FrameColor = color.RGBA{R: 255, G: 196, B: 0, A: 255}

// Surface draws items onto an ebiten screen. It keeps one GPU image per asset
// for the lifetime of the process.
type Surface struct {
	target *ebiten.Image
	cache  map[*gallery.Asset]*ebiten.Image
	white  *ebiten.Image
}

var _ item.Surface = (*Surface)(nil)

// NewSurface creates a surface with an empty image cache.
func NewSurface() *Surface {
	return &Surface{
		cache: make(map[*gallery.Asset]*ebiten.Image),
	}
}

// Begin targets screen for the next frame and clears it.
func (s *Surface) Begin(screen *ebiten.Image) {
	s.target = screen
	screen.Fill(Background)
}

// Blit draws a scaled to w x h, centered at x, y.
func (s *Surface) Blit(a *gallery.Asset, x, y float64, w, h int, opacity uint8) {
	if s.target == nil || w <= 0 || h <= 0 {
		return
	}
	img := s.drawable(a)
	iw, ih := a.Size()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w)/float64(iw), float64(h)/float64(ih))
	op.GeoM.Translate(x-float64(w)/2, y-float64(h)/2)
	op.ColorScale.ScaleAlpha(float32(opacity) / 255)
	op.Filter = ebiten.FilterLinear
	s.target.DrawImage(img, op)
}

// drawable returns the cached GPU image for a, creating it on first use.
func (s *Surface) drawable(a *gallery.Asset) *ebiten.Image {
	if img, ok := s.cache[a]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(a.Pixels)
	s.cache[a] = img
	return img
}

// DrawFrame outlines the item's current draw rectangle.
func (s *Surface) DrawFrame(it *item.Item, clr color.RGBA) {
	if s.target == nil {
		return
	}
	w, h := it.DrawSize()
	if w <= 0 || h <= 0 {
		return
	}
	mesh, err := shape.Frame(it.X, it.Y, float64(w), float64(h), frameRadius, frameThickness, frameSegments)
	if err != nil {
		log.Printf("Error building winner frame: %v", err)
		return
	}

	if s.white == nil {
		white := ebiten.NewImage(3, 3)
		white.Fill(color.White)
		s.white = white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}

	r := float32(clr.R) / 255
	g := float32(clr.G) / 255
	b := float32(clr.B) / 255
	alpha := float32(clr.A) / 255 * float32(it.Opacity) / 255

	vs := make([]ebiten.Vertex, 0, len(mesh.Vertices)/2)
	for i := 0; i+1 < len(mesh.Vertices); i += 2 {
		vs = append(vs, ebiten.Vertex{
			DstX:   float32(mesh.Vertices[i]),
			DstY:   float32(mesh.Vertices[i+1]),
			SrcX:   1,
			SrcY:   1,
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: alpha,
		})
	}

	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	s.target.DrawTriangles(vs, mesh.Indices, s.white, op)
}
