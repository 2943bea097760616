package item

import (
	"math"
	"time"

	"github.com/OpticalFlyer/laststanding/gallery"
	"github.com/OpticalFlyer/laststanding/layout"
)

const (
	MaxOpacity = 255

	// Box size before the first layout pass.
	defaultBox = 100
)

// Surface is where items are drawn. x, y is the center of the blit.
type Surface interface {
	Blit(a *gallery.Asset, x, y float64, w, h int, opacity uint8)
}

// Motion holds the easing tuning shared by every item of a round.
type Motion struct {
	MoveRate  float64
	ScaleRate float64
	FadeStep  int
	FadeFloor int
	Smoothing Smoothing
}

// DefaultMotion matches a 60 Hz frame loop.
func DefaultMotion() Motion {
	return Motion{
		MoveRate:  0.12,
		ScaleRate: 0.08,
		FadeStep:  12,
		FadeFloor: MaxOpacity / 10,
		Smoothing: FrameSmoothing{},
	}
}

// Item is one image on screen and its animation state.
type Item struct {
	Asset *gallery.Asset

	// Current center and the center it eases toward
	X, Y   float64
	TX, TY float64

	// Cell bounding box assigned by layout
	BoxW, BoxH int

	Scale       float64
	TargetScale float64

	Opacity int

	eliminated bool
	motion     Motion
}

// New creates an item at the origin with default animation state.
func New(asset *gallery.Asset, motion Motion) *Item {
	if motion.Smoothing == nil {
		motion.Smoothing = FrameSmoothing{}
	}
	return &Item{
		Asset:       asset,
		BoxW:        defaultBox,
		BoxH:        defaultBox,
		Scale:       1,
		TargetScale: 1,
		Opacity:     MaxOpacity,
		motion:      motion,
	}
}

// SetCell retargets the item to a layout slot.
func (it *Item) SetCell(c layout.Cell) {
	it.BoxW = c.W
	it.BoxH = c.H
	it.TX = c.X
	it.TY = c.Y
}

// Eliminate starts the fade out. The item stays where it is.
func (it *Item) Eliminate() {
	it.eliminated = true
}

// Eliminated reports whether the item has been knocked out.
func (it *Item) Eliminated() bool {
	return it.eliminated
}

// Crown cancels any fade and sends the item to x, y at the given scale.
func (it *Item) Crown(x, y, scale float64) {
	it.eliminated = false
	it.Opacity = MaxOpacity
	it.TX = x
	it.TY = y
	it.TargetScale = scale
}

// Update advances position, scale and fade by one frame of dt.
func (it *Item) Update(dt time.Duration) {
	s := it.motion.Smoothing
	move := s.Blend(it.motion.MoveRate, dt)
	grow := s.Blend(it.motion.ScaleRate, dt)

	it.X += (it.TX - it.X) * move
	it.Y += (it.TY - it.Y) * move
	it.Scale += (it.TargetScale - it.Scale) * grow

	if it.eliminated && it.Opacity > it.motion.FadeFloor {
		frames := s.Frames(dt)
		step := int(math.Round(float64(it.motion.FadeStep) * frames))
		if step < 1 && frames > 0 {
			step = 1
		}
		it.Opacity = max(it.motion.FadeFloor, it.Opacity-step)
	}
}

// DrawSize fits the asset inside the box keeping its aspect ratio, then
// applies the current scale.
func (it *Item) DrawSize() (int, int) {
	if it.Asset == nil || it.BoxW <= 0 || it.BoxH <= 0 {
		return 0, 0
	}
	iw, ih := it.Asset.Size()
	if iw <= 0 || ih <= 0 {
		return 0, 0
	}
	baseW, baseH := containFit(iw, ih, it.BoxW, it.BoxH)
	return int(float64(baseW) * it.Scale), int(float64(baseH) * it.Scale)
}

// Draw blits the item centered at its current position.
func (it *Item) Draw(surface Surface) {
	w, h := it.DrawSize()
	if w <= 0 || h <= 0 {
		return
	}
	op := min(max(it.Opacity, 0), MaxOpacity)
	surface.Blit(it.Asset, it.X, it.Y, w, h, uint8(op))
}

func containFit(iw, ih, maxW, maxH int) (int, int) {
	r := float64(iw) / float64(ih)
	if float64(maxW)/float64(maxH) > r {
		return int(float64(maxH) * r), maxH
	}
	return maxW, int(float64(maxW) / r)
}
