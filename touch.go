package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// A touch that moves further than this is a drag, not a tap.
const tapSlop = 12.0

func (g *LastStanding) handleTouchEvents() {
	// Initialize touch tracking maps if needed
	if g.touchStartX == nil {
		g.touchStartX = make(map[ebiten.TouchID]float64)
		g.touchStartY = make(map[ebiten.TouchID]float64)
	}

	// Handle touch start
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		g.touchStartX[id] = float64(x)
		g.touchStartY[id] = float64(y)
	}
	if n := len(g.touchStartX); n > g.touchPeak {
		g.touchPeak = n
	}

	// A single finger lifted close to where it landed is a tap
	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		startX, okX := g.touchStartX[id]
		startY, okY := g.touchStartY[id]
		delete(g.touchStartX, id)
		delete(g.touchStartY, id)
		if !okX || !okY {
			continue
		}

		x, y := inpututil.TouchPositionInPreviousTick(id)
		if g.touchPeak == 1 && distance(startX, startY, float64(x), float64(y)) <= tapSlop {
			g.primaryAction()
		}
	}

	if len(g.touchStartX) == 0 {
		g.touchPeak = 0
	}
}

// Helper function to calculate distance between two points
func distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}
