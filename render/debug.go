package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/OpticalFlyer/laststanding/match"
)

// DrawDebug overlays round state, frame rates and a crosshair at the
// viewport center.
func DrawDebug(screen *ebiten.Image, m *match.Controller) {
	redColor := color.RGBA{R: 255, A: 255}
	strokeWidth := float32(1.0)

	w, h := m.Viewport()
	centerX := float32(w / 2)
	centerY := float32(h / 2)
	crosshairSize := float32(10.0)

	vector.StrokeLine(screen,
		centerX-crosshairSize, centerY,
		centerX+crosshairSize, centerY,
		strokeWidth, redColor, false)
	vector.StrokeLine(screen,
		centerX, centerY-crosshairSize,
		centerX, centerY+crosshairSize,
		strokeWidth, redColor, false)

	// Outline every cell box so layout problems are visible.
	for _, it := range m.Visible() {
		vector.StrokeRect(screen,
			float32(it.TX-float64(it.BoxW)/2), float32(it.TY-float64(it.BoxH)/2),
			float32(it.BoxW), float32(it.BoxH),
			strokeWidth, redColor, false)
	}

	winner := "-"
	if wi := m.Winner(); wi != nil {
		winner = wi.Asset.Name
	}
	debugText := fmt.Sprintf("Round: %d\nPhase: %s\nActive: %d/%d\nWinner: %s\nViewport: %dx%d\nFPS: %.2f TPS: %.2f",
		m.Round(), m.Phase(), m.Active(), len(m.Participants()), winner,
		w, h, ebiten.ActualFPS(), ebiten.ActualTPS())
	ebitenutil.DebugPrint(screen, debugText)
}
