package layout

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidLayout is returned when the viewport cannot hold the grid.
var ErrInvalidLayout = errors.New("invalid layout")

// Cell is one grid slot: its integer box size and its fractional center.
type Cell struct {
	W, H int
	X, Y float64
}

// Capacity returns the number of slots in a cols x rows grid.
func Capacity(cols, rows int) int {
	if cols <= 0 || rows <= 0 {
		return 0
	}
	return cols * rows
}

// Compute places a cols x rows grid inside the viewport.
//
// Parameters:
//   - viewportW, viewportH: viewport size in pixels
//   - cols, rows: grid dimensions
//   - edgePadding: space between the grid and the viewport border
//   - cellPadding: space between neighbouring cells
//
// Returns one Cell per slot in row-major order (index = row*cols + col).
// Cell sizes are floored; centers keep their fractional part so rows and
// columns do not drift.
func Compute(viewportW, viewportH, cols, rows int, edgePadding, cellPadding float64) ([]Cell, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: grid %dx%d", ErrInvalidLayout, cols, rows)
	}

	usableW := float64(viewportW) - edgePadding*2
	usableH := float64(viewportH) - edgePadding*2
	if usableW <= 0 || usableH <= 0 {
		return nil, fmt.Errorf("%w: usable area %.1fx%.1f in viewport %dx%d",
			ErrInvalidLayout, usableW, usableH, viewportW, viewportH)
	}

	cellW := (usableW - cellPadding*float64(cols-1)) / float64(cols)
	cellH := (usableH - cellPadding*float64(rows-1)) / float64(rows)
	if cellW < 1 || cellH < 1 {
		return nil, fmt.Errorf("%w: cell %.2fx%.2f smaller than one pixel",
			ErrInvalidLayout, cellW, cellH)
	}

	gridW := cellW*float64(cols) + cellPadding*float64(cols-1)
	gridH := cellH*float64(rows) + cellPadding*float64(rows-1)

	startX := edgePadding + (usableW-gridW)/2
	startY := edgePadding + (usableH-gridH)/2

	w := int(math.Floor(cellW))
	h := int(math.Floor(cellH))

	cells := make([]Cell, 0, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			cells = append(cells, Cell{
				W: w,
				H: h,
				X: startX + float64(col)*(cellW+cellPadding) + cellW/2,
				Y: startY + float64(row)*(cellH+cellPadding) + cellH/2,
			})
		}
	}
	return cells, nil
}

// Center returns the viewport center.
func Center(viewportW, viewportH int) (x, y float64) {
	return float64(viewportW) / 2, float64(viewportH) / 2
}
