package item

import (
	"math"
	"time"
)

// ReferenceFrame is the frame duration the fixed rates are calibrated for.
const ReferenceFrame = time.Second / 60

// Smoothing turns a per-frame easing rate into the fraction of the remaining
// distance to cover for one update.
type Smoothing interface {
	// Blend returns the fraction in [0, 1] to move toward the target.
	Blend(rate float64, dt time.Duration) float64
	// Frames returns how many reference frames dt stands for.
	Frames(dt time.Duration) float64
}

// FrameSmoothing applies the rate once per update regardless of dt, so the
// animation speed follows the frame rate.
type FrameSmoothing struct{}

func (FrameSmoothing) Blend(rate float64, _ time.Duration) float64 {
	return clamp01(rate)
}

func (FrameSmoothing) Frames(time.Duration) float64 {
	return 1
}

// TimeSmoothing scales the rate by elapsed time so the easing looks the same
// at any frame rate.
type TimeSmoothing struct {
	Reference time.Duration
}

func (s TimeSmoothing) Blend(rate float64, dt time.Duration) float64 {
	rate = clamp01(rate)
	n := s.Frames(dt)
	if n <= 0 {
		return 0
	}
	return 1 - math.Pow(1-rate, n)
}

func (s TimeSmoothing) Frames(dt time.Duration) float64 {
	ref := s.Reference
	if ref <= 0 {
		ref = ReferenceFrame
	}
	if dt <= 0 {
		return 0
	}
	return float64(dt) / float64(ref)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
