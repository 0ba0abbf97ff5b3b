package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	sliderLabelHeight = 14.0
	sliderTrackHeight = 10.0
)

// Slider picks a value in [Min, Max] by clicking or dragging on its track.
type Slider struct {
	Label    string
	Min, Max float64
	Style    Style

	value   float64
	track   box
	changed bool
}

// NewSlider creates a slider with value clamped into [min, max].
func NewSlider(label string, min, max, value float64) *Slider {
	s := &Slider{Label: label, Min: min, Max: max, Style: DefaultStyle}
	s.value = s.clamp(value)
	return s
}

func (s *Slider) clamp(v float64) float64 {
	return min(max(v, s.Min), s.Max)
}

func (s *Slider) Value() float64 { return s.value }

// SetValue moves the slider, marking it changed when the value differs.
func (s *Slider) SetValue(v float64) {
	v = s.clamp(v)
	if v != s.value {
		s.value = v
		s.changed = true
	}
}

// TakeChanged reports whether the value moved since the last call.
func (s *Slider) TakeChanged() bool {
	c := s.changed
	s.changed = false
	return c
}

func (s *Slider) Place(x, y, w float64) {
	s.track = box{X: x, Y: y + sliderLabelHeight, W: w, H: sliderTrackHeight}
}

func (s *Slider) Height() float64 { return sliderLabelHeight + sliderTrackHeight }

func (s *Slider) Update() {
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if s.track.contains(mx, my) && s.track.W > 0 {
		s.SetValue(s.Min + (float64(mx)-s.track.X)/s.track.W*(s.Max-s.Min))
	}
}

func (s *Slider) Draw(screen *ebiten.Image) {
	t := s.track
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  %.1f", s.Label, s.value), int(t.X), int(t.Y-sliderLabelHeight))
	vector.FillRect(screen, float32(t.X), float32(t.Y), float32(t.W), float32(t.H), s.Style.Track, true)
	ratio := 0.0
	if s.Max > s.Min {
		ratio = (s.value - s.Min) / (s.Max - s.Min)
	}
	vector.FillRect(screen, float32(t.X), float32(t.Y), float32(t.W*ratio), float32(t.H), s.Style.Fill, true)
}
