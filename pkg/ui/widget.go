// Package ui holds the few ebiten widgets the control panel is made of.
// Widgets are laid out by a Panel, one row each, top to bottom.
package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Widget is one row of a Panel.
type Widget interface {
	// Place moves the widget to x, y and gives it width w.
	Place(x, y, w float64)
	Height() float64
	Update()
	Draw(screen *ebiten.Image)
}

// Style is shared by every widget of a panel.
type Style struct {
	Background color.RGBA
	Border     color.RGBA
	Header     color.RGBA
	Track      color.RGBA
	Fill       color.RGBA
	Accent     color.RGBA
	Hover      color.RGBA
}

var DefaultStyle = Style{
	Background: color.RGBA{R: 40, G: 40, B: 45, A: 230},
	Border:     color.RGBA{R: 100, G: 100, B: 110, A: 255},
	Header:     color.RGBA{R: 60, G: 60, B: 70, A: 255},
	Track:      color.RGBA{R: 80, G: 80, B: 80, A: 255},
	Fill:       color.RGBA{R: 200, G: 200, B: 200, A: 255},
	Accent:     color.RGBA{R: 100, G: 200, B: 100, A: 255},
	Hover:      color.RGBA{R: 100, G: 150, B: 220, A: 255},
}

// box is the screen rectangle of a widget.
type box struct {
	X, Y, W, H float64
}

func (b box) contains(x, y int) bool {
	fx, fy := float64(x), float64(y)
	return fx >= b.X && fx <= b.X+b.W && fy >= b.Y && fy <= b.Y+b.H
}

func (b box) hovered() bool {
	return b.contains(ebiten.CursorPosition())
}
