package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const buttonHeight = 20.0

// Button calls OnClick once per press.
type Button struct {
	Label   string
	OnClick func()
	Style   Style

	area box
}

func NewButton(label string, onClick func()) *Button {
	return &Button{Label: label, OnClick: onClick, Style: DefaultStyle}
}

func (b *Button) Place(x, y, w float64) {
	b.area = box{X: x, Y: y, W: w, H: buttonHeight}
}

func (b *Button) Height() float64 { return buttonHeight }

func (b *Button) Update() {
	if b.OnClick != nil && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && b.area.hovered() {
		b.OnClick()
	}
}

func (b *Button) Draw(screen *ebiten.Image) {
	a := b.area
	bg := b.Style.Track
	if a.hovered() {
		bg = b.Style.Hover
	}
	vector.FillRect(screen, float32(a.X), float32(a.Y), float32(a.W), float32(a.H), bg, true)
	vector.StrokeRect(screen, float32(a.X), float32(a.Y), float32(a.W), float32(a.H), 1, b.Style.Fill, true)
	ebitenutil.DebugPrintAt(screen, b.Label, int(a.X+6), int(a.Y+3))
}
