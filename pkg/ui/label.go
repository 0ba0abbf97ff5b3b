package ui

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const lineHeight = 14.0

// Label shows text computed every frame. Lines are split on "\n".
type Label struct {
	Text  func() string
	Lines int // rows reserved in the panel

	x, y float64
}

func NewLabel(lines int, text func() string) *Label {
	return &Label{Text: text, Lines: max(lines, 1)}
}

func (l *Label) Place(x, y, _ float64) { l.x, l.y = x, y }

func (l *Label) Height() float64 { return float64(l.Lines) * lineHeight }

func (l *Label) Update() {}

func (l *Label) Draw(screen *ebiten.Image) {
	if l.Text == nil {
		return
	}
	lines := strings.SplitN(l.Text(), "\n", l.Lines+1)
	for i, line := range lines[:min(len(lines), l.Lines)] {
		ebitenutil.DebugPrintAt(screen, line, int(l.x), int(l.y)+i*int(lineHeight))
	}
}
