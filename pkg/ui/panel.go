package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	panelPadding = 8.0
	titleHeight  = 22.0
	headerHeight = 20.0
	rowGap       = 4.0
)

// row is either a section header or a widget.
type row struct {
	header string
	widget Widget
}

// Panel stacks headers and widgets in a box whose height follows its content.
type Panel struct {
	Title string
	X, Y  float64
	Width float64
	Style Style

	rows []row
}

func NewPanel(title string, x, y, width float64) *Panel {
	return &Panel{Title: title, X: x, Y: y, Width: width, Style: DefaultStyle}
}

// Header starts a new section.
func (p *Panel) Header(title string) {
	p.rows = append(p.rows, row{header: title})
}

// Add appends w below everything added so far.
func (p *Panel) Add(w Widget) {
	p.rows = append(p.rows, row{widget: w})
	p.layout()
}

// Height is the height of the whole panel.
func (p *Panel) Height() float64 {
	h := titleHeight + panelPadding
	for _, r := range p.rows {
		if r.widget == nil {
			h += headerHeight + rowGap
			continue
		}
		h += r.widget.Height() + rowGap
	}
	return h
}

func (p *Panel) layout() {
	y := p.Y + titleHeight
	for _, r := range p.rows {
		if r.widget == nil {
			y += headerHeight + rowGap
			continue
		}
		r.widget.Place(p.X+panelPadding, y, p.Width-2*panelPadding)
		y += r.widget.Height() + rowGap
	}
}

func (p *Panel) Update() {
	for _, r := range p.rows {
		if r.widget != nil {
			r.widget.Update()
		}
	}
}

func (p *Panel) Draw(screen *ebiten.Image) {
	h := float32(p.Height())
	vector.FillRect(screen, float32(p.X), float32(p.Y), float32(p.Width), h, p.Style.Background, true)
	vector.StrokeRect(screen, float32(p.X), float32(p.Y), float32(p.Width), h, 2, p.Style.Border, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+panelPadding), int(p.Y+4))

	y := p.Y + titleHeight
	for _, r := range p.rows {
		if r.widget == nil {
			vector.FillRect(screen, float32(p.X+4), float32(y), float32(p.Width-8), headerHeight, p.Style.Header, true)
			ebitenutil.DebugPrintAt(screen, r.header, int(p.X+panelPadding), int(y+3))
			y += headerHeight + rowGap
			continue
		}
		r.widget.Draw(screen)
		y += r.widget.Height() + rowGap
	}
}
