package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const checkboxSize = 14.0

// Checkbox toggles a boolean when its box or its label is clicked.
type Checkbox struct {
	Label string
	Style Style

	checked bool
	area    box
	changed bool
}

func NewCheckbox(label string, checked bool) *Checkbox {
	return &Checkbox{Label: label, checked: checked, Style: DefaultStyle}
}

func (c *Checkbox) Checked() bool { return c.checked }

// SetChecked sets the state, marking it changed when it differs.
func (c *Checkbox) SetChecked(v bool) {
	if v != c.checked {
		c.checked = v
		c.changed = true
	}
}

// TakeChanged reports whether the state flipped since the last call.
func (c *Checkbox) TakeChanged() bool {
	ch := c.changed
	c.changed = false
	return ch
}

func (c *Checkbox) Place(x, y, w float64) {
	c.area = box{X: x, Y: y, W: w, H: checkboxSize}
}

func (c *Checkbox) Height() float64 { return checkboxSize }

func (c *Checkbox) Update() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && c.area.hovered() {
		c.SetChecked(!c.checked)
	}
}

func (c *Checkbox) Draw(screen *ebiten.Image) {
	x, y := float32(c.area.X), float32(c.area.Y)
	vector.StrokeRect(screen, x, y, checkboxSize, checkboxSize, 2, c.Style.Fill, true)
	if c.checked {
		vector.FillRect(screen, x+3, y+3, checkboxSize-6, checkboxSize-6, c.Style.Accent, true)
	}
	ebitenutil.DebugPrintAt(screen, c.Label, int(c.area.X+checkboxSize+6), int(c.area.Y-1))
}
