package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlider(t *testing.T) {
	s := NewSlider("Max Speed", 10, 400, 1000)
	assert.Equal(t, 400.0, s.Value())
	assert.False(t, s.TakeChanged())

	s.SetValue(120)
	assert.Equal(t, 120.0, s.Value())
	assert.True(t, s.TakeChanged())
	assert.False(t, s.TakeChanged())

	s.SetValue(120)
	assert.False(t, s.TakeChanged(), "same value is not a change")
	s.SetValue(-5)
	assert.Equal(t, 10.0, s.Value())
}

func TestCheckbox(t *testing.T) {
	c := NewCheckbox("Debug", false)
	c.SetChecked(false)
	assert.False(t, c.TakeChanged())

	c.SetChecked(true)
	assert.True(t, c.Checked())
	assert.True(t, c.TakeChanged())
	assert.False(t, c.TakeChanged())
}

func TestPanel_Layout(t *testing.T) {
	p := NewPanel("Automata", 10, 20, 200)
	p.Header("Boids")
	s := NewSlider("Max Speed", 0, 1, 0)
	p.Add(s)
	c := NewCheckbox("Wrap", true)
	p.Add(c)
	b := NewButton("Respawn", nil)
	p.Add(b)

	// title, header, then one row per widget
	y := 20 + titleHeight + headerHeight + rowGap
	assert.Equal(t, box{X: 18, Y: y + sliderLabelHeight, W: 184, H: sliderTrackHeight}, s.track)
	y += s.Height() + rowGap
	assert.Equal(t, box{X: 18, Y: y, W: 184, H: checkboxSize}, c.area)
	y += c.Height() + rowGap
	assert.Equal(t, box{X: 18, Y: y, W: 184, H: buttonHeight}, b.area)

	assert.Equal(t, y+buttonHeight+rowGap+panelPadding-20, p.Height())
}

func TestBox_Contains(t *testing.T) {
	b := box{X: 10, Y: 10, W: 20, H: 5}
	assert.True(t, b.contains(10, 10))
	assert.True(t, b.contains(30, 15))
	assert.False(t, b.contains(31, 12))
	assert.False(t, b.contains(15, 9))
}

func TestLabel(t *testing.T) {
	l := NewLabel(0, func() string { return "evading 3" })
	assert.Equal(t, 1, l.Lines)
	assert.Equal(t, lineHeight, l.Height())
}
