// Package tooltip models the floating label shown next to a hovered marker.
package tooltip

import (
	"html"

	"github.com/paulmach/orb"
)

// State is the tooltip as it would appear on screen.
type State struct {
	Content  string    `json:"content"`
	Position orb.Point `json:"position"`
	Visible  bool      `json:"visible"`
}

// Controller shows and hides a single tooltip. Last call wins.
// The zero value is a hidden, empty tooltip.
type Controller struct {
	state State
}

// Show moves the tooltip to pos, replaces its content and makes it visible.
func (c *Controller) Show(pos orb.Point, content string) {
	c.state = State{Position: pos, Content: content, Visible: true}
}

// Hide makes the tooltip invisible. Position and content are kept.
func (c *Controller) Hide() {
	c.state.Visible = false
}

// State returns the current tooltip state.
func (c *Controller) State() State {
	return c.state
}

// Content builds the label markup for a place. Both values are HTML escaped.
func Content(place, feddans string) string {
	return "<strong>" + html.EscapeString(place) + "</strong><br/>feddans: " + html.EscapeString(feddans)
}
