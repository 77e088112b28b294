package interact

import (
	"github.com/woozymasta/feddanmap/internal/render"
	"github.com/woozymasta/feddanmap/internal/tooltip"

	"github.com/paulmach/orb"
	"github.com/rs/zerolog/log"
)

// Session tracks which marker is hovered and keeps the tooltip in sync.
// Each marker is either idle or hovered; at most one is hovered at a time.
type Session struct {
	tip     *tooltip.Controller
	index   *Index
	hovered int
	offsetY float64
}

// NewSession binds a tooltip to the markers in idx. offsetY lifts the tooltip
// above the pointer.
func NewSession(tip *tooltip.Controller, idx *Index, offsetY float64) *Session {
	return &Session{tip: tip, index: idx, hovered: -1, offsetY: offsetY}
}

// Enter handles the pointer entering marker m at page position (pageX, pageY).
func (s *Session) Enter(m render.Marker, pageX, pageY float64) {
	s.hovered = m.Index
	s.tip.Show(orb.Point{pageX, pageY - s.offsetY}, m.Tooltip)

	log.Trace().
		Int("marker", m.Index).
		Str("place", m.Record.Place).
		Msg("Marker hovered")
}

// Leave handles the pointer leaving the hovered marker.
func (s *Session) Leave() {
	if s.hovered >= 0 {
		log.Trace().Int("marker", s.hovered).Msg("Marker left")
	}
	s.hovered = -1
	s.tip.Hide()
}

// Hovered returns the index of the hovered marker.
func (s *Session) Hovered() (int, bool) {
	return s.hovered, s.hovered >= 0
}

// Move handles pointer motion: at canvas position (x, y), page position (pageX, pageY).
// Moving within the hovered marker does not move the tooltip.
func (s *Session) Move(x, y, pageX, pageY float64) {
	m, ok := s.index.Hit(x, y)
	switch {
	case ok && m.Index == s.hovered:
		return
	case ok:
		if s.hovered >= 0 {
			s.Leave()
		}
		s.Enter(m, pageX, pageY)
	case s.hovered >= 0:
		s.Leave()
	}
}

// Tooltip returns the current tooltip state.
func (s *Session) Tooltip() tooltip.State {
	return s.tip.State()
}
