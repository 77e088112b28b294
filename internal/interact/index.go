// Package interact drives the tooltip from pointer events over the markers.
package interact

import (
	"github.com/woozymasta/feddanmap/internal/render"

	"github.com/tidwall/rtree"
)

// Index finds markers under a canvas position.
type Index struct {
	tree    rtree.RTreeG[int]
	markers []render.Marker
}

// NewIndex indexes the markers by the bounding box of their circle.
func NewIndex(markers []render.Marker) *Index {
	idx := &Index{markers: markers}
	for i, m := range markers {
		idx.tree.Insert(
			[2]float64{m.X - m.R, m.Y - m.R},
			[2]float64{m.X + m.R, m.Y + m.R},
			i,
		)
	}
	return idx
}

// Len returns the number of indexed markers.
func (idx *Index) Len() int {
	return idx.tree.Len()
}

// Hit returns the topmost marker whose circle contains (x, y).
// Markers drawn later are on top.
func (idx *Index) Hit(x, y float64) (render.Marker, bool) {
	best := -1
	idx.tree.Search(
		[2]float64{x, y},
		[2]float64{x, y},
		func(_, _ [2]float64, i int) bool {
			if i > best && idx.markers[i].Contains(x, y) {
				best = i
			}
			return true
		},
	)
	if best < 0 {
		return render.Marker{}, false
	}
	return idx.markers[best], true
}
