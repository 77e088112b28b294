package geo

import (
	"strings"
	"testing"

	"github.com/paulmach/orb"
)

// identity-ish projection: scale chosen so one degree of longitude is roughly 1px
func testPath() Path {
	return NewPath(NewMercator().Configure(180/3.141592653589793, orb.Point{0, 0}, orb.Point{0, 0}))
}

func TestBoundsNil(t *testing.T) {
	if b := testPath().Bounds(nil); b != (orb.Bound{}) {
		t.Fatalf("expected zero bound, got %v", b)
	}
}

func TestBoundsDoesNotMutateInput(t *testing.T) {
	poly := orb.Polygon{{{10, 0}, {20, 0}, {20, 5}, {10, 0}}}
	b := testPath().Bounds(poly)

	if poly[0][0] != (orb.Point{10, 0}) {
		t.Fatalf("input geometry was projected in place: %v", poly)
	}
	if !near(b.Min[0], 10) || !near(b.Max[0], 20) {
		t.Fatalf("unexpected x extent %v", b)
	}
	if b.Min[1] >= 0 || !near(b.Max[1], 0) {
		t.Fatalf("unexpected y extent %v", b)
	}
}

func TestDPolygon(t *testing.T) {
	poly := orb.Polygon{{{0, 0}, {10, 0}, {10, 0}, {0, 0}}}
	d := testPath().D(poly)
	if d != "M0,0L10,0L10,0L0,0Z" {
		t.Fatalf("unexpected path %q", d)
	}
}

func TestDMultiPolygonHasOneSubpathPerRing(t *testing.T) {
	mp := orb.MultiPolygon{
		{{{0, 0}, {1, 0}, {0, 0}}, {{0, 0}, {1, 0}, {0, 0}}},
		{{{5, 0}, {6, 0}, {5, 0}}},
	}
	d := testPath().D(mp)
	if got := strings.Count(d, "M"); got != 3 {
		t.Fatalf("expected 3 subpaths, got %d in %q", got, d)
	}
	if got := strings.Count(d, "Z"); got != 3 {
		t.Fatalf("expected 3 closes, got %d in %q", got, d)
	}
}

func TestDLineStringIsOpen(t *testing.T) {
	d := testPath().D(orb.LineString{{0, 0}, {3, 0}})
	if d != "M0,0L3,0" {
		t.Fatalf("unexpected path %q", d)
	}
}

func TestDPointDrawsCircle(t *testing.T) {
	d := testPath().D(orb.Point{0, 0})
	if d != "M0,0m0,4.5a4.5,4.5 0 1,1 0,-9a4.5,4.5 0 1,1 0,9Z" {
		t.Fatalf("unexpected path %q", d)
	}
}

func TestDUnknownGeometryIsEmpty(t *testing.T) {
	if d := testPath().D(nil); d != "" {
		t.Fatalf("expected empty path, got %q", d)
	}
}
