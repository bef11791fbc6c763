package physics

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func box(center cp.Vector, w, h, angle float64) []cp.Vector {
	return TransformVertices(nil, CreateBoxVertices(w, h), center, angle)
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func approxVector(a, b cp.Vector) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y)
}

func TestCreateBoxVertices(t *testing.T) {
	got := CreateBoxVertices(4, -2)
	want := []cp.Vector{{X: -2, Y: -1}, {X: 2, Y: -1}, {X: 2, Y: 1}, {X: -2, Y: 1}}
	if len(got) != len(want) {
		t.Fatalf("expected %d vertices, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("vertex %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestTransformVertices(t *testing.T) {
	got := box(cp.Vector{X: 10, Y: 10}, 2, 2, math.Pi/2)
	// A quarter turn maps top-left (-1,-1) to (1,-1).
	if !approxVector(got[0], cp.Vector{X: 11, Y: 9}) {
		t.Fatalf("unexpected rotated vertex %v", got[0])
	}
	var sum cp.Vector
	for _, v := range got {
		sum = sum.Add(v)
	}
	if c := sum.Mult(0.25); !approxVector(c, cp.Vector{X: 10, Y: 10}) {
		t.Fatalf("rotation must keep the center, got %v", c)
	}
}

func TestIntersectPolygons(t *testing.T) {
	tests := []struct {
		name       string
		a, b       cp.Vector
		angleB     float64
		wantOK     bool
		wantNormal cp.Vector
		wantDepth  float64
	}{
		{"overlap_right", cp.Vector{}, cp.Vector{X: 8}, 0, true, cp.Vector{X: 1}, 2},
		{"overlap_left", cp.Vector{X: 8}, cp.Vector{}, 0, true, cp.Vector{X: -1}, 2},
		{"overlap_below", cp.Vector{}, cp.Vector{X: 1, Y: 9}, 0, true, cp.Vector{Y: 1}, 1},
		{"touching", cp.Vector{}, cp.Vector{X: 10}, 0, false, cp.Vector{}, 0},
		{"apart", cp.Vector{}, cp.Vector{X: 30, Y: 30}, 0, false, cp.Vector{}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			va := box(tc.a, 10, 10, 0)
			vb := box(tc.b, 10, 10, tc.angleB)
			ok, n, d := IntersectPolygons(va, tc.a, vb, tc.b)
			if ok != tc.wantOK {
				t.Fatalf("expected ok=%v, got %v", tc.wantOK, ok)
			}
			if !ok {
				return
			}
			if !approxVector(n, tc.wantNormal) || !approx(d, tc.wantDepth) {
				t.Fatalf("expected normal %v depth %v, got %v %v", tc.wantNormal, tc.wantDepth, n, d)
			}
		})
	}
}

func TestIntersectPolygonsNormalPointsAToB(t *testing.T) {
	a := cp.Vector{}
	b := cp.Vector{X: 6, Y: 3}
	ok, n, d := IntersectPolygons(box(a, 10, 10, 0), a, box(b, 10, 10, 0.4), b)
	if !ok {
		t.Fatalf("expected rotated boxes to overlap")
	}
	if n.Dot(b.Sub(a)) <= 0 {
		t.Fatalf("normal %v must point from A to B", n)
	}
	if !approx(n.Length(), 1) || d <= 0 {
		t.Fatalf("expected unit normal and positive depth, got %v %v", n, d)
	}
}

func TestIntersectCircles(t *testing.T) {
	tests := []struct {
		name       string
		a, b       cp.Vector
		wantOK     bool
		wantNormal cp.Vector
		wantDepth  float64
	}{
		{"overlap", cp.Vector{}, cp.Vector{X: 6}, true, cp.Vector{X: 1}, 4},
		{"overlap_up", cp.Vector{}, cp.Vector{Y: -8}, true, cp.Vector{Y: -1}, 2},
		{"coincident", cp.Vector{X: 3, Y: 3}, cp.Vector{X: 3, Y: 3}, true, cp.Vector{X: 1}, 10},
		{"touching", cp.Vector{}, cp.Vector{X: 10}, false, cp.Vector{}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, n, d := IntersectCircles(tc.a, 5, tc.b, 5)
			if ok != tc.wantOK {
				t.Fatalf("expected ok=%v, got %v", tc.wantOK, ok)
			}
			if ok && (!approxVector(n, tc.wantNormal) || !approx(d, tc.wantDepth)) {
				t.Fatalf("expected normal %v depth %v, got %v %v", tc.wantNormal, tc.wantDepth, n, d)
			}
		})
	}
}

func TestIntersectCirclePolygon(t *testing.T) {
	boxCenter := cp.Vector{}
	verts := box(boxCenter, 10, 10, 0)

	tests := []struct {
		name       string
		circle     cp.Vector
		radius     float64
		wantOK     bool
		wantNormal cp.Vector
		wantDepth  float64
	}{
		{"left_of_box", cp.Vector{X: -7}, 3, true, cp.Vector{X: 1}, 1},
		{"above_box", cp.Vector{Y: -6}, 2, true, cp.Vector{Y: 1}, 1},
		{"apart", cp.Vector{X: -20}, 3, false, cp.Vector{}, 0},
		{"center_inside", cp.Vector{X: -4}, 2, true, cp.Vector{X: 1}, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, n, d := IntersectCirclePolygon(tc.circle, tc.radius, verts, boxCenter)
			if ok != tc.wantOK {
				t.Fatalf("expected ok=%v, got %v", tc.wantOK, ok)
			}
			if ok && (!approxVector(n, tc.wantNormal) || !approx(d, tc.wantDepth)) {
				t.Fatalf("expected normal %v depth %v, got %v %v", tc.wantNormal, tc.wantDepth, n, d)
			}
		})
	}
}

func TestFindPolygonContactPoints(t *testing.T) {
	t.Run("edge_edge", func(t *testing.T) {
		c1, c2, count := FindPolygonContactPoints(box(cp.Vector{}, 10, 10, 0), box(cp.Vector{X: 8}, 10, 10, 0))
		if count != 2 {
			t.Fatalf("expected 2 contacts, got %d", count)
		}
		if !approxVector(c1, cp.Vector{X: 3, Y: -5}) || !approxVector(c2, cp.Vector{X: 3, Y: 5}) {
			t.Fatalf("unexpected contacts %v %v", c1, c2)
		}
	})

	t.Run("vertex_edge", func(t *testing.T) {
		// A diamond whose bottom corner hovers just above the box's top face.
		diamond := box(cp.Vector{Y: -6.5}, 2, 2, math.Pi/4)
		c1, _, count := FindPolygonContactPoints(box(cp.Vector{}, 10, 10, 0), diamond)
		if count != 1 {
			t.Fatalf("expected 1 contact, got %d", count)
		}
		if !approxVector(c1, cp.Vector{X: 0, Y: -5}) {
			t.Fatalf("unexpected contact %v", c1)
		}
	})
}

func TestFindCircleContactPoint(t *testing.T) {
	got := FindCircleContactPoint(cp.Vector{X: 1, Y: 1}, 2, cp.Vector{Y: 10})
	if !approxVector(got, cp.Vector{X: 1, Y: 3}) {
		t.Fatalf("expected (1,3), got %v", got)
	}
	if got := FindCircleContactPoint(cp.Vector{}, 2, cp.Vector{}); !approxVector(got, cp.Vector{X: 2}) {
		t.Fatalf("zero direction should use the fallback axis, got %v", got)
	}
}

func TestPointSegmentDistance(t *testing.T) {
	tests := []struct {
		name   string
		p      cp.Vector
		want   cp.Vector
		wantSq float64
	}{
		{"projects_inside", cp.Vector{X: 5, Y: 3}, cp.Vector{X: 5}, 9},
		{"clamps_to_a", cp.Vector{X: -2}, cp.Vector{}, 4},
		{"clamps_to_b", cp.Vector{X: 12, Y: 0}, cp.Vector{X: 10}, 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, sq := PointSegmentDistance(tc.p, cp.Vector{}, cp.Vector{X: 10})
			if !approxVector(got, tc.want) || !approx(sq, tc.wantSq) {
				t.Fatalf("expected %v %v, got %v %v", tc.want, tc.wantSq, got, sq)
			}
		})
	}
}
