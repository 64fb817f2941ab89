package iso

import (
	"math"
	"testing"
)

func TestToScreen_ConcreteExample(t *testing.T) {
	s := ToScreen(GridCoord{X: 2, Y: -2})
	if s.X != 128 || s.Y != 0 {
		t.Fatalf("expected (128,0), got (%.2f,%.2f)", s.X, s.Y)
	}
}

func TestToScreen_ElevationMovesStraightUp(t *testing.T) {
	flat := ToScreen(GridCoord{X: 3, Y: 1})
	raised := ToScreen(GridCoord{X: 3, Y: 1, Z: 2})
	if raised.X != flat.X {
		t.Fatalf("elevation shifted x: %.2f -> %.2f", flat.X, raised.X)
	}
	if flat.Y-raised.Y != 2*DefaultTileH {
		t.Fatalf("expected lift of %d px, got %.2f", 2*DefaultTileH, flat.Y-raised.Y)
	}
}

func TestToGrid_RoundTripIntegerCells(t *testing.T) {
	for x := -12; x <= 12; x++ {
		for y := -12; y <= 12; y++ {
			g := GridCoord{X: x, Y: y}
			got := ToGrid(ToScreen(g))
			if !got.Equal(g) {
				t.Fatalf("round trip %v -> %v", g, got)
			}
		}
	}
}

func TestToGrid_FloorsInsideCell(t *testing.T) {
	// Centre of cell (4,1): top corner plus half a tile down.
	top := ToScreen(GridCoord{X: 4, Y: 1})
	got := ToGrid(ScreenCoord{X: top.X, Y: top.Y + DefaultTileH/2})
	if got.X != 4 || got.Y != 1 || got.Z != 0 {
		t.Fatalf("expected (4,1,0), got %v", got)
	}
	// Slightly above the top corner belongs to the previous cells.
	got = ToGrid(ScreenCoord{X: top.X, Y: top.Y - 0.5})
	if got.X != 3 || got.Y != 0 {
		t.Fatalf("expected floor to (3,0), got %v", got)
	}
}

func TestToGrid_IgnoresElevation(t *testing.T) {
	got := ToGrid(ToScreen(GridCoord{X: 1, Y: 1, Z: 3}))
	if got.Z != 0 {
		t.Fatalf("expected z=0, got %d", got.Z)
	}
}

func TestZIndex_ConcreteExamples(t *testing.T) {
	if z := ZIndex(GridCoord{X: 8, Y: -8}); z != 0 {
		t.Fatalf("expected 0, got %v", z)
	}
	if z := ZIndex(GridCoord{X: 10, Y: 6}); z != 16 {
		t.Fatalf("expected 16, got %v", z)
	}
}

func TestZIndex_MonotonicAcrossElevation(t *testing.T) {
	for sum := -20; sum < 20; sum++ {
		low := GridCoord{X: sum, Y: 0, Z: 499}
		high := GridCoord{X: sum + 1, Y: 0, Z: 0}
		if ZIndex(high) <= ZIndex(low) {
			t.Fatalf("x+y=%d at z=499 overtook x+y=%d", sum, sum+1)
		}
	}
}

func TestZIndex_ElevationBreaksTies(t *testing.T) {
	a := GridCoord{X: 2, Y: 3, Z: 1}
	b := GridCoord{X: 3, Y: 2, Z: 0}
	if ZIndex(a) <= ZIndex(b) {
		t.Fatal("higher elevation should sort later on equal x+y")
	}
}

func TestInViewport_InclusiveEdges(t *testing.T) {
	g := GridCoord{X: 2, Y: -2}
	b := Bounds{MinX: 128, MaxX: 128, MinY: 0, MaxY: 0}
	if !InViewport(g, b) {
		t.Fatal("boundary-exact point should be inside")
	}
	b.MaxX = 127.999
	b.MinX = 0
	if InViewport(g, b) {
		t.Fatal("point past max x should be outside")
	}
}

func TestInViewport_MatchesContains(t *testing.T) {
	b := Bounds{MinX: -100, MaxX: 100, MinY: -50, MaxY: 50}
	for x := -6; x <= 6; x++ {
		for y := -6; y <= 6; y++ {
			g := GridCoord{X: x, Y: y}
			if InViewport(g, b) != b.Contains(ToScreen(g)) {
				t.Fatalf("mismatch at %v", g)
			}
		}
	}
}

func TestGridDistanceToScreen(t *testing.T) {
	want := 3 * math.Sqrt(32*32+16*16)
	if got := GridDistanceToScreen(3); math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %.6f, got %.6f", want, got)
	}
	if got := GridDistanceToScreen(1); math.Abs(got-35.77708763999664) > 1e-9 {
		t.Fatalf("unexpected unit distance %.9f", got)
	}
}

func TestNewProjection_FallsBackOnBadSize(t *testing.T) {
	p := NewProjection(0, -4)
	if p != Default {
		t.Fatalf("expected default projection, got %+v", p)
	}
}

func TestTileCorners_Diamond(t *testing.T) {
	c := Default.TileCorners(GridCoord{})
	want := [4]ScreenCoord{{0, 0}, {32, 16}, {0, 32}, {-32, 16}}
	if c != want {
		t.Fatalf("expected %v, got %v", want, c)
	}
}
