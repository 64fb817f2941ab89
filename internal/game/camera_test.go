package game

import (
	"math"
	"testing"
)

func TestCamera_ScreenToWorldInvertsGeoM(t *testing.T) {
	c := NewCamera(800, 600)
	c.X, c.Y = 120, -40
	c.ZoomBy(1.5)
	m := c.GeoM()
	for _, p := range [][2]float64{{0, 0}, {-300, 250}, {77.5, -12.25}} {
		sx, sy := m.Apply(p[0], p[1])
		wx, wy := c.ScreenToWorld(sx, sy)
		if math.Abs(wx-p[0]) > 1e-9 || math.Abs(wy-p[1]) > 1e-9 {
			t.Fatalf("round trip %v -> (%.4f,%.4f)", p, wx, wy)
		}
	}
}

func TestCamera_WorldBoundsShrinkWithZoom(t *testing.T) {
	c := NewCamera(800, 600)
	b1 := c.WorldBounds()
	c.ZoomBy(2)
	b2 := c.WorldBounds()
	if b2.MaxX-b2.MinX != (b1.MaxX-b1.MinX)/2 {
		t.Fatalf("expected half width, got %.2f vs %.2f", b2.MaxX-b2.MinX, b1.MaxX-b1.MinX)
	}
}

func TestCamera_ZoomClamped(t *testing.T) {
	c := NewCamera(100, 100)
	c.ZoomBy(100)
	if c.Zoom != zoomMax {
		t.Fatalf("expected zoom %.1f, got %.2f", zoomMax, c.Zoom)
	}
	c.ZoomBy(0.0001)
	if c.Zoom != zoomMin {
		t.Fatalf("expected zoom %.1f, got %.2f", zoomMin, c.Zoom)
	}
}
