package game

import (
	"math"

	"github.com/Garsondee/skyline/internal/iso"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	zoomMin = 0.5
	zoomMax = 3.0
)

// Camera maps world-screen space (iso.ToScreen output) into the window.
// X and Y are the world point shown at the viewport centre.
type Camera struct {
	X, Y  float64
	Zoom  float64
	ViewW float64
	ViewH float64
}

// NewCamera centres a viewW×viewH viewport on the world origin.
func NewCamera(viewW, viewH float64) Camera {
	return Camera{Zoom: 1, ViewW: viewW, ViewH: viewH}
}

// GeoM is the world → window transform:
//
//	screen = (world - cam) * zoom + view/2
func (c Camera) GeoM() ebiten.GeoM {
	var m ebiten.GeoM
	m.Translate(-c.X, -c.Y)
	m.Scale(c.Zoom, c.Zoom)
	m.Translate(c.ViewW/2, c.ViewH/2)
	return m
}

// ScreenToWorld inverts GeoM for pointer picking.
func (c Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	return (sx-c.ViewW/2)/c.Zoom + c.X, (sy-c.ViewH/2)/c.Zoom + c.Y
}

// WorldBounds is the world-screen rectangle currently in view. Recompute it
// after every pan or zoom.
func (c Camera) WorldBounds() iso.Bounds {
	hw := c.ViewW / 2 / c.Zoom
	hh := c.ViewH / 2 / c.Zoom
	return iso.Bounds{MinX: c.X - hw, MaxX: c.X + hw, MinY: c.Y - hh, MaxY: c.Y + hh}
}

// Pan moves the camera by a window-pixel delta.
func (c *Camera) Pan(dx, dy float64) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
}

// ZoomBy multiplies zoom by f, clamped to the supported range.
func (c *Camera) ZoomBy(f float64) {
	c.Zoom = math.Max(zoomMin, math.Min(zoomMax, c.Zoom*f))
}

// CentreOn points the camera at a world-screen position.
func (c *Camera) CentreOn(p iso.ScreenCoord) {
	c.X, c.Y = p.X, p.Y
}
