// Package iso converts between the cartesian placement grid and the 2:1
// dimetric screen space the dashboard is drawn in.
package iso

import (
	"fmt"
	"math"
)

const (
	// DefaultTileW is the logical pixel width of one ground tile.
	DefaultTileW = 64
	// DefaultTileH is the logical pixel height of one ground tile (2:1 ratio).
	DefaultTileH = 32
	// ElevationWeight biases depth by elevation. It only breaks ties between
	// cells sharing the same x+y; it never overtakes a full grid step for z < 1000.
	ElevationWeight = 0.001
)

// GridCoord is a logical placement cell. Z is elevation.
type GridCoord struct {
	X, Y, Z int
}

// Equal reports whether both coordinates name the same cell and elevation.
func (g GridCoord) Equal(o GridCoord) bool {
	return g.X == o.X && g.Y == o.Y && g.Z == o.Z
}

// Add returns g shifted by the given cell deltas.
func (g GridCoord) Add(dx, dy, dz int) GridCoord {
	return GridCoord{X: g.X + dx, Y: g.Y + dy, Z: g.Z + dz}
}

func (g GridCoord) String() string {
	return fmt.Sprintf("(%d, %d, %d)", g.X, g.Y, g.Z)
}

// ScreenCoord is a pixel-space position. Always derived from a GridCoord.
type ScreenCoord struct {
	X, Y float64
}

// Bounds is an inclusive screen-space rectangle.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Contains reports whether s lies inside b, edges included.
func (b Bounds) Contains(s ScreenCoord) bool {
	return s.X >= b.MinX && s.X <= b.MaxX && s.Y >= b.MinY && s.Y <= b.MaxY
}

// Grow returns b expanded by m pixels on every side.
func (b Bounds) Grow(m float64) Bounds {
	return Bounds{MinX: b.MinX - m, MaxX: b.MaxX + m, MinY: b.MinY - m, MaxY: b.MaxY + m}
}

// Projection holds the tile geometry. The zero value is not usable; use
// Default or NewProjection.
type Projection struct {
	TileW float64
	TileH float64
}

// Default is the 64x32 projection the dashboard uses.
var Default = Projection{TileW: DefaultTileW, TileH: DefaultTileH}

// NewProjection returns a projection for the given tile size. Non-positive
// sizes fall back to the defaults.
func NewProjection(tileW, tileH float64) Projection {
	if tileW <= 0 {
		tileW = DefaultTileW
	}
	if tileH <= 0 {
		tileH = DefaultTileH
	}
	return Projection{TileW: tileW, TileH: tileH}
}

func (p Projection) halfW() float64 { return p.TileW / 2 }
func (p Projection) halfH() float64 { return p.TileH / 2 }

// ToScreen projects a grid cell to the screen position of its top corner.
// Elevation moves the point straight up. No rounding is applied.
func (p Projection) ToScreen(g GridCoord) ScreenCoord {
	x, y, z := float64(g.X), float64(g.Y), float64(g.Z)
	return ScreenCoord{
		X: (x - y) * p.halfW(),
		Y: (x+y)*p.halfH() - z*p.TileH,
	}
}

// ToGrid inverts ToScreen for pointer picking. The result is floored to the
// containing cell; elevation cannot be recovered and is always 0.
func (p Projection) ToGrid(s ScreenCoord) GridCoord {
	u := s.X / p.halfW()
	v := s.Y / p.halfH()
	return GridCoord{
		X: int(math.Floor((u + v) / 2)),
		Y: int(math.Floor((v - u) / 2)),
	}
}

// ZIndex is the painter's-algorithm depth of a cell: larger draws later.
func (p Projection) ZIndex(g GridCoord) float64 {
	return float64(g.X+g.Y) + float64(g.Z)*ElevationWeight
}

// InViewport reports whether the projected cell lies inside b. Call it again
// after every camera change; the answer is never cached.
func (p Projection) InViewport(g GridCoord, b Bounds) bool {
	return b.Contains(p.ToScreen(g))
}

// GridDistanceToScreen converts a straight-line grid distance to the pixel
// length of one projected tile step scaled by d.
func (p Projection) GridDistanceToScreen(d float64) float64 {
	return d * math.Hypot(p.halfW(), p.halfH())
}

// Offset projects fractional grid deltas relative to an origin, without
// elevation. Used to lay out geometry around an anchor point.
func (p Projection) Offset(dx, dy float64) ScreenCoord {
	return ScreenCoord{
		X: (dx - dy) * p.halfW(),
		Y: (dx + dy) * p.halfH(),
	}
}

// TileCorners returns the ground diamond of a cell: top, right, bottom, left.
func (p Projection) TileCorners(g GridCoord) [4]ScreenCoord {
	top := p.ToScreen(g)
	return [4]ScreenCoord{
		top,
		{X: top.X + p.halfW(), Y: top.Y + p.halfH()},
		{X: top.X, Y: top.Y + p.TileH},
		{X: top.X - p.halfW(), Y: top.Y + p.halfH()},
	}
}

// ToScreen projects g with the Default projection.
func ToScreen(g GridCoord) ScreenCoord { return Default.ToScreen(g) }

// ToGrid picks the cell under s with the Default projection.
func ToGrid(s ScreenCoord) GridCoord { return Default.ToGrid(s) }

// ZIndex returns the depth of g.
func ZIndex(g GridCoord) float64 { return Default.ZIndex(g) }

// InViewport tests g against b with the Default projection.
func InViewport(g GridCoord, b Bounds) bool { return Default.InViewport(g, b) }

// GridDistanceToScreen converts d with the Default projection.
func GridDistanceToScreen(d float64) float64 { return Default.GridDistanceToScreen(d) }
