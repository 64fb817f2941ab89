package entity

import (
	"image/color"
	"math"

	"github.com/Garsondee/skyline/internal/iso"
)

const (
	// FloatOffset lifts non-anchored entities above the ground plane.
	FloatOffset = 18.0

	signW      = 10.0
	signH      = 8.0
	signGap    = 6.0 // roof apex to sign bottom
	barW       = 40.0
	barH       = 5.0
	barGap     = 8.0 // sign top to bar bottom
	shadowAlph = 70
)

// FaceKind identifies one visible face of the placeholder box.
type FaceKind int

const (
	FaceRoof FaceKind = iota
	FaceLeft
	FaceRight
)

// Face is a shaded quad in world-screen space (before the camera).
type Face struct {
	Kind   FaceKind
	Points [4]iso.ScreenCoord
	Color  color.RGBA
}

// Rect is an axis-aligned world-screen rectangle.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Contains reports whether (x,y) is inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// Width of r.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height of r.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Sign is the status decoration above the roof.
type Sign struct {
	Rect  Rect
	Color color.RGBA
}

// Shadow is the ellipse under a floating entity.
type Shadow struct {
	CX, CY float64
	RX, RY float64
	Color  color.RGBA
}

// Bar is the hover health indicator.
type Bar struct {
	Rect  Rect
	Fill  float64 // 0..1
	Color color.RGBA
}

// groundCorners returns the footprint diamond around anchor: top, right,
// bottom, left. The anchor is the centre of the origin cell.
func groundCorners(p iso.Projection, anchor iso.ScreenCoord, fp Footprint) [4]iso.ScreenCoord {
	w, h := float64(fp.Width), float64(fp.Height)
	rel := [4]iso.ScreenCoord{
		p.Offset(-0.5, -0.5),
		p.Offset(w-0.5, -0.5),
		p.Offset(w-0.5, h-0.5),
		p.Offset(-0.5, h-0.5),
	}
	for i := range rel {
		rel[i].X += anchor.X
		rel[i].Y += anchor.Y
	}
	return rel
}

func lift(c iso.ScreenCoord, h float64) iso.ScreenCoord {
	return iso.ScreenCoord{X: c.X, Y: c.Y - h}
}

// buildFaces lays out roof, left and right faces shaded by the appearance.
// Zero or negative footprints give degenerate quads, never a panic.
func buildFaces(p iso.Projection, anchor iso.ScreenCoord, fp Footprint, height float64, base color.RGBA, a Appearance) [3]Face {
	g := groundCorners(p, anchor, fp)
	top, right, bottom, left := g[0], g[1], g[2], g[3]
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	return [3]Face{
		{
			Kind:   FaceRoof,
			Points: [4]iso.ScreenCoord{lift(top, height), lift(right, height), lift(bottom, height), lift(left, height)},
			Color:  a.shade(lerpColor(base, white, 0.15)),
		},
		{
			Kind:   FaceLeft,
			Points: [4]iso.ScreenCoord{left, bottom, lift(bottom, height), lift(left, height)},
			Color:  a.shade(brighten(base, 0.8)),
		},
		{
			Kind:   FaceRight,
			Points: [4]iso.ScreenCoord{bottom, right, lift(right, height), lift(bottom, height)},
			Color:  a.shade(brighten(base, 0.62)),
		},
	}
}

// facesBounds is the bounding box of every face point.
func facesBounds(faces [3]Face) Rect {
	r := Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, f := range faces {
		for _, pt := range f.Points {
			r.MinX = math.Min(r.MinX, pt.X)
			r.MinY = math.Min(r.MinY, pt.Y)
			r.MaxX = math.Max(r.MaxX, pt.X)
			r.MaxY = math.Max(r.MaxY, pt.Y)
		}
	}
	return r
}

// southPoint is the footprint's south ground corner, where a sprite covering
// the whole footprint touches the ground. Footprints under one cell count as
// one cell.
func southPoint(p iso.Projection, anchor iso.ScreenCoord, fp Footprint) iso.ScreenCoord {
	if fp.Width < 1 {
		fp.Width = 1
	}
	if fp.Height < 1 {
		fp.Height = 1
	}
	return groundCorners(p, anchor, fp)[2]
}

// textureRect anchors a w×h image bottom-centre on anchor.
func textureRect(anchor iso.ScreenCoord, w, h int) Rect {
	fw, fh := float64(w), float64(h)
	return Rect{MinX: anchor.X - fw/2, MinY: anchor.Y - fh, MaxX: anchor.X + fw/2, MaxY: anchor.Y}
}

// signAbove centres the status sign over the top of body.
func signAbove(body Rect, s Status) Sign {
	anchorX := (body.MinX + body.MaxX) / 2
	bottom := body.MinY - signGap
	return Sign{
		Rect:  Rect{MinX: anchorX - signW/2, MinY: bottom - signH, MaxX: anchorX + signW/2, MaxY: bottom},
		Color: signColor(s),
	}
}

// barAbove places the health bar over the sign.
func barAbove(sign Sign, h Health) Bar {
	anchorX := (sign.Rect.MinX + sign.Rect.MaxX) / 2
	bottom := sign.Rect.MinY - barGap
	r := h.voltageRatio()
	return Bar{
		Rect:  Rect{MinX: anchorX - barW/2, MinY: bottom - barH, MaxX: anchorX + barW/2, MaxY: bottom},
		Fill:  r,
		Color: barColor(r),
	}
}

// shadowBelow puts a flattened ellipse on the ground under a floating anchor.
func shadowBelow(p iso.Projection, anchor iso.ScreenCoord, fp Footprint) Shadow {
	w := math.Max(float64(fp.Width), 0)
	h := math.Max(float64(fp.Height), 0)
	c := p.Offset((w-1)/2, (h-1)/2)
	return Shadow{
		CX:    anchor.X + c.X,
		CY:    anchor.Y + c.Y + FloatOffset,
		RX:    (w + h) / 2 * p.TileW / 2 * 0.8,
		RY:    (w + h) / 2 * p.TileH / 2 * 0.8,
		Color: color.RGBA{A: shadowAlph},
	}
}
