package entity

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/Garsondee/skyline/internal/iso"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/colorm"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	glowSpread   = 3.0 // px offset of each glow pass
	shadowSegs   = 20
	glowScaleMul = 1.08
)

var (
	whiteOnce sync.Once
	whiteSub  *ebiten.Image
)

// solidSource is a 1×1 white source for DrawTriangles fills.
func solidSource() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSub = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSub
}

func vertex(cam ebiten.GeoM, p iso.ScreenCoord, c color.RGBA, alpha float64) ebiten.Vertex {
	x, y := cam.Apply(p.X, p.Y)
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(c.R) / 255,
		ColorG: float32(c.G) / 255,
		ColorB: float32(c.B) / 255,
		ColorA: float32(float64(c.A) / 255 * alpha),
	}
}

// fillQuads draws each 4-point polygon as two triangles.
func fillQuads(dst *ebiten.Image, cam ebiten.GeoM, quads [][4]iso.ScreenCoord, cols []color.RGBA, alpha float64) {
	vs := make([]ebiten.Vertex, 0, len(quads)*4)
	is := make([]uint16, 0, len(quads)*6)
	for i, q := range quads {
		base := uint16(len(vs))
		for _, p := range q {
			vs = append(vs, vertex(cam, p, cols[i], alpha))
		}
		is = append(is, base, base+1, base+2, base, base+2, base+3)
	}
	dst.DrawTriangles(vs, is, solidSource(), &ebiten.DrawTrianglesOptions{})
}

func rectQuad(r Rect) [4]iso.ScreenCoord {
	return [4]iso.ScreenCoord{
		{X: r.MinX, Y: r.MinY}, {X: r.MaxX, Y: r.MinY},
		{X: r.MaxX, Y: r.MaxY}, {X: r.MinX, Y: r.MaxY},
	}
}

// Draw renders the entity onto dst through the camera transform cam.
func (e *Entity) Draw(dst *ebiten.Image, cam ebiten.GeoM) {
	if !e.alive {
		return
	}
	if sh, ok := e.Shadow(); ok {
		e.drawShadow(dst, cam, sh)
	}
	if e.texture != nil {
		e.drawTexture(dst, cam)
	} else {
		e.drawPlaceholder(dst, cam)
	}
	if e.signFx.Alpha > 0 {
		fillQuads(dst, cam, [][4]iso.ScreenCoord{rectQuad(e.sign.Rect)}, []color.RGBA{e.look.shade(e.sign.Color)}, e.signFx.Alpha)
	}
	if e.look.IndicatorVisible {
		e.drawBar(dst, cam)
	}
}

func (e *Entity) drawShadow(dst *ebiten.Image, cam ebiten.GeoM, sh Shadow) {
	quads := make([][4]iso.ScreenCoord, 0, shadowSegs)
	cols := make([]color.RGBA, 0, shadowSegs)
	centre := iso.ScreenCoord{X: sh.CX, Y: sh.CY}
	for i := 0; i < shadowSegs; i++ {
		a0 := float64(i) / shadowSegs * 2 * math.Pi
		a1 := float64(i+1) / shadowSegs * 2 * math.Pi
		p0 := iso.ScreenCoord{X: sh.CX + sh.RX*math.Cos(a0), Y: sh.CY + sh.RY*math.Sin(a0)}
		p1 := iso.ScreenCoord{X: sh.CX + sh.RX*math.Cos(a1), Y: sh.CY + sh.RY*math.Sin(a1)}
		// Degenerate quad (centre twice) keeps one fill path for every shape.
		quads = append(quads, [4]iso.ScreenCoord{centre, p0, p1, centre})
		cols = append(cols, sh.Color)
	}
	fillQuads(dst, cam, quads, cols, 1)
}

func (e *Entity) drawPlaceholder(dst *ebiten.Image, cam ebiten.GeoM) {
	if e.look.Filter == FilterGlow {
		// Scaled-up red silhouette behind the box.
		quads := make([][4]iso.ScreenCoord, 0, len(e.faces))
		cols := make([]color.RGBA, 0, len(e.faces))
		for _, f := range e.faces {
			var q [4]iso.ScreenCoord
			for i, p := range f.Points {
				q[i] = iso.ScreenCoord{
					X: e.pos.X + (p.X-e.pos.X)*glowScaleMul,
					Y: e.pos.Y + (p.Y-e.pos.Y)*glowScaleMul + glowSpread,
				}
			}
			quads = append(quads, q)
			cols = append(cols, glowColor)
		}
		fillQuads(dst, cam, quads, cols, 1)
	}
	quads := make([][4]iso.ScreenCoord, 0, len(e.faces))
	cols := make([]color.RGBA, 0, len(e.faces))
	for _, f := range e.faces {
		quads = append(quads, f.Points)
		cols = append(cols, f.Color)
	}
	fillQuads(dst, cam, quads, cols, 1)

	// Roof outline.
	roof := e.faces[0].Points
	edge := brighten(e.faces[0].Color, 1.2)
	for i := range roof {
		a, b := roof[i], roof[(i+1)%len(roof)]
		x0, y0 := cam.Apply(a.X, a.Y)
		x1, y1 := cam.Apply(b.X, b.Y)
		vector.StrokeLine(dst, float32(x0), float32(y0), float32(x1), float32(y1), 1, edge, true)
	}
}

func (e *Entity) ebitenTexture() *ebiten.Image {
	if e.texImg != nil {
		return e.texImg
	}
	if img, ok := e.texture.(*ebiten.Image); ok {
		e.texImg = img
		return img
	}
	e.texImg = ebiten.NewImageFromImage(e.texture)
	e.ownsImg = true
	return e.texImg
}

func (e *Entity) drawTexture(dst *ebiten.Image, cam ebiten.GeoM) {
	img := e.ebitenTexture()
	b := img.Bounds()
	var place ebiten.GeoM
	place.Translate(-float64(b.Dx())/2, -float64(b.Dy()))
	place.Translate(e.base.X, e.base.Y)
	place.Concat(cam)

	if e.look.Filter == FilterGlow {
		offsets := [][2]float64{{-glowSpread, 0}, {glowSpread, 0}, {0, -glowSpread}, {0, glowSpread}}
		for _, o := range offsets {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(o[0], o[1])
			op.GeoM.Concat(place)
			op.ColorScale.ScaleWithColor(glowColor)
			dst.DrawImage(img, op)
		}
	}

	var cm colorm.ColorM
	cm.ScaleWithColor(e.look.Tint)
	if e.look.Filter == FilterGrayscale {
		cm.ChangeHSV(0, 0, 1)
	}
	op := &colorm.DrawImageOptions{}
	op.GeoM = place
	op.Filter = ebiten.FilterLinear
	colorm.DrawImage(dst, img, cm, op)
}

func (e *Entity) drawBar(dst *ebiten.Image, cam ebiten.GeoM) {
	r := e.bar.Rect
	x0, y0 := cam.Apply(r.MinX, r.MinY)
	x1, y1 := cam.Apply(r.MaxX, r.MaxY)
	w, h := float32(x1-x0), float32(y1-y0)
	vector.FillRect(dst, float32(x0), float32(y0), w, h, color.RGBA{R: 20, G: 22, B: 20, A: 200}, false)
	vector.FillRect(dst, float32(x0), float32(y0), w*float32(e.bar.Fill), h, e.bar.Color, false)
	vector.StrokeRect(dst, float32(x0), float32(y0), w, h, 1, color.RGBA{R: 200, G: 200, B: 200, A: 160}, false)
}
