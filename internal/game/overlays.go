package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/Garsondee/skyline/internal/entity"
	"github.com/Garsondee/skyline/internal/iso"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// groundExtent bounds the drawn ground grid in cells from the origin.
const groundExtent = 48

var (
	gridCol      = color.RGBA{R: 40, G: 52, B: 62, A: 255}
	hoverCellCol = color.RGBA{R: 140, G: 200, B: 255, A: 160}
	ringCol      = color.RGBA{R: 255, G: 240, B: 120, A: 180}
)

// visibleCells returns the grid range (inclusive) that covers the camera view.
func visibleCells(p iso.Projection, b iso.Bounds) (minX, minY, maxX, maxY int) {
	corners := []iso.ScreenCoord{
		{X: b.MinX, Y: b.MinY}, {X: b.MaxX, Y: b.MinY},
		{X: b.MinX, Y: b.MaxY}, {X: b.MaxX, Y: b.MaxY},
	}
	minX, minY = math.MaxInt, math.MaxInt
	maxX, maxY = math.MinInt, math.MinInt
	for _, c := range corners {
		g := p.ToGrid(c)
		minX, maxX = min(minX, g.X), max(maxX, g.X)
		minY, maxY = min(minY, g.Y), max(maxY, g.Y)
	}
	clamp := func(v int) int { return max(-groundExtent, min(groundExtent, v)) }
	return clamp(minX - 1), clamp(minY - 1), clamp(maxX + 1), clamp(maxY + 1)
}

func strokeWorld(dst *ebiten.Image, cam ebiten.GeoM, a, b iso.ScreenCoord, width float32, c color.Color) {
	x0, y0 := cam.Apply(a.X, a.Y)
	x1, y1 := cam.Apply(b.X, b.Y)
	vector.StrokeLine(dst, float32(x0), float32(y0), float32(x1), float32(y1), width, c, false)
}

// drawGround draws the tile lattice: one line per grid row and column.
func (g *Game) drawGround(screen *ebiten.Image, cam ebiten.GeoM) {
	minX, minY, maxX, maxY := visibleCells(g.proj, g.cam.WorldBounds())
	if minX > maxX || minY > maxY {
		return
	}
	for x := minX; x <= maxX+1; x++ {
		strokeWorld(screen, cam, g.proj.ToScreen(iso.GridCoord{X: x, Y: minY}), g.proj.ToScreen(iso.GridCoord{X: x, Y: maxY + 1}), 1, gridCol)
	}
	for y := minY; y <= maxY+1; y++ {
		strokeWorld(screen, cam, g.proj.ToScreen(iso.GridCoord{X: minX, Y: y}), g.proj.ToScreen(iso.GridCoord{X: maxX + 1, Y: y}), 1, gridCol)
	}
}

// drawHoverCell outlines the ground diamond under the cursor.
func (g *Game) drawHoverCell(screen *ebiten.Image, cam ebiten.GeoM) {
	c := g.proj.TileCorners(g.hoverCell)
	for i := range c {
		strokeWorld(screen, cam, c[i], c[(i+1)%len(c)], 1.5, hoverCellCol)
	}
}

// drawSelectionRing draws a flattened ring on the ground around the
// selected entity's footprint.
func (g *Game) drawSelectionRing(screen *ebiten.Image, cam ebiten.GeoM) {
	sel, ok := g.inspector.Selected()
	if !ok {
		return
	}
	e, found := g.scene.Get(sel.EntityID)
	if !found {
		return
	}
	fp := e.Footprint()
	span := float64(max(fp.Width, fp.Height, 1))
	r := g.proj.GridDistanceToScreen(span/2 + 0.25)
	// Ground centre of the footprint, below any float offset.
	c := g.proj.ToScreen(e.Origin())
	mid := g.proj.Offset(float64(fp.Width)/2, float64(fp.Height)/2)
	cx, cy := c.X+mid.X, c.Y+mid.Y

	const segs = 40
	aspect := g.proj.TileH / g.proj.TileW
	for i := 0; i < segs; i++ {
		a0 := float64(i) / segs * 2 * math.Pi
		a1 := float64(i+1) / segs * 2 * math.Pi
		p0 := iso.ScreenCoord{X: cx + r*math.Cos(a0), Y: cy + r*aspect*math.Sin(a0)}
		p1 := iso.ScreenCoord{X: cx + r*math.Cos(a1), Y: cy + r*aspect*math.Sin(a1)}
		strokeWorld(screen, cam, p0, p1, 2, ringCol)
	}
}

// drawEntityLabels draws a small pill with id and status under each visible entity.
func (g *Game) drawEntityLabels(screen *ebiten.Image, cam ebiten.GeoM) {
	const charW = 6
	const padX = 4
	const padY = 2
	for _, e := range g.scene.Visible(g.cam.WorldBounds()) {
		h := e.Health()
		label := fmt.Sprintf("%s %s", e.ID(), h.Status)
		if e == g.hovered {
			label = fmt.Sprintf("%s %.0fV", e.ID(), h.Voltage)
		}
		p := e.Position()
		x, y := cam.Apply(p.X, p.Y)
		textX := int(x) - len(label)*charW/2
		textY := int(y) + 6

		bgW := float32(len(label)*charW + padX*2)
		bgH := float32(14 + padY*2)
		bg := statusDot(h.Status)
		bg.A = 110
		vector.FillRect(screen, float32(textX-padX), float32(textY-padY), bgW, bgH, color.RGBA{R: 10, G: 12, B: 16, A: 170}, false)
		vector.FillRect(screen, float32(textX-padX), float32(textY-padY), 2, bgH, bg, false)
		ebitenutil.DebugPrintAt(screen, label, textX, textY)
	}
}

// hudLines lists the HUD legend.
func (g *Game) hudLines() []string {
	state := "LIVE"
	if g.paused {
		state = "PAUSED"
	}
	on := func(b bool) string {
		if b {
			return "*"
		}
		return " "
	}
	counts := statusCounts(g.scene)
	return []string{
		fmt.Sprintf("tick %d  %s  P=pause", g.tick, state),
		fmt.Sprintf("ok %d  warn %d  crit %d  off %d",
			counts[entity.StatusHealthy], counts[entity.StatusWarning],
			counts[entity.StatusCritical], counts[entity.StatusOffline]),
		fmt.Sprintf("cell (%d,%d)", g.hoverCell.X, g.hoverCell.Y),
		fmt.Sprintf("[G]%s grid  [L]%s labels  [H] hud", on(g.showGrid), on(g.showLabels)),
		"WASD/arrows=pan  scroll,=/-=zoom",
		"click=inspect  Del=remove  R=rebuild",
		fmt.Sprintf("zoom: %.1fx  Home=recentre", g.cam.Zoom),
	}
}

// statusCounts tallies entities per status. Values outside the known set
// get their own key and are left out of the legend.
func statusCounts(s *Scene) map[entity.Status]int {
	counts := make(map[entity.Status]int, 4)
	for _, e := range s.Sorted() {
		counts[e.Health().Status]++
	}
	return counts
}

// drawHUD renders the legend into hudBuf at 1× and composites it at hudScale.
func (g *Game) drawHUD(screen *ebiten.Image) {
	lines := g.hudLines()
	const lineH = 12
	const charW = 6
	const padX = 5
	const padY = 4

	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len(l))
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)
	bx := float32(4)
	by := float32(g.height/hudScale) - boxH - 4

	g.hudBuf.Clear()
	vector.FillRect(g.hudBuf, bx, by, boxW, boxH, color.RGBA{R: 8, G: 10, B: 14, A: 210}, false)
	vector.StrokeRect(g.hudBuf, bx, by, boxW, boxH, 1.0, color.RGBA{R: 60, G: 80, B: 110, A: 180}, false)
	vector.StrokeLine(g.hudBuf, bx+1, by+1, bx+boxW-1, by+1, 1.0, color.RGBA{R: 90, G: 120, B: 160, A: 80}, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(g.hudBuf, line, int(bx)+padX, int(by)+padY+i*lineH)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(hudScale, hudScale)
	screen.DrawImage(g.hudBuf, opts)
}
