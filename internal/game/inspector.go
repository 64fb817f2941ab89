package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/Garsondee/skyline/internal/entity"
	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Inspector panel: rendered into an offscreen buffer at 1× then blitted at inspScale.
const (
	inspScale = 2
	inspBufW  = 240
	inspBufH  = 240
	inspPad   = 5
	inspLineH = 14
	inspWrap  = 32 // persona wrap width in characters
	barCells  = 16

	inspHistory = 3 // recent activity lines shown in the curated view
)

// inspFace is shared by every panel; basicfont is a fixed 7×13 bitmap.
var inspFace = text.NewGoXFace(basicfont.Face7x13)

// Inspector holds the last selection and view toggle state.
type Inspector struct {
	sel     entity.Selection
	persona string
	open    bool
	rawView bool
	copied  int // ticks left on the "copied" notice
	history []ActivityEntry
}

// Open shows sel. persona is the catalog text for its category.
func (in *Inspector) Open(sel entity.Selection, persona string) {
	in.sel = sel
	in.persona = persona
	in.open = true
	in.copied = 0
	in.history = nil
}

// SetHistory replaces the recent activity shown for the selection.
func (in *Inspector) SetHistory(h []ActivityEntry) { in.history = h }

// Close hides the panel.
func (in *Inspector) Close() { in.open = false }

// Selected returns the selection on display.
func (in *Inspector) Selected() (entity.Selection, bool) { return in.sel, in.open }

// Refresh replaces the displayed health with a newer reading.
func (in *Inspector) Refresh(h entity.Health) {
	if in.open {
		in.sel.Health = h
	}
}

// ToggleRaw flips between the curated and raw views.
func (in *Inspector) ToggleRaw() { in.rawView = !in.rawView }

// Report is the plain-text snapshot copied to the clipboard.
func (in *Inspector) Report() string {
	if !in.open {
		return ""
	}
	s := in.sel
	var b strings.Builder
	fmt.Fprintf(&b, "entity:       %s\n", s.EntityID)
	fmt.Fprintf(&b, "category:     %s\n", s.Category)
	fmt.Fprintf(&b, "status:       %s\n", s.Health.Status)
	fmt.Fprintf(&b, "voltage:      %.1f\n", s.Health.Voltage)
	fmt.Fprintf(&b, "revenue:      %.2f\n", s.Health.Revenue)
	fmt.Fprintf(&b, "active users: %d\n", s.Health.ActiveUsers)
	fmt.Fprintf(&b, "clicked at:   (%.0f, %.0f)\n", s.ScreenPosition.X, s.ScreenPosition.Y)
	if in.persona != "" {
		fmt.Fprintf(&b, "persona:      %s\n", in.persona)
	}
	return b.String()
}

// Copy writes Report to the system clipboard.
func (in *Inspector) Copy() error {
	if !in.open {
		return nil
	}
	if err := clipboard.WriteAll(in.Report()); err != nil {
		return fmt.Errorf("copy inspector report: %w", err)
	}
	in.copied = 90
	return nil
}

func meter(v float64) string {
	filled := int(v * barCells)
	if filled < 0 {
		filled = 0
	}
	if filled > barCells {
		filled = barCells
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barCells-filled) + "]"
}

// wrap splits s into lines of at most width characters on word boundaries.
func wrap(s string, width int) []string {
	var out []string
	line := ""
	for _, w := range strings.Fields(s) {
		switch {
		case line == "":
			line = w
		case len(line)+1+len(w) <= width:
			line += " " + w
		default:
			out = append(out, line)
			line = w
		}
	}
	if line != "" {
		out = append(out, line)
	}
	return out
}

// lines returns the body text for the current view.
func (in *Inspector) lines() []string {
	s := in.sel
	if in.rawView {
		return strings.Split(strings.TrimRight(in.Report(), "\n"), "\n")
	}
	out := []string{
		fmt.Sprintf("status:  %s", strings.ToUpper(s.Health.Status.String())),
		fmt.Sprintf("voltage  %s %3.0f", meter(s.Health.Voltage/100), s.Health.Voltage),
		fmt.Sprintf("revenue: %.2f", s.Health.Revenue),
		fmt.Sprintf("users:   %d", s.Health.ActiveUsers),
		"",
	}
	out = append(out, wrap(in.persona, inspWrap)...)
	if len(in.history) > 0 {
		out = append(out, "", "recent:")
		for _, h := range in.history {
			out = append(out, fmt.Sprintf("%5d %s", h.Tick, h.Message))
		}
	}
	return out
}

// tick counts down the copy notice.
func (in *Inspector) tick() {
	if in.copied > 0 {
		in.copied--
	}
}

func drawText(dst *ebiten.Image, s string, x, y int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, inspFace, op)
}

// drawInspector renders the panel into inspBuf at 1×, then blits it onto the
// screen at inspScale bottom-right of the map area.
func (g *Game) drawInspector(screen *ebiten.Image) {
	in := &g.inspector
	if !in.open {
		return
	}
	buf := g.inspBuf
	buf.Clear()
	bw, bh := float32(inspBufW), float32(inspBufH)

	accent := statusDot(in.sel.Health.Status)
	vector.FillRect(buf, 0, 0, bw, bh, color.RGBA{R: 14, G: 16, B: 22, A: 235}, false)
	vector.StrokeRect(buf, 0, 0, bw, bh, 1.0, color.RGBA{R: 55, G: 70, B: 95, A: 255}, false)
	vector.FillRect(buf, 0, 0, 3, bh, accent, false)

	lx, ly := inspPad+4, inspPad
	drawText(buf, fmt.Sprintf("[ %s  %s ]", strings.ToUpper(string(in.sel.Category)), in.sel.EntityID), lx, ly, color.White)
	ly += inspLineH
	view := "CURATED"
	if in.rawView {
		view = "RAW"
	}
	hint := fmt.Sprintf("view: %s  [I] toggle  [C] copy", view)
	if in.copied > 0 {
		hint = "copied to clipboard"
	}
	drawText(buf, hint, lx, ly, color.RGBA{R: 150, G: 160, B: 180, A: 255})
	ly += inspLineH + 2
	vector.StrokeLine(buf, float32(lx), float32(ly), bw-inspPad, float32(ly), 1.0, color.RGBA{R: 55, G: 70, B: 95, A: 255}, false)
	ly += 4

	for _, l := range in.lines() {
		if ly > inspBufH-inspLineH {
			break
		}
		drawText(buf, l, lx, ly, color.RGBA{R: 220, G: 224, B: 230, A: 255})
		ly += inspLineH
	}

	px := g.mapW - inspBufW*inspScale - 12
	py := g.height - inspBufH*inspScale - 12
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(inspScale, inspScale)
	opts.GeoM.Translate(float64(px), float64(py))
	screen.DrawImage(buf, opts)
}
