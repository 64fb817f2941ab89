package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/Garsondee/skyline/internal/entity"
	"github.com/Garsondee/skyline/internal/game"
	"github.com/Garsondee/skyline/internal/iso"
)

// row is one entity line of the placement table.
type row struct {
	id        string
	category  string
	origin    iso.GridCoord
	screen    iso.ScreenCoord
	depth     float64
	visible   bool
	roundTrip bool   // ToGrid(ToScreen(origin)) == origin
	picked    string // entity returned by Pick at the hit-region centre
	texture   string
	status    entity.Status
	voltage   float64
}

func main() {
	var w, h float64
	var camX, camY float64
	var ticks, poll int
	var seed int64
	var status string

	flag.Float64Var(&w, "w", 1280, "viewport width in pixels")
	flag.Float64Var(&h, "h", 720, "viewport height in pixels")
	flag.Float64Var(&camX, "camx", 0, "world-screen X at the viewport centre")
	flag.Float64Var(&camY, "camy", 0, "world-screen Y at the viewport centre")
	flag.IntVar(&ticks, "ticks", 600, "ticks to simulate before the report")
	flag.IntVar(&poll, "poll", 60, "ticks between health polls")
	flag.Int64Var(&seed, "seed", 42, "supervisor RNG seed")
	flag.StringVar(&status, "status", "", "only list entities in this status (healthy, warning, critical, offline)")
	flag.Parse()

	if w <= 0 || h <= 0 {
		fmt.Println("error: -w and -h must be > 0")
		return
	}
	if ticks < 0 {
		fmt.Println("error: -ticks must be >= 0")
		return
	}
	var only *entity.Status
	if status != "" {
		st, err := entity.ParseStatus(status)
		if err != nil {
			fmt.Printf("error: -status: %v\n", err)
			return
		}
		only = &st
	}

	fmt.Printf("=== Scene Report ===\n")
	fmt.Printf("viewport=%.0fx%.0f camera=(%.0f,%.0f) ticks=%d poll=%d seed=%d\n\n", w, h, camX, camY, ticks, poll, seed)

	ts, reporter := runScene(w, h, iso.ScreenCoord{X: camX, Y: camY}, ticks, poll, seed)
	fmt.Print(formatTable(filterRows(buildRows(ts), only)))
	fmt.Println()
	fmt.Print(reporter.WindowSummary().Format())
	fmt.Println()
	fmt.Printf("events: status_change=%d\n", ts.Events.Count("health", "status_change"))
}

// runScene builds the catalog scene, points the camera at cam and lets the
// supervisor poll it for ticks.
func runScene(w, h float64, cam iso.ScreenCoord, ticks, poll int, seed int64) (*game.TestScene, *game.HealthReporter) {
	ts := game.NewTestScene(game.WithViewport(w, h), game.WithCatalog())
	ts.Camera.CentreOn(cam)
	sv := game.NewSupervisor(seed, poll, ts.Events, nil)
	reporter := game.NewHealthReporter(0)
	for i := 0; i < ticks; i++ {
		sv.Tick(ts.Scene)
		ts.RunTicks(1)
		if poll > 0 && ts.Tick%poll == 0 {
			reporter.Collect(ts.Tick, ts.Scene)
		}
	}
	reporter.Collect(ts.Tick, ts.Scene)
	return ts, reporter
}

func buildRows(ts *game.TestScene) []row {
	proj := ts.Scene.Projection()
	view := ts.Camera.WorldBounds()
	var rows []row
	for _, e := range ts.Scene.Sorted() {
		o := e.Origin()
		hit := e.HitRegion()
		picked := ""
		if p := ts.Scene.Pick((hit.MinX+hit.MaxX)/2, (hit.MinY+hit.MaxY)/2); p != nil {
			picked = p.ID()
		}
		hl := e.Health()
		rows = append(rows, row{
			id:        e.ID(),
			category:  string(e.Category()),
			origin:    o,
			screen:    proj.ToScreen(o),
			depth:     e.Depth(),
			visible:   proj.InViewport(o, view),
			roundTrip: proj.ToGrid(proj.ToScreen(o)).Equal(iso.GridCoord{X: o.X, Y: o.Y}),
			picked:    picked,
			texture:   e.TextureKey(),
			status:    hl.Status,
			voltage:   hl.Voltage,
		})
	}
	return rows
}

// filterRows keeps rows in status only; nil keeps everything.
func filterRows(rows []row, only *entity.Status) []row {
	if only == nil {
		return rows
	}
	var out []row
	for _, r := range rows {
		if r.status == *only {
			out = append(out, r)
		}
	}
	return out
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func formatTable(rows []row) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-14s %-13s %-10s %-16s %8s %-7s %-6s %-14s %-14s %-9s %7s\n",
		"id", "category", "origin", "screen", "depth", "visible", "round", "pick", "texture", "status", "voltage")
	sb.WriteString(strings.Repeat("-", 127) + "\n")
	for _, r := range rows {
		fmt.Fprintf(&sb, "%-14s %-13s %-10s %-16s %8.3f %-7s %-6s %-14s %-14s %-9s %7.1f\n",
			r.id, r.category, r.origin,
			fmt.Sprintf("(%.0f,%.0f)", r.screen.X, r.screen.Y),
			r.depth, yesNo(r.visible), yesNo(r.roundTrip), r.picked, r.texture, r.status, r.voltage)
	}
	return sb.String()
}
