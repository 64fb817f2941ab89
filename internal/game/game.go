package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/Garsondee/skyline/internal/entity"
	"github.com/Garsondee/skyline/internal/iso"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// hudScale is the integer upscale factor applied to HUD text.
const hudScale = 2

const (
	panSpeed  = 8.0
	wheelZoom = 1.12
	keyZoom   = 1.25

	reportEvery = 60 // ticks between health snapshots
)

// Game is the dashboard host: it owns the scene and wires input, the
// supervisor and the panels around it.
type Game struct {
	cfg    Config
	width  int
	height int
	mapW   int // map area width; the activity panel takes the rest

	proj     iso.Projection
	scene    *Scene
	router   *Router
	cam      Camera
	sup      *Supervisor
	loader   entity.TextureLoader
	events   *EventLog
	activity *ActivityLog
	reporter *HealthReporter
	callouts *Callouts

	inspector Inspector
	inspBuf   *ebiten.Image
	hudBuf    *ebiten.Image

	tick       int
	paused     bool
	showHUD    bool
	showGrid   bool
	showLabels bool
	hoverCell  iso.GridCoord
	hovered    *entity.Entity

	quit chan struct{}
}

// New builds the dashboard with one entity per catalog category.
func New(cfg Config) *Game {
	cfg.normalize()
	events := NewEventLog(cfg.Verbose)
	quit := make(chan struct{})
	g := &Game{
		cfg:        cfg,
		width:      cfg.WindowW,
		height:     cfg.WindowH,
		mapW:       cfg.WindowW - logPanelWidth,
		proj:       iso.NewProjection(cfg.TileW, cfg.TileH),
		router:     NewRouter(),
		events:     events,
		activity:   NewActivityLog(),
		reporter:   NewHealthReporter(reportWindowTicks),
		callouts:   NewCallouts(),
		loader:     LoggingLoader{Next: FileLoader{Dir: cfg.AssetDir}, Log: events, Done: quit},
		quit:       quit,
		showHUD:    true,
		showGrid:   true,
		showLabels: true,
	}
	g.router.SetLog(events)
	g.scene = NewScene(g.proj)
	g.cam = NewCamera(float64(g.mapW), float64(g.height))
	g.sup = NewSupervisor(cfg.Seed, cfg.PollTicks, g.events, g.activity)
	g.sup.OnStatusChange(func(tick int, e *entity.Entity, from, to entity.Status) {
		g.callouts.Announce(tick, e.ID(), from, to, e.Health())
	})
	g.inspBuf = ebiten.NewImage(inspBufW, inspBufH)
	g.hudBuf = ebiten.NewImage(g.width/hudScale, g.height/hudScale)
	g.populate()
	return g
}

// Close releases texture requests still in flight. Safe to call twice.
func (g *Game) Close() {
	select {
	case <-g.quit:
	default:
		close(g.quit)
	}
}

func (g *Game) deps() entity.Deps {
	return entity.Deps{
		Projection: g.proj,
		Loader:     g.loader,
		Router:     g.router,
		OnSelect:   g.onSelect,
	}
}

// populate (re)builds the catalog scene and centres the camera on it.
func (g *Game) populate() {
	g.scene.Clear()
	g.hovered = nil
	g.inspector.Close()
	if err := g.scene.PopulateCatalog(g.deps()); err != nil {
		g.events.Add(sceneWide, "scene", "populate_failed", err.Error(), 0)
	}
	g.centreOnScene()
	g.activity.Add(g.tick, "scene", entity.StatusHealthy, fmt.Sprintf("placed %d structures", g.scene.Len()))
}

func (g *Game) centreOnScene() {
	sorted := g.scene.Sorted()
	if len(sorted) == 0 {
		g.cam.CentreOn(iso.ScreenCoord{})
		return
	}
	b := iso.Bounds{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, e := range sorted {
		p := e.Position()
		b.MinX, b.MaxX = math.Min(b.MinX, p.X), math.Max(b.MaxX, p.X)
		b.MinY, b.MaxY = math.Min(b.MinY, p.Y), math.Max(b.MaxY, p.Y)
	}
	g.cam.CentreOn(iso.ScreenCoord{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2})
}

func (g *Game) onSelect(sel entity.Selection) {
	persona := ""
	if e, ok := g.scene.Get(sel.EntityID); ok {
		persona = e.Persona()
	}
	g.inspector.Open(sel, persona)
	g.events.Add(sel.EntityID, "select", "down", string(sel.Category), sel.Health.Voltage)
	g.activity.Add(g.tick, sel.EntityID, sel.Health.Status, "selected")
	g.inspector.SetHistory(g.activity.ForEntity(sel.EntityID, inspHistory))
}

// removeSelected destroys the entity shown in the inspector.
func (g *Game) removeSelected() {
	sel, ok := g.inspector.Selected()
	if !ok {
		return
	}
	if g.scene.Remove(sel.EntityID) {
		g.events.Add(sel.EntityID, "scene", "destroy", string(sel.Category), 0)
		g.activity.Add(g.tick, sel.EntityID, entity.StatusOffline, "removed")
	}
	g.inspector.Close()
	g.hovered = nil
}

func (g *Game) Update() error {
	g.handleInput()
	g.inspector.tick()
	if g.paused {
		return nil
	}
	g.tick++
	g.events.SetTick(g.tick)
	g.sup.Tick(g.scene)
	g.scene.Update()
	g.callouts.Update()
	if g.tick%reportEvery == 0 {
		g.reporter.Collect(g.tick, g.scene)
	}
	if sel, ok := g.inspector.Selected(); ok {
		if e, found := g.scene.Get(sel.EntityID); found {
			g.inspector.Refresh(e.Health())
			g.inspector.SetHistory(g.activity.ForEntity(sel.EntityID, inspHistory))
		}
	}
	return nil
}

// handleInput processes keys (edge-triggered via inpututil) and the pointer.
func (g *Game) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.showGrid = !g.showGrid
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.showLabels = !g.showLabels
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		g.inspector.ToggleRaw()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.inspector.Close()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if err := g.inspector.Copy(); err != nil {
			g.events.Add(sceneWide, "inspector", "copy_failed", err.Error(), 0)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDelete) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		g.removeSelected()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.populate()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		g.centreOnScene()
	}

	// Camera pan: WASD or arrow keys, in window pixels.
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.cam.Pan(0, -panSpeed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.cam.Pan(0, panSpeed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.cam.Pan(-panSpeed, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.cam.Pan(panSpeed, 0)
	}

	// Camera zoom: mouse wheel or =/- keys.
	if _, wy := ebiten.Wheel(); wy != 0 {
		g.cam.ZoomBy(math.Pow(wheelZoom, wy))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.cam.ZoomBy(keyZoom)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.cam.ZoomBy(1 / keyZoom)
	}

	mx, my := ebiten.CursorPosition()
	sx, sy := float64(mx), float64(my)
	if mx >= g.mapW {
		// Over the activity panel: nothing in the map is hovered.
		g.router.Move("", sx, sy)
		g.hovered = nil
		return
	}
	wx, wy := g.cam.ScreenToWorld(sx, sy)
	g.hoverCell = g.proj.ToGrid(iso.ScreenCoord{X: wx, Y: wy})

	pressed := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	hit, clicked := routePointer(g.cam, g.scene, g.router, sx, sy, pressed)
	g.hovered = hit
	if pressed && !clicked {
		// Click on empty ground: deselect.
		g.inspector.Close()
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 18, G: 22, B: 28, A: 255})
	cam := g.cam.GeoM()

	if g.showGrid {
		g.drawGround(screen, cam)
	}
	g.drawHoverCell(screen, cam)
	g.drawSelectionRing(screen, cam)

	for _, e := range g.scene.Visible(g.cam.WorldBounds()) {
		e.Draw(screen, cam)
	}
	if g.showLabels {
		g.drawEntityLabels(screen, cam)
	}
	g.callouts.Draw(screen, cam, g.scene)

	focus := ""
	if sel, ok := g.inspector.Selected(); ok {
		focus = sel.EntityID
	}
	g.activity.Draw(screen, g.mapW, g.height, g.tick, focus)
	if g.showHUD {
		g.drawHUD(screen)
	}
	g.drawInspector(screen)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// Events exposes the event record.
func (g *Game) Events() *EventLog { return g.events }

// Report summarises scene health over the recent window.
func (g *Game) Report() string { return g.reporter.WindowSummary().Format() }
