package game

import (
	"github.com/Garsondee/skyline/internal/entity"
	"github.com/Garsondee/skyline/internal/iso"
)

// TestScene is a headless scene harness used by tests. It mirrors the
// entity half of Game.Update without opening a window: pointer input goes
// through the same routePointer path and selections are captured.
type TestScene struct {
	Proj       iso.Projection
	Scene      *Scene
	Router     *Router
	Camera     Camera
	Events     *EventLog
	Selections []entity.Selection
	Tick       int

	loader  entity.TextureLoader
	viewW   float64
	viewH   float64
	configs []entity.Config
}

// sceneOptionKind controls the pass in which an option is applied.
type sceneOptionKind int

const (
	sceneOptInfra  sceneOptionKind = iota // projection, loader, viewport, verbose
	sceneOptEntity                        // entities, placed after infra exists
)

// SceneOption is a builder function applied to a TestScene during construction.
type SceneOption struct {
	kind sceneOptionKind
	fn   func(*TestScene)
}

// WithProjection overrides the tile size.
func WithProjection(p iso.Projection) SceneOption {
	return SceneOption{sceneOptInfra, func(ts *TestScene) { ts.Proj = p }}
}

// WithLoader sets the texture loader every entity is built with.
func WithLoader(l entity.TextureLoader) SceneOption {
	return SceneOption{sceneOptInfra, func(ts *TestScene) { ts.loader = l }}
}

// WithViewport sets the camera view size in pixels.
func WithViewport(w, h float64) SceneOption {
	return SceneOption{sceneOptInfra, func(ts *TestScene) {
		ts.viewW = w
		ts.viewH = h
	}}
}

// WithVerbose enables verbose event logging.
func WithVerbose(v bool) SceneOption {
	return SceneOption{sceneOptInfra, func(ts *TestScene) { ts.Events = NewEventLog(v) }}
}

// WithEntity places an entity built from cfg.
func WithEntity(cfg entity.Config) SceneOption {
	return SceneOption{sceneOptEntity, func(ts *TestScene) {
		ts.configs = append(ts.configs, cfg)
	}}
}

// WithCategory places the catalog row for c. Unknown categories are ignored.
func WithCategory(c entity.Category) SceneOption {
	return SceneOption{sceneOptEntity, func(ts *TestScene) {
		if cfg, ok := entity.FromCatalog(c); ok {
			ts.configs = append(ts.configs, cfg)
		}
	}}
}

// WithCatalog places every catalog row.
func WithCatalog() SceneOption {
	return SceneOption{sceneOptEntity, func(ts *TestScene) {
		for _, c := range entity.Categories() {
			cfg, _ := entity.FromCatalog(c)
			ts.configs = append(ts.configs, cfg)
		}
	}}
}

// NewTestScene constructs a TestScene in two ordered passes:
//  1. Infrastructure (projection, loader, viewport, verbose)
//  2. Entities, built against the finished infrastructure
//
// The camera is centred on the projected origin.
func NewTestScene(opts ...SceneOption) *TestScene {
	ts := &TestScene{
		Proj:   iso.Default,
		Router: NewRouter(),
		Events: NewEventLog(false),
		viewW:  1280,
		viewH:  720,
	}
	for _, o := range opts {
		if o.kind == sceneOptInfra {
			o.fn(ts)
		}
	}
	ts.Router.SetLog(ts.Events)
	ts.Scene = NewScene(ts.Proj)
	ts.Camera = NewCamera(ts.viewW, ts.viewH)
	ts.Camera.CentreOn(iso.ScreenCoord{})
	for _, o := range opts {
		if o.kind == sceneOptEntity {
			o.fn(ts)
		}
	}
	deps := ts.deps()
	for _, cfg := range ts.configs {
		if _, err := ts.Scene.Place(cfg, deps); err != nil {
			ts.Events.Add(cfg.ID, "scene", "add_failed", err.Error(), 0)
		}
	}
	return ts
}

func (ts *TestScene) deps() entity.Deps {
	return entity.Deps{
		Projection: ts.Proj,
		Loader:     ts.loader,
		Router:     ts.Router,
		OnSelect: func(s entity.Selection) {
			ts.Selections = append(ts.Selections, s)
			ts.Events.Add(s.EntityID, "select", "down", string(s.Category), s.Health.Voltage)
		},
	}
}

// Entity returns the placed entity with id, or nil.
func (ts *TestScene) Entity(id string) *entity.Entity {
	e, _ := ts.Scene.Get(id)
	return e
}

// RunTicks advances the scene n ticks.
func (ts *TestScene) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.Tick++
		ts.Events.SetTick(ts.Tick)
		ts.Scene.Update()
	}
}

// RunUntil advances up to maxTicks, stopping early once predicate holds.
// Returns the tick at which it held, or -1.
func (ts *TestScene) RunUntil(predicate func(*TestScene) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		if predicate(ts) {
			return ts.Tick
		}
		ts.RunTicks(1)
	}
	if predicate(ts) {
		return ts.Tick
	}
	return -1
}

// ScreenOf returns the window pixel at which the camera shows world point p.
func (ts *TestScene) ScreenOf(p iso.ScreenCoord) (float64, float64) {
	g := ts.Camera.GeoM()
	return g.Apply(p.X, p.Y)
}

// PointerMove moves the pointer to window pixel (sx,sy).
func (ts *TestScene) PointerMove(sx, sy float64) *entity.Entity {
	hit, _ := routePointer(ts.Camera, ts.Scene, ts.Router, sx, sy, false)
	return hit
}

// Click moves to (sx,sy) and presses. Returns true when an entity took it.
func (ts *TestScene) Click(sx, sy float64) bool {
	_, clicked := routePointer(ts.Camera, ts.Scene, ts.Router, sx, sy, true)
	return clicked
}

// ClickEntity clicks the centre of the entity's hit region.
func (ts *TestScene) ClickEntity(id string) bool {
	e := ts.Entity(id)
	if e == nil {
		return false
	}
	r := e.HitRegion()
	sx, sy := ts.ScreenOf(iso.ScreenCoord{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2})
	return ts.Click(sx, sy)
}
