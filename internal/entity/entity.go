// Package entity implements placed dashboard structures: their projection,
// placeholder geometry, asynchronous texture, health-driven visual state and
// pointer contract.
package entity

import (
	"image"

	"github.com/Garsondee/skyline/internal/iso"
	"github.com/hajimehoshi/ebiten/v2"
)

// Config is the construction input from the scene builder.
type Config struct {
	ID         string
	Category   Category
	Origin     iso.GridCoord
	Footprint  Footprint
	TextureKey string
	Anchored   *bool   // nil means anchored
	Health     *Health // nil means DefaultHealth
}

// FromCatalog builds a Config from the catalog row for c. Unknown
// categories return false.
func FromCatalog(c Category) (Config, bool) {
	s, ok := Lookup(c)
	if !ok {
		return Config{}, false
	}
	anchored := s.Anchored
	return Config{
		ID:         s.ID,
		Category:   c,
		Origin:     s.Origin,
		Footprint:  s.Footprint,
		TextureKey: s.TextureKey,
		Anchored:   &anchored,
	}, true
}

// Deps are the capabilities an entity is built with. Every field is
// optional: a nil Loader means placeholder-only, a nil Router means no
// interaction, and a zero Projection means iso.Default.
type Deps struct {
	Projection iso.Projection
	Loader     TextureLoader
	Router     PointerRouter
	OnSelect   func(Selection)
}

// Entity is one placed structure. Its origin and footprint never change;
// relocating means destroying and building a new one. Not safe for
// concurrent use: every method belongs on the game loop.
type Entity struct {
	id         string
	category   Category
	spec       Spec
	origin     iso.GridCoord
	footprint  Footprint
	anchored   bool
	textureKey string
	proj       iso.Projection

	pos   iso.ScreenCoord // ground-contact anchor, after float offset
	base  iso.ScreenCoord // south ground corner; textures stand here
	depth float64

	health  Health
	hovered bool
	look    Appearance
	faces   [3]Face
	sign    Sign
	bar     Bar
	hit     Rect
	signFx  SignFx
	tick    int

	pending  <-chan TextureResult
	texture  image.Image
	texImg   *ebiten.Image
	ownsImg  bool
	router   PointerRouter
	onSelect func(Selection)
	alive    bool
}

// New places an entity. It never fails; degenerate footprints produce
// degenerate geometry.
func New(cfg Config, deps Deps) *Entity {
	proj := deps.Projection
	if proj.TileW == 0 || proj.TileH == 0 {
		proj = iso.Default
	}
	anchored := true
	if cfg.Anchored != nil {
		anchored = *cfg.Anchored
	}
	health := DefaultHealth()
	if cfg.Health != nil {
		health = *cfg.Health
	}

	e := &Entity{
		id:         cfg.ID,
		category:   cfg.Category,
		spec:       specFor(cfg.Category),
		origin:     cfg.Origin,
		footprint:  cfg.Footprint,
		anchored:   anchored,
		textureKey: cfg.TextureKey,
		proj:       proj,
		health:     health,
		router:     deps.Router,
		onSelect:   deps.OnSelect,
		alive:      true,
	}

	// 1. Ground-contact anchor: centre of the origin cell, raised if floating.
	top := proj.ToScreen(cfg.Origin)
	e.pos = iso.ScreenCoord{X: top.X, Y: top.Y + proj.TileH/2}
	if !anchored {
		e.pos.Y -= FloatOffset
	}

	e.base = southPoint(proj, e.pos, cfg.Footprint)

	// 2. Depth from the south-most occupied cell.
	e.depth = proj.ZIndex(cfg.Origin.Add(cfg.Footprint.Width-1, cfg.Footprint.Height-1, 0))

	// 3. Placeholder.
	e.signFx = e.spec.Behavior(0)
	e.render()

	// 4. Texture request.
	if deps.Loader != nil {
		e.pending = deps.Loader.Load(cfg.TextureKey)
	}

	// 5. Pointer handlers.
	if e.router != nil {
		e.router.On(e.id, PointerDown, e.handleDown)
		e.router.On(e.id, PointerEnter, e.handleEnter)
		e.router.On(e.id, PointerLeave, e.handleLeave)
	}
	return e
}

// render replays the visual state from status and hover.
func (e *Entity) render() {
	e.look = appearanceFor(e.health.Status, e.hovered)
	e.faces = buildFaces(e.proj, e.pos, e.footprint, e.spec.BoxHeight, e.spec.BaseColor, e.look)
	body := facesBounds(e.faces)
	if e.texture != nil {
		b := e.texture.Bounds()
		body = textureRect(e.base, b.Dx(), b.Dy())
	}
	e.hit = body
	e.sign = signAbove(body, e.health.Status)
	e.bar = barAbove(e.sign, e.health)
}

// Update advances one game-loop tick: it settles a pending texture and
// steps the category behavior. No-op once destroyed.
func (e *Entity) Update() {
	if !e.alive {
		return
	}
	e.tick++
	e.signFx = e.spec.Behavior(e.tick)
	e.pollTexture()
}

func (e *Entity) pollTexture() {
	if e.pending == nil {
		return
	}
	select {
	case res, ok := <-e.pending:
		e.pending = nil
		if !ok || res.Err != nil || res.Image == nil {
			// Placeholder stays as the terminal rendering.
			return
		}
		e.texture = res.Image
		e.render()
	default:
	}
}

// UpdateHealth merges p into the current health and re-renders. An empty
// patch is a no-op.
func (e *Entity) UpdateHealth(p HealthPatch) {
	if !e.alive || p.Empty() {
		return
	}
	e.health = e.health.Merge(p)
	e.render()
}

func (e *Entity) handleDown(ev PointerEvent) {
	if !e.alive || e.onSelect == nil {
		return
	}
	e.onSelect(Selection{
		EntityID:       e.id,
		Category:       e.category,
		Health:         e.health,
		ScreenPosition: iso.ScreenCoord{X: ev.X, Y: ev.Y},
	})
}

func (e *Entity) handleEnter(PointerEvent) {
	if !e.alive || e.hovered {
		return
	}
	e.hovered = true
	e.render()
}

func (e *Entity) handleLeave(PointerEvent) {
	if !e.alive || !e.hovered {
		return
	}
	e.hovered = false
	e.render()
}

// Destroy detaches pointer handlers, then releases the texture. Calling it
// twice is harmless; a texture that settles later is ignored.
func (e *Entity) Destroy() {
	if !e.alive {
		return
	}
	e.alive = false
	if e.router != nil {
		e.router.Off(e.id)
	}
	e.pending = nil
	if e.texImg != nil && e.ownsImg {
		e.texImg.Deallocate()
	}
	e.texImg = nil
	e.texture = nil
}

// ID returns the entity id.
func (e *Entity) ID() string { return e.id }

// Category returns the entity category.
func (e *Entity) Category() Category { return e.category }

// Persona returns the catalog persona text, empty for unknown categories.
func (e *Entity) Persona() string { return e.spec.Persona }

// Origin returns the immutable grid origin.
func (e *Entity) Origin() iso.GridCoord { return e.origin }

// Footprint returns the immutable footprint.
func (e *Entity) Footprint() Footprint { return e.footprint }

// Anchored reports whether the entity rests on the ground plane.
func (e *Entity) Anchored() bool { return e.anchored }

// TextureKey returns the key the texture was requested with.
func (e *Entity) TextureKey() string { return e.textureKey }

// Position is the world-screen ground-contact anchor.
func (e *Entity) Position() iso.ScreenCoord { return e.pos }

// Base is the footprint's south ground corner, where a loaded texture's
// bottom-centre is placed.
func (e *Entity) Base() iso.ScreenCoord { return e.base }

// Depth is the painter's-algorithm index; larger draws later.
func (e *Entity) Depth() float64 { return e.depth }

// Health returns a copy of the current health.
func (e *Entity) Health() Health { return e.health }

// Hovered reports the hover overlay state.
func (e *Entity) Hovered() bool { return e.hovered }

// Appearance returns the current visual treatment.
func (e *Entity) Appearance() Appearance { return e.look }

// Faces returns the shaded placeholder faces.
func (e *Entity) Faces() [3]Face { return e.faces }

// Sign returns the status sign and its animated alpha.
func (e *Entity) Sign() (Sign, SignFx) { return e.sign, e.signFx }

// HealthBar returns the hover indicator and whether it is visible.
func (e *Entity) HealthBar() (Bar, bool) { return e.bar, e.look.IndicatorVisible }

// Shadow returns the drop shadow; only floating entities have one.
func (e *Entity) Shadow() (Shadow, bool) {
	if e.anchored {
		return Shadow{}, false
	}
	return shadowBelow(e.proj, e.pos, e.footprint), true
}

// HitRegion is the interactive rectangle: the placeholder bounds, or the
// texture's native size standing on Base once it has loaded.
func (e *Entity) HitRegion() Rect { return e.hit }

// Texture returns the loaded texture, nil while on the placeholder.
func (e *Entity) Texture() image.Image { return e.texture }

// TexturePending reports whether a texture request is still outstanding.
func (e *Entity) TexturePending() bool { return e.pending != nil }

// Alive reports whether Destroy has not been called.
func (e *Entity) Alive() bool { return e.alive }
