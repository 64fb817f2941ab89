package entity

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/Garsondee/skyline/internal/iso"
)

// fakeRouter records registrations and lets tests fire events directly.
type fakeRouter struct {
	handlers map[string]map[PointerKind]PointerHandler
	offCalls []string
}

func newFakeRouter() *fakeRouter {
	return &fakeRouter{handlers: map[string]map[PointerKind]PointerHandler{}}
}

func (r *fakeRouter) On(owner string, kind PointerKind, h PointerHandler) {
	if r.handlers[owner] == nil {
		r.handlers[owner] = map[PointerKind]PointerHandler{}
	}
	r.handlers[owner][kind] = h
}

func (r *fakeRouter) Off(owner string) {
	r.offCalls = append(r.offCalls, owner)
	delete(r.handlers, owner)
}

func (r *fakeRouter) fire(owner string, kind PointerKind, x, y float64) bool {
	h, ok := r.handlers[owner][kind]
	if !ok {
		return false
	}
	h(PointerEvent{Kind: kind, X: x, Y: y})
	return true
}

// fakeLoader hands out one buffered channel per key for tests to settle.
type fakeLoader struct {
	pending map[string]chan TextureResult
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{pending: map[string]chan TextureResult{}}
}

func (l *fakeLoader) Load(key string) <-chan TextureResult {
	ch := make(chan TextureResult, 1)
	l.pending[key] = ch
	return ch
}

func (l *fakeLoader) resolve(key string, w, h int) {
	l.pending[key] <- TextureResult{Image: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (l *fakeLoader) reject(key string) {
	l.pending[key] <- TextureResult{Err: errors.New("asset missing")}
}

func boolPtr(b bool) *bool { return &b }

func testConfig() Config {
	return Config{
		ID:         "b1",
		Category:   CategoryFactory,
		Origin:     iso.GridCoord{X: 2, Y: 3},
		Footprint:  Footprint{Width: 2, Height: 3},
		TextureKey: "factory",
	}
}

func TestNew_PositionFromOriginCellCentre(t *testing.T) {
	e := New(testConfig(), Deps{})
	top := iso.ToScreen(iso.GridCoord{X: 2, Y: 3})
	if e.Position().X != top.X || e.Position().Y != top.Y+iso.DefaultTileH/2 {
		t.Fatalf("unexpected anchor %+v for top %+v", e.Position(), top)
	}
	if !e.Anchored() {
		t.Fatal("nil Anchored should default to anchored")
	}
}

func TestNew_DepthUsesSouthMostCell(t *testing.T) {
	e := New(testConfig(), Deps{})
	want := iso.ZIndex(iso.GridCoord{X: 3, Y: 5})
	if e.Depth() != want {
		t.Fatalf("expected depth %v, got %v", want, e.Depth())
	}
}

func TestNew_MultiCellSortsAfterTouchingNeighbour(t *testing.T) {
	big := New(Config{ID: "big", Origin: iso.GridCoord{}, Footprint: Footprint{Width: 3, Height: 3}}, Deps{})
	// A single cell touching the big footprint's north-east edge.
	small := New(Config{ID: "small", Origin: iso.GridCoord{X: 3, Y: 0}, Footprint: Footprint{Width: 1, Height: 1}}, Deps{})
	if big.Depth() <= small.Depth() {
		t.Fatalf("big %.3f should draw after small %.3f", big.Depth(), small.Depth())
	}
}

func TestAnchoredOffset_DiffersByFloatOffset(t *testing.T) {
	cfg := testConfig()
	cfg.Anchored = boolPtr(true)
	a := New(cfg, Deps{})
	cfg.Anchored = boolPtr(false)
	f := New(cfg, Deps{})

	if d := a.Position().Y - f.Position().Y; d != FloatOffset {
		t.Fatalf("expected y difference %v, got %v", FloatOffset, d)
	}
	if a.Position().X != f.Position().X {
		t.Fatal("float offset must not move x")
	}
	if _, ok := a.Shadow(); ok {
		t.Fatal("anchored entity should not cast a shadow")
	}
	sh, ok := f.Shadow()
	if !ok {
		t.Fatal("floating entity should cast a shadow")
	}
	if sh.CY <= f.Position().Y {
		t.Fatal("shadow should sit below the floating anchor")
	}
}

func TestUpdateHealth_MergeKeepsUnsetFields(t *testing.T) {
	cfg := testConfig()
	cfg.Health = &Health{Voltage: 100, Revenue: 50, ActiveUsers: 3, Status: StatusHealthy}
	e := New(cfg, Deps{})
	e.UpdateHealth(HealthPatch{}.WithVoltage(10))

	want := Health{Voltage: 10, Revenue: 50, ActiveUsers: 3, Status: StatusHealthy}
	if e.Health() != want {
		t.Fatalf("expected %+v, got %+v", want, e.Health())
	}
}

func TestUpdateHealth_EmptyPatchIsNoop(t *testing.T) {
	e := New(testConfig(), Deps{})
	before, faces := e.Health(), e.Faces()
	if !(HealthPatch{}).Empty() || (HealthPatch{}).WithActiveUsers(0).Empty() {
		t.Fatal("Empty should only hold for a patch with no fields set")
	}
	e.UpdateHealth(HealthPatch{})
	if e.Health() != before || e.Faces() != faces {
		t.Fatal("empty patch changed the entity")
	}
}

func TestLookup_KnownAndUnknown(t *testing.T) {
	s, ok := Lookup(CategoryBank)
	if !ok || s.ID != "bank" || s.Footprint != (Footprint{Width: 2, Height: 2}) {
		t.Fatalf("unexpected bank row %+v (ok=%v)", s, ok)
	}
	if _, ok := Lookup(Category("casino")); ok {
		t.Fatal("unknown category should not resolve")
	}
}

func TestUpdateHealth_StatusDrivesAppearance(t *testing.T) {
	e := New(testConfig(), Deps{})
	cases := []struct {
		status Status
		tint   [3]uint8
		filter Filter
	}{
		{StatusHealthy, [3]uint8{255, 255, 255}, FilterNone},
		{StatusWarning, [3]uint8{tintWarning.R, tintWarning.G, tintWarning.B}, FilterNone},
		{StatusCritical, [3]uint8{tintCritical.R, tintCritical.G, tintCritical.B}, FilterGlow},
		{StatusOffline, [3]uint8{tintOffline.R, tintOffline.G, tintOffline.B}, FilterGrayscale},
	}
	for _, c := range cases {
		e.UpdateHealth(HealthPatch{}.WithStatus(c.status))
		a := e.Appearance()
		got := [3]uint8{a.Tint.R, a.Tint.G, a.Tint.B}
		if got != c.tint || a.Filter != c.filter {
			t.Fatalf("%s: got tint %v filter %s", c.status, got, a.Filter)
		}
	}
}

func TestOffline_FacesAreGray(t *testing.T) {
	e := New(testConfig(), Deps{})
	e.UpdateHealth(HealthPatch{}.WithStatus(StatusOffline))
	for _, f := range e.Faces() {
		if f.Color.R != f.Color.G || f.Color.G != f.Color.B {
			t.Fatalf("face %d not desaturated: %+v", f.Kind, f.Color)
		}
	}
}

func TestHover_OverridesTintAndRestores(t *testing.T) {
	r := newFakeRouter()
	e := New(testConfig(), Deps{Router: r})
	e.UpdateHealth(HealthPatch{}.WithStatus(StatusCritical))

	r.fire("b1", PointerEnter, 0, 0)
	a := e.Appearance()
	if a.Tint != tintHighlight || !a.Hovered || !a.IndicatorVisible {
		t.Fatalf("hover not applied: %+v", a)
	}
	if a.Filter != FilterGlow {
		t.Fatal("hover should keep the status filter")
	}
	if e.Health().Status != StatusCritical {
		t.Fatal("hover must not change status")
	}
	if _, visible := e.HealthBar(); !visible {
		t.Fatal("health bar should show while hovered")
	}

	r.fire("b1", PointerLeave, 0, 0)
	a = e.Appearance()
	if a.Tint != tintCritical || a.Hovered || a.IndicatorVisible {
		t.Fatalf("leave did not restore: %+v", a)
	}
}

func TestPointerDown_EmitsSelectionCopy(t *testing.T) {
	r := newFakeRouter()
	var got []Selection
	e := New(testConfig(), Deps{Router: r, OnSelect: func(s Selection) { got = append(got, s) }})
	e.UpdateHealth(HealthPatch{}.WithRevenue(12.5).WithActiveUsers(4))

	r.fire("b1", PointerDown, 300, 140)
	if len(got) != 1 {
		t.Fatalf("expected one selection, got %d", len(got))
	}
	s := got[0]
	if s.EntityID != "b1" || s.Category != CategoryFactory {
		t.Fatalf("unexpected identity %+v", s)
	}
	if s.ScreenPosition != (iso.ScreenCoord{X: 300, Y: 140}) {
		t.Fatalf("unexpected position %+v", s.ScreenPosition)
	}
	if s.Health.Revenue != 12.5 || s.Health.ActiveUsers != 4 {
		t.Fatalf("unexpected health %+v", s.Health)
	}

	s.Health.Voltage = 0
	if e.Health().Voltage != 100 {
		t.Fatal("selection health must be a copy")
	}
}

func TestTexture_ResolveSwapsPlaceholderAndHitRegion(t *testing.T) {
	l := newFakeLoader()
	e := New(testConfig(), Deps{Loader: l})
	placeholderHit := e.HitRegion()

	e.Update()
	if e.Texture() != nil || !e.TexturePending() {
		t.Fatal("texture should still be pending")
	}

	l.resolve("factory", 96, 80)
	e.Update()
	if e.Texture() == nil {
		t.Fatal("texture should have loaded")
	}
	hit := e.HitRegion()
	if hit.Width() != 96 || hit.Height() != 80 {
		t.Fatalf("expected 96x80 hit region, got %.0fx%.0f", hit.Width(), hit.Height())
	}
	// 2x3 footprint: south corner is 1.5 cells east and 2.5 south of the
	// origin centre.
	base := e.Base()
	if base.X != e.Position().X-32 || base.Y != e.Position().Y+64 {
		t.Fatalf("unexpected base %+v for anchor %+v", base, e.Position())
	}
	if hit.MaxY != base.Y || hit.MinX+48 != base.X {
		t.Fatalf("texture not anchored bottom-centre on the south corner: %+v vs %+v", hit, base)
	}
	if hit == placeholderHit {
		t.Fatal("hit region should have changed")
	}
}

func TestBase_SingleCellAndDegenerate(t *testing.T) {
	cfg := testConfig()
	cfg.Footprint = Footprint{Width: 1, Height: 1}
	one := New(cfg, Deps{})
	if b := one.Base(); b.X != one.Position().X || b.Y != one.Position().Y+16 {
		t.Fatalf("1x1 base should be the origin cell's south corner, got %+v", b)
	}
	cfg.Footprint = Footprint{}
	zero := New(cfg, Deps{})
	if zero.Base() != one.Base() {
		t.Fatalf("empty footprint should fall back to one cell, got %+v", zero.Base())
	}
}

func TestTexture_RejectKeepsPlaceholder(t *testing.T) {
	l := newFakeLoader()
	e := New(testConfig(), Deps{Loader: l})
	before := e.HitRegion()

	l.reject("factory")
	e.Update()
	if e.Texture() != nil || e.TexturePending() {
		t.Fatal("rejected texture should settle to placeholder")
	}
	if e.HitRegion() != before {
		t.Fatal("placeholder hit region should be unchanged")
	}
}

func TestTexture_ClosedChannelKeepsPlaceholder(t *testing.T) {
	e := New(testConfig(), Deps{Loader: TextureLoaderFunc(func(string) <-chan TextureResult {
		ch := make(chan TextureResult)
		close(ch)
		return ch
	})})
	e.Update()
	if e.Texture() != nil || e.TexturePending() {
		t.Fatal("closed channel should settle to placeholder")
	}
}

func TestTexture_NoLoaderIsPlaceholderOnly(t *testing.T) {
	e := New(testConfig(), Deps{})
	e.Update()
	if e.TexturePending() || e.Texture() != nil {
		t.Fatal("nil loader should never request a texture")
	}
}

func TestDestroy_ThenResolveIsNoOp(t *testing.T) {
	l := newFakeLoader()
	r := newFakeRouter()
	e := New(testConfig(), Deps{Loader: l, Router: r})
	e.Destroy()
	hit := e.HitRegion()
	look := e.Appearance()

	l.resolve("factory", 64, 64)
	e.Update()
	e.UpdateHealth(HealthPatch{}.WithStatus(StatusOffline))

	if e.Texture() != nil {
		t.Fatal("destroyed entity must not take a texture")
	}
	if e.HitRegion() != hit || e.Appearance() != look {
		t.Fatal("destroyed entity visible state changed")
	}
	if e.Health().Status != StatusHealthy {
		t.Fatal("destroyed entity health changed")
	}
}

func TestDestroy_DetachesHandlersOnce(t *testing.T) {
	r := newFakeRouter()
	selected := 0
	e := New(testConfig(), Deps{Router: r, OnSelect: func(Selection) { selected++ }})
	if len(r.handlers["b1"]) != 3 {
		t.Fatalf("expected 3 handlers, got %d", len(r.handlers["b1"]))
	}
	e.Destroy()
	e.Destroy()
	if len(r.offCalls) != 1 {
		t.Fatalf("expected one Off call, got %d", len(r.offCalls))
	}
	if r.fire("b1", PointerDown, 0, 0) {
		t.Fatal("handlers should be gone")
	}
	if selected != 0 || e.Alive() {
		t.Fatal("destroyed entity still active")
	}
}

func TestFaces_ZeroFootprintIsDegenerate(t *testing.T) {
	e := New(Config{ID: "z", Footprint: Footprint{}}, Deps{})
	f := e.Faces()
	for _, face := range f[1:] {
		p := face.Points
		area := (p[1].X-p[0].X)*(p[2].Y-p[0].Y) - (p[2].X-p[0].X)*(p[1].Y-p[0].Y)
		if math.Abs(area) > 1e-9 {
			t.Fatalf("expected zero-area wall, got %.3f", area)
		}
	}
	if e.HitRegion().Width() != 0 {
		t.Fatalf("expected zero-width hit region, got %.3f", e.HitRegion().Width())
	}
}

func TestFaces_RoofRaisedByBoxHeight(t *testing.T) {
	e := New(testConfig(), Deps{})
	spec := specFor(CategoryFactory)
	f := e.Faces()
	roof, left := f[0], f[1]
	// Left wall bottom-left corner vs roof left corner.
	if left.Points[0].Y-roof.Points[3].Y != spec.BoxHeight {
		t.Fatalf("roof should sit %.0f px above the ground", spec.BoxHeight)
	}
}

func TestSign_SitsAboveBody(t *testing.T) {
	e := New(testConfig(), Deps{})
	s, fx := e.Sign()
	if s.Rect.MaxY >= e.HitRegion().MinY {
		t.Fatal("sign should be above the body")
	}
	if fx.Alpha != 1 {
		t.Fatalf("factory sign should be steady, got alpha %.2f", fx.Alpha)
	}
	if s.Color != signColor(StatusHealthy) {
		t.Fatal("sign colour should follow status")
	}
}

func TestBehavior_ConstructionBlinks(t *testing.T) {
	cfg, ok := FromCatalog(CategoryConstruction)
	if !ok {
		t.Fatal("construction missing from catalog")
	}
	e := New(cfg, Deps{})
	if e.Anchored() {
		t.Fatal("construction should float")
	}
	seen := map[float64]bool{}
	for i := 0; i < blinkHalfPeriod*2; i++ {
		e.Update()
		_, fx := e.Sign()
		seen[fx.Alpha] = true
	}
	if !seen[0] || !seen[1] {
		t.Fatalf("expected sign to blink, saw %v", seen)
	}
}
