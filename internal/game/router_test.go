package game

import (
	"testing"

	"github.com/Garsondee/skyline/internal/entity"
)

func TestRouter_EnterLeaveOncePerTransition(t *testing.T) {
	r := NewRouter()
	counts := map[entity.PointerKind]int{}
	for _, k := range []entity.PointerKind{entity.PointerEnter, entity.PointerLeave} {
		k := k
		r.On("a", k, func(entity.PointerEvent) { counts[k]++ })
	}
	r.Move("a", 1, 1)
	r.Move("a", 2, 2)
	r.Move("", 3, 3)
	r.Move("", 4, 4)
	if counts[entity.PointerEnter] != 1 || counts[entity.PointerLeave] != 1 {
		t.Fatalf("expected one enter and one leave, got %v", counts)
	}
}

func TestRouter_OffClearsHover(t *testing.T) {
	r := NewRouter()
	r.On("a", entity.PointerEnter, func(entity.PointerEvent) {})
	r.Move("a", 0, 0)
	r.Off("a")
	if r.Hovered() != "" {
		t.Fatalf("expected no hover, got %q", r.Hovered())
	}
	if r.Press("a", 0, 0) {
		t.Fatal("press after Off should miss")
	}
}

func TestRouter_HoverThroughScene(t *testing.T) {
	ts := NewTestScene(WithEntity(cell("a", 0, 0)))
	e := ts.Entity("a")
	sx, sy := ts.ScreenOf(e.Position())
	if hit := ts.PointerMove(sx, sy-10); hit != e {
		t.Fatal("expected pointer over a")
	}
	if !e.Hovered() {
		t.Fatal("hover should reach the entity")
	}
	if _, visible := e.HealthBar(); !visible {
		t.Fatal("health bar should show on hover")
	}
	ts.PointerMove(0, 0)
	if e.Hovered() {
		t.Fatal("leave should clear hover")
	}
}

func TestRouter_VerboseLogsHoverTransitions(t *testing.T) {
	ts := NewTestScene(WithVerbose(true), WithEntity(cell("a", 0, 0)))
	sx, sy := ts.ScreenOf(ts.Entity("a").Position())
	ts.PointerMove(sx, sy-10)
	ts.PointerMove(sx, sy-12)
	ts.PointerMove(0, 0)
	if ts.Events.Count("pointer", "enter") != 1 || ts.Events.Count("pointer", "leave") != 1 {
		t.Fatalf("expected one enter and one leave:\n%s", ts.Events.Format())
	}

	quiet := NewTestScene(WithEntity(cell("a", 0, 0)))
	quiet.PointerMove(sx, sy-10)
	if n := len(quiet.Events.Filter("pointer", "")); n != 0 {
		t.Fatalf("hover logged without verbose: %d entries", n)
	}
}

func TestRouter_ClickSelects(t *testing.T) {
	ts := NewTestScene(WithCategory(entity.CategoryLab))
	if !ts.ClickEntity("lab") {
		t.Fatal("click should hit the lab")
	}
	if len(ts.Selections) != 1 {
		t.Fatalf("expected 1 selection, got %d", len(ts.Selections))
	}
	sel := ts.Selections[0]
	if sel.EntityID != "lab" || sel.Category != entity.CategoryLab {
		t.Fatalf("unexpected selection %+v", sel)
	}
	sel.Health.Voltage = -1
	if ts.Entity("lab").Health().Voltage == -1 {
		t.Fatal("selection health must be a copy")
	}
	if !ts.Events.HasEntry("select", "down", "lab") {
		t.Fatalf("missing select event:\n%s", ts.Events.Format())
	}
}

func TestRouter_ClickEmptyMisses(t *testing.T) {
	ts := NewTestScene(WithCategory(entity.CategoryLab))
	if ts.Click(1, 1) {
		t.Fatal("click on empty ground should miss")
	}
	if len(ts.Selections) != 0 {
		t.Fatal("no selection expected")
	}
}

func TestRouter_DestroyedEntityIgnoresPointer(t *testing.T) {
	ts := NewTestScene(WithCategory(entity.CategoryLab))
	e := ts.Entity("lab")
	sx, sy := ts.ScreenOf(e.Position())
	ts.Scene.Remove("lab")
	ts.PointerMove(sx, sy-5)
	if ts.Click(sx, sy-5) {
		t.Fatal("removed entity should not take clicks")
	}
	if e.Hovered() || len(ts.Selections) != 0 {
		t.Fatal("removed entity should not react")
	}
}
