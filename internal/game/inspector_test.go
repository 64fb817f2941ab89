package game

import (
	"strings"
	"testing"

	"github.com/Garsondee/skyline/internal/entity"
)

func TestInspector_ReportEmptyWhenClosed(t *testing.T) {
	var in Inspector
	if in.Report() != "" {
		t.Fatal("closed inspector should report nothing")
	}
	if err := in.Copy(); err != nil {
		t.Fatalf("copy on closed inspector should be a no-op: %v", err)
	}
}

func TestInspector_ReportFromClick(t *testing.T) {
	ts := NewTestScene(WithCategory(entity.CategoryBank))
	ts.Entity("bank").UpdateHealth(entity.HealthPatch{}.WithVoltage(42).WithStatus(entity.StatusWarning))
	if !ts.ClickEntity("bank") {
		t.Fatal("click missed the bank")
	}
	var in Inspector
	in.Open(ts.Selections[0], ts.Entity("bank").Persona())
	r := in.Report()
	for _, want := range []string{"entity:       bank", "status:       warning", "voltage:      42.0", "persona:"} {
		if !strings.Contains(r, want) {
			t.Fatalf("report missing %q:\n%s", want, r)
		}
	}
}

func TestInspector_RefreshOnlyWhileOpen(t *testing.T) {
	var in Inspector
	in.Refresh(entity.Health{Voltage: 5})
	if _, open := in.Selected(); open {
		t.Fatal("refresh must not open the panel")
	}
	in.Open(entity.Selection{EntityID: "hq", Health: entity.DefaultHealth()}, "")
	in.Refresh(entity.Health{Voltage: 5, Status: entity.StatusCritical})
	sel, _ := in.Selected()
	if sel.Health.Voltage != 5 || sel.Health.Status != entity.StatusCritical {
		t.Fatalf("refresh not applied: %+v", sel.Health)
	}
	in.Close()
	if _, open := in.Selected(); open {
		t.Fatal("expected closed")
	}
}

func TestInspector_CuratedLinesWrapPersona(t *testing.T) {
	var in Inspector
	in.Open(entity.Selection{EntityID: "lab", Health: entity.DefaultHealth()},
		"Runs experiments on pricing pages and reports the winners.")
	for _, l := range in.lines() {
		if len(l) > inspWrap && !strings.HasPrefix(l, "voltage") {
			t.Fatalf("line too wide: %q", l)
		}
	}
	in.ToggleRaw()
	if got := in.lines(); len(got) == 0 || !strings.HasPrefix(got[0], "entity:") {
		t.Fatalf("raw view should dump the report, got %v", got)
	}
}

func TestInspector_CuratedShowsHistory(t *testing.T) {
	al := NewActivityLog()
	al.Add(10, "bank", entity.StatusWarning, "healthy -> warning")
	al.Add(20, "hq", entity.StatusHealthy, "selected")
	al.Add(30, "bank", entity.StatusHealthy, "selected")

	var in Inspector
	in.Open(entity.Selection{EntityID: "bank", Health: entity.DefaultHealth()}, "")
	in.SetHistory(al.ForEntity("bank", inspHistory))
	joined := strings.Join(in.lines(), "\n")
	if !strings.Contains(joined, "recent:") || !strings.Contains(joined, "10 healthy -> warning") || strings.Contains(joined, "   20 ") {
		t.Fatalf("unexpected history view:\n%s", joined)
	}

	in.Open(entity.Selection{EntityID: "hq"}, "")
	if strings.Contains(strings.Join(in.lines(), "\n"), "recent:") {
		t.Fatal("reopening should drop the previous entity's history")
	}
}

func TestMeter_Clamps(t *testing.T) {
	if m := meter(2); strings.Count(m, "#") != barCells {
		t.Fatalf("over-range meter: %s", m)
	}
	if m := meter(-1); strings.Count(m, "#") != 0 {
		t.Fatalf("under-range meter: %s", m)
	}
}
