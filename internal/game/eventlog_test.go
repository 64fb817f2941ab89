package game

import (
	"strings"
	"sync"
	"testing"
)

func TestEventLog_FilterAndLastOf(t *testing.T) {
	el := NewEventLog(false)
	el.SetTick(3)
	el.Add("bank", "health", "status_change", "healthy → warning", 55)
	el.SetTick(9)
	el.Add("bank", "health", "status_change", "warning → critical", 20)
	el.Add("lab", "texture", "loaded", "lab 64x64", 0)

	if n := el.Count("health", "status_change"); n != 2 {
		t.Fatalf("expected 2 status changes, got %d", n)
	}
	last, ok := el.LastOf("health", "status_change")
	if !ok || last.Tick != 9 || last.NumVal != 20 {
		t.Fatalf("unexpected last entry %+v", last)
	}
	if len(el.FilterEntity("lab")) != 1 {
		t.Fatal("expected one lab entry")
	}
	if !el.HasEntry("health", "", "critical") {
		t.Fatal("expected a critical transition")
	}
	if el.HasEntry("texture", "failed", "") {
		t.Fatal("no texture failure was recorded")
	}
}

func TestEventLog_VerboseGate(t *testing.T) {
	quiet := NewEventLog(false)
	quiet.AddVerbose("hq", "pointer", "enter", "", 0)
	if len(quiet.Entries()) != 0 {
		t.Fatal("verbose entry recorded on quiet log")
	}
	loud := NewEventLog(true)
	loud.AddVerbose("hq", "pointer", "enter", "", 0)
	if len(loud.Entries()) != 1 {
		t.Fatal("verbose entry missing")
	}
}

func TestEventLog_FormatFixedWidth(t *testing.T) {
	el := NewEventLog(false)
	el.SetTick(42)
	el.Add("bank", "health", "status_change", "healthy → warning", 0)
	out := el.Format()
	if !strings.HasPrefix(out, "[T=042] bank ") {
		t.Fatalf("unexpected format %q", out)
	}
}

func TestEventLog_ConcurrentAdd(t *testing.T) {
	el := NewEventLog(false)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			el.Add("x", "texture", "loaded", "", 0)
		}()
	}
	wg.Wait()
	if el.Count("texture", "loaded") != 8 {
		t.Fatal("lost concurrent entries")
	}
}

func TestEventLog_EmptyEntityIsSceneWide(t *testing.T) {
	el := NewEventLog(false)
	el.Add("", "scene", "populate_failed", "boom", 0)
	el.Add(sceneWide, "inspector", "copy_failed", "no clipboard", 0)
	for _, e := range el.Entries() {
		if e.Entity != sceneWide {
			t.Fatalf("expected %q, got %q", sceneWide, e.Entity)
		}
	}
	if !strings.Contains(el.Entries()[0].String(), " -- ") {
		t.Fatalf("scene-wide marker missing from %q", el.Entries()[0].String())
	}
}
