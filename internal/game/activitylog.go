package game

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/skyline/internal/entity"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	logPanelWidth = 320
	logMaxEntries = 60
	logLineHeight = 11

	activityFadeAfter = 600 // ticks before a routine line starts to dim
	activityFadeSpan  = 600
	activityMinAlpha  = 70
)

// ActivityEntry is a single line in the activity panel.
type ActivityEntry struct {
	Tick    int
	Label   string // entity id
	Status  entity.Status
	Message string
}

// ActivityLog is a ring buffer of recent dashboard activity rendered on-screen.
type ActivityLog struct {
	entries []ActivityEntry
	head    int
	count   int
}

// NewActivityLog creates an activity log with a fixed capacity.
func NewActivityLog() *ActivityLog {
	return &ActivityLog{
		entries: make([]ActivityEntry, logMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest once full.
func (al *ActivityLog) Add(tick int, label string, status entity.Status, msg string) {
	al.entries[al.head] = ActivityEntry{
		Tick:    tick,
		Label:   label,
		Status:  status,
		Message: msg,
	}
	al.head = (al.head + 1) % logMaxEntries
	if al.count < logMaxEntries {
		al.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (al *ActivityLog) Recent() []ActivityEntry {
	result := make([]ActivityEntry, al.count)
	for i := 0; i < al.count; i++ {
		idx := (al.head - al.count + i + logMaxEntries) % logMaxEntries
		result[i] = al.entries[idx]
	}
	return result
}

// ForEntity returns up to n of the newest entries for label, oldest first.
func (al *ActivityLog) ForEntity(label string, n int) []ActivityEntry {
	if n <= 0 {
		return nil
	}
	var out []ActivityEntry
	for i := 0; i < al.count && len(out) < n; i++ {
		idx := (al.head - 1 - i + logMaxEntries) % logMaxEntries
		if al.entries[idx].Label == label {
			out = append(out, al.entries[idx])
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// lineAlpha dims routine lines as they age. Critical and offline lines
// stay at full strength until they scroll out.
func lineAlpha(e ActivityEntry, now int) uint8 {
	if e.Status == entity.StatusCritical || e.Status == entity.StatusOffline {
		return 255
	}
	age := now - e.Tick - activityFadeAfter
	if age <= 0 {
		return 255
	}
	if age >= activityFadeSpan {
		return activityMinAlpha
	}
	return uint8(255 - (255-activityMinAlpha)*age/activityFadeSpan)
}

// statusDot is the indicator colour beside each line.
func statusDot(s entity.Status) color.RGBA {
	switch s {
	case entity.StatusWarning:
		return color.RGBA{R: 240, G: 190, B: 40, A: 255}
	case entity.StatusCritical:
		return color.RGBA{R: 220, G: 50, B: 50, A: 255}
	case entity.StatusOffline:
		return color.RGBA{R: 110, G: 110, B: 110, A: 255}
	default:
		return color.RGBA{R: 70, G: 200, B: 100, A: 255}
	}
}

// Draw renders the activity panel on the right side of the screen. Lines
// about focus (the inspected entity) are highlighted.
func (al *ActivityLog) Draw(screen *ebiten.Image, panelX int, panelH int, now int, focus string) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 10, G: 12, B: 16, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 60, B: 80, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 16, color.RGBA{R: 20, G: 26, B: 36, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "ACTIVITY", panelX+8, 2)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+logPanelWidth), 16, 1.0, color.RGBA{R: 50, G: 70, B: 90, A: 200}, false)

	entries := al.Recent()

	// Newest at the bottom.
	maxVisible := (panelH - 24) / logLineHeight
	startIdx := 0
	if len(entries) > maxVisible {
		startIdx = len(entries) - maxVisible
	}

	y := 20
	for _, e := range entries[startIdx:] {
		if focus != "" && e.Label == focus {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 36, G: 48, B: 70, A: 200}, false)
		}
		c := statusDot(e.Status)
		dot := color.NRGBA{R: c.R, G: c.G, B: c.B, A: lineAlpha(e, now)}
		vector.FillRect(screen, float32(panelX+5), float32(y+3), 3, 5, dot, false)

		line := fmt.Sprintf("%4d [%s] %s", e.Tick, e.Label, e.Message)
		ebitenutil.DebugPrintAt(screen, line, panelX+12, y)
		y += logLineHeight
	}
}
