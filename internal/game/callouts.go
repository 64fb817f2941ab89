package game

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/skyline/internal/entity"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// calloutLifetime is how many ticks a callout stays visible (~3 seconds).
const calloutLifetime = 180

// calloutCooldown is the minimum ticks between callouts per entity (~2 seconds).
const calloutCooldown = 120

// Callout is a transient bubble above an entity announcing a status change.
type Callout struct {
	EntityID string
	Status   entity.Status
	Text     string
	Detail   string
	age      int
}

// Callouts ages and prunes the bubbles shown above entities.
type Callouts struct {
	active []*Callout
	last   map[string]int // entity id → tick of its last callout
}

// NewCallouts creates an empty board.
func NewCallouts() *Callouts {
	return &Callouts{last: make(map[string]int)}
}

// calloutPhrase describes a status transition.
func calloutPhrase(from, to entity.Status, h entity.Health) (string, string) {
	detail := fmt.Sprintf("%.0fV %d users", h.Voltage, h.ActiveUsers)
	switch to {
	case entity.StatusOffline:
		return "OFFLINE", "no signal"
	case entity.StatusCritical:
		return "Critical!", detail
	case entity.StatusWarning:
		if from == entity.StatusHealthy {
			return "Degraded", detail
		}
		return "Recovering", detail
	default:
		if from == entity.StatusOffline {
			return "Back online", detail
		}
		return "All clear", detail
	}
}

// Announce records a status change at tick. Changes inside the per-entity
// cooldown replace the entity's current bubble instead of stacking.
func (c *Callouts) Announce(tick int, id string, from, to entity.Status, h entity.Health) {
	text, detail := calloutPhrase(from, to, h)
	if last, ok := c.last[id]; ok && tick-last < calloutCooldown {
		for _, b := range c.active {
			if b.EntityID == id {
				b.Status, b.Text, b.Detail, b.age = to, text, detail, 0
				return
			}
		}
	}
	c.last[id] = tick
	c.active = append(c.active, &Callout{EntityID: id, Status: to, Text: text, Detail: detail})
}

// Update ages every bubble and drops expired ones.
func (c *Callouts) Update() {
	kept := c.active[:0]
	for _, b := range c.active {
		b.age++
		if b.age < calloutLifetime {
			kept = append(kept, b)
		}
	}
	c.active = kept
}

// Active returns the live bubbles, oldest first.
func (c *Callouts) Active() []*Callout { return c.active }

// alpha fades the last 30% of a bubble's life.
func (b *Callout) alpha() float32 {
	progress := float64(b.age) / calloutLifetime
	if progress > 0.70 {
		return float32(1.0 - (progress-0.70)/0.30)
	}
	return 1
}

// Draw renders each bubble above its entity's hit region.
func (c *Callouts) Draw(screen *ebiten.Image, cam ebiten.GeoM, scene *Scene) {
	const charW = 6
	const lineH = 14
	const padX = 5
	const padY = 3

	for _, b := range c.active {
		e, ok := scene.Get(b.EntityID)
		if !ok {
			continue
		}
		alpha := b.alpha()
		if alpha < 0.05 {
			continue
		}

		maxLen := max(len(b.Text), len(b.Detail))
		bgW := float32(maxLen*charW + padX*2)
		bgH := float32(2*lineH + padY*2)

		top := e.HitRegion()
		ax, ay := cam.Apply(e.Position().X, top.MinY)
		sx := float32(ax)
		bgX := sx - bgW/2
		bgY := float32(ay) - bgH - 22

		vector.FillRect(screen, bgX, bgY, bgW, bgH, color.RGBA{R: 16, G: 18, B: 24, A: uint8(210 * alpha)}, false)
		accent := statusDot(b.Status)
		accent.A = uint8(220 * alpha)
		vector.FillRect(screen, bgX, bgY, 3, bgH, accent, false)
		vector.StrokeRect(screen, bgX, bgY, bgW, bgH, 0.5, color.RGBA{R: 100, G: 100, B: 110, A: uint8(80 * alpha)}, false)

		textX := int(bgX) + padX + 3
		textY := int(bgY) + padY
		ebitenutil.DebugPrintAt(screen, b.Text, textX, textY)
		ebitenutil.DebugPrintAt(screen, b.Detail, textX, textY+lineH)

		vector.StrokeLine(screen, sx, bgY+bgH, sx, float32(ay), 0.5, color.RGBA{R: 100, G: 100, B: 110, A: uint8(60 * alpha)}, false)
	}
}
