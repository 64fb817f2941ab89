package game

import "github.com/Garsondee/skyline/internal/entity"

// Router delivers pointer events to the handlers entities register. It
// tracks the hovered owner so enter/leave fire once per transition.
type Router struct {
	handlers map[string]map[entity.PointerKind]entity.PointerHandler
	hovered  string
	log      *EventLog
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{handlers: make(map[string]map[entity.PointerKind]entity.PointerHandler)}
}

// On registers h for owner and kind, replacing any previous handler.
func (r *Router) On(owner string, kind entity.PointerKind, h entity.PointerHandler) {
	m, ok := r.handlers[owner]
	if !ok {
		m = make(map[entity.PointerKind]entity.PointerHandler)
		r.handlers[owner] = m
	}
	m[kind] = h
}

// SetLog records hover transitions as verbose pointer events.
func (r *Router) SetLog(l *EventLog) { r.log = l }

// Off removes every handler of owner.
func (r *Router) Off(owner string) {
	delete(r.handlers, owner)
	if r.hovered == owner {
		r.hovered = ""
	}
}

// Registered reports whether owner has any handler.
func (r *Router) Registered(owner string) bool {
	return len(r.handlers[owner]) > 0
}

// Hovered returns the owner under the pointer, empty if none.
func (r *Router) Hovered() string { return r.hovered }

func (r *Router) dispatch(owner string, kind entity.PointerKind, x, y float64) {
	if owner == "" {
		return
	}
	if h, ok := r.handlers[owner][kind]; ok {
		h(entity.PointerEvent{Kind: kind, X: x, Y: y})
	}
}

// Move updates the hovered owner. An empty target means nothing is under
// the pointer.
func (r *Router) Move(target string, x, y float64) {
	if target == r.hovered {
		return
	}
	prev := r.hovered
	r.hovered = target
	r.dispatch(prev, entity.PointerLeave, x, y)
	r.dispatch(target, entity.PointerEnter, x, y)
	if r.log != nil {
		if prev != "" {
			r.log.AddVerbose(prev, "pointer", "leave", "", 0)
		}
		if target != "" {
			r.log.AddVerbose(target, "pointer", "enter", "", 0)
		}
	}
}

// Press sends pointer-down to target. Returns false when nothing was hit.
func (r *Router) Press(target string, x, y float64) bool {
	if target == "" || !r.Registered(target) {
		return false
	}
	r.dispatch(target, entity.PointerDown, x, y)
	return true
}

// routePointer picks the entity under window pixel (sx,sy) and feeds the
// router. pressed is the edge-triggered button state.
func routePointer(cam Camera, scene *Scene, r *Router, sx, sy float64, pressed bool) (hit *entity.Entity, clicked bool) {
	wx, wy := cam.ScreenToWorld(sx, sy)
	hit = scene.Pick(wx, wy)
	target := ""
	if hit != nil {
		target = hit.ID()
	}
	r.Move(target, sx, sy)
	if pressed {
		clicked = r.Press(target, sx, sy)
	}
	return hit, clicked
}
