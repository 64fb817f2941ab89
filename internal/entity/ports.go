package entity

import (
	"image"

	"github.com/Garsondee/skyline/internal/iso"
)

// TextureResult settles one texture request.
type TextureResult struct {
	Image image.Image
	Err   error
}

// TextureLoader resolves texture keys asynchronously. The returned channel
// delivers at most one result and should be buffered so a sender never
// blocks on an entity that stopped listening. A channel that never
// delivers leaves the placeholder in place.
type TextureLoader interface {
	Load(key string) <-chan TextureResult
}

// TextureLoaderFunc adapts a function to TextureLoader.
type TextureLoaderFunc func(key string) <-chan TextureResult

// Load calls f.
func (f TextureLoaderFunc) Load(key string) <-chan TextureResult { return f(key) }

// PointerKind is the kind of pointer interaction routed to an entity.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerEnter
	PointerLeave
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerEnter:
		return "enter"
	case PointerLeave:
		return "leave"
	default:
		return "unknown"
	}
}

// PointerEvent carries the pointer position in screen pixels.
type PointerEvent struct {
	Kind PointerKind
	X, Y float64
}

// PointerHandler receives routed pointer events.
type PointerHandler func(PointerEvent)

// PointerRouter is the host's input layer. Entities register handlers under
// their id at construction and remove them all with Off on destroy.
type PointerRouter interface {
	On(owner string, kind PointerKind, h PointerHandler)
	Off(owner string)
}

// Selection is the outward notification sent on pointer-down. Health is a
// copy; mutating it does not affect the entity.
type Selection struct {
	EntityID       string
	Category       Category
	Health         Health
	ScreenPosition iso.ScreenCoord
}
