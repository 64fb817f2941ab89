package game

import (
	"fmt"
	"sort"

	"github.com/Garsondee/skyline/internal/entity"
	"github.com/Garsondee/skyline/internal/iso"
)

// cullMargin widens the viewport so tall sprites whose origin is just off
// screen still draw.
const cullMargin = 160.0

// Scene owns the placed entities and their draw order.
type Scene struct {
	proj     iso.Projection
	entities map[string]*entity.Entity
	order    []*entity.Entity
	dirty    bool
}

// NewScene creates an empty scene using projection p.
func NewScene(p iso.Projection) *Scene {
	return &Scene{proj: p, entities: make(map[string]*entity.Entity)}
}

// Projection returns the scene projection.
func (s *Scene) Projection() iso.Projection { return s.proj }

// Place builds an entity from cfg and adds it. A duplicate id is rejected
// before construction so the placed entity keeps its pointer handlers.
func (s *Scene) Place(cfg entity.Config, deps entity.Deps) (*entity.Entity, error) {
	if _, ok := s.entities[cfg.ID]; ok {
		return nil, fmt.Errorf("scene: duplicate entity id %q", cfg.ID)
	}
	e := entity.New(cfg, deps)
	s.insert(e)
	return e, nil
}

func (s *Scene) insert(e *entity.Entity) {
	s.entities[e.ID()] = e
	s.order = append(s.order, e)
	s.dirty = true
}

// Remove destroys and drops the entity with id. Returns false if absent.
func (s *Scene) Remove(id string) bool {
	e, ok := s.entities[id]
	if !ok {
		return false
	}
	e.Destroy()
	delete(s.entities, id)
	kept := s.order[:0]
	for _, o := range s.order {
		if o != e {
			kept = append(kept, o)
		}
	}
	s.order = kept
	return true
}

// Clear destroys every entity.
func (s *Scene) Clear() {
	for _, e := range s.order {
		e.Destroy()
	}
	s.entities = make(map[string]*entity.Entity)
	s.order = nil
}

// Get returns the entity with id.
func (s *Scene) Get(id string) (*entity.Entity, bool) {
	e, ok := s.entities[id]
	return e, ok
}

// Len is the number of placed entities.
func (s *Scene) Len() int { return len(s.order) }

// Sorted returns entities back to front. Equal depths fall back to id so
// the order is stable between frames.
func (s *Scene) Sorted() []*entity.Entity {
	if s.dirty {
		sort.SliceStable(s.order, func(i, j int) bool {
			a, b := s.order[i], s.order[j]
			if a.Depth() != b.Depth() {
				return a.Depth() < b.Depth()
			}
			return a.ID() < b.ID()
		})
		s.dirty = false
	}
	return s.order
}

// Visible returns the back-to-front entities whose origin projects inside
// b grown by cullMargin. Call once per frame; nothing is cached.
func (s *Scene) Visible(b iso.Bounds) []*entity.Entity {
	grown := b.Grow(cullMargin)
	var out []*entity.Entity
	for _, e := range s.Sorted() {
		if s.proj.InViewport(e.Origin(), grown) {
			out = append(out, e)
		}
	}
	return out
}

// Pick returns the front-most entity whose hit region contains the
// world-screen point, or nil.
func (s *Scene) Pick(wx, wy float64) *entity.Entity {
	sorted := s.Sorted()
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i].HitRegion().Contains(wx, wy) {
			return sorted[i]
		}
	}
	return nil
}

// Update steps every entity one tick.
func (s *Scene) Update() {
	for _, e := range s.order {
		e.Update()
	}
}

// PopulateCatalog places one entity per catalog category.
func (s *Scene) PopulateCatalog(deps entity.Deps) error {
	for _, c := range entity.Categories() {
		cfg, _ := entity.FromCatalog(c)
		if _, err := s.Place(cfg, deps); err != nil {
			return err
		}
	}
	return nil
}
