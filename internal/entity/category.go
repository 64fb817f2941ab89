package entity

import (
	"image/color"
	"math"
	"sort"

	"github.com/Garsondee/skyline/internal/iso"
)

// Category names a kind of structure. Per-category differences live in the
// Catalog table, not in separate types.
type Category string

const (
	CategoryHeadquarters Category = "headquarters"
	CategoryBank         Category = "bank"
	CategoryFactory      Category = "factory"
	CategoryLab          Category = "lab"
	CategoryWarehouse    Category = "warehouse"
	CategoryConstruction Category = "construction"
)

// Footprint is the grid-cell span of a placed entity.
type Footprint struct {
	Width  int
	Height int
}

// SignFx is the per-tick state of the status sign decoration.
type SignFx struct {
	Alpha float64 // 0 hides the sign
}

// Behavior animates category-specific decoration. It must be pure in tick.
type Behavior func(tick int) SignFx

// Spec is one row of the category table.
type Spec struct {
	ID         string
	Footprint  Footprint
	Origin     iso.GridCoord
	TextureKey string
	Persona    string
	Anchored   bool
	BaseColor  color.RGBA
	BoxHeight  float64 // placeholder wall height in pixels
	Behavior   Behavior
}

const (
	defaultBoxHeight = 24.0
	pulsePeriod      = 90 // ticks per bank sign pulse
	blinkHalfPeriod  = 30 // ticks on, then ticks off, for construction
)

var defaultBaseColor = color.RGBA{R: 140, G: 140, B: 150, A: 255}

// pulseSign breathes the sign between 0.4 and 1.0 alpha.
func pulseSign(tick int) SignFx {
	phase := float64(tick%pulsePeriod) / pulsePeriod * 2 * math.Pi
	return SignFx{Alpha: 0.7 + 0.3*math.Sin(phase)}
}

// blinkSign toggles the sign like a site beacon.
func blinkSign(tick int) SignFx {
	if (tick/blinkHalfPeriod)%2 == 0 {
		return SignFx{Alpha: 1}
	}
	return SignFx{Alpha: 0}
}

func steadySign(int) SignFx { return SignFx{Alpha: 1} }

// Catalog is the data-driven category table the scene builder places from.
var Catalog = map[Category]Spec{
	CategoryHeadquarters: {
		ID:         "hq",
		Footprint:  Footprint{Width: 3, Height: 3},
		Origin:     iso.GridCoord{X: 0, Y: 0},
		TextureKey: "headquarters",
		Persona:    "Owns the pipeline. Wants every tile green before the Monday review.",
		Anchored:   true,
		BaseColor:  color.RGBA{R: 70, G: 120, B: 190, A: 255},
		BoxHeight:  48,
	},
	CategoryBank: {
		ID:         "bank",
		Footprint:  Footprint{Width: 2, Height: 2},
		Origin:     iso.GridCoord{X: 5, Y: -3},
		TextureKey: "bank",
		Persona:    "Tracks revenue per account and flags anything that drops overnight.",
		Anchored:   true,
		BaseColor:  color.RGBA{R: 200, G: 170, B: 70, A: 255},
		BoxHeight:  32,
		Behavior:   pulseSign,
	},
	CategoryFactory: {
		ID:         "factory",
		Footprint:  Footprint{Width: 3, Height: 2},
		Origin:     iso.GridCoord{X: 8, Y: 4},
		TextureKey: "factory",
		Persona:    "Turns qualified leads into signed deals; noisy when throughput stalls.",
		Anchored:   true,
		BaseColor:  color.RGBA{R: 130, G: 130, B: 140, A: 255},
		BoxHeight:  28,
	},
	CategoryLab: {
		ID:         "lab",
		Footprint:  Footprint{Width: 2, Height: 2},
		Origin:     iso.GridCoord{X: -4, Y: 6},
		TextureKey: "lab",
		Persona:    "Runs experiments on pricing pages and reports the winners.",
		Anchored:   true,
		BaseColor:  color.RGBA{R: 90, G: 170, B: 150, A: 255},
		BoxHeight:  26,
	},
	CategoryWarehouse: {
		ID:         "warehouse",
		Footprint:  Footprint{Width: 4, Height: 2},
		Origin:     iso.GridCoord{X: 2, Y: 9},
		TextureKey: "warehouse",
		Persona:    "Stores archived contacts; quiet unless storage runs low.",
		Anchored:   true,
		BaseColor:  color.RGBA{R: 160, G: 110, B: 80, A: 255},
		BoxHeight:  20,
	},
	CategoryConstruction: {
		ID:         "construction",
		Footprint:  Footprint{Width: 2, Height: 2},
		Origin:     iso.GridCoord{X: 11, Y: -1},
		TextureKey: "construction",
		Persona:    "A module still being built. Hovers until it ships.",
		Anchored:   false,
		BaseColor:  color.RGBA{R: 220, G: 140, B: 50, A: 255},
		BoxHeight:  18,
		Behavior:   blinkSign,
	},
}

// Lookup returns the catalog row for c.
func Lookup(c Category) (Spec, bool) {
	s, ok := Catalog[c]
	return s, ok
}

// Categories lists every catalog category in a stable order.
func Categories() []Category {
	out := make([]Category, 0, len(Catalog))
	for c := range Catalog {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// specFor returns the catalog row for c, or a neutral row for unknown
// categories so they still render.
func specFor(c Category) Spec {
	if s, ok := Lookup(c); ok {
		if s.BoxHeight == 0 {
			s.BoxHeight = defaultBoxHeight
		}
		if s.Behavior == nil {
			s.Behavior = steadySign
		}
		return s
	}
	return Spec{
		BaseColor: defaultBaseColor,
		BoxHeight: defaultBoxHeight,
		Anchored:  true,
		Behavior:  steadySign,
	}
}
