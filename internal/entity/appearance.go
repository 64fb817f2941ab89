package entity

import (
	"image/color"
	"math"
)

// Filter is the post-effect applied on top of the tint.
type Filter int

const (
	FilterNone      Filter = iota
	FilterGlow             // blur-style red halo
	FilterGrayscale        // full desaturation
)

func (f Filter) String() string {
	switch f {
	case FilterGlow:
		return "glow"
	case FilterGrayscale:
		return "grayscale"
	default:
		return "none"
	}
}

// Appearance is the visual state replayed whenever status or hover changes.
type Appearance struct {
	Tint             color.RGBA
	Filter           Filter
	Hovered          bool
	IndicatorVisible bool
}

var (
	tintNeutral   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	tintWarning   = color.RGBA{R: 255, G: 243, B: 170, A: 255}
	tintCritical  = color.RGBA{R: 255, G: 120, B: 110, A: 255}
	tintOffline   = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	tintHighlight = color.RGBA{R: 170, G: 220, B: 255, A: 255}

	glowColor = color.RGBA{R: 255, G: 40, B: 30, A: 90}
)

// statusTreatment maps a status to its tint and filter.
func statusTreatment(s Status) (color.RGBA, Filter) {
	switch s {
	case StatusWarning:
		return tintWarning, FilterNone
	case StatusCritical:
		return tintCritical, FilterGlow
	case StatusOffline:
		return tintOffline, FilterGrayscale
	default:
		return tintNeutral, FilterNone
	}
}

// appearanceFor derives the appearance; hover overrides tint only.
func appearanceFor(s Status, hovered bool) Appearance {
	tint, filter := statusTreatment(s)
	if hovered {
		tint = tintHighlight
	}
	return Appearance{Tint: tint, Filter: filter, Hovered: hovered, IndicatorVisible: hovered}
}

// signColor is the fill of the little status sign above the roof.
func signColor(s Status) color.RGBA {
	switch s {
	case StatusWarning:
		return color.RGBA{R: 240, G: 190, B: 40, A: 255}
	case StatusCritical:
		return color.RGBA{R: 230, G: 40, B: 40, A: 255}
	case StatusOffline:
		return color.RGBA{R: 90, G: 90, B: 90, A: 255}
	default:
		return color.RGBA{R: 60, G: 200, B: 90, A: 255}
	}
}

// barColor is the health bar fill for a voltage ratio.
func barColor(r float64) color.RGBA {
	switch {
	case r > 0.6:
		return color.RGBA{R: 60, G: 200, B: 90, A: 230}
	case r > 0.3:
		return color.RGBA{R: 240, G: 190, B: 40, A: 230}
	default:
		return color.RGBA{R: 230, G: 40, B: 40, A: 230}
	}
}

func clampU8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}

// brighten scales RGB by f, keeping alpha.
func brighten(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: clampU8(float64(c.R) * f),
		G: clampU8(float64(c.G) * f),
		B: clampU8(float64(c.B) * f),
		A: c.A,
	}
}

// multiply applies a tint channel-wise.
func multiply(c, tint color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(uint16(c.R) * uint16(tint.R) / 255),
		G: uint8(uint16(c.G) * uint16(tint.G) / 255),
		B: uint8(uint16(c.B) * uint16(tint.B) / 255),
		A: c.A,
	}
}

// desaturate collapses c to its Rec. 601 luma.
func desaturate(c color.RGBA) color.RGBA {
	l := clampU8(0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B))
	return color.RGBA{R: l, G: l, B: l, A: c.A}
}

// lerpColor blends a toward b by t in 0..1.
func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	return color.RGBA{
		R: clampU8(float64(a.R)*(1-t) + float64(b.R)*t),
		G: clampU8(float64(a.G)*(1-t) + float64(b.G)*t),
		B: clampU8(float64(a.B)*(1-t) + float64(b.B)*t),
		A: clampU8(float64(a.A)*(1-t) + float64(b.A)*t),
	}
}

// shade returns base treated by the appearance.
func (a Appearance) shade(base color.RGBA) color.RGBA {
	c := multiply(base, a.Tint)
	if a.Filter == FilterGrayscale {
		c = desaturate(c)
	}
	return c
}
