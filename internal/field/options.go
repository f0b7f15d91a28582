package field

import (
	"fmt"
	"image/color"
)

// SizePolicy decides how a particle's size is derived from Options.Size.
type SizePolicy int

const (
	// SizeFixed gives every particle exactly Options.Size.
	SizeFixed SizePolicy = iota
	// SizeJitter gives each particle Size*rand+1.
	SizeJitter
)

func (p SizePolicy) String() string {
	if p == SizeJitter {
		return "jitter"
	}
	return "fixed"
}

// ParseSizePolicy maps "fixed" or "jitter" to a SizePolicy. Empty is fixed.
func ParseSizePolicy(s string) (SizePolicy, error) {
	switch s {
	case "", "fixed":
		return SizeFixed, nil
	case "jitter":
		return SizeJitter, nil
	}
	return SizeFixed, fmt.Errorf("unknown size policy %q (supported: fixed, jitter)", s)
}

// Default option values.
const (
	DefaultQuantity     = 5
	DefaultSize         = 1.5
	DefaultSides        = 1
	DefaultLinkDistance = 150.0
	DefaultLinkWidth    = 1.0
	DefaultLinkOpacity  = 0.4
)

// DefaultColor is the fill and stroke colour used when none is configured.
var DefaultColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// Options configures a mounted field.
type Options struct {
	Quantity int
	Size     float64
	Color    color.NRGBA
	// Refresh is a toggle: any change regenerates the particle set.
	Refresh bool

	// Staticity and Ease are accepted for compatibility and have no effect.
	Staticity float64
	Ease      float64

	// VX and VY add a constant drift to every particle each frame.
	VX, VY float64

	SizePolicy SizePolicy
	Sides      int

	LinkDistance float64
	LinkWidth    float64
	LinkOpacity  float64

	// Seed seeds the particle RNG; 0 picks a time-based seed.
	Seed int64
}

// DefaultOptions returns the component defaults.
func DefaultOptions() Options {
	return Options{
		Quantity:     DefaultQuantity,
		Size:         DefaultSize,
		Color:        DefaultColor,
		Sides:        DefaultSides,
		LinkDistance: DefaultLinkDistance,
		LinkWidth:    DefaultLinkWidth,
		LinkOpacity:  DefaultLinkOpacity,
	}
}

// Normalize fills unset or non-positive numeric fields with defaults.
// Quantity 0 is kept: an empty field is valid.
func (o Options) Normalize() Options {
	if o.Quantity < 0 {
		o.Quantity = 0
	}
	if o.Size <= 0 {
		o.Size = DefaultSize
	}
	if o.Color == (color.NRGBA{}) {
		o.Color = DefaultColor
	}
	if o.Sides < 1 {
		o.Sides = DefaultSides
	}
	if o.LinkDistance <= 0 {
		o.LinkDistance = DefaultLinkDistance
	}
	if o.LinkWidth <= 0 {
		o.LinkWidth = DefaultLinkWidth
	}
	if o.LinkOpacity <= 0 {
		o.LinkOpacity = DefaultLinkOpacity
	}
	return o
}

// needsRegenerate reports whether moving from o to next requires a new
// particle set.
func (o Options) needsRegenerate(next Options) bool {
	return o.Quantity != next.Quantity ||
		o.Size != next.Size ||
		o.Color != next.Color ||
		o.Refresh != next.Refresh ||
		o.SizePolicy != next.SizePolicy ||
		o.Sides != next.Sides ||
		o.LinkDistance != next.LinkDistance ||
		o.LinkWidth != next.LinkWidth ||
		o.LinkOpacity != next.LinkOpacity
}

func (o Options) linkStyle() LinkStyle {
	return LinkStyle{Distance: o.LinkDistance, Width: o.LinkWidth, Opacity: o.LinkOpacity}
}

// Summary returns a one-line description of the options.
func (o Options) Summary() string {
	return fmt.Sprintf("quantity=%d size=%.2f color=#%02x%02x%02x policy=%s sides=%d link=%.0f/%.1f/%.2f drift=%.2f,%.2f",
		o.Quantity, o.Size, o.Color.R, o.Color.G, o.Color.B, o.SizePolicy, o.Sides,
		o.LinkDistance, o.LinkWidth, o.LinkOpacity, o.VX, o.VY)
}
