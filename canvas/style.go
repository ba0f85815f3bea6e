package canvas

import "math"

// Color is an RGB color with components in [0, 1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// RGB returns the color with the given components.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Bytes returns the components scaled to 0-255.
func (c Color) Bytes() (r, g, b int) {
	return to255(c.R), to255(c.G), to255(c.B)
}

func to255(v float64) int {
	return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// Palette of the reference design.
var (
	Ink      = RGB(0.16, 0.16, 0.16)
	Muted    = RGB(0.45, 0.45, 0.45)
	Rule     = RGB(0.9, 0.9, 0.9)
	HeaderBg = RGB(0.92, 0.92, 0.92)
	Accent   = RGB(0.06, 0.45, 0.73)
	White    = RGB(1, 1, 1)
	Divider  = RGB(0.75, 0.8, 0.9)
)

// Font roles. A role names a typeface the asset bundle must supply.
const (
	Slab     = "slab"
	SlabBold = "slab-bold"
	Mono     = "mono"
)

// Font selects a typeface role and a size in points.
type Font struct {
	Family string  `json:"family"`
	Size   float64 `json:"size"`
}

// Align is a horizontal text alignment.
type Align string

const (
	AlignLeft   Align = ""
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)
