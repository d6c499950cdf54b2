package render

import (
	"encoding/json"
	"fmt"
)

// Colour is a resolved RGBA colour.
type Colour struct {
	R, G, B, A uint8
}

func (c Colour) String() string {
	if c.A == 0xFF {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// MarshalJSON writes the colour as a CSS hex string.
func (c Colour) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// Transparent is used where nothing should be painted.
var Transparent = Colour{}

// Palette maps the 256 VT colour indexes to RGB.
type Palette [256]Colour

// Colour resolves a palette index.
func (p *Palette) Colour(index uint8) Colour {
	return p[index]
}

// Standard is the default VT palette: 16 named colours, a 6x6x6 colour cube
// and 24 proprietary entries shown as black.
var Standard = func() Palette {
	var p Palette
	named := [16][3]uint8{
		{0x00, 0x00, 0x00}, // black
		{0xFF, 0xFF, 0xFF}, // white
		{0x00, 0x99, 0x00}, // green
		{0x00, 0x99, 0x99}, // teal
		{0x99, 0x00, 0x00}, // maroon
		{0x99, 0x00, 0x99}, // purple
		{0x99, 0x99, 0x00}, // olive
		{0xCC, 0xCC, 0xCC}, // silver
		{0x99, 0x99, 0x99}, // grey
		{0x00, 0x00, 0xFF}, // blue
		{0x00, 0xFF, 0x00}, // lime
		{0x00, 0xFF, 0xFF}, // cyan
		{0xFF, 0x00, 0x00}, // red
		{0xFF, 0x00, 0xFF}, // magenta
		{0xFF, 0xFF, 0x00}, // yellow
		{0x00, 0x00, 0x99}, // navy
	}
	for i, rgb := range named {
		p[i] = Colour{rgb[0], rgb[1], rgb[2], 0xFF}
	}

	levels := [6]uint8{0x00, 0x33, 0x66, 0x99, 0xCC, 0xFF}
	for r := range 6 {
		for g := range 6 {
			for b := range 6 {
				p[16+r*36+g*6+b] = Colour{levels[r], levels[g], levels[b], 0xFF}
			}
		}
	}

	for i := 232; i < len(p); i++ {
		p[i] = Colour{0, 0, 0, 0xFF}
	}
	return p
}()

func lighten(c Colour, amount float64) Colour {
	up := func(v uint8) uint8 { return uint8(min(255, float64(v)+255*amount)) }
	return Colour{up(c.R), up(c.G), up(c.B), c.A}
}

func darken(c Colour, amount float64) Colour {
	down := func(v uint8) uint8 { return uint8(max(0, float64(v)*(1-amount))) }
	return Colour{down(c.R), down(c.G), down(c.B), c.A}
}
