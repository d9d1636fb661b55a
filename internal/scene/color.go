package scene

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is an RGB triple with components in [0,1].
type Color struct {
	R float64
	G float64
	B float64
}

var (
	Red    = Color{R: 1}
	Yellow = Color{R: 1, G: 1}
	Cyan   = Color{G: 1, B: 1}
)

// ParseHexColor decodes "#RRGGBB" (the '#' is optional), dividing each byte by 255.
func ParseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid color %q: want #RRGGBB", s)
	}
	var c [3]float64
	for i := range 3 {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		c[i] = float64(v) / 255.0
	}
	return Color{R: c[0], G: c[1], B: c[2]}, nil
}

// Hex formats c as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

// RGBA8 returns c as 8-bit channels with full alpha.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return channel(c.R), channel(c.G), channel(c.B), 0xff
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseHexColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
