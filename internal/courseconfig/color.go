package courseconfig

import (
	"fmt"
	"math"
)

// Color is an RGB color with components in [0, 1].
type Color struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
}

// Hex formats the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.Red), channel(c.Green), channel(c.Blue))
}

func channel(v float64) int {
	return int(math.Round(math.Min(math.Max(v, 0), 1) * 255))
}

// ColorFor returns the custom color of courseID, or a color derived
// deterministically from the sum of its code points.
func (c *Config) ColorFor(courseID string) Color {
	if custom, ok := c.CustomColors[courseID]; ok {
		return custom
	}
	return DerivedColor(courseID)
}

// SetColor sets a custom color for courseID.
func (c *Config) SetColor(courseID string, color Color) {
	if c.CustomColors == nil {
		c.CustomColors = map[string]Color{}
	}
	c.CustomColors[courseID] = color
}

// DerivedColor is the generated color of an id. Each channel is the first
// drand48 value after seeding with the code-point sum scaled differently.
func DerivedColor(id string) Color {
	var total int64
	for _, r := range id {
		total += int64(r)
	}
	return Color{
		Red:   seeded(total * 47).next(),
		Green: seeded(total).next(),
		Blue:  seeded(total / 47).next(),
	}
}

// rand48 is the 48-bit linear congruential generator of srand48/drand48.
type rand48 struct {
	x uint64
}

const (
	rand48A    = 0x5DEECE66D
	rand48C    = 0xB
	rand48Mask = 1<<48 - 1
)

// seeded mirrors srand48: the low 32 bits of seed become the high bits of
// the state, the low 16 bits are 0x330E.
func seeded(seed int64) *rand48 {
	return &rand48{x: uint64(uint32(seed))<<16 | 0x330E}
}

// next mirrors drand48.
func (r *rand48) next() float64 {
	r.x = (rand48A*r.x + rand48C) & rand48Mask
	return float64(r.x) / (1 << 48)
}
