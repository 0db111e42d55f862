package variables

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a parsed color variable. The zero value is invalid.
type Color struct {
	colorful.Color
	Alpha float64
	Valid bool
}

// ParseColor parses #rgb, #rrggbb and #rrggbbaa values.
func ParseColor(value string) Color {
	value = strings.TrimSpace(value)
	if !strings.HasPrefix(value, "#") {
		return Color{}
	}

	alpha := 1.0
	hex := value
	switch len(value) {
	case 4:
		hex = "#" + strings.Repeat(value[1:2], 2) + strings.Repeat(value[2:3], 2) + strings.Repeat(value[3:4], 2)
	case 7:
	case 9:
		a, err := strconv.ParseUint(value[7:9], 16, 8)
		if err != nil {
			return Color{}
		}
		alpha = float64(a) / 255
		hex = value[:7]
	default:
		return Color{}
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}
	}
	return Color{Color: c, Alpha: alpha, Valid: true}
}

// Hex returns #rrggbb (or #rrggbbaa when translucent), or "" when invalid.
func (c Color) Hex() string {
	if !c.Valid {
		return ""
	}
	if c.Alpha >= 1 {
		return c.Color.Hex()
	}
	return fmt.Sprintf("%s%02x", c.Color.Hex(), uint8(c.Alpha*255+0.5))
}

// String implements fmt.Stringer.
func (c Color) String() string {
	if !c.Valid {
		return "invalid"
	}
	return c.Hex()
}
